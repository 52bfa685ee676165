// +build debug

package malloc

var allocpoison = make([]byte, 1024)
var freepoison = make([]byte, 1024)

func init() {
	for i := 0; i < len(allocpoison); i++ {
		allocpoison[i], freepoison[i] = 0xff, 0xdd
	}
}

// initblock poison freshly allocated payload.
func initblock(block []byte) {
	fillblock(block, allocpoison)
}

// freeblock poison released payload.
func freeblock(block []byte) {
	fillblock(block, freepoison)
}

func fillblock(block, pattern []byte) {
	for len(block) > 0 {
		n := copy(block, pattern)
		block = block[n:]
	}
}
