// +build !debug

package malloc

func initblock(block []byte) {}

func freeblock(block []byte) {}
