// +build linux darwin freebsd netbsd openbsd

package malloc

import "golang.org/x/sys/unix"

// mmapReserver obtains anonymous memory directly from the OS.
type mmapReserver struct{}

func mmapreserver() Reserver {
	return mmapReserver{}
}

func (mmapReserver) Reserve(n int64) ([]byte, error) {
	prot, flags := unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE
	block, err := unix.Mmap(-1, 0, int(n), prot, flags)
	if err != nil {
		errorf("mmap reserve %v bytes: %v\n", n, err)
		return nil, ErrorOutofMemory
	}
	return block, nil
}

func (mmapReserver) Release(block []byte) error {
	return unix.Munmap(block)
}

func (mmapReserver) String() string {
	return "mmap"
}
