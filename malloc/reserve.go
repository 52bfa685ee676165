package malloc

// Reserver is the environment's memory provider, arena is reserved
// once when allocator is created and released once when allocator
// is released.
type Reserver interface {
	// Reserve `n` contiguous bytes.
	Reserve(n int64) ([]byte, error)

	// Release memory obtained from Reserve.
	Release(block []byte) error
}

func newreserver(name string) Reserver {
	switch name {
	case "heap":
		return heapReserver{}
	case "mmap":
		return mmapreserver()
	}
	panicerr("invalid reserver %q", name)
	return nil
}

// heapReserver obtains memory from go-runtime.
type heapReserver struct{}

func (heapReserver) Reserve(n int64) (block []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			errorf("heap reserve %v bytes: %v\n", n, r)
			block, err = nil, ErrorOutofMemory
		}
	}()
	return make([]byte, n), nil
}

func (heapReserver) Release(block []byte) error {
	return nil
}

func (heapReserver) String() string {
	return "heap"
}
