package malloc

import s "github.com/bnclabs/gosettings"

// Arena is a single block of memory, reserved once from the environment
// and owned by exactly one allocator for its lifetime. Arenas are never
// resized.
type Arena struct {
	data     []byte
	capacity int64
	reserver Reserver
}

// NewArena reserve `capacity` bytes, refer to Defaultsettings() for
// "reserver" and "checkmem".
func NewArena(capacity int64, setts s.Settings) (*Arena, error) {
	setts = make(s.Settings).Mixin(Defaultsettings(), setts)

	if capacity <= 0 {
		return nil, ErrorInvalidArgument
	} else if capacity > Maxarenasize {
		warnf("arena cannot exceed %v bytes (%v)\n", Maxarenasize, capacity)
		return nil, ErrorOutofMemory
	}
	if setts.Bool("checkmem") {
		if _, _, free := getsysmem(); free > 0 && uint64(capacity) > free {
			fmsg := "arena of %v bytes exceeds free memory %v\n"
			warnf(fmsg, capacity, free)
			return nil, ErrorOutofMemory
		}
	}

	reserver := newreserver(setts.String("reserver"))
	data, err := reserver.Reserve(capacity)
	if err != nil {
		return nil, err
	}
	arena := &Arena{data: data, capacity: capacity, reserver: reserver}
	debugf("arena reserved %v bytes from %v\n", capacity, reserver)
	return arena, nil
}

// Capacity of this arena in bytes.
func (arena *Arena) Capacity() int64 {
	return arena.capacity
}

// Released return whether Release() is already called on this arena.
func (arena *Arena) Released() bool {
	return arena.data == nil
}

// Release memory back to the environment. Calling Release more than
// once is a no-op.
func (arena *Arena) Release() {
	if arena.data == nil {
		return
	}
	if err := arena.reserver.Release(arena.data); err != nil {
		errorf("arena release: %v\n", err)
	}
	arena.data = nil
}

func (arena *Arena) slice(off, n int64) []byte {
	return arena.data[off : off+n : off+n]
}
