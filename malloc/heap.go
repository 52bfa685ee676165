package malloc

import "fmt"
import "math"

import s "github.com/bnclabs/gosettings"
import "github.com/bnclabs/gomalloc/api"
import "github.com/bnclabs/gomalloc/lib"

// Heap is a first-fit allocator over a single arena. Refer to package
// documentation for the algorithm. Heap is not thread safe.
type Heap struct {
	// 64-bit aligned stats
	n_allocs   int64
	n_frees    int64
	n_reallocs int64
	n_callocs  int64
	n_splits   int64
	n_merges   int64
	n_oom      int64
	n_corrupts int64
	n_blocks   int64
	allocated  int64 // payload bytes in allocated blocks
	available  int64 // payload bytes in free blocks

	name      string
	arena     *Arena
	head      int64
	h_allocsz *lib.Sizehistogram
	setts     s.Settings
	logprefix string
}

// NewHeap reserve an arena and describe all of it, minus one header,
// as a single free block. Refer to Defaultsettings() for settings.
func NewHeap(name string, setts s.Settings) (*Heap, error) {
	h := &Heap{name: name, head: 0}
	h.logprefix = fmt.Sprintf("HEAP [%s]", name)

	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	capacity := setts.Int64("capacity")
	if capacity < Headersize+Minblock {
		return nil, ErrorInvalidArgument
	}
	arena, err := NewArena(capacity, setts)
	if err != nil {
		return nil, err
	}
	h.arena, h.setts = arena, setts

	size := capacity - Headersize
	h.header(h.head).init(size, nilblock, nilblock).markfree()
	h.available, h.n_blocks = size, 1

	if setts.Bool("histogram") {
		h.h_allocsz = lib.NewSizehistogram(Alignment, 1024*1024)
	}

	infof("%v started with capacity %v\n", h.logprefix, capacity)
	return h, nil
}

//---- operations

// Alloc implement api.Mallocer{} interface.
func (h *Heap) Alloc(n int64) (api.Ptr, error) {
	if h.arena == nil {
		return api.Nilptr, ErrorReleased
	} else if n < 0 {
		return api.Nilptr, ErrorInvalidArgument
	} else if n == 0 {
		return api.Nilptr, nil
	}

	off := nilblock
	if n <= h.arena.capacity {
		off = h.firstfit(lib.Alignup(n, Alignment))
	}
	if off == nilblock {
		h.n_oom++
		warnf("%v out of memory, requested %v bytes\n", h.logprefix, n)
		return api.Nilptr, ErrorOutofMemory
	}

	size := lib.Alignup(n, Alignment)
	h.split(off, size)
	hdr := h.header(off).markalloc()

	h.allocated += hdr.size()
	h.available -= hdr.size()
	h.n_allocs++
	if h.h_allocsz != nil {
		h.h_allocsz.Add(n)
	}

	ptr := off + Headersize
	initblock(h.arena.slice(ptr, hdr.size()))
	return api.Ptr(ptr), nil
}

// Calloc implement api.Mallocer{} interface. Entire usable length of
// the chunk is zeroed.
func (h *Heap) Calloc(num, size int64) (api.Ptr, error) {
	if num < 0 || size < 0 {
		return api.Nilptr, ErrorInvalidArgument
	} else if num == 0 || size == 0 {
		return api.Nilptr, nil
	} else if num > math.MaxInt64/size {
		return api.Nilptr, ErrorInvalidArgument
	}

	ptr, err := h.Alloc(num * size)
	if err != nil {
		return api.Nilptr, err
	}
	h.n_callocs++
	block := h.Bytes(ptr)
	for i := range block {
		block[i] = 0
	}
	return ptr, nil
}

// Realloc implement api.Mallocer{} interface. If `n` fits within the
// chunk the same pointer is returned, chunks are never shrunk. Otherwise
// content is moved to a new chunk and old chunk is freed. On failure the
// chunk at `ptr` and its content are left untouched.
func (h *Heap) Realloc(ptr api.Ptr, n int64) (api.Ptr, error) {
	if h.arena == nil {
		return api.Nilptr, ErrorReleased
	} else if ptr == api.Nilptr {
		return h.Alloc(n)
	} else if n < 0 {
		return api.Nilptr, ErrorInvalidArgument
	} else if n == 0 {
		return api.Nilptr, h.Free(ptr)
	}

	off, err := h.allocatedblock(ptr)
	if err != nil {
		return api.Nilptr, err
	}
	h.n_reallocs++

	oldsize := h.header(off).size()
	if n <= oldsize {
		return ptr, nil
	}
	newptr, err := h.Alloc(n)
	if err != nil {
		return api.Nilptr, err
	}
	copy(h.Bytes(newptr), h.arena.slice(int64(ptr), oldsize))
	if err := h.Free(ptr); err != nil {
		return api.Nilptr, err
	}
	return newptr, nil
}

// Free implement api.Mallocer{} interface. Freeing a chunk that is not
// allocated return ErrorCorruption, without side effects.
func (h *Heap) Free(ptr api.Ptr) error {
	if h.arena == nil {
		return ErrorReleased
	} else if ptr == api.Nilptr {
		return nil
	}

	off, err := h.allocatedblock(ptr)
	if err != nil {
		return err
	}
	hdr := h.header(off).markfree()
	freeblock(h.arena.slice(int64(ptr), hdr.size()))

	h.allocated -= hdr.size()
	h.available += hdr.size()
	h.n_frees++

	h.coalesce()
	return nil
}

// Chunklen implement api.Mallocer{} interface.
func (h *Heap) Chunklen(ptr api.Ptr) int64 {
	if ptr == api.Nilptr {
		return 0
	}
	off, err := h.allocatedblock(ptr)
	if err != nil {
		panicerr("%v Chunklen(%v): %v", h.logprefix, ptr, err)
	}
	return h.header(off).size()
}

// Bytes implement api.Mallocer{} interface.
func (h *Heap) Bytes(ptr api.Ptr) []byte {
	if ptr == api.Nilptr {
		return nil
	}
	off, err := h.allocatedblock(ptr)
	if err != nil {
		panicerr("%v Bytes(%v): %v", h.logprefix, ptr, err)
	}
	return h.arena.slice(int64(ptr), h.header(off).size())
}

// Release implement api.Mallocer{} interface.
func (h *Heap) Release() {
	if h.arena == nil {
		return
	}
	h.arena.Release()
	h.arena = nil
	infof("%v released\n", h.logprefix)
}

//---- local functions

func (h *Heap) header(off int64) header {
	return header(h.arena.slice(off, Headersize))
}

// walk the chain from head, return the first free block of at
// least `size` bytes.
func (h *Heap) firstfit(size int64) int64 {
	for off := h.head; off != nilblock; {
		hdr := h.header(off)
		if hdr.isfree() && hdr.size() >= size {
			return off
		}
		off = hdr.next()
	}
	return nilblock
}

// split block at `off` into `size` bytes and a free remainder, if the
// remainder can host a header and Minblock bytes.
func (h *Heap) split(off, size int64) bool {
	hdr := h.header(off)
	if hdr.size() < size+Headersize+Minblock {
		return false
	}
	newoff := off + Headersize + size
	newsize := hdr.size() - size - Headersize
	h.header(newoff).init(newsize, hdr.next(), off).markfree()
	if next := hdr.next(); next != nilblock {
		h.header(next).setprev(newoff)
	}
	hdr.setnext(newoff).setsize(size)

	h.available -= Headersize
	h.n_blocks++
	h.n_splits++
	debugf("%v split %v into {%v,%v}\n", h.logprefix, off, size, newsize)
	return true
}

// coalesce merge physically adjacent free blocks in a single pass,
// a block that absorbed its neighbour is checked again against its
// new neighbour.
func (h *Heap) coalesce() {
	for off := h.head; off != nilblock; {
		hdr := h.header(off)
		next := hdr.next()
		if next == nilblock {
			return
		}
		nhdr := h.header(next)
		adjacent := off+Headersize+hdr.size() == next
		if hdr.isfree() && nhdr.isfree() && adjacent {
			hdr.setsize(hdr.size() + Headersize + nhdr.size())
			hdr.setnext(nhdr.next())
			if nnext := nhdr.next(); nnext != nilblock {
				h.header(nnext).setprev(off)
			}
			h.available += Headersize
			h.n_blocks--
			h.n_merges++
			debugf("%v merged %v into %v\n", h.logprefix, next, off)
			continue
		}
		off = next
	}
}

// allocatedblock return header offset for `ptr`, after validating that
// ptr points to an allocated block.
func (h *Heap) allocatedblock(ptr api.Ptr) (int64, error) {
	if h.arena == nil {
		return nilblock, ErrorReleased
	}
	off := int64(ptr) - Headersize
	if off < 0 || off+Headersize > h.arena.capacity {
		return nilblock, ErrorInvalidPointer
	} else if !lib.Isaligned(off, Alignment) {
		return nilblock, ErrorInvalidPointer
	}
	hdr := h.header(off)
	size := hdr.size()
	if !hdr.isallocated() || size < 0 || off+Headersize+size > h.arena.capacity {
		h.n_corrupts++
		fmsg := "%v corruption or double free at %v, tag %v\n"
		errorf(fmsg, h.logprefix, ptr, hdr.tag())
		return nilblock, ErrorCorruption
	}
	return off, nil
}
