package malloc

import "io"
import "fmt"

// Blockinfo describe a block in the heap, as reported by Walk.
type Blockinfo struct {
	Index  int64
	Free   bool
	Size   int64 // payload size, excluding header
	Offset int64 // offset of block header within the arena
}

func (bi Blockinfo) String() string {
	tag := tagAlloc
	if bi.Free {
		tag = tagFree
	}
	fmsg := "Block %d: [%v] Size: %v bytes, Address: %#x"
	return fmt.Sprintf(fmsg, bi.Index, tag, bi.Size, bi.Offset)
}

// Walk blocks in chain order, stop when callback return false.
func (h *Heap) Walk(callb func(bi Blockinfo) bool) {
	if h.arena == nil {
		return
	}
	index := int64(0)
	for off := h.head; off != nilblock; index++ {
		hdr := h.header(off)
		bi := Blockinfo{Index: index, Free: hdr.isfree(), Size: hdr.size(), Offset: off}
		if !callb(bi) {
			return
		}
		off = hdr.next()
	}
}

// Blocks return all blocks in chain order.
func (h *Heap) Blocks() []Blockinfo {
	blocks := make([]Blockinfo, 0, h.n_blocks)
	h.Walk(func(bi Blockinfo) bool {
		blocks = append(blocks, bi)
		return true
	})
	return blocks
}

// Dump heap layout to `w`, one line per block.
func (h *Heap) Dump(w io.Writer) {
	h.Walk(func(bi Blockinfo) bool {
		fmt.Fprintln(w, bi.String())
		return true
	})
}

// Validate walk the entire heap and check for,
//   * every header's tag agrees with its free flag.
//   * next and prev links are symmetric.
//   * blocks are physically adjacent and cover the arena.
//   * no two neighbouring blocks are free.
//   * statistics agree with the chain.
func (h *Heap) Validate() error {
	if h.arena == nil {
		return ErrorReleased
	}

	var allocated, available, nblocks, nused int64
	expected, prev, prevfree := h.head, nilblock, false
	for off := h.head; off != nilblock; {
		hdr := h.header(off)
		if off != expected {
			return fmt.Errorf("validate(): block %v expected at %v", off, expected)
		} else if !hdr.consistent() {
			fmsg := "validate(): block %v tag %v, free %v"
			return fmt.Errorf(fmsg, off, hdr.tag(), hdr.isfree())
		} else if hdr.prev() != prev {
			fmsg := "validate(): block %v prev %v, expected %v"
			return fmt.Errorf(fmsg, off, hdr.prev(), prev)
		}
		size := hdr.size()
		if size < 0 || off+Headersize+size > h.arena.capacity {
			return fmt.Errorf("validate(): block %v size %v overflows", off, size)
		} else if hdr.isfree() && prevfree {
			return fmt.Errorf("validate(): adjacent free blocks at %v", off)
		}

		if hdr.isfree() {
			available += size
		} else {
			allocated += size
			nused++
		}
		nblocks++
		expected, prev, prevfree = off+Headersize+size, off, hdr.isfree()
		off = hdr.next()
	}

	if expected != h.arena.capacity {
		fmsg := "validate(): blocks cover %v bytes, capacity %v"
		return fmt.Errorf(fmsg, expected, h.arena.capacity)
	} else if allocated != h.allocated {
		fmsg := "validate(): allocated %v, counted %v"
		return fmt.Errorf(fmsg, h.allocated, allocated)
	} else if available != h.available {
		fmsg := "validate(): available %v, counted %v"
		return fmt.Errorf(fmsg, h.available, available)
	} else if nblocks != h.n_blocks {
		return fmt.Errorf("validate(): n_blocks %v, counted %v", h.n_blocks, nblocks)
	} else if x := h.n_allocs - h.n_frees; x != nused {
		fmsg := "validate(): n_allocs - n_frees = %v, used blocks %v"
		return fmt.Errorf(fmsg, x, nused)
	}
	return h.validatestats()
}
