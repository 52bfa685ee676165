package malloc

import "fmt"

import gohumanize "github.com/dustin/go-humanize"
import "github.com/bnclabs/golog"

// Info implement api.Mallocer{} interface. `heap` is the payload memory,
// allocated and free, and `overhead` is memory spent on block headers.
func (h *Heap) Info() (capacity, heap, alloc, overhead int64) {
	if h.arena == nil {
		return 0, 0, 0, 0
	}
	capacity = h.arena.capacity
	heap, alloc = h.allocated+h.available, h.allocated
	overhead = h.n_blocks * Headersize
	return
}

// Stats implement api.Mallocer{} interface.
func (h *Heap) Stats() map[string]interface{} {
	capacity, _, _, overhead := h.Info()
	stats := map[string]interface{}{
		"capacity":      capacity,
		"allocated":     h.allocated,
		"available":     h.available,
		"overhead":      overhead,
		"n_blocks":      h.n_blocks,
		"n_allocs":      h.n_allocs,
		"n_frees":       h.n_frees,
		"n_reallocs":    h.n_reallocs,
		"n_callocs":     h.n_callocs,
		"n_splits":      h.n_splits,
		"n_merges":      h.n_merges,
		"n_oom":         h.n_oom,
		"n_corrupts":    h.n_corrupts,
		"fragmentation": h.Fragmentation(),
		"largestfree":   h.Largestfree(),
	}
	if h.h_allocsz != nil {
		stats["h_allocsz"] = h.h_allocsz.Fullstats()
	}
	return stats
}

// Largestfree return the size of the largest free block, linear
// scan of the chain.
func (h *Heap) Largestfree() (largest int64) {
	h.Walk(func(bi Blockinfo) bool {
		if bi.Free && bi.Size > largest {
			largest = bi.Size
		}
		return true
	})
	return largest
}

// Fragmentation return the percentage of free memory that is not part
// of the largest free block.
func (h *Heap) Fragmentation() float64 {
	if h.available == 0 || h.arena == nil {
		return 0
	}
	largest := float64(h.Largestfree())
	return (1.0 - (largest / float64(h.available))) * 100
}

// Log current statistics, if humanize is true byte quantities are
// logged in human readable form.
func (h *Heap) Log(humanize bool) {
	stats := h.Stats()

	dohumanize := func(val interface{}) interface{} {
		if humanize {
			return gohumanize.Bytes(uint64(val.(int64)))
		}
		return val.(int64)
	}

	capacity, allocd := dohumanize(stats["capacity"]), dohumanize(stats["allocated"])
	avail, overh := dohumanize(stats["available"]), dohumanize(stats["overhead"])
	largest := dohumanize(stats["largestfree"])
	fmsg := "%v capacity:%v allocated:%v available:%v overhead:%v\n"
	log.Infof(fmsg, h.logprefix, capacity, allocd, avail, overh)
	fmsg = "%v blocks:%v allocs:%v frees:%v reallocs:%v splits:%v merges:%v\n"
	log.Infof(
		fmsg, h.logprefix, stats["n_blocks"], stats["n_allocs"],
		stats["n_frees"], stats["n_reallocs"], stats["n_splits"],
		stats["n_merges"])
	fmsg = "%v fragmentation:%.2f%% largestfree:%v oom:%v corrupts:%v\n"
	log.Infof(
		fmsg, h.logprefix, stats["fragmentation"], largest,
		stats["n_oom"], stats["n_corrupts"])
	if h.h_allocsz != nil {
		log.Infof("%v h_allocsz %v\n", h.logprefix, h.h_allocsz.Logstring())
	}
}

// validatestats counters should agree with each other.
func (h *Heap) validatestats() error {
	if h.arena == nil {
		return ErrorReleased
	}
	capacity, _, _, overhead := h.Info()
	if x := h.allocated + h.available + overhead; x != capacity {
		fmsg := "validatestats(): allocated:%v + available:%v + overhead:%v" +
			" != capacity:%v"
		return fmt.Errorf(fmsg, h.allocated, h.available, overhead, capacity)
	}
	if h.n_blocks != (1 + h.n_splits - h.n_merges) {
		fmsg := "validatestats(): n_blocks:%v != (1 + n_splits:%v - n_merges:%v)"
		return fmt.Errorf(fmsg, h.n_blocks, h.n_splits, h.n_merges)
	}
	return nil
}
