// Functions and methods are not thread safe.

package malloc

import "fmt"
import "unsafe"
import "encoding/binary"

import s "github.com/bnclabs/gosettings"
import gohumanize "github.com/dustin/go-humanize"
import "github.com/bnclabs/golog"
import "github.com/bnclabs/gomalloc/api"
import "github.com/bnclabs/gomalloc/lib"

// Pool manages a memory block sliced up into equal sized chunks. Free
// chunks are threaded into a singly linked list, each free chunk holds
// the offset of the next free chunk in its first 8 bytes.
type Pool struct {
	// 64-bit aligned stats
	n_allocs   int64
	n_frees    int64
	mallocated int64 // number of allocated chunks
	probes     int64 // chunk links read or written

	name      string
	arena     *Arena
	size      int64 // fixed size chunks in this pool
	nblocks   int64 // number of chunks in this pool
	freehead  int64
	logprefix string
}

// NewPool reserve an arena for `nblocks` chunks of `size` bytes, size
// is rounded up to Alignment. Refer to Defaultsettings() for settings,
// "capacity" is ignored.
func NewPool(name string, size, nblocks int64, setts s.Settings) (*Pool, error) {
	if size <= 0 || nblocks <= 0 {
		return nil, ErrorInvalidArgument
	}
	size = lib.Alignup(size, Alignment)
	if nblocks > Maxarenasize/size {
		return nil, ErrorOutofMemory
	}
	arena, err := NewArena(size*nblocks, setts)
	if err != nil {
		return nil, err
	}

	pool := &Pool{
		name:    name,
		arena:   arena,
		size:    size,
		nblocks: nblocks,
	}
	pool.logprefix = fmt.Sprintf("POOL [%s]", name)

	// thread chunks in ascending address order.
	for i := int64(0); i < nblocks-1; i++ {
		pool.setlink(i*size, (i+1)*size)
	}
	pool.setlink((nblocks-1)*size, nilblock)
	pool.freehead, pool.probes = 0, 0

	infof("%v started with %v chunks of %v bytes\n", pool.logprefix, nblocks, size)
	return pool, nil
}

// Chunksize implement api.Pooler{} interface.
func (pool *Pool) Chunksize() int64 {
	return pool.size
}

// Numblocks return the number of chunks managed by this pool.
func (pool *Pool) Numblocks() int64 {
	return pool.nblocks
}

// Allocated return number of chunks allocated.
func (pool *Pool) Allocated() int64 {
	return pool.mallocated
}

// Available return number of chunks free for allocation.
func (pool *Pool) Available() int64 {
	return pool.nblocks - pool.mallocated
}

// Alloc implement api.Pooler{} interface. O(1)
func (pool *Pool) Alloc() (api.Ptr, bool) {
	if pool.arena == nil {
		panicerr("%v already released", pool.logprefix)
	} else if pool.freehead == nilblock {
		return api.Nilptr, false
	}
	off := pool.freehead
	pool.freehead = pool.link(off)
	pool.mallocated++
	pool.n_allocs++
	initblock(pool.arena.slice(off, pool.size))
	return api.Ptr(off), true
}

// Free implement api.Pooler{} interface. O(1), chunks are not validated
// for double free.
func (pool *Pool) Free(ptr api.Ptr) {
	if ptr == api.Nilptr {
		return
	} else if pool.arena == nil {
		panicerr("%v already released", pool.logprefix)
	}
	off := int64(ptr)
	if off < 0 || off >= pool.arena.capacity {
		panicerr("%v free(): pointer %v out of range", pool.logprefix, ptr)
	} else if (off % pool.size) != 0 {
		panicerr("%v free(): unaligned pointer %v,%v", pool.logprefix, ptr, pool.size)
	}
	freeblock(pool.arena.slice(off, pool.size))
	pool.setlink(off, pool.freehead)
	pool.freehead = off
	pool.mallocated--
	pool.n_frees++
}

// Bytes implement api.Pooler{} interface.
func (pool *Pool) Bytes(ptr api.Ptr) []byte {
	if ptr == api.Nilptr {
		return nil
	}
	if pool.arena == nil {
		panicerr("%v already released", pool.logprefix)
	}
	off := int64(ptr)
	if off < 0 || off >= pool.arena.capacity || (off%pool.size) != 0 {
		panicerr("%v Bytes(): invalid pointer %v", pool.logprefix, ptr)
	}
	return pool.arena.slice(off, pool.size)
}

// Release implement api.Pooler{} interface. Entire arena is released
// as a single unit.
func (pool *Pool) Release() {
	if pool.arena == nil {
		return
	}
	pool.arena.Release()
	pool.arena, pool.freehead = nil, nilblock
	pool.mallocated = 0
	infof("%v released\n", pool.logprefix)
}

// Info implement api.Pooler{} interface.
func (pool *Pool) Info() (capacity, heap, alloc, overhead int64) {
	self := int64(unsafe.Sizeof(*pool))
	capacity = pool.size * pool.nblocks
	return capacity, capacity, pool.mallocated * pool.size, self
}

// Stats implement api.Pooler{} interface.
func (pool *Pool) Stats() map[string]interface{} {
	capacity, _, alloc, overhead := pool.Info()
	return map[string]interface{}{
		"chunksize":   pool.size,
		"numblocks":   pool.nblocks,
		"capacity":    capacity,
		"allocated":   alloc,
		"overhead":    overhead,
		"n_chunks":    pool.mallocated,
		"n_allocs":    pool.n_allocs,
		"n_frees":     pool.n_frees,
		"n_available": pool.Available(),
	}
}

// Log current statistics, if humanize is true byte quantities are
// logged in human readable form.
func (pool *Pool) Log(humanize bool) {
	capacity, _, alloc, _ := pool.Info()
	cp, al := fmt.Sprintf("%v", capacity), fmt.Sprintf("%v", alloc)
	if humanize {
		cp = gohumanize.Bytes(uint64(capacity))
		al = gohumanize.Bytes(uint64(alloc))
	}
	fmsg := "%v chunksize:%v chunks:%v/%v capacity:%v allocated:%v\n"
	log.Infof(
		fmsg, pool.logprefix, pool.size, pool.mallocated, pool.nblocks,
		cp, al)
}

//---- local functions

func (pool *Pool) link(off int64) int64 {
	pool.probes++
	return int64(binary.LittleEndian.Uint64(pool.arena.data[off:]))
}

func (pool *Pool) setlink(off, next int64) {
	pool.probes++
	binary.LittleEndian.PutUint64(pool.arena.data[off:], uint64(next))
}

// checkallocated walk the free list, can be costly operation.
func (pool *Pool) checkallocated() int64 {
	nfree := int64(0)
	for off := pool.freehead; off != nilblock; off = pool.link(off) {
		nfree++
	}
	return pool.nblocks - nfree
}
