package malloc

import "sync"

import s "github.com/bnclabs/gosettings"
import "github.com/bnclabs/gomalloc/api"

// Safeheap serialize every operation on a Heap with a single mutex, the
// chain walks in allocation, free and statistics are not safe under
// concurrent mutation.
type Safeheap struct {
	mu   sync.Mutex
	heap *Heap
}

// NewSafeheap create a new Heap that can be shared between go-routines.
func NewSafeheap(name string, setts s.Settings) (*Safeheap, error) {
	heap, err := NewHeap(name, setts)
	if err != nil {
		return nil, err
	}
	return &Safeheap{heap: heap}, nil
}

// Alloc implement api.Mallocer{} interface.
func (sh *Safeheap) Alloc(n int64) (api.Ptr, error) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.heap.Alloc(n)
}

// Calloc implement api.Mallocer{} interface.
func (sh *Safeheap) Calloc(num, size int64) (api.Ptr, error) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.heap.Calloc(num, size)
}

// Realloc implement api.Mallocer{} interface.
func (sh *Safeheap) Realloc(ptr api.Ptr, n int64) (api.Ptr, error) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.heap.Realloc(ptr, n)
}

// Free implement api.Mallocer{} interface.
func (sh *Safeheap) Free(ptr api.Ptr) error {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.heap.Free(ptr)
}

// Chunklen implement api.Mallocer{} interface.
func (sh *Safeheap) Chunklen(ptr api.Ptr) int64 {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.heap.Chunklen(ptr)
}

// Bytes implement api.Mallocer{} interface. Returned slice is owned by
// the caller until the chunk is freed.
func (sh *Safeheap) Bytes(ptr api.Ptr) []byte {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.heap.Bytes(ptr)
}

// Release implement api.Mallocer{} interface.
func (sh *Safeheap) Release() {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.heap.Release()
}

// Info implement api.Mallocer{} interface.
func (sh *Safeheap) Info() (capacity, heap, alloc, overhead int64) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.heap.Info()
}

// Stats implement api.Mallocer{} interface.
func (sh *Safeheap) Stats() map[string]interface{} {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.heap.Stats()
}

// Blocks refer to Heap.Blocks().
func (sh *Safeheap) Blocks() []Blockinfo {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.heap.Blocks()
}

// Validate refer to Heap.Validate().
func (sh *Safeheap) Validate() error {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.heap.Validate()
}

// Log refer to Heap.Log().
func (sh *Safeheap) Log(humanize bool) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.heap.Log(humanize)
}

// Safepool serialize every operation on a Pool with a single mutex.
type Safepool struct {
	mu   sync.Mutex
	pool *Pool
}

// NewSafepool create a new Pool that can be shared between go-routines.
func NewSafepool(
	name string, size, nblocks int64, setts s.Settings) (*Safepool, error) {

	pool, err := NewPool(name, size, nblocks, setts)
	if err != nil {
		return nil, err
	}
	return &Safepool{pool: pool}, nil
}

// Chunksize implement api.Pooler{} interface.
func (sp *Safepool) Chunksize() int64 {
	return sp.pool.Chunksize()
}

// Alloc implement api.Pooler{} interface.
func (sp *Safepool) Alloc() (api.Ptr, bool) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return sp.pool.Alloc()
}

// Free implement api.Pooler{} interface.
func (sp *Safepool) Free(ptr api.Ptr) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	sp.pool.Free(ptr)
}

// Bytes implement api.Pooler{} interface.
func (sp *Safepool) Bytes(ptr api.Ptr) []byte {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return sp.pool.Bytes(ptr)
}

// Release implement api.Pooler{} interface.
func (sp *Safepool) Release() {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	sp.pool.Release()
}

// Info implement api.Pooler{} interface.
func (sp *Safepool) Info() (capacity, heap, alloc, overhead int64) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return sp.pool.Info()
}

// Stats implement api.Pooler{} interface.
func (sp *Safepool) Stats() map[string]interface{} {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return sp.pool.Stats()
}
