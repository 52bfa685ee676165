package api

// Ptr locates a payload inside the memory region owned by an allocator.
// It is an offset relative to the start of that region, never a raw
// address, and is meaningful only to the allocator that returned it.
type Ptr int64

// Nilptr is the null pointer. Offset zero is a valid slot in a pool,
// hence a negative sentinel.
const Nilptr = Ptr(-1)

// Mallocer interface for variable sized allocations out of a single
// fixed-size arena.
type Mallocer interface {
	// Alloc allocate `n` bytes, rounded up to 8-byte alignment. Zero
	// sized allocation return Nilptr and no error.
	Alloc(n int64) (Ptr, error)

	// Calloc allocate `num*size` bytes and zero them.
	Calloc(num, size int64) (Ptr, error)

	// Realloc resize the allocation at `ptr`, possibly moving it.
	Realloc(ptr Ptr, n int64) (Ptr, error)

	// Free allocation at `ptr`. Freeing Nilptr is a no-op.
	Free(ptr Ptr) error

	// Chunklen return the usable length of the allocation at `ptr`.
	Chunklen(ptr Ptr) int64

	// Bytes return the payload of allocation at `ptr` as a slice.
	Bytes(ptr Ptr) []byte

	// Release arena and all its resources.
	Release()

	// Info of memory accounting for this arena.
	Info() (capacity, heap, alloc, overhead int64)

	// Stats return allocator statistics.
	Stats() map[string]interface{}
}

// Pooler interface for fixed size allocations.
type Pooler interface {
	// Chunksize managed by this pool.
	Chunksize() int64

	// Alloc a chunk from pool, return false if pool is exhausted.
	Alloc() (Ptr, bool)

	// Free chunk back to pool.
	Free(ptr Ptr)

	// Bytes return the chunk at `ptr` as a slice.
	Bytes(ptr Ptr) []byte

	// Release this pool and all its resources.
	Release()

	// Info of memory accounting for this pool.
	Info() (capacity, heap, alloc, overhead int64)

	// Stats return pool statistics.
	Stats() map[string]interface{}
}
