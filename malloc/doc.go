// Package malloc supplies custom memory management over a single,
// pre-reserved memory arena, with a limited scope:
//
//  * Types and Functions exported by this package are not thread safe,
//    use Safeheap and Safepool to share an allocator between routines.
//  * Memory is reserved from the environment once, when the allocator
//    is created, and given back only when the allocator is Released.
//    Arenas never grow.
//  * Pointers handed out by this package are offsets into the arena,
//    api.Ptr, use Bytes() to access the payload.
//  * Memory-chunks allocated by this package will always be 64-bit
//    aligned.
//
// Heap is a general purpose allocator. Every region of the arena is
// prefixed by a block header, headers are chained in address order and
// cover the whole arena without gaps. Allocation search the chain for
// the first free block that fits, splitting it when the remainder is
// large enough to host another block. Freed blocks are validated using
// a per-block tag and merged with free neighbours.
//
// Pool is a fixed-block allocator. Arena is sliced into equal sized
// chunks and free chunks are threaded into a singly linked list, making
// allocation and free O(1).
package malloc
