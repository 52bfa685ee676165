package malloc

import "fmt"
import "errors"

// ErrorOutofMemory when arena cannot be reserved or no free block is
// large enough to satisfy an allocation.
var ErrorOutofMemory = errors.New("malloc.outofmemory")

// ErrorCorruption when a block's tag does not match an allocated block,
// either the block was already freed or the header is corrupted.
var ErrorCorruption = errors.New("malloc.corruption")

// ErrorInvalidArgument for negative sizes and overflowing requests.
var ErrorInvalidArgument = errors.New("malloc.invalidargument")

// ErrorInvalidPointer when pointer falls outside the arena or is not
// aligned to a block boundary.
var ErrorInvalidPointer = errors.New("malloc.invalidptr")

// ErrorReleased when operating on a released allocator.
var ErrorReleased = errors.New("malloc.released")

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}
