package malloc

import "fmt"
import "encoding/binary"

// block header, 32 bytes, little endian:
//
//   0  size, payload bytes excluding header
//   8  next, offset of next header, nilblock for the last block
//  16  prev, offset of previous header, nilblock for the first block
//  24  tag, blocktag
//  28  free, 1 for free block and 0 for allocated block
const (
	hdroffSize = 0
	hdroffNext = 8
	hdroffPrev = 16
	hdroffTag  = 24
	hdroffFree = 28
)

const nilblock = int64(-1)

// blocktag validates a header against its free/allocated flag.
type blocktag uint32

const (
	tagInvalid blocktag = 0
	tagFree    blocktag = 0xDEADBEEF
	tagAlloc   blocktag = 0xBEEFDEAD
)

// decodetag anything other than tagFree and tagAlloc is tagInvalid.
func decodetag(v uint32) blocktag {
	switch tag := blocktag(v); tag {
	case tagFree, tagAlloc:
		return tag
	}
	return tagInvalid
}

func (tag blocktag) String() string {
	switch tag {
	case tagFree:
		return "FREE"
	case tagAlloc:
		return "USED"
	}
	return fmt.Sprintf("INVALID(%x)", uint32(tag))
}

// header is a view on the Headersize bytes of a block.
type header []byte

func (hdr header) init(size, next, prev int64) header {
	return hdr.setsize(size).setnext(next).setprev(prev)
}

func (hdr header) size() int64 {
	return int64(binary.LittleEndian.Uint64(hdr[hdroffSize:]))
}

func (hdr header) setsize(size int64) header {
	binary.LittleEndian.PutUint64(hdr[hdroffSize:], uint64(size))
	return hdr
}

func (hdr header) next() int64 {
	return int64(binary.LittleEndian.Uint64(hdr[hdroffNext:]))
}

func (hdr header) setnext(next int64) header {
	binary.LittleEndian.PutUint64(hdr[hdroffNext:], uint64(next))
	return hdr
}

func (hdr header) prev() int64 {
	return int64(binary.LittleEndian.Uint64(hdr[hdroffPrev:]))
}

func (hdr header) setprev(prev int64) header {
	binary.LittleEndian.PutUint64(hdr[hdroffPrev:], uint64(prev))
	return hdr
}

func (hdr header) tag() blocktag {
	return decodetag(binary.LittleEndian.Uint32(hdr[hdroffTag:]))
}

func (hdr header) isfree() bool {
	return binary.LittleEndian.Uint32(hdr[hdroffFree:]) == 1
}

func (hdr header) markfree() header {
	binary.LittleEndian.PutUint32(hdr[hdroffTag:], uint32(tagFree))
	binary.LittleEndian.PutUint32(hdr[hdroffFree:], 1)
	return hdr
}

func (hdr header) markalloc() header {
	binary.LittleEndian.PutUint32(hdr[hdroffTag:], uint32(tagAlloc))
	binary.LittleEndian.PutUint32(hdr[hdroffFree:], 0)
	return hdr
}

// isallocated is true only when both tag and flag agree.
func (hdr header) isallocated() bool {
	return hdr.tag() == tagAlloc && !hdr.isfree()
}

// consistent tag agrees with the free flag.
func (hdr header) consistent() bool {
	switch hdr.tag() {
	case tagFree:
		return hdr.isfree()
	case tagAlloc:
		return !hdr.isfree()
	}
	return false
}
