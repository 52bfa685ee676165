package lib

// Alignup round `n` up to the nearest multiple of `alignment`,
// alignment must be a power of 2.
func Alignup(n, alignment int64) int64 {
	return (n + alignment - 1) &^ (alignment - 1)
}

// Isaligned return true if `n` is a multiple of `alignment`.
func Isaligned(n, alignment int64) bool {
	return n&(alignment-1) == 0
}
