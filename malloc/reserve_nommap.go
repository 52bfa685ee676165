// +build !linux,!darwin,!freebsd,!netbsd,!openbsd

package malloc

// anonymous mapping is not available, fall back to go-runtime.
func mmapreserver() Reserver {
	return heapReserver{}
}
