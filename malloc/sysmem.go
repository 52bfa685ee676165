package malloc

import "github.com/cloudfoundry/gosigar"

// getsysmem return zero values when memory statistics are not
// available on this platform.
func getsysmem() (total, used, free uint64) {
	mem := sigar.Mem{}
	if err := mem.Get(); err != nil {
		return 0, 0, 0
	}
	return mem.Total, mem.ActualUsed, mem.ActualFree
}
