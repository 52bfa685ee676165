package malloc

import s "github.com/bnclabs/gosettings"

// Alignment of every chunk handed out by this package, allocation sizes
// are rounded up to multiples of Alignment.
const Alignment = int64(8)

// Headersize is the overhead, in bytes, of every block in a heap.
const Headersize = int64(32)

// Minblock is the smallest payload a split is allowed to leave behind.
const Minblock = int64(16)

// Maxarenasize maximum size of a memory arena.
const Maxarenasize = int64(1024 * 1024 * 1024 * 1024) // 1TB

// Defaultcapacity of a heap, when "capacity" is not supplied.
const Defaultcapacity = int64(1024 * 1024)

// Defaultsettings for heap and pool.
//
// "capacity" (int64, default: <Defaultcapacity>)
//		Size of the arena managed by a heap, including block headers.
//		Ignored by pools, which size their arena from chunk-size and
//		number of chunks.
//
// "reserver" (string, default: "heap")
//		Where to reserve the arena from, can be "heap" or "mmap".
//
// "checkmem" (bool, default: true)
//		Fail reservations that exceed free memory on this host.
//
// "histogram" (bool, default: true)
//		Track a histogram of requested allocation sizes.
func Defaultsettings() s.Settings {
	return s.Settings{
		"capacity":  Defaultcapacity,
		"reserver":  "heap",
		"checkmem":  true,
		"histogram": true,
	}
}
