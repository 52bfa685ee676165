package lib

import "fmt"
import "sort"
import "strconv"
import "strings"

// Sizehistogram count samples in power-of-two buckets, suitable for
// allocation sizes. Bucket `b` counts samples in (b/2, b], samples
// beyond the last bucket are counted under "+".
type Sizehistogram struct {
	n       int64
	minval  int64
	maxval  int64
	sum     int64
	init    bool
	buckets []int64 // upper bounds
	counts  []int64 // len(buckets)+1
}

// NewSizehistogram return a histogram with buckets from `from`
// till `till`, both rounded up to power of 2.
func NewSizehistogram(from, till int64) *Sizehistogram {
	h := &Sizehistogram{}
	for b := pow2(from); b <= pow2(till); b <<= 1 {
		h.buckets = append(h.buckets, b)
	}
	h.counts = make([]int64, len(h.buckets)+1)
	return h
}

// Add a sample to this histogram.
func (h *Sizehistogram) Add(sample int64) {
	h.n++
	h.sum += sample
	if h.init == false || sample < h.minval {
		h.minval = sample
		h.init = true
	}
	if h.maxval < sample {
		h.maxval = sample
	}
	i := sort.Search(len(h.buckets), func(i int) bool {
		return h.buckets[i] >= sample
	})
	h.counts[i]++
}

// Samples return total number of samples in the set.
func (h *Sizehistogram) Samples() int64 {
	return h.n
}

// Min return minimum value from sample.
func (h *Sizehistogram) Min() int64 {
	return h.minval
}

// Max return maximum value from sample.
func (h *Sizehistogram) Max() int64 {
	return h.maxval
}

// Mean return the average value of all samples.
func (h *Sizehistogram) Mean() int64 {
	if h.n == 0 {
		return 0
	}
	return int64(float64(h.sum) / float64(h.n))
}

// Stats return a map of non-empty bucket and its count.
func (h *Sizehistogram) Stats() map[string]int64 {
	m := make(map[string]int64)
	for i, count := range h.counts {
		if count == 0 {
			continue
		}
		if i == len(h.buckets) {
			m["+"] = count
		} else {
			m[strconv.Itoa(int(h.buckets[i]))] = count
		}
	}
	return m
}

// Fullstats includes samples, min, max and mean along with Stats().
func (h *Sizehistogram) Fullstats() map[string]interface{} {
	hmap := make(map[string]interface{})
	for k, v := range h.Stats() {
		hmap[k] = v
	}
	return map[string]interface{}{
		"samples":   h.Samples(),
		"min":       h.Min(),
		"max":       h.Max(),
		"mean":      h.Mean(),
		"histogram": hmap,
	}
}

// Logstring return Fullstats as loggable string, buckets in
// ascending order.
func (h *Sizehistogram) Logstring() string {
	ss := []string{
		fmt.Sprintf(`"samples": %v`, h.Samples()),
		fmt.Sprintf(`"min": %v`, h.Min()),
		fmt.Sprintf(`"max": %v`, h.Max()),
		fmt.Sprintf(`"mean": %v`, h.Mean()),
	}
	hs := []string{}
	for i, count := range h.counts {
		if count == 0 {
			continue
		}
		key := "+"
		if i < len(h.buckets) {
			key = strconv.Itoa(int(h.buckets[i]))
		}
		hs = append(hs, fmt.Sprintf(`"%v": %v`, key, count))
	}
	ss = append(ss, fmt.Sprintf(`"histogram": {%v}`, strings.Join(hs, ",")))
	return "{" + strings.Join(ss, ",") + "}"
}

func pow2(n int64) int64 {
	p := int64(1)
	for p < n {
		p <<= 1
	}
	return p
}
