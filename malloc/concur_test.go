package malloc

import "fmt"
import "sync"
import "testing"
import "math/rand"
import "sync/atomic"

import s "github.com/bnclabs/gosettings"

import "github.com/bnclabs/gomalloc/api"

type testalloc struct {
	n    byte
	size int64
	ptr  api.Ptr
}

var ccallocated, ccfreed int64

func TestConcurHeap(t *testing.T) {
	var awg, fwg sync.WaitGroup

	nroutines, repeat := 8, 10000

	chans := make([]chan testalloc, 0, nroutines)
	for n := 0; n < nroutines; n++ {
		chans = append(chans, make(chan testalloc, 1000))
	}

	capacity := int64(16 * 1024 * 1024)
	heap, err := NewSafeheap("concur", s.Settings{"capacity": capacity})
	if err != nil {
		t.Fatal(err)
	}
	defer heap.Release()

	atomic.StoreInt64(&ccallocated, 0)
	atomic.StoreInt64(&ccfreed, 0)
	awg.Add(nroutines)
	fwg.Add(nroutines)
	for n := 0; n < nroutines; n++ {
		go testallocator(heap, byte(n), repeat, chans, &awg)
		go testfree(heap, chans[n], &fwg)
	}

	awg.Wait()
	t.Logf("allocations are done\n")

	for _, ch := range chans {
		close(ch)
	}

	fwg.Wait()

	allocd, freed := atomic.LoadInt64(&ccallocated), atomic.LoadInt64(&ccfreed)
	t.Logf("ccallocated:%v ccfreed:%v\n", allocd, freed)
	if allocd != freed {
		t.Errorf("expected %v, got %v", allocd, freed)
	}
	if err := heap.Validate(); err != nil {
		t.Error(err)
	} else if x := len(heap.Blocks()); x != 1 {
		t.Errorf("expected %v, got %v", 1, x)
	}
	t.Log(heap.Info())
}

func testallocator(
	heap *Safeheap, n byte, repeat int, chans []chan testalloc,
	wg *sync.WaitGroup) {

	defer wg.Done()

	for i := 0; i < repeat; i++ {
		size := int64(rand.Intn(256)) + 1
		ptr, err := heap.Alloc(size)
		if err == ErrorOutofMemory {
			continue
		} else if err != nil {
			panic(err)
		}
		if x := heap.Chunklen(ptr); x < size {
			panic(fmt.Errorf("expected %v, got %v", size, x))
		}
		block := heap.Bytes(ptr)[:size]
		for j := range block {
			block[j] = n
		}

		msg := testalloc{size: size, n: n, ptr: ptr}
		chans[rand.Intn(len(chans))] <- msg
		atomic.AddInt64(&ccallocated, size)
	}
}

func testfree(heap *Safeheap, ch chan testalloc, wg *sync.WaitGroup) {
	defer wg.Done()

	for msg := range ch {
		for _, c := range heap.Bytes(msg.ptr)[:msg.size] {
			if c != msg.n {
				panic(fmt.Errorf("expected %v, got %v", msg.n, c))
			}
		}
		if err := heap.Free(msg.ptr); err != nil {
			panic(err)
		}
		atomic.AddInt64(&ccfreed, msg.size)
	}
}

func TestConcurPool(t *testing.T) {
	var wg sync.WaitGroup

	nroutines, repeat, nblocks := 8, 10000, int64(64)
	pool, err := NewSafepool("concur", 16, nblocks, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer pool.Release()

	var overflow int64
	wg.Add(nroutines)
	for n := 0; n < nroutines; n++ {
		go func(n byte) {
			defer wg.Done()
			for i := 0; i < repeat; i++ {
				ptr, ok := pool.Alloc()
				if !ok {
					atomic.AddInt64(&overflow, 1)
					continue
				}
				block := pool.Bytes(ptr)
				for j := range block {
					block[j] = n
				}
				for _, c := range pool.Bytes(ptr) {
					if c != n {
						panic(fmt.Errorf("expected %v, got %v", n, c))
					}
				}
				pool.Free(ptr)
			}
		}(byte(n))
	}
	wg.Wait()

	t.Logf("overflow:%v\n", atomic.LoadInt64(&overflow))
	stats := pool.Stats()
	if x := stats["n_chunks"].(int64); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	} else if x := stats["n_available"].(int64); x != nblocks {
		t.Errorf("expected %v, got %v", nblocks, x)
	}
}
