package main

import "os"
import "fmt"
import "encoding/binary"

import s "github.com/bnclabs/gosettings"
import hm "github.com/dustin/go-humanize"
import "github.com/bnclabs/gomalloc/api"
import "github.com/bnclabs/gomalloc/lib"
import "github.com/bnclabs/gomalloc/malloc"

type scenario struct {
	name string
	run  func(setts s.Settings) error
}

var scenarios = []scenario{
	{"basic", basicscenario},
	{"realloc", reallocscenario},
	{"calloc", callocscenario},
	{"fragmentation", fragscenario},
	{"pool", poolscenario},
}

func basicscenario(setts s.Settings) error {
	heap, err := malloc.NewHeap("basic", setts)
	if err != nil {
		return err
	}
	defer heap.Release()

	ptrs := make([]api.Ptr, 0)
	for _, n := range []int64{100, 200, 150} {
		ptr, err := heap.Alloc(n)
		if err != nil {
			return err
		}
		fmt.Printf("alloc(%v) -> %#x\n", n, ptr)
		ptrs = append(ptrs, ptr)
	}
	printstats(heap)
	heap.Dump(os.Stdout)

	if err := heap.Free(ptrs[1]); err != nil {
		return err
	}
	fmt.Printf("free(%#x)\n", ptrs[1])
	ptr, err := heap.Alloc(180)
	if err != nil {
		return err
	}
	fmt.Printf("alloc(180) -> %#x\n", ptr)
	heap.Dump(os.Stdout)
	return heap.Validate()
}

func reallocscenario(setts s.Settings) error {
	heap, err := malloc.NewHeap("realloc", setts)
	if err != nil {
		return err
	}
	defer heap.Release()

	ptr, err := heap.Alloc(50)
	if err != nil {
		return err
	}
	msg := "Hello, World!"
	copy(heap.Bytes(ptr), msg)
	fmt.Printf("alloc(50) -> %#x %q\n", ptr, heap.Bytes(ptr)[:len(msg)])

	if ptr, err = heap.Realloc(ptr, 100); err != nil {
		return err
	}
	fmt.Printf("realloc(100) -> %#x %q\n", ptr, heap.Bytes(ptr)[:len(msg)])
	heap.Dump(os.Stdout)
	return heap.Validate()
}

func callocscenario(setts s.Settings) error {
	heap, err := malloc.NewHeap("calloc", setts)
	if err != nil {
		return err
	}
	defer heap.Release()

	ptr, err := heap.Calloc(10, 4)
	if err != nil {
		return err
	}
	block, ints := heap.Bytes(ptr), make([]uint32, 10)
	for i := range ints {
		ints[i] = binary.LittleEndian.Uint32(block[i*4:])
	}
	fmt.Printf("calloc(10, 4) -> %#x %v\n", ptr, ints)
	return heap.Validate()
}

func fragscenario(setts s.Settings) error {
	heap, err := malloc.NewHeap("fragmentation", setts)
	if err != nil {
		return err
	}
	defer heap.Release()

	ptrs := make([]api.Ptr, 0, 20)
	for i := 0; i < 20; i++ {
		ptr, err := heap.Alloc(100)
		if err == malloc.ErrorOutofMemory {
			break
		} else if err != nil {
			return err
		}
		ptrs = append(ptrs, ptr)
	}
	for i := 0; i < len(ptrs); i += 2 {
		if err := heap.Free(ptrs[i]); err != nil {
			return err
		}
	}
	fmt.Printf("allocated %v chunks, freed every other chunk\n", len(ptrs))
	printstats(heap)
	return heap.Validate()
}

func poolscenario(setts s.Settings) error {
	pool, err := malloc.NewPool("ints", 4, 100, setts)
	if err != nil {
		return err
	}
	defer pool.Release()

	ptrs := make([]api.Ptr, 0, 50)
	for i := 0; i < 50; i++ {
		ptr, ok := pool.Alloc()
		if !ok {
			return malloc.ErrorOutofMemory
		}
		binary.LittleEndian.PutUint32(pool.Bytes(ptr), uint32(i))
		ptrs = append(ptrs, ptr)
	}
	fmt.Printf("allocated %v chunks of %v bytes\n", len(ptrs), pool.Chunksize())
	for _, ptr := range ptrs[:25] {
		pool.Free(ptr)
	}
	fmt.Printf("freed 25, allocated:%v available:%v\n",
		pool.Allocated(), pool.Available())
	if options.json {
		fmt.Println(lib.Prettystats(pool.Stats(), true))
	}
	pool.Log(options.humanize)
	return nil
}

func printstats(heap *malloc.Heap) {
	stats := heap.Stats()
	if options.json {
		fmt.Println(lib.Prettystats(stats, true))
		heap.Log(options.humanize)
		return
	}
	bytes := func(key string) interface{} {
		if options.humanize {
			return hm.Bytes(uint64(stats[key].(int64)))
		}
		return stats[key]
	}
	fmsg := "capacity:%v allocated:%v available:%v overhead:%v\n"
	fmt.Printf(fmsg, bytes("capacity"), bytes("allocated"),
		bytes("available"), bytes("overhead"))
	fmsg = "blocks:%v allocs:%v frees:%v fragmentation:%.2f%% largestfree:%v\n"
	fmt.Printf(fmsg, stats["n_blocks"], stats["n_allocs"], stats["n_frees"],
		stats["fragmentation"], bytes("largestfree"))
	heap.Log(options.humanize)
}
