package main

import "os"
import "fmt"
import "flag"

import s "github.com/bnclabs/gosettings"
import "github.com/bnclabs/golog"
import "github.com/bnclabs/gomalloc/malloc"

var options struct {
	capacity int64
	reserver string
	humanize bool
	json     bool
	trace    string
	loglevel string
}

func argParse() {
	flag.Int64Var(&options.capacity, "capacity", 10*1024,
		"arena capacity in bytes, including block headers")
	flag.StringVar(&options.reserver, "reserver", "heap",
		"reserve arena from \"heap\" or \"mmap\"")
	flag.BoolVar(&options.humanize, "humanize", false,
		"log byte quantities in human readable form")
	flag.BoolVar(&options.json, "json", false,
		"print statistics as indented JSON")
	flag.StringVar(&options.trace, "trace", "",
		"replay allocation trace from file, instead of demo scenarios")
	flag.StringVar(&options.loglevel, "loglevel", "info",
		"log level: ignore, fatal, error, warn, info, verbose, debug, trace")
	flag.Parse()
}

func main() {
	argParse()

	logsetts := map[string]interface{}{
		"log.level":      options.loglevel,
		"log.colorfatal": "red",
		"log.colorerror": "hired",
		"log.colorwarn":  "yellow",
	}
	log.SetLogger(nil, logsetts)
	malloc.LogComponents("all")

	setts := s.Settings{
		"capacity": options.capacity,
		"reserver": options.reserver,
	}
	if options.trace != "" {
		if err := dotrace(options.trace, setts); err != nil {
			fmt.Printf("trace %q: %v\n", options.trace, err)
			os.Exit(1)
		}
		return
	}
	for _, scenario := range scenarios {
		fmt.Printf("=== %v\n", scenario.name)
		if err := scenario.run(setts); err != nil {
			fmt.Printf("%v: %v\n", scenario.name, err)
			os.Exit(1)
		}
		fmt.Println()
	}
}

func dotrace(filename string, setts s.Settings) error {
	ops, err := loadtrace(filename)
	if err != nil {
		return err
	}
	heap, err := malloc.NewHeap("trace", setts)
	if err != nil {
		return err
	}
	defer heap.Release()

	rs, err := replay(heap, ops)
	if err != nil {
		return err
	}
	fmt.Printf("replayed %v ops, %v failed allocations, %v live chunks\n",
		rs.nops, rs.nfailed, rs.nlive)
	printstats(heap)
	return heap.Validate()
}
