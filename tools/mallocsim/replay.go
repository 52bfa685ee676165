package main

import "fmt"
import "bytes"
import "bufio"
import "strings"
import "strconv"

import "golang.org/x/exp/mmap"
import "github.com/bnclabs/gomalloc/api"
import "github.com/bnclabs/gomalloc/malloc"

// traceop is a single line from trace file, `args` are the numeric
// arguments following the chunk id.
type traceop struct {
	lineno int
	op     string
	id     string
	args   []int64
}

var opargs = map[string]int{"alloc": 1, "free": 0, "realloc": 1, "calloc": 2}

type replaystats struct {
	nops    int64
	nfailed int64
	nlive   int64
}

// loadtrace read trace file through a read-only mapping.
func loadtrace(filename string) ([]traceop, error) {
	r, err := mmap.Open(filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data := make([]byte, r.Len())
	if _, err := r.ReadAt(data, 0); err != nil {
		return nil, err
	}
	return parsetrace(data)
}

// parsetrace skips empty lines and lines starting with '#'.
func parsetrace(data []byte) ([]traceop, error) {
	ops := make([]traceop, 0)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for lineno := 1; scanner.Scan(); lineno++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		nargs, ok := opargs[fields[0]]
		if !ok {
			return nil, fmt.Errorf("line %v: unknown op %q", lineno, fields[0])
		} else if len(fields) != nargs+2 {
			fmsg := "line %v: %v expects %v arguments"
			return nil, fmt.Errorf(fmsg, lineno, fields[0], nargs+1)
		}
		op := traceop{lineno: lineno, op: fields[0], id: fields[1]}
		for _, field := range fields[2:] {
			arg, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %v: %v", lineno, err)
			}
			op.args = append(op.args, arg)
		}
		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ops, nil
}

// replay ops on heap, allocation failures are counted and the trace
// continues, any other error stops the replay.
func replay(heap api.Mallocer, ops []traceop) (rs replaystats, err error) {
	ptrs := make(map[string]api.Ptr)
	for _, op := range ops {
		var ptr api.Ptr

		old, live := ptrs[op.id]
		switch op.op {
		case "alloc", "calloc":
			if live {
				return rs, fmt.Errorf("line %v: %q already live", op.lineno, op.id)
			}
			if op.op == "alloc" {
				ptr, err = heap.Alloc(op.args[0])
			} else {
				ptr, err = heap.Calloc(op.args[0], op.args[1])
			}

		case "realloc":
			if !live {
				old = api.Nilptr
			}
			ptr, err = heap.Realloc(old, op.args[0])

		case "free":
			if !live {
				return rs, fmt.Errorf("line %v: unknown id %q", op.lineno, op.id)
			}
			err = heap.Free(old)
		}
		rs.nops++

		if err == malloc.ErrorOutofMemory {
			rs.nfailed++
			continue
		} else if err != nil {
			return rs, fmt.Errorf("line %v: %v", op.lineno, err)
		}
		if ptr == api.Nilptr {
			delete(ptrs, op.id)
		} else {
			ptrs[op.id] = ptr
		}
	}
	rs.nlive = int64(len(ptrs))
	return rs, nil
}
