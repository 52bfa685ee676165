package main

import "os"
import "testing"
import "path/filepath"

import s "github.com/bnclabs/gosettings"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

import "github.com/bnclabs/gomalloc/malloc"

var testtrace = `# sample trace
alloc a 100
alloc b 200
alloc c 150

free b
realloc a 400
calloc d 10 4
realloc e 64
alloc big 1000000
free c
`

func TestParsetrace(t *testing.T) {
	ops, err := parsetrace([]byte(testtrace))
	require.NoError(t, err)
	require.Equal(t, 9, len(ops))
	assert.Equal(t, traceop{lineno: 2, op: "alloc", id: "a", args: []int64{100}}, ops[0])
	assert.Equal(t, traceop{lineno: 6, op: "free", id: "b"}, ops[3])
	assert.Equal(t, []int64{10, 4}, ops[5].args)

	_, err = parsetrace([]byte("malloc a 10\n"))
	assert.Error(t, err)
	_, err = parsetrace([]byte("alloc a\n"))
	assert.Error(t, err)
	_, err = parsetrace([]byte("calloc a 10 x\n"))
	assert.Error(t, err)
}

func TestReplay(t *testing.T) {
	heap, err := malloc.NewHeap("trace", s.Settings{"capacity": int64(10240)})
	require.NoError(t, err)
	defer heap.Release()

	ops, err := parsetrace([]byte(testtrace))
	require.NoError(t, err)
	rs, err := replay(heap, ops)
	require.NoError(t, err)
	assert.Equal(t, int64(9), rs.nops)
	assert.Equal(t, int64(1), rs.nfailed)
	assert.Equal(t, int64(3), rs.nlive) // a, d, e
	require.NoError(t, heap.Validate())

	stats := heap.Stats()
	assert.Equal(t, int64(400+40+64), stats["allocated"].(int64))
}

func TestReplayErrors(t *testing.T) {
	heap, err := malloc.NewHeap("trace", s.Settings{"capacity": int64(10240)})
	require.NoError(t, err)
	defer heap.Release()

	ops, err := parsetrace([]byte("free x\n"))
	require.NoError(t, err)
	_, err = replay(heap, ops)
	assert.Error(t, err)

	ops, err = parsetrace([]byte("alloc x 10\nalloc x 10\n"))
	require.NoError(t, err)
	_, err = replay(heap, ops)
	assert.Error(t, err)
}

func TestLoadtrace(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "sample.trace")
	require.NoError(t, os.WriteFile(filename, []byte(testtrace), 0644))

	ops, err := loadtrace(filename)
	require.NoError(t, err)
	assert.Equal(t, 9, len(ops))

	_, err = loadtrace(filepath.Join(t.TempDir(), "missing.trace"))
	assert.Error(t, err)
}
