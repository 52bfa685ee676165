package malloc

import "testing"

import s "github.com/bnclabs/gosettings"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func TestNewArena(t *testing.T) {
	for _, reserver := range []string{"heap", "mmap"} {
		capacity := int64(10 * 1024 * 1024)
		arena, err := NewArena(capacity, s.Settings{"reserver": reserver})
		require.NoError(t, err, reserver)
		assert.Equal(t, capacity, arena.Capacity())
		assert.False(t, arena.Released())

		block := arena.slice(capacity-8, 8)
		copy(block, "lastword")
		assert.Equal(t, []byte("lastword"), arena.data[capacity-8:])

		arena.Release()
		assert.True(t, arena.Released())
		arena.Release()
	}
}

func TestArenaInvalid(t *testing.T) {
	_, err := NewArena(0, nil)
	assert.Equal(t, ErrorInvalidArgument, err)
	_, err = NewArena(-1, nil)
	assert.Equal(t, ErrorInvalidArgument, err)
	_, err = NewArena(Maxarenasize+1, nil)
	assert.Equal(t, ErrorOutofMemory, err)

	// larger than free memory, but within Maxarenasize.
	_, _, free := getsysmem()
	if free > 0 && free < uint64(Maxarenasize) {
		_, err = NewArena(int64(free)+1024*1024, s.Settings{"checkmem": true})
		assert.Equal(t, ErrorOutofMemory, err)
	}

	assert.Panics(t, func() {
		NewArena(1024, s.Settings{"reserver": "sbrk"})
	})
}

func TestSysmem(t *testing.T) {
	total, used, free := getsysmem()
	if total == 0 {
		t.Skip("system memory not available")
	}
	assert.True(t, used <= total)
	assert.True(t, free <= total)
}
