package traverse

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequentialVisitsAllInOrder(t *testing.T) {
	var got []int
	Run(Sequential, Slice([]int{3, 1, 2}), func(i, v int) bool {
		got = append(got, v)
		return false
	})
	assert.Equal(t, []int{3, 1, 2}, got, "sequential ignores the stop signal")
}

func TestBreakableStops(t *testing.T) {
	var got []int
	Run(Breakable, Slice([]int{1, 2, 3, 4}), func(i, v int) bool {
		got = append(got, v)
		return v < 2
	})
	assert.Equal(t, []int{1, 2}, got)
}

func TestParallelMatchesSequentialSum(t *testing.T) {
	values := make([]int, 1000)
	for i := range values {
		values[i] = i
	}
	var seq int
	Run(Sequential, Slice(values), func(_, v int) bool { seq += v; return true })

	var par atomic.Int64
	Run(Parallel, Slice(values), func(_, v int) bool { par.Add(int64(v)); return true })
	assert.Equal(t, int64(seq), par.Load())

	var mu sync.Mutex
	seen := map[int]bool{}
	Run(Parallel, Slice(values), func(i, _ int) bool {
		mu.Lock()
		seen[i] = true
		mu.Unlock()
		return false
	})
	assert.Len(t, seen, len(values))
}

func TestParsePolicy(t *testing.T) {
	for _, p := range []Policy{Sequential, Breakable, Parallel} {
		got, err := ParsePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParsePolicy("random")
	assert.Error(t, err)
}
