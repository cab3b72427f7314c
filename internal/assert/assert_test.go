package assert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUsage(t *testing.T) {
	require.NotPanics(t, func() { Usage(true, "never") })
	defer func() {
		r := recover()
		ce, ok := r.(*ContractError)
		require.True(t, ok, "panic value %T", r)
		require.Equal(t, "usage", ce.Tier)
		require.Equal(t, "vertex 4 does not exist", ce.Message)
	}()
	Usage(false, "vertex %d does not exist", 4)
}

func TestEssentialFollowsBuildTag(t *testing.T) {
	if debug {
		require.Panics(t, func() { Essential(false, "broken") })
		return
	}
	require.NotPanics(t, func() { Essential(false, "broken") })
}
