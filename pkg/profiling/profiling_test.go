package profiling

import (
	"testing"

	"github.com/grafana/pyroscope-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProfileTypes(t *testing.T) {
	t.Run("empty means everything", func(t *testing.T) {
		types, err := resolveProfileTypes(nil)
		require.NoError(t, err)
		assert.Equal(t, allProfileTypes, types)
	})

	t.Run("named subset", func(t *testing.T) {
		types, err := resolveProfileTypes([]string{"cpu", "mutex"})
		require.NoError(t, err)
		assert.Equal(t, []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileMutexCount,
			pyroscope.ProfileMutexDuration,
		}, types)
	})

	t.Run("case and whitespace tolerated", func(t *testing.T) {
		types, err := resolveProfileTypes([]string{" CPU ", "cpu"})
		require.NoError(t, err)
		assert.Equal(t, []pyroscope.ProfileType{pyroscope.ProfileCPU}, types)
	})

	t.Run("unknown name rejected", func(t *testing.T) {
		_, err := resolveProfileTypes([]string{"heap_bytes"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "heap_bytes")
	})
}

func TestStart_RequiresEndpoint(t *testing.T) {
	_, err := Start(Options{})
	require.Error(t, err)
}
