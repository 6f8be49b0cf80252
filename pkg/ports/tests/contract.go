package tests

import (
	"context"
	"testing"

	"github.com/aretw0/riggen/pkg/domain"
	"github.com/aretw0/riggen/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SequenceLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.SequenceLoader.
// setupData maps each source the loader knows about to the sequence it must return.
func SequenceLoaderContractTest(t *testing.T, loader ports.SequenceLoader, setupData map[string]domain.Sequence) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load_Success", func(t *testing.T) {
		for source, expected := range setupData {
			seq, err := loader.Load(ctx, source)
			require.NoError(t, err, "unexpected error loading %s", source)
			require.Len(t, seq, len(expected), "frame count mismatch for %s", source)
			for i := range expected {
				assert.Equal(t, len(expected[i]), len(seq[i]), "landmark count mismatch for %s frame %d", source, i)
				for j := range expected[i] {
					assert.Equal(t, expected[i][j].X, seq[i][j].X)
					assert.Equal(t, expected[i][j].Y, seq[i][j].Y)
					assert.Equal(t, expected[i][j].Z, seq[i][j].Z)
				}
			}
		}
	})

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := loader.Load(ctx, "non-existent-source")
		assert.ErrorIs(t, err, domain.ErrInputNotFound)
	})
}
