package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/riggen/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResultStoreContract runs a suite of tests to verify that a ResultStore implementation
// adheres to the defined interface contract.
func RunResultStoreContract(t *testing.T, store ResultStore) {
	ctx := context.Background()
	name := "contract-test-" + time.Now().Format("20060102150405")

	sample := domain.OutputSequence{
		{
			Pose:      domain.RigResult{"Spine": map[string]any{"x": 0.5, "y": 0.0, "z": 0.0}},
			HandLeft:  domain.RigResult{"LeftWrist": map[string]any{"x": 0.1, "y": 0.2, "z": 0.3}},
			HandRight: nil,
		},
		{
			Pose:      domain.RigResult{"Spine": map[string]any{"x": 0.25, "y": 0.0, "z": 0.0}},
			HandLeft:  nil,
			HandRight: domain.RigResult{"RightWrist": map[string]any{"x": 1.0, "y": 0.0, "z": 0.0}},
		},
	}

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, name, sample)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		require.Len(t, loaded, len(sample))
		assert.Equal(t, sample[0].Pose, loaded[0].Pose)
		assert.Nil(t, loaded[0].HandRight)
		assert.Equal(t, sample[1].HandRight, loaded[1].HandRight)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, sample[:1]))
		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Len(t, loaded, 1)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrResultNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, sample))

		err := store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrResultNotFound, "Load after Delete should return ErrResultNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Delete should be idempotent")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		_ = store.Save(ctx, id1, sample)
		_ = store.Save(ctx, id2, sample)

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
	})
}
