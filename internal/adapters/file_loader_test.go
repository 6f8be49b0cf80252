package adapters_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/riggen/internal/adapters"
	"github.com/aretw0/riggen/pkg/domain"
	"github.com/aretw0/riggen/pkg/ports"
	"github.com/aretw0/riggen/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.SequenceLoader = (*adapters.FileLoader)(nil)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestFileLoader_Contract(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pose3d.json", `[[{"x":0.1,"y":0.2,"z":0.3,"visibility":0.9}],[]]`)
	writeFile(t, dir, "hand_left3d.json", `[[{"x":1,"y":2,"z":3}]]`)

	loader := adapters.NewFileLoader(dir)
	tests.SequenceLoaderContractTest(t, loader, map[string]domain.Sequence{
		"pose3d.json": {
			{{X: 0.1, Y: 0.2, Z: 0.3}},
			{},
		},
		"hand_left3d.json": {
			{{X: 1, Y: 2, Z: 3}},
		},
	})
}

func TestFileLoader_Load(t *testing.T) {
	dir := t.TempDir()
	loader := adapters.NewFileLoader(dir)
	ctx := context.Background()

	t.Run("Visibility and empty frames", func(t *testing.T) {
		writeFile(t, dir, "seq.json", `[[{"x":0,"y":0,"z":0,"visibility":0.5}],[],null]`)

		seq, err := loader.Load(ctx, "seq.json")
		require.NoError(t, err)
		require.Len(t, seq, 3)
		require.NotNil(t, seq[0][0].Visibility)
		assert.Equal(t, 0.5, *seq[0][0].Visibility)
		assert.False(t, seq[1].Detected())
		assert.False(t, seq[2].Detected())
	})

	t.Run("Malformed JSON names the file", func(t *testing.T) {
		writeFile(t, dir, "bad.json", `[[{"x":`)

		_, err := loader.Load(ctx, "bad.json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad.json")
		assert.NotErrorIs(t, err, domain.ErrInputNotFound)
	})

	t.Run("Wrong shape", func(t *testing.T) {
		writeFile(t, dir, "obj.json", `{"x":1}`)

		_, err := loader.Load(ctx, "obj.json")
		assert.Error(t, err)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := loader.Load(ctx, "nope.json")
		assert.ErrorIs(t, err, domain.ErrInputNotFound)
		assert.Contains(t, err.Error(), "nope.json")
	})

	t.Run("Canceled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := loader.Load(cctx, "seq.json")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
