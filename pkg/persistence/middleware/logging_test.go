package middleware_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/riggen/pkg/adapters/memory"
	"github.com/aretw0/riggen/pkg/domain"
	"github.com/aretw0/riggen/pkg/persistence/middleware"
	"github.com/aretw0/riggen/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMiddleware_Contract(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	store := middleware.Chain(memory.NewStore(), middleware.NewLoggingMiddleware(logger))
	ports.RunResultStoreContract(t, store)
}

func TestLoggingMiddleware_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	store := middleware.NewLoggingMiddleware(logger)(memory.NewStore())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "clip", domain.OutputSequence{{}, {}}))
	_, err := store.Load(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrResultNotFound)

	out := buf.String()
	assert.Contains(t, out, "op=save")
	assert.Contains(t, out, "frames=2")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "op=load")
}

func TestChain_Order(t *testing.T) {
	var calls []string
	tag := func(name string) middleware.Middleware {
		return func(next ports.ResultStore) ports.ResultStore {
			return recordingStore{ResultStore: next, name: name, calls: &calls}
		}
	}

	store := middleware.Chain(memory.NewStore(), tag("outer"), tag("inner"))
	require.NoError(t, store.Save(context.Background(), "x", nil))
	assert.Equal(t, []string{"outer", "inner"}, calls)
}

type recordingStore struct {
	ports.ResultStore
	name  string
	calls *[]string
}

func (s recordingStore) Save(ctx context.Context, name string, seq domain.OutputSequence) error {
	*s.calls = append(*s.calls, s.name)
	return s.ResultStore.Save(ctx, name, seq)
}
