package sqlite

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func openTestStorage(t *testing.T, path string) *Storage {
	t.Helper()
	s, err := Open(context.Background(), path, noop.NewTracerProvider().Tracer("test"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStorage_GetMissing(t *testing.T) {
	s := openTestStorage(t, filepath.Join(t.TempDir(), "shop.db"))

	_, ok, err := s.Get(context.Background(), "cart")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorage_UpsertAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.db")
	ctx := context.Background()

	s := openTestStorage(t, path)
	require.NoError(t, s.Set(ctx, "cart", []byte(`{"tee":1}`)))
	require.NoError(t, s.Set(ctx, "cart", []byte(`{"tee":3}`)))
	require.NoError(t, s.Close())

	reopened := openTestStorage(t, path)
	value, ok, err := reopened.Get(ctx, "cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"tee":3}`, string(value))
}

func TestStorage_KeysAreIndependent(t *testing.T) {
	s := openTestStorage(t, filepath.Join(t.TempDir(), "shop.db"))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "a", []byte("1")))
	require.NoError(t, s.Set(ctx, "b", []byte("2")))

	a, _, err := s.Get(ctx, "a")
	require.NoError(t, err)
	b, _, err := s.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "1", string(a))
	assert.Equal(t, "2", string(b))
}
