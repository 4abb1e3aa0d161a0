package file

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestStorage(t *testing.T, dir string) *Storage {
	t.Helper()
	s, err := NewStorage(dir, noop.NewTracerProvider().Tracer("test"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return s
}

func TestStorage_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "shop")
	newTestStorage(t, dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStorage_GetMissing(t *testing.T) {
	s := newTestStorage(t, t.TempDir())

	_, ok, err := s.Get(context.Background(), "simple_shop_cart_v1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorage_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	require.NoError(t, newTestStorage(t, dir).Set(ctx, "simple_shop_cart_v1", []byte(`{"tee":2}`)))

	value, ok, err := newTestStorage(t, dir).Get(ctx, "simple_shop_cart_v1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"tee":2}`, string(value))
}

func TestStorage_EscapesKeys(t *testing.T) {
	dir := t.TempDir()
	s := newTestStorage(t, dir)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "../escape/attempt", []byte("x")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].IsDir())

	value, ok, err := s.Get(ctx, "../escape/attempt")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", string(value))
}

func TestStorage_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := newTestStorage(t, dir)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Set(ctx, "cart", []byte("{}")))
	}

	matches, err := filepath.Glob(filepath.Join(dir, ".tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}
