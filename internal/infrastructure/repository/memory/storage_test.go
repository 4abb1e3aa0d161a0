package memory

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestStorage() *Storage {
	return NewStorage(noop.NewTracerProvider().Tracer("test"), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestStorage_GetMissing(t *testing.T) {
	s := newTestStorage()

	value, ok, err := s.Get(context.Background(), "cart")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestStorage_SetGetOverwrite(t *testing.T) {
	s := newTestStorage()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "cart", []byte(`{"a":1}`)))
	require.NoError(t, s.Set(ctx, "cart", []byte(`{"a":2}`)))

	value, ok, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"a":2}`, string(value))
}

func TestStorage_CopiesValues(t *testing.T) {
	s := newTestStorage()
	ctx := context.Background()

	in := []byte(`{"a":1}`)
	require.NoError(t, s.Set(ctx, "cart", in))
	in[2] = 'z'

	out, _, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	out[2] = 'y'

	again, _, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(again))
}
