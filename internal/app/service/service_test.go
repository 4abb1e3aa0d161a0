package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/mrops-br/simple-shop/internal/domain"
	"github.com/mrops-br/simple-shop/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace/noop"
)

const testKey = "simple_shop_cart_v1"

var (
	testTracer = noop.NewTracerProvider().Tracer("test")
	testMeter  = metricnoop.NewMeterProvider().Meter("test")
	testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

func testSettings(t *testing.T) domain.Settings {
	t.Helper()
	catalog, err := domain.NewCatalog([]domain.Product{
		{ID: "tee", Name: "Tee", Price: 2500},
		{ID: "mug", Name: "Mug", Price: 1200},
		{ID: "pen", Name: "Pen", Price: 300},
	})
	require.NoError(t, err)
	return domain.Settings{StorageKey: testKey, Catalog: catalog}
}

func newMemoryStorage() *memory.Storage {
	return memory.NewStorage(testTracer, testLogger)
}

// failingStorage fails every write and optionally every read.
type failingStorage struct {
	readErr error
}

func (f *failingStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.readErr != nil {
		return nil, false, f.readErr
	}
	return nil, false, nil
}

func (f *failingStorage) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("disk full")
}

// fakeGateway records calls and returns a canned result.
type fakeGateway struct {
	mu     sync.Mutex
	calls  [][]domain.CheckoutItem
	result domain.CheckoutResult
}

func (g *fakeGateway) CreateSession(ctx context.Context, items []domain.CheckoutItem) domain.CheckoutResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, items)
	return g.result
}

func (g *fakeGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}
