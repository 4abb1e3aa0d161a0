package memory

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Storage is an in-memory implementation of domain.Storage
type Storage struct {
	mu     sync.RWMutex
	values map[string][]byte
	tracer trace.Tracer
	logger *slog.Logger
}

// NewStorage creates a new in-memory storage
func NewStorage(tracer trace.Tracer, logger *slog.Logger) *Storage {
	return &Storage{
		values: make(map[string][]byte),
		tracer: tracer,
		logger: logger,
	}
}

// Get retrieves the value stored under key
func (s *Storage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, span := s.tracer.Start(ctx, "MemoryStorage.Get")
	defer span.End()

	span.SetAttributes(attribute.String("storage.key", key))

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, exists := s.values[key]
	if !exists {
		s.logger.DebugContext(ctx, "Key not found in storage",
			slog.String("key", key),
		)
		span.SetStatus(codes.Ok, "Key not found")
		return nil, false, nil
	}

	out := make([]byte, len(value))
	copy(out, value)

	span.SetStatus(codes.Ok, "Key found")
	return out, true, nil
}

// Set replaces the value stored under key
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	ctx, span := s.tracer.Start(ctx, "MemoryStorage.Set")
	defer span.End()

	span.SetAttributes(
		attribute.String("storage.key", key),
		attribute.Int("storage.value_size", len(value)),
	)

	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	s.values[key] = stored
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "Value written to storage",
		slog.String("key", key),
		slog.Int("size", len(value)),
	)

	span.SetStatus(codes.Ok, "Value written")
	return nil
}
