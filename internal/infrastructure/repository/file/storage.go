// Package file persists storage keys as individual files in a directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Storage keeps one file per key under dir. Writes go through a temp file
// and rename so a reader never sees a partial blob.
type Storage struct {
	dir    string
	tracer trace.Tracer
	logger *slog.Logger
}

// NewStorage creates dir if needed and returns a storage rooted there
func NewStorage(dir string, tracer trace.Tracer, logger *slog.Logger) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &Storage{dir: dir, tracer: tracer, logger: logger}, nil
}

// path escapes key so arbitrary keys map to a single file name
func (s *Storage) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+".json")
}

// Get reads the file for key
func (s *Storage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, span := s.tracer.Start(ctx, "FileStorage.Get")
	defer span.End()

	path := s.path(key)
	span.SetAttributes(
		attribute.String("storage.key", key),
		attribute.String("storage.path", path),
	)

	value, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		span.SetStatus(codes.Ok, "Key not found")
		return nil, false, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to read key")
		s.logger.ErrorContext(ctx, "Failed to read storage file",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	span.SetStatus(codes.Ok, "Key found")
	return value, true, nil
}

// Set atomically replaces the file for key
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	ctx, span := s.tracer.Start(ctx, "FileStorage.Set")
	defer span.End()

	path := s.path(key)
	span.SetAttributes(
		attribute.String("storage.key", key),
		attribute.Int("storage.value_size", len(value)),
	)

	if err := writeAtomic(path, value); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to write key")
		s.logger.ErrorContext(ctx, "Failed to write storage file",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	s.logger.DebugContext(ctx, "Value written to storage",
		slog.String("path", path),
		slog.Int("size", len(value)),
	)

	span.SetStatus(codes.Ok, "Value written")
	return nil
}

func writeAtomic(path string, value []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
