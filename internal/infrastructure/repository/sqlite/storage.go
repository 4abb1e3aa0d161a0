// Package sqlite persists storage keys in a single-table SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// Storage is a domain.Storage backed by SQLite
type Storage struct {
	db     *sql.DB
	tracer trace.Tracer
	logger *slog.Logger
}

// Open opens (or creates) the database at path and ensures the schema
func Open(ctx context.Context, path string, tracer trace.Tracer, logger *slog.Logger) (*Storage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One connection keeps writes serialized and :memory: databases shared.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	logger.Debug("SQLite storage opened", slog.String("path", path))

	return &Storage{db: db, tracer: tracer, logger: logger}, nil
}

// Close releases the database handle
func (s *Storage) Close() error {
	return s.db.Close()
}

// Get retrieves the value stored under key
func (s *Storage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, span := s.tracer.Start(ctx, "SQLiteStorage.Get")
	defer span.End()

	span.SetAttributes(attribute.String("storage.key", key))

	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Ok, "Key not found")
		return nil, false, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to read key")
		s.logger.ErrorContext(ctx, "Failed to read key",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	span.SetStatus(codes.Ok, "Key found")
	return value, true, nil
}

// Set upserts the value stored under key
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	ctx, span := s.tracer.Start(ctx, "SQLiteStorage.Set")
	defer span.End()

	span.SetAttributes(
		attribute.String("storage.key", key),
		attribute.Int("storage.value_size", len(value)),
	)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to write key")
		s.logger.ErrorContext(ctx, "Failed to write key",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	span.SetStatus(codes.Ok, "Value written")
	return nil
}
