package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dshills/embedcache/pkg/types"
)

// SQLiteStore implements the Store interface using a SQLite database file.
// Multiple handles opened on the same path share one durable namespace.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode so concurrent readers don't block the writer
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return db, nil
}

// NewSQLiteStore opens (creating if needed) the store at dbPath and applies
// any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("store path cannot be empty")
	}

	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStore{db: db, path: dbPath}, nil
}

// Path returns the database path this store was opened with.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Contains reports whether an entry exists for key.
func (s *SQLiteStore) Contains(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}

	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM embeddings WHERE key = ?", key).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to probe key: %w", err)
	}
	return true, nil
}

// Get returns the vector stored for key, or ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]float32, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	var blob []byte
	err := s.db.QueryRowContext(ctx, "SELECT vector FROM embeddings WHERE key = ?", key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read entry: %w", err)
	}
	return DeserializeVector(blob), nil
}

// Set stores vector under key, overwriting any existing entry
// (write-through, last-writer-wins).
func (s *SQLiteStore) Set(ctx context.Context, key string, vector []float32) error {
	if key == "" {
		return ErrEmptyKey
	}
	if len(vector) == 0 {
		return types.ErrEmptyVector
	}

	query := `
		INSERT INTO embeddings (key, vector, dimension, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			vector = excluded.vector,
			dimension = excluded.dimension,
			updated_at = excluded.updated_at
	`
	now := time.Now()
	if _, err := s.db.ExecContext(ctx, query, key, SerializeVector(vector), len(vector), now, now); err != nil {
		return fmt.Errorf("failed to write entry: %w", err)
	}
	return nil
}

// Keys returns all stored keys in insertion order.
func (s *SQLiteStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key FROM embeddings ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Len returns the number of stored entries.
func (s *SQLiteStore) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM embeddings").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return n, nil
}

// GetEntry returns the full entry for key including metadata, or ErrNotFound.
func (s *SQLiteStore) GetEntry(ctx context.Context, key string) (*Entry, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	query := `
		SELECT key, vector, dimension, created_at, updated_at
		FROM embeddings
		WHERE key = ?
	`
	var entry Entry
	var blob []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(
		&entry.Key, &blob, &entry.Dimension, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read entry: %w", err)
	}
	entry.Vector = DeserializeVector(blob)
	return &entry, nil
}
