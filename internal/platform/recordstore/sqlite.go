package recordstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/ehr/dashboard/internal/domain/patient"
)

// SQLite reads the blob from a single-table key-value database:
// state(bucket TEXT PRIMARY KEY, payload BLOB).
type SQLite struct {
	db  *sql.DB
	key string
}

// NewSQLite opens (creating if needed) the database at path.
func NewSQLite(path, key string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite store: path required")
	}
	if key == "" {
		key = DefaultKey
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &SQLite{db: db, key: key}, nil
}

func (s *SQLite) Driver() Driver { return DriverSQLite }

func (s *SQLite) Load(ctx context.Context) (patient.Collection, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE bucket = ?`, s.key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return patient.Collection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select state %q: %w", s.key, err)
	}
	return Decode(DriverSQLite, s.key, blob)
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
