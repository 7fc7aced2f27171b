// Package recordstore reads the persisted patients blob from a key-value
// backend and decodes it into a patient.Collection. Stores are read-only:
// nothing in this package writes records.
package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ehr/dashboard/internal/domain/patient"
)

// Driver names a storage backend.
type Driver string

const (
	DriverFile     Driver = "file"
	DriverMemory   Driver = "memory"
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
	DriverRedis    Driver = "redis"
	DriverS3       Driver = "s3"
)

// DefaultKey is the key the patients blob is stored under.
const DefaultKey = "patients"

// Store loads the full record collection.
type Store interface {
	Driver() Driver
	Load(ctx context.Context) (patient.Collection, error)
}

// Pinger is implemented by stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ErrMalformedBlob is matched by every DecodeError.
var ErrMalformedBlob = errors.New("malformed record blob")

// DecodeError reports a stored value that is not a JSON array of records.
type DecodeError struct {
	Driver Driver
	Key    string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s record blob %q: %v", e.Driver, e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrMalformedBlob }

// Decode parses a stored blob. A missing (nil), blank or JSON null value
// yields an empty collection.
func Decode(driver Driver, key string, blob []byte) (patient.Collection, error) {
	trimmed := bytes.TrimSpace(blob)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return patient.Collection{}, nil
	}
	var records patient.Collection
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, &DecodeError{Driver: driver, Key: key, Err: err}
	}
	if records == nil {
		records = patient.Collection{}
	}
	return records, nil
}

// Close releases the store's resources if it holds any.
func Close(s Store) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
