package recordstore

import (
	"context"
	"fmt"

	"github.com/ehr/dashboard/internal/domain/patient"
	"github.com/ehr/dashboard/internal/platform/db"
)

// Options configures Open. Only the fields of the selected driver are read.
type Options struct {
	Driver Driver
	Key    string

	FilePath string

	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	SQLitePath string

	Redis RedisConfig
	S3    S3Config

	// Seed is served by the memory driver.
	Seed patient.Collection
}

// Open constructs the store selected by opts.Driver (default file).
func Open(ctx context.Context, opts Options) (Store, error) {
	key := opts.Key
	if key == "" {
		key = DefaultKey
	}

	switch opts.Driver {
	case DriverFile, "":
		s, err := NewFile(opts.FilePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverMemory:
		return NewMemory(opts.Seed...), nil
	case DriverPostgres:
		if opts.DatabaseURL == "" {
			return nil, fmt.Errorf("postgres store: database url required")
		}
		pool, err := db.NewPool(ctx, opts.DatabaseURL, opts.DBMaxConns, opts.DBMinConns)
		if err != nil {
			return nil, err
		}
		return NewPostgres(pool, key), nil
	case DriverSQLite:
		s, err := NewSQLite(opts.SQLitePath, key)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverRedis:
		s, err := NewRedis(ctx, opts.Redis, key)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverS3:
		s, err := NewS3(ctx, opts.S3, key)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown record store driver %q", opts.Driver)
	}
}
