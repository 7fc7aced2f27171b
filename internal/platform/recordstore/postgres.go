package recordstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ehr/dashboard/internal/domain/patient"
	"github.com/ehr/dashboard/internal/platform/db"
)

// Postgres reads the blob from the record_store table created by
// migrations/001_record_store.sql.
type Postgres struct {
	pool *pgxpool.Pool
	key  string
}

func NewPostgres(pool *pgxpool.Pool, key string) *Postgres {
	if key == "" {
		key = DefaultKey
	}
	return &Postgres{pool: pool, key: key}
}

func (p *Postgres) Driver() Driver { return DriverPostgres }

func (p *Postgres) Load(ctx context.Context) (patient.Collection, error) {
	var blob []byte
	err := p.pool.QueryRow(ctx, `SELECT value FROM record_store WHERE key = $1`, p.key).Scan(&blob)
	if errors.Is(err, pgx.ErrNoRows) {
		return patient.Collection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select record blob %q: %w", p.key, err)
	}
	return Decode(DriverPostgres, p.key, blob)
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func (p *Postgres) PoolStats() *db.PoolStats {
	return db.GetPoolStats(p.pool)
}
