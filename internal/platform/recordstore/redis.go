package recordstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ehr/dashboard/internal/domain/patient"
)

// RedisConfig selects the Redis instance holding the blob.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Redis reads the blob with GET <key>.
type Redis struct {
	rdb *goredis.Client
	key string
}

// NewRedis connects and pings the server before returning.
func NewRedis(ctx context.Context, cfg RedisConfig, key string) (*Redis, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis store: addr required")
	}
	if key == "" {
		key = DefaultKey
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Redis{rdb: rdb, key: key}, nil
}

func (r *Redis) Driver() Driver { return DriverRedis }

func (r *Redis) Load(ctx context.Context) (patient.Collection, error) {
	blob, err := r.rdb.Get(ctx, r.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return patient.Collection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", r.key, err)
	}
	return Decode(DriverRedis, r.key, blob)
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
