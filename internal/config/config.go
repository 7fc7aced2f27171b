package config

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Record store drivers accepted in STORE_DRIVER. Kept in sync with the
// recordstore package, which config must not import.
var storeDrivers = []string{"file", "memory", "postgres", "sqlite", "redis", "s3"}

type Config struct {
	Port        string   `mapstructure:"PORT"`
	Env         string   `mapstructure:"ENV"`
	LogLevel    string   `mapstructure:"LOG_LEVEL"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	StoreDriver string `mapstructure:"STORE_DRIVER"`
	StoreKey    string `mapstructure:"STORE_KEY"`
	StoreFile   string `mapstructure:"STORE_FILE"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32  `mapstructure:"DB_MIN_CONNS"`

	SQLitePath string `mapstructure:"SQLITE_PATH"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	S3Bucket    string `mapstructure:"S3_BUCKET"`
	S3Region    string `mapstructure:"S3_REGION"`
	S3Endpoint  string `mapstructure:"S3_ENDPOINT"`
	S3PathStyle bool   `mapstructure:"S3_PATH_STYLE"`

	AuthSigningKey string `mapstructure:"AUTH_SIGNING_KEY"`
	AuthIssuer     string `mapstructure:"AUTH_ISSUER"`
	AuthAudience   string `mapstructure:"AUTH_AUDIENCE"`

	InsightRulesFile string        `mapstructure:"INSIGHT_RULES_FILE"`
	MetricsEnabled   bool          `mapstructure:"METRICS_ENABLED"`
	RequestTimeout   time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	ReloadRateRPS    float64       `mapstructure:"RELOAD_RATE_RPS"`
	ReloadRateBurst  int           `mapstructure:"RELOAD_RATE_BURST"`
}

var keys = []string{
	"PORT", "ENV", "LOG_LEVEL", "CORS_ORIGINS",
	"STORE_DRIVER", "STORE_KEY", "STORE_FILE",
	"DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS",
	"SQLITE_PATH",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"S3_BUCKET", "S3_REGION", "S3_ENDPOINT", "S3_PATH_STYLE",
	"AUTH_SIGNING_KEY", "AUTH_ISSUER", "AUTH_AUDIENCE",
	"INSIGHT_RULES_FILE", "METRICS_ENABLED", "REQUEST_TIMEOUT",
	"RELOAD_RATE_RPS", "RELOAD_RATE_BURST",
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("STORE_DRIVER", "file")
	v.SetDefault("STORE_KEY", "patients")
	v.SetDefault("STORE_FILE", "./data/patients.json")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 1)
	v.SetDefault("SQLITE_PATH", "./data/dashboard.db")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("RELOAD_RATE_RPS", 1)
	v.SetDefault("RELOAD_RATE_BURST", 5)

	// Bind env vars explicitly so Unmarshal picks them up
	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if origins := v.GetString("CORS_ORIGINS"); len(cfg.CORSOrigins) <= 1 && origins != "" {
		cfg.CORSOrigins = strings.Split(origins, ",")
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))

	if cfg.IsDev() {
		log.Println("WARNING: ENV=development, DevAuthMiddleware grants admin to every request.")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the selected record store has what it needs, that
// JWT validation is configured outside development and that production does
// not allow any origin. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	switch c.StoreDriver {
	case "file":
		if c.StoreFile == "" {
			errs = append(errs, errors.New("STORE_FILE is required when STORE_DRIVER is \"file\""))
		}
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when STORE_DRIVER is \"postgres\""))
		}
	case "sqlite":
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required when STORE_DRIVER is \"sqlite\""))
		}
	case "redis":
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required when STORE_DRIVER is \"redis\""))
		}
	case "s3":
		if c.S3Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET is required when STORE_DRIVER is \"s3\""))
		}
	case "memory":
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be one of %s, got %q",
			strings.Join(storeDrivers, ", "), c.StoreDriver))
	}

	if c.StoreKey == "" {
		errs = append(errs, errors.New("STORE_KEY must not be empty"))
	}
	if !c.IsDev() && c.AuthSigningKey == "" {
		errs = append(errs, fmt.Errorf("AUTH_SIGNING_KEY is required outside development (current ENV=%q)", c.Env))
	}
	if c.IsProduction() && slices.Contains(c.CORSOrigins, "*") {
		errs = append(errs, errors.New("CORS_ORIGINS must list explicit origins in production, not \"*\""))
	}
	if c.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("REQUEST_TIMEOUT must not be negative, got %s", c.RequestTimeout))
	}
	if c.ReloadRateRPS <= 0 || c.ReloadRateBurst <= 0 {
		errs = append(errs, errors.New("RELOAD_RATE_RPS and RELOAD_RATE_BURST must be positive"))
	}

	return errors.Join(errs...)
}
