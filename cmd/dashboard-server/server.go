package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/ehr/dashboard/internal/config"
	"github.com/ehr/dashboard/internal/domain/dashboard"
	"github.com/ehr/dashboard/internal/platform/auth"
	"github.com/ehr/dashboard/internal/platform/db"
	"github.com/ehr/dashboard/internal/platform/metrics"
	"github.com/ehr/dashboard/internal/platform/middleware"
	"github.com/ehr/dashboard/internal/platform/recordstore"
)

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return logger.Level(level)
}

func storeOptions(cfg *config.Config) recordstore.Options {
	return recordstore.Options{
		Driver:      recordstore.Driver(cfg.StoreDriver),
		Key:         cfg.StoreKey,
		FilePath:    cfg.StoreFile,
		DatabaseURL: cfg.DatabaseURL,
		DBMaxConns:  cfg.DBMaxConns,
		DBMinConns:  cfg.DBMinConns,
		SQLitePath:  cfg.SQLitePath,
		Redis: recordstore.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
		S3: recordstore.S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		},
	}
}

// buildService opens the configured record store and wraps it in a dashboard
// service. The returned func closes the store.
func buildService(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*dashboard.Service, func(), error) {
	store, err := recordstore.Open(ctx, storeOptions(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("open %s record store: %w", cfg.StoreDriver, err)
	}
	svc, err := newService(cfg, store, logger)
	if err != nil {
		recordstore.Close(store)
		return nil, nil, err
	}
	return svc, func() { recordstore.Close(store) }, nil
}

func newService(cfg *config.Config, store recordstore.Store, logger zerolog.Logger) (*dashboard.Service, error) {
	opts := []dashboard.Option{
		dashboard.WithLogger(logger),
		dashboard.WithMetrics(cfg.MetricsEnabled),
	}
	if cfg.InsightRulesFile != "" {
		rules, err := dashboard.LoadRules(cfg.InsightRulesFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, dashboard.WithRules(rules))
	}
	return dashboard.NewService(recordstore.NewLazy(store), opts...), nil
}

// newServer wires middleware and routes around an already opened store.
func newServer(cfg *config.Config, store recordstore.Store, svc *dashboard.Service, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	if cfg.MetricsEnabled {
		e.Use(metrics.Middleware())
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
	}))
	if cfg.RequestTimeout > 0 {
		e.Use(middleware.RequestTimeout(cfg.RequestTimeout, "/metrics"))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	var stats db.StatsProvider
	if sp, ok := store.(db.StatsProvider); ok {
		stats = sp
	}
	e.GET("/health/store", db.HealthHandler(string(store.Driver()), pingerOf(store), stats))
	if cfg.MetricsEnabled {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	}

	// Auth applies to the API only; health and metrics stay open for probes.
	apiV1 := e.Group("/api/v1")
	if cfg.IsDev() {
		apiV1.Use(auth.DevAuthMiddleware())
	} else {
		apiV1.Use(auth.JWTMiddleware(auth.JWTConfig{
			SigningKey: []byte(cfg.AuthSigningKey),
			Issuer:     cfg.AuthIssuer,
			Audience:   cfg.AuthAudience,
		}))
	}

	limitCfg := middleware.DefaultRateLimitConfig()
	if cfg.ReloadRateRPS > 0 {
		limitCfg.RequestsPerSecond = cfg.ReloadRateRPS
	}
	if cfg.ReloadRateBurst > 0 {
		limitCfg.BurstSize = cfg.ReloadRateBurst
	}
	limitCfg.KeyFunc = func(c echo.Context) string {
		if uid := auth.UserIDFromContext(c.Request().Context()); uid != "" {
			return uid
		}
		return c.RealIP()
	}
	reloadLimit := middleware.RateLimit(limitCfg)
	dashboard.NewHandler(svc).RegisterRoutes(apiV1, reloadLimit)

	return e
}

// pingerOf returns store as a db.Checker. Stores without a remote backend are
// always reachable.
func pingerOf(store recordstore.Store) db.Checker {
	if p, ok := store.(recordstore.Pinger); ok {
		return p
	}
	return alwaysUp{}
}

type alwaysUp struct{}

func (alwaysUp) Ping(context.Context) error { return nil }

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()
	store, err := recordstore.Open(ctx, storeOptions(cfg))
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open record store")
	}
	defer recordstore.Close(store)
	logger.Info().Str("driver", string(store.Driver())).Msg("record store ready")

	svc, err := newService(cfg, store, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load insight rules")
	}

	e := newServer(cfg, store, svc, logger)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
