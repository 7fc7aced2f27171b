package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ehr/dashboard/internal/domain/patient"
	"github.com/ehr/dashboard/internal/platform/metrics"
	"github.com/ehr/dashboard/internal/platform/recordstore"
)

// Snapshot is a Dashboard stamped with where and when it was computed.
type Snapshot struct {
	ID          uuid.UUID `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	LoadedAt    time.Time `json:"loaded_at"`
	Driver      string    `json:"driver"`
	*Dashboard
}

// Service computes dashboards over the lazily loaded record snapshot.
type Service struct {
	records *recordstore.Lazy
	rules   []Rule
	now     func() time.Time
	logger  zerolog.Logger
	metrics bool
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used to derive today's date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRules replaces the built-in insight rules.
func WithRules(rules []Rule) Option {
	return func(s *Service) { s.rules = rules }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics toggles Prometheus instrumentation.
func WithMetrics(enabled bool) Option {
	return func(s *Service) { s.metrics = enabled }
}

// NewService creates a dashboard service reading from store. A store that is
// already a *recordstore.Lazy is used as is.
func NewService(store recordstore.Store, opts ...Option) *Service {
	lazy, ok := store.(*recordstore.Lazy)
	if !ok {
		lazy = recordstore.NewLazy(store)
	}
	s := &Service{
		records: lazy,
		rules:   DefaultRules(),
		now:     time.Now,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today is the reference date for compliance, in DateLayout form.
func (s *Service) Today() string {
	return s.now().Format(DateLayout)
}

// Rules returns a copy of the active insight rules.
func (s *Service) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Records returns a copy of the current record snapshot.
func (s *Service) Records(ctx context.Context) (patient.Collection, error) {
	records, err := s.records.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	return records, nil
}

// Snapshot computes the full dashboard. An empty today uses the clock.
func (s *Service) Snapshot(ctx context.Context, today string) (*Snapshot, error) {
	start := time.Now()
	driver := string(s.records.Driver())
	if today == "" {
		today = s.Today()
	}

	records, err := s.Records(ctx)
	if err != nil {
		if s.metrics {
			metrics.RecordSnapshot(driver, 0, time.Since(start), err)
		}
		s.logger.Error().Err(err).Str("driver", driver).Msg("dashboard snapshot failed")
		return nil, err
	}

	snap := &Snapshot{
		ID:          uuid.New(),
		GeneratedAt: s.now().UTC(),
		LoadedAt:    s.records.LoadedAt().UTC(),
		Driver:      driver,
		Dashboard:   Compute(records, today, s.rules),
	}

	elapsed := time.Since(start)
	if s.metrics {
		metrics.RecordSnapshot(driver, len(records), elapsed, nil)
		for _, rule := range FiredRules(records, s.rules) {
			metrics.RecordInsight(rule.ID)
		}
	}
	s.logger.Info().
		Str("snapshot_id", snap.ID.String()).
		Str("driver", driver).
		Str("today", today).
		Int("records", len(records)).
		Int("insights", len(snap.Insights)).
		Dur("duration", elapsed).
		Msg("dashboard snapshot computed")
	return snap, nil
}

// Reload drops the cached records so the next call reads the store again.
func (s *Service) Reload() {
	s.records.Reset()
	if s.metrics {
		metrics.RecordReload()
	}
	s.logger.Info().Str("driver", string(s.records.Driver())).Msg("record snapshot reset")
}
