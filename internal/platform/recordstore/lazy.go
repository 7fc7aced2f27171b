package recordstore

import (
	"context"
	"sync"
	"time"

	"github.com/ehr/dashboard/internal/domain/patient"
)

// Lazy loads the collection from a Store on first use and serves the same
// snapshot afterwards. A failed load is not cached. Callers receive copies,
// so the shared snapshot cannot be modified through them.
type Lazy struct {
	store Store

	mu       sync.Mutex
	loaded   bool
	records  patient.Collection
	loadedAt time.Time
	now      func() time.Time
}

// NewLazy wraps store.
func NewLazy(store Store) *Lazy {
	return &Lazy{store: store, now: time.Now}
}

func (l *Lazy) Driver() Driver { return l.store.Driver() }

// Load returns the cached snapshot, reading the store first if needed.
func (l *Lazy) Load(ctx context.Context) (patient.Collection, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.loaded {
		records, err := l.store.Load(ctx)
		if err != nil {
			return nil, err
		}
		l.records = records
		l.loaded = true
		l.loadedAt = l.now()
	}
	return l.records.Clone(), nil
}

// Reset drops the cached snapshot; the next Load reads the store again.
func (l *Lazy) Reset() {
	l.mu.Lock()
	l.loaded = false
	l.records = nil
	l.loadedAt = time.Time{}
	l.mu.Unlock()
}

// LoadedAt is the time of the last successful load, zero if none.
func (l *Lazy) LoadedAt() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadedAt
}

func (l *Lazy) Ping(ctx context.Context) error {
	if p, ok := l.store.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (l *Lazy) Close() error { return Close(l.store) }
