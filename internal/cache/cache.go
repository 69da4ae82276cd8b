// Package cache holds the most recent raw snapshot per data domain and
// coalesces concurrent refreshes into a single underlying read.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/zonemon/agent/internal/collector"
)

// FetchFunc performs one underlying read for a domain.
type FetchFunc func(ctx context.Context) (any, error)

// Snapshot is an immutable, timestamped bag of raw values for one
// domain. Data holds the domain's native type ([]kstat.Record,
// []fsusage.Usage or ntpd.Status).
type Snapshot struct {
	Domain    collector.Domain
	Data      any
	FetchedAt time.Time
}

// Store caches snapshots with a freshness window. Within one window at
// most one read per domain is in flight; all concurrent callers share
// its result. Errors are never cached: a failed refresh leaves the
// previous entry untouched and the next call retries.
type Store struct {
	logger  *zap.Logger
	ttl     time.Duration
	timeout time.Duration
	now     func() time.Time

	fetchers map[collector.Domain]FetchFunc
	group    singleflight.Group

	mu      sync.Mutex
	entries map[collector.Domain]Snapshot
}

// New returns an empty store. ttl is the freshness window; timeout
// bounds each underlying read.
func New(logger *zap.Logger, ttl, timeout time.Duration) *Store {
	return &Store{
		logger:   logger,
		ttl:      ttl,
		timeout:  timeout,
		now:      time.Now,
		fetchers: make(map[collector.Domain]FetchFunc),
		entries:  make(map[collector.Domain]Snapshot),
	}
}

// SetClock overrides the store's time source. Tests only.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Register installs the fetcher for a domain. Must be called before any
// EnsureFresh for that domain.
func (s *Store) Register(d collector.Domain, f FetchFunc) {
	s.fetchers[d] = f
}

// EnsureFresh returns an unexpired snapshot for the domain, triggering
// at most one underlying read if none exists or the entry has expired.
func (s *Store) EnsureFresh(ctx context.Context, d collector.Domain) (Snapshot, error) {
	if snap, ok := s.lookup(d); ok {
		return snap, nil
	}

	v, err, _ := s.group.Do(string(d), func() (any, error) {
		// A concurrent flight may have refreshed the entry while this
		// caller was queued behind Do.
		if snap, ok := s.lookup(d); ok {
			return snap, nil
		}
		return s.refresh(ctx, d)
	})
	if err != nil {
		return Snapshot{}, err
	}
	return v.(Snapshot), nil
}

func (s *Store) lookup(d collector.Domain) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.entries[d]
	if !ok || s.now().Sub(snap.FetchedAt) >= s.ttl {
		return Snapshot{}, false
	}
	return snap, true
}

func (s *Store) refresh(ctx context.Context, d collector.Domain) (Snapshot, error) {
	fetch, ok := s.fetchers[d]
	if !ok {
		return Snapshot{}, fmt.Errorf("no fetcher registered for domain %q", d)
	}

	readCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		readCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	data, err := fetch(readCtx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("refreshing domain %q: %w", d, err)
	}

	snap := Snapshot{Domain: d, Data: data, FetchedAt: s.now()}
	s.mu.Lock()
	s.entries[d] = snap
	s.mu.Unlock()

	s.logger.Debug("snapshot refreshed", zap.String("domain", string(d)))
	return snap, nil
}

// Close drops all cached entries.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[collector.Domain]Snapshot)
}
