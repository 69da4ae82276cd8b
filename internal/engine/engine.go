// Package engine drives a collection pass: it resolves the scrape
// target, ensures the raw snapshots it needs are fresh, invokes the
// applicable collector modules in registration order and renders the
// result.
package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/zonemon/agent/internal/cache"
	"github.com/zonemon/agent/internal/collector"
	"github.com/zonemon/agent/internal/errdefs"
	"github.com/zonemon/agent/internal/fsusage"
	"github.com/zonemon/agent/internal/kstat"
	"github.com/zonemon/agent/internal/ntpd"
	"github.com/zonemon/agent/internal/render"
	"github.com/zonemon/agent/internal/zones"
)

// HostTarget is the distinguished identifier for the global host.
const HostTarget = "gz"

// Registry is the subset of the zone registry the engine needs.
type Registry interface {
	Resolve(ctx context.Context, id string) (zones.Zone, error)
}

// Engine owns the snapshot cache and the registered collector modules.
type Engine struct {
	logger   *zap.Logger
	store    *cache.Store
	registry Registry
	now      func() time.Time

	// Module order is fixed at construction; output order follows it.
	hostModules []collector.Module
	zoneModules []collector.Module

	stopped  atomic.Bool
	stopOnce sync.Once
}

// New returns an engine with the default module registration order.
func New(logger *zap.Logger, store *cache.Store, registry Registry) *Engine {
	return NewWithModules(logger, store, registry,
		[]collector.Module{
			collector.TimeOfDay{},
			collector.CPU{},
			collector.ARC{},
			collector.NTP{},
		},
		[]collector.Module{
			collector.Link{},
			collector.Memcap{},
			collector.TCP{},
			collector.ZoneMisc{},
			collector.CPUCap{},
			collector.FS{},
		},
	)
}

// NewWithModules returns an engine with an explicit module set. The
// slice order is the registration order and therefore the output order.
func NewWithModules(logger *zap.Logger, store *cache.Store, registry Registry, host, zone []collector.Module) *Engine {
	return &Engine{
		logger:      logger,
		store:       store,
		registry:    registry,
		now:         time.Now,
		hostModules: host,
		zoneModules: zone,
	}
}

// SetClock overrides the engine's time source. Tests only.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// GetMetrics collects and renders all metrics for the target. Only an
// unresolvable target fails the call; snapshot read failures degrade to
// partial output with the affected modules skipped.
func (e *Engine) GetMetrics(ctx context.Context, target string) (string, error) {
	if e.stopped.Load() {
		return "", errdefs.ErrStopped
	}

	var (
		t       collector.Target
		modules []collector.Module
	)
	if target == HostTarget {
		t = collector.Target{IsHost: true}
		modules = e.hostModules
	} else {
		z, err := e.registry.Resolve(ctx, target)
		if err != nil {
			return "", err
		}
		t = collector.Target{Zone: z}
		modules = e.zoneModules
	}

	bundle, failed := e.fetchDomains(ctx, modules)
	bundle.Now = e.now()

	var values []collector.Value
	for _, m := range modules {
		if d, ok := dependsOnFailed(m, failed); ok {
			e.logger.Warn("skipping module, snapshot unavailable",
				zap.String("module", m.Name()),
				zap.String("domain", string(d)),
			)
			continue
		}
		vs, err := m.Collect(t, bundle)
		if err != nil {
			e.logger.Warn("collector module failed",
				zap.String("module", m.Name()),
				zap.Error(err),
			)
			continue
		}
		values = append(values, vs...)
	}
	return render.Render(values), nil
}

// fetchDomains refreshes every distinct domain the modules need.
// Domains are fetched concurrently and independently: one failure never
// blocks the others.
func (e *Engine) fetchDomains(ctx context.Context, modules []collector.Module) (collector.Bundle, map[collector.Domain]bool) {
	distinct := make([]collector.Domain, 0, len(modules))
	seen := make(map[collector.Domain]bool)
	for _, m := range modules {
		for _, d := range m.Domains() {
			if !seen[d] {
				seen[d] = true
				distinct = append(distinct, d)
			}
		}
	}

	bundle := collector.Bundle{Kstats: make(map[collector.Domain][]kstat.Record)}
	failed := make(map[collector.Domain]bool)

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, d := range distinct {
		wg.Add(1)
		go func(d collector.Domain) {
			defer wg.Done()
			snap, err := e.store.EnsureFresh(ctx, d)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				e.logger.Warn("domain read failed",
					zap.String("domain", string(d)),
					zap.Error(err),
				)
				failed[d] = true
				return
			}
			switch data := snap.Data.(type) {
			case []kstat.Record:
				bundle.Kstats[d] = data
			case []fsusage.Usage:
				bundle.FS = data
			case ntpd.Status:
				bundle.NTP = data
			default:
				e.logger.Error("unexpected snapshot type",
					zap.String("domain", string(d)),
				)
				failed[d] = true
			}
		}(d)
	}
	wg.Wait()
	return bundle, failed
}

func dependsOnFailed(m collector.Module, failed map[collector.Domain]bool) (collector.Domain, bool) {
	for _, d := range m.Domains() {
		if failed[d] {
			return d, true
		}
	}
	return "", false
}

// Stop shuts the engine down: cached snapshots are discarded and every
// subsequent GetMetrics fails fast with errdefs.ErrStopped. Safe to
// call more than once.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		e.stopped.Store(true)
		e.store.Close()
		e.logger.Info("collection engine stopped")
	})
}
