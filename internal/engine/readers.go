package engine

import (
	"context"

	"github.com/zonemon/agent/internal/cache"
	"github.com/zonemon/agent/internal/collector"
	"github.com/zonemon/agent/internal/fsusage"
	"github.com/zonemon/agent/internal/kstat"
	"github.com/zonemon/agent/internal/ntpd"
)

// kstatQueries maps each kstat-backed domain to the query its reader
// runs. This is the only place domain-to-source binding lives.
var kstatQueries = map[collector.Domain]kstat.Query{
	collector.DomainLink:     {Module: "link", Class: "net"},
	collector.DomainMemcap:   {Module: "memory_cap", Class: "zone_memory_cap"},
	collector.DomainTCP:      {Module: "tcp", Class: "mib2"},
	collector.DomainCPUCap:   {Module: "caps", Class: "zone_caps"},
	collector.DomainZoneMisc: {Module: "zones", Class: "zone_misc"},
	collector.DomainARC:      {Module: "zfs", Name: "arcstats"},
	collector.DomainCPU:      {Module: "cpu", Name: "sys"},
}

// RegisterReaders installs a fetcher for every domain on the store.
func RegisterReaders(store *cache.Store, k kstat.Reader, f fsusage.Reader, n ntpd.Reader) {
	for domain, query := range kstatQueries {
		store.Register(domain, func(ctx context.Context) (any, error) {
			records, err := k.Read(ctx, query)
			if err != nil {
				return nil, err
			}
			return records, nil
		})
	}
	store.Register(collector.DomainFS, func(ctx context.Context) (any, error) {
		usages, err := f.List(ctx)
		if err != nil {
			return nil, err
		}
		return usages, nil
	})
	store.Register(collector.DomainNTP, func(ctx context.Context) (any, error) {
		status, err := n.Status(ctx)
		if err != nil {
			return nil, err
		}
		return status, nil
	})
}
