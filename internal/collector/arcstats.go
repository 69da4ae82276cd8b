package collector

var arcDescs = []Desc{
	{Key: "hits", Name: "arcstats_hits_total", Help: "ARC hits", Type: Counter},
	{Key: "misses", Name: "arcstats_misses_total", Help: "ARC misses", Type: Counter},
	{Key: "demand_data_hits", Name: "arcstats_demand_data_hits_total", Help: "ARC demand data hits", Type: Counter},
	{Key: "demand_data_misses", Name: "arcstats_demand_data_misses_total", Help: "ARC demand data misses", Type: Counter},
	{Key: "prefetch_data_hits", Name: "arcstats_prefetch_data_hits_total", Help: "ARC prefetch data hits", Type: Counter},
	{Key: "prefetch_data_misses", Name: "arcstats_prefetch_data_misses_total", Help: "ARC prefetch data misses", Type: Counter},
	{Key: "size", Name: "arcstats_size_bytes", Help: "ARC size in bytes", Type: Gauge},
	{Key: "c", Name: "arcstats_target_cache_size_bytes", Help: "ARC target cache size in bytes", Type: Gauge},
	{Key: "c_max", Name: "arcstats_max_target_cache_size_bytes", Help: "ARC maximum target cache size in bytes", Type: Gauge},
	{Key: "c_min", Name: "arcstats_min_target_cache_size_bytes", Help: "ARC minimum target cache size in bytes", Type: Gauge},
	{Key: "evict_l2_eligible", Name: "arcstats_evict_l2_eligible_bytes_total", Help: "Bytes of evicted data eligible for L2 cache", Type: Counter},
	{Key: "mru_hits", Name: "arcstats_mru_hits_total", Help: "ARC MRU list hits", Type: Counter},
	{Key: "mfu_hits", Name: "arcstats_mfu_hits_total", Help: "ARC MFU list hits", Type: Counter},
}

// ARC collects the host's ZFS ARC cache statistics.
type ARC struct{}

var _ Module = (*ARC)(nil)

func (ARC) Name() string      { return "arcstats" }
func (ARC) Scope() Scope      { return ScopeHost }
func (ARC) Domains() []Domain { return []Domain{DomainARC} }

func (ARC) Collect(_ Target, b Bundle) ([]Value, error) {
	for _, rec := range b.Kstats[DomainARC] {
		if rec.Module != "zfs" || rec.Name != "arcstats" {
			continue
		}
		return mapRecord(rec, arcDescs), nil
	}
	return nil, nil
}
