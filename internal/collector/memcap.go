package collector

var memcapDescs = []Desc{
	{Key: "rss", Name: "mem_agg_usage", Help: "Aggregate memory usage in bytes", Type: Gauge},
	{Key: "physcap", Name: "mem_limit", Help: "Memory limit in bytes", Type: Gauge},
	{Key: "swap", Name: "mem_swap", Help: "Swap in bytes", Type: Gauge},
	{Key: "swapcap", Name: "mem_swap_limit", Help: "Swap limit in bytes", Type: Gauge},
	{Key: "anon_alloc_fail", Name: "mem_anon_alloc_fail", Help: "Anonymous allocation failures", Type: Counter},
	{Key: "pagedout", Name: "mem_pagedout", Help: "Bytes of memory paged out", Type: Counter},
}

// Memcap collects a zone's memory cap accounting. A zone with no memory
// cap has no record in the snapshot and yields nothing.
type Memcap struct{}

var _ Module = (*Memcap)(nil)

func (Memcap) Name() string      { return "memory_cap" }
func (Memcap) Scope() Scope      { return ScopeZone }
func (Memcap) Domains() []Domain { return []Domain{DomainMemcap} }

func (Memcap) Collect(t Target, b Bundle) ([]Value, error) {
	for _, rec := range b.Kstats[DomainMemcap] {
		if zn, ok := rec.String("zonename"); !ok || zn != t.Zone.Name {
			continue
		}
		return mapRecord(rec, memcapDescs), nil
	}
	return nil, nil
}
