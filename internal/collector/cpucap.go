package collector

import "strings"

// cpucap values are percentages of a single CPU (100 = one full CPU),
// reported by the caps framework. They are exposed unscaled.
var cpucapDescs = []Desc{
	{Key: "above_base_sec", Name: "cpucap_above_base_seconds_total", Help: "Seconds spent over the baseline", Type: Counter},
	{Key: "above_sec", Name: "cpucap_above_seconds_total", Help: "Seconds spent over the cap", Type: Counter},
	{Key: "baseline", Name: "cpucap_baseline_percentage", Help: "Baseline CPU percentage", Type: Gauge},
	{Key: "below_sec", Name: "cpucap_below_seconds_total", Help: "Seconds spent under the cap", Type: Counter},
	{Key: "usage", Name: "cpucap_cur_usage_percentage", Help: "Current CPU usage percentage", Type: Gauge},
	{Key: "maxusage", Name: "cpucap_max_usage_percentage", Help: "Maximum observed CPU usage percentage", Type: Gauge},
	{Key: "nwait", Name: "cpucap_waiting_threads_count", Help: "Threads waiting on the cap", Type: Gauge},
	{Key: "value", Name: "cpucap_limit_percentage", Help: "Configured CPU cap percentage", Type: Gauge},
}

// CPUCap collects a zone's CPU cap statistics. A zone without a
// configured cap has no cpucaps kstat and yields nothing.
type CPUCap struct{}

var _ Module = (*CPUCap)(nil)

func (CPUCap) Name() string      { return "cpucap" }
func (CPUCap) Scope() Scope      { return ScopeZone }
func (CPUCap) Domains() []Domain { return []Domain{DomainCPUCap} }

func (CPUCap) Collect(t Target, b Bundle) ([]Value, error) {
	for _, rec := range b.Kstats[DomainCPUCap] {
		if rec.Instance != t.Zone.ID || !strings.HasPrefix(rec.Name, "cpucaps_zone") {
			continue
		}
		return mapRecord(rec, cpucapDescs), nil
	}
	return nil, nil
}
