package collector

var zoneMiscDescs = []Desc{
	{Key: "nsec_user", Name: "cpu_user_usage", Help: "User CPU utilization in seconds", Type: Counter, Convert: NsToSeconds},
	{Key: "nsec_sys", Name: "cpu_sys_usage", Help: "System CPU usage in seconds", Type: Counter, Convert: NsToSeconds},
	{Key: "nsec_waitrq", Name: "cpu_wait_time", Help: "CPU wait time in seconds", Type: Counter, Convert: NsToSeconds},
	{Key: "avenrun_1min", Name: "load_average", Help: "Load average", Type: Gauge, Convert: FixedPoint8},
	{Key: "forkfail_cap", Name: "forkfail_cap", Help: "Fork failures due to the process cap", Type: Counter},
	{Key: "forkfail_noproc", Name: "forkfail_noproc", Help: "Fork failures due to the process table", Type: Counter},
	{Key: "forkfail_nomem", Name: "forkfail_nomem", Help: "Fork failures due to memory pressure", Type: Counter},
	{Key: "nested_interp", Name: "nested_interp", Help: "Nested interpreter executions", Type: Counter},
}

// ZoneMisc collects a zone's general-purpose counters: CPU time, load
// average and fork failure accounting.
type ZoneMisc struct{}

var _ Module = (*ZoneMisc)(nil)

func (ZoneMisc) Name() string      { return "zone_misc" }
func (ZoneMisc) Scope() Scope      { return ScopeZone }
func (ZoneMisc) Domains() []Domain { return []Domain{DomainZoneMisc} }

func (ZoneMisc) Collect(t Target, b Bundle) ([]Value, error) {
	for _, rec := range b.Kstats[DomainZoneMisc] {
		if zn, ok := rec.String("zonename"); !ok || zn != t.Zone.Name {
			continue
		}
		return mapRecord(rec, zoneMiscDescs), nil
	}
	return nil, nil
}
