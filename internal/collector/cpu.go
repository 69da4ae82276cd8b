package collector

// cpuDescs covers the per-CPU sys kstats. Values are summed across all
// CPU instances before conversion.
var cpuDescs = []Desc{
	{Key: "cpu_nsec_user", Name: "cpu_user_seconds_total", Help: "CPU time spent in user mode in seconds", Type: Counter, Convert: NsToSeconds},
	{Key: "cpu_nsec_kernel", Name: "cpu_kernel_seconds_total", Help: "CPU time spent in kernel mode in seconds", Type: Counter, Convert: NsToSeconds},
	{Key: "cpu_nsec_idle", Name: "cpu_idle_seconds_total", Help: "CPU idle time in seconds", Type: Counter, Convert: NsToSeconds},
	{Key: "cpu_nsec_dtrace", Name: "cpu_dtrace_seconds_total", Help: "CPU time spent in DTrace probes in seconds", Type: Counter, Convert: NsToSeconds},
	{Key: "intr", Name: "cpu_interrupts_total", Help: "Device interrupts serviced", Type: Counter},
	{Key: "syscall", Name: "cpu_syscalls_total", Help: "System calls serviced", Type: Counter},
}

// CPU collects host-wide CPU accounting aggregated over all CPUs.
type CPU struct{}

var _ Module = (*CPU)(nil)

func (CPU) Name() string      { return "cpu" }
func (CPU) Scope() Scope      { return ScopeHost }
func (CPU) Domains() []Domain { return []Domain{DomainCPU} }

func (CPU) Collect(_ Target, b Bundle) ([]Value, error) {
	records := b.Kstats[DomainCPU]

	sums := make(map[string]float64, len(cpuDescs))
	seen := make(map[string]bool, len(cpuDescs))
	for _, rec := range records {
		if rec.Module != "cpu" || rec.Name != "sys" {
			continue
		}
		for i := range cpuDescs {
			if v, ok := rec.Float(cpuDescs[i].Key); ok {
				sums[cpuDescs[i].Key] += v
				seen[cpuDescs[i].Key] = true
			}
		}
	}

	var values []Value
	for i := range cpuDescs {
		d := &cpuDescs[i]
		if !seen[d.Key] {
			continue
		}
		v := sums[d.Key]
		if d.Convert != nil {
			v = d.Convert(v)
		}
		values = append(values, Value{Desc: d, Value: v})
	}
	return values, nil
}
