package collector

import "github.com/zonemon/agent/internal/kstat"

// linkDescs maps link-class kstat fields to the aggregate network
// metrics. Every metric is emitted once per virtual interface belonging
// to the target zone, labeled with the interface name.
var linkDescs = []Desc{
	{Key: "ipackets64", Name: "net_agg_packets_in", Help: "Aggregate inbound packets", Type: Counter},
	{Key: "obytes64", Name: "net_agg_bytes_out", Help: "Aggregate outbound bytes", Type: Counter},
	{Key: "opackets64", Name: "net_agg_packets_out", Help: "Aggregate outbound packets", Type: Counter},
	{Key: "rbytes64", Name: "net_agg_bytes_in", Help: "Aggregate inbound bytes", Type: Counter},
}

// Link collects per-interface network counters for a zone's virtual
// links.
type Link struct{}

var _ Module = (*Link)(nil)

func (Link) Name() string      { return "link" }
func (Link) Scope() Scope      { return ScopeZone }
func (Link) Domains() []Domain { return []Domain{DomainLink} }

// Collect filters the link snapshot down to records whose zonename
// matches the target zone and emits one labeled series per matching
// interface. Iteration is descriptor-major so every family's series
// stay contiguous in the output.
func (Link) Collect(t Target, b Bundle) ([]Value, error) {
	var mine []kstat.Record
	for _, rec := range b.Kstats[DomainLink] {
		if zn, ok := rec.String("zonename"); ok && zn == t.Zone.Name {
			mine = append(mine, rec)
		}
	}
	if len(mine) == 0 {
		return nil, nil
	}

	values := make([]Value, 0, len(linkDescs)*len(mine))
	for i := range linkDescs {
		d := &linkDescs[i]
		for _, rec := range mine {
			v, ok := rec.Float(d.Key)
			if !ok {
				continue
			}
			if d.Convert != nil {
				v = d.Convert(v)
			}
			values = append(values, Value{
				Desc:   d,
				Value:  v,
				Labels: []Label{{Name: "interface", Value: rec.Name}},
			})
		}
	}
	return values, nil
}
