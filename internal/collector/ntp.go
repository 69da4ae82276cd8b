package collector

// ntpAvailableDesc is always emitted: a missing daemon is a state, not
// an error, and consumers alert on the value dropping to zero.
var ntpAvailableDesc = Desc{
	Name: "ntp_available",
	Help: "Whether the NTP daemon is available (1) or not (0)",
	Type: Gauge,
}

// ntpSysDescs maps the daemon's system variables. ntpq reports offsets
// and jitter in milliseconds; frequency stays in parts per million.
var ntpSysDescs = []Desc{
	{Key: "frequency", Name: "ntp_frequency", Help: "Clock frequency offset in parts per million", Type: Gauge},
	{Key: "offset", Name: "ntp_offset_seconds", Help: "Offset from the system peer in seconds", Type: Gauge, Convert: MsToSeconds},
	{Key: "sys_jitter", Name: "ntp_sys_jitter_seconds", Help: "Combined system jitter in seconds", Type: Gauge, Convert: MsToSeconds},
	{Key: "clk_jitter", Name: "ntp_clk_jitter_seconds", Help: "Clock jitter in seconds", Type: Gauge, Convert: MsToSeconds},
	{Key: "clk_wander", Name: "ntp_clk_wander", Help: "Clock wander in parts per million", Type: Gauge},
	{Key: "stratum", Name: "ntp_stratum", Help: "NTP stratum of this host", Type: Gauge},
	{Key: "rootdelay", Name: "ntp_rootdelay_seconds", Help: "Round trip to the primary reference in seconds", Type: Gauge, Convert: MsToSeconds},
	{Key: "rootdisp", Name: "ntp_rootdisp_seconds", Help: "Dispersion to the primary reference in seconds", Type: Gauge, Convert: MsToSeconds},
}

var ntpPeerDescs = []Desc{
	{Name: "ntp_peer_stratum", Help: "Stratum of the remote peer", Type: Gauge},
	{Name: "ntp_peer_delay_seconds", Help: "Round trip delay to the peer in seconds", Type: Gauge, Convert: MsToSeconds},
	{Name: "ntp_peer_offset_seconds", Help: "Offset of the peer clock in seconds", Type: Gauge, Convert: MsToSeconds},
	{Name: "ntp_peer_jitter_seconds", Help: "Jitter of the peer clock in seconds", Type: Gauge, Convert: MsToSeconds},
}

// NTP collects the host's time-daemon status: availability, system
// variables and one labeled series per configured peer.
type NTP struct{}

var _ Module = (*NTP)(nil)

func (NTP) Name() string      { return "ntp" }
func (NTP) Scope() Scope      { return ScopeHost }
func (NTP) Domains() []Domain { return []Domain{DomainNTP} }

func (NTP) Collect(_ Target, b Bundle) ([]Value, error) {
	st := b.NTP
	if !st.Available {
		return []Value{{Desc: &ntpAvailableDesc, Value: 0}}, nil
	}

	values := []Value{{Desc: &ntpAvailableDesc, Value: 1}}
	for i := range ntpSysDescs {
		d := &ntpSysDescs[i]
		v, ok := st.Float(d.Key)
		if !ok {
			continue
		}
		if d.Convert != nil {
			v = d.Convert(v)
		}
		values = append(values, Value{Desc: d, Value: v})
	}

	// Descriptor-major iteration keeps each peer family contiguous.
	for i := range ntpPeerDescs {
		d := &ntpPeerDescs[i]
		for _, p := range st.Peers {
			var raw float64
			switch d.Name {
			case "ntp_peer_stratum":
				raw = p.Stratum
			case "ntp_peer_delay_seconds":
				raw = p.Delay
			case "ntp_peer_offset_seconds":
				raw = p.Offset
			case "ntp_peer_jitter_seconds":
				raw = p.Jitter
			}
			v := raw
			if d.Convert != nil {
				v = d.Convert(raw)
			}
			values = append(values, Value{
				Desc:   d,
				Value:  v,
				Labels: []Label{{Name: "remote", Value: p.Remote}},
			})
		}
	}
	return values, nil
}
