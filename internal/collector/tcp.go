package collector

var tcpDescs = []Desc{
	{Key: "attemptFails", Name: "tcp_failed_connection_attempt_count", Help: "Failed TCP connection attempts", Type: Counter},
	{Key: "retransSegs", Name: "tcp_retransmitted_segment_count", Help: "Retransmitted TCP segments", Type: Counter},
	{Key: "inDupAck", Name: "tcp_duplicate_ack_count", Help: "Duplicate TCP ACKs received", Type: Counter},
	{Key: "listenDrop", Name: "tcp_listen_drop_count", Help: "Connections refused because the backlog was full", Type: Counter},
	{Key: "listenDropQ0", Name: "tcp_listen_drop_Qzero_count", Help: "Connections refused from the half-open queue", Type: Counter},
	{Key: "halfOpenDrop", Name: "tcp_half_open_drop_count", Help: "Half-open connections dropped", Type: Counter},
	{Key: "timRetransDrop", Name: "tcp_retransmit_timeout_drop_count", Help: "Connections dropped by retransmit timeout", Type: Counter},
	{Key: "activeOpens", Name: "tcp_active_open_count", Help: "Active TCP opens", Type: Counter},
	{Key: "passiveOpens", Name: "tcp_passive_open_count", Help: "Passive TCP opens", Type: Counter},
	{Key: "currEstab", Name: "tcp_current_established_connections_total", Help: "Currently established TCP connections", Type: Gauge},
}

// TCP collects a zone's TCP stack counters. The kernel keys the
// per-zone tcp kstat by zone id, not zonename.
type TCP struct{}

var _ Module = (*TCP)(nil)

func (TCP) Name() string      { return "tcp" }
func (TCP) Scope() Scope      { return ScopeZone }
func (TCP) Domains() []Domain { return []Domain{DomainTCP} }

func (TCP) Collect(t Target, b Bundle) ([]Value, error) {
	for _, rec := range b.Kstats[DomainTCP] {
		if rec.Instance != t.Zone.ID || rec.Name != "tcp" {
			continue
		}
		return mapRecord(rec, tcpDescs), nil
	}
	return nil, nil
}
