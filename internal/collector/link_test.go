package collector

import (
	"strconv"
	"testing"

	"github.com/zonemon/agent/internal/kstat"
	"github.com/zonemon/agent/internal/zones"
)

func linkRecord(name, zone string, ipackets float64) kstat.Record {
	return kstat.Record{
		Module: "link",
		Name:   name,
		Class:  "net",
		Fields: map[string]string{
			"ipackets64": formatFloat(ipackets),
			"opackets64": "10",
			"rbytes64":   "2048",
			"obytes64":   "1024",
			"zonename":   zone,
		},
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func TestLinkFiltersByZone(t *testing.T) {
	b := Bundle{Kstats: map[Domain][]kstat.Record{
		DomainLink: {
			linkRecord("vnic0", "web01", 100),
			linkRecord("vnic1", "web01", 200),
			linkRecord("vnic0", "db01", 300),
			linkRecord("net0", "other", 400),
			linkRecord("net1", "other", 500),
		},
	}}
	target := Target{Zone: zones.Zone{Name: "web01"}}

	values, err := (Link{}).Collect(target, b)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	// 4 descriptors x 2 matching interfaces.
	if len(values) != 8 {
		t.Fatalf("len(values) = %d, want 8", len(values))
	}
	for _, v := range values {
		iface := v.Labels[0].Value
		if iface != "vnic0" && iface != "vnic1" {
			t.Errorf("unexpected interface label %q: non-matching link leaked through", iface)
		}
	}
}

func TestLinkFamiliesContiguous(t *testing.T) {
	b := Bundle{Kstats: map[Domain][]kstat.Record{
		DomainLink: {
			linkRecord("vnic0", "web01", 100),
			linkRecord("vnic1", "web01", 200),
		},
	}}

	values, err := (Link{}).Collect(Target{Zone: zones.Zone{Name: "web01"}}, b)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	// All series of one metric name must be adjacent so the renderer
	// emits a single HELP/TYPE pair per family.
	seen := map[string]bool{}
	prev := ""
	for _, v := range values {
		name := v.Desc.Name
		if name != prev && seen[name] {
			t.Fatalf("family %q is not contiguous in output", name)
		}
		seen[name] = true
		prev = name
	}

	if values[0].Desc.Name != "net_agg_packets_in" {
		t.Errorf("first family = %q, want net_agg_packets_in", values[0].Desc.Name)
	}
	if values[0].Value != 100 || values[1].Value != 200 {
		t.Errorf("net_agg_packets_in values = %v, %v; want 100, 200", values[0].Value, values[1].Value)
	}
}

func TestLinkNoMatchingRecords(t *testing.T) {
	b := Bundle{Kstats: map[Domain][]kstat.Record{
		DomainLink: {linkRecord("vnic0", "someone-else", 1)},
	}}

	values, err := (Link{}).Collect(Target{Zone: zones.Zone{Name: "web01"}}, b)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(values) != 0 {
		t.Errorf("len(values) = %d, want 0 for no matching links", len(values))
	}
}

func TestLinkMissingFieldSkipsRecordOnly(t *testing.T) {
	broken := linkRecord("vnic9", "web01", 1)
	delete(broken.Fields, "ipackets64")

	b := Bundle{Kstats: map[Domain][]kstat.Record{
		DomainLink: {broken, linkRecord("vnic0", "web01", 42)},
	}}

	values, err := (Link{}).Collect(Target{Zone: zones.Zone{Name: "web01"}}, b)
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	// net_agg_packets_in appears only for vnic0; the other three
	// families still cover both interfaces.
	var packetsIn int
	for _, v := range values {
		if v.Desc.Name == "net_agg_packets_in" {
			packetsIn++
			if v.Labels[0].Value != "vnic0" {
				t.Errorf("net_agg_packets_in interface = %q, want vnic0", v.Labels[0].Value)
			}
		}
	}
	if packetsIn != 1 {
		t.Errorf("net_agg_packets_in series = %d, want 1", packetsIn)
	}
	if len(values) != 7 {
		t.Errorf("len(values) = %d, want 7", len(values))
	}
}
