package kstat

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

const linkOutput = "link:0:vnic0:ipackets\t1234\n" +
	"link:0:vnic0:opackets\t567\n" +
	"link:0:vnic0:zonename\tweb01\n" +
	"link:1:vnic1:ipackets\t89\n" +
	"link:1:vnic1:zonename\tdb01\n"

func fakeReader(t *testing.T, out string, err error) (*CmdReader, *[]string) {
	t.Helper()
	var calls []string
	r := NewCmdReader(zap.NewNop())
	r.run = func(_ context.Context, name string, args ...string) ([]byte, error) {
		calls = append(calls, name)
		calls = append(calls, args...)
		return []byte(out), err
	}
	return r, &calls
}

func TestReadGroupsRecords(t *testing.T) {
	r, _ := fakeReader(t, linkOutput, nil)

	records, err := r.Read(context.Background(), Query{Class: "net"})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	first := records[0]
	if first.Module != "link" || first.Name != "vnic0" || first.Instance != 0 {
		t.Errorf("records[0] = %+v, want link:0:vnic0", first)
	}
	if first.Class != "net" {
		t.Errorf("Class = %q, want %q (carried from query)", first.Class, "net")
	}
	if v, ok := first.Float("ipackets"); !ok || v != 1234 {
		t.Errorf("Float(ipackets) = %v, %v; want 1234, true", v, ok)
	}
	if z, ok := first.String("zonename"); !ok || z != "web01" {
		t.Errorf("String(zonename) = %q, %v; want web01, true", z, ok)
	}
}

func TestReadPreservesOrder(t *testing.T) {
	r, _ := fakeReader(t, linkOutput, nil)

	records, err := r.Read(context.Background(), Query{})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if records[0].Name != "vnic0" || records[1].Name != "vnic1" {
		t.Errorf("record order = [%s %s], want [vnic0 vnic1]", records[0].Name, records[1].Name)
	}
}

func TestReadQueryArgs(t *testing.T) {
	r, calls := fakeReader(t, "", nil)

	_, err := r.Read(context.Background(), Query{Module: "memory_cap", Class: "zone_memory_cap"})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	want := []string{"kstat", "-p", "-c", "zone_memory_cap", "-m", "memory_cap"}
	if len(*calls) != len(want) {
		t.Fatalf("args = %v, want %v", *calls, want)
	}
	for i := range want {
		if (*calls)[i] != want[i] {
			t.Fatalf("args = %v, want %v", *calls, want)
		}
	}
}

func TestReadSkipsMalformedLines(t *testing.T) {
	out := "garbage line without tab\n" +
		"short:key\t42\n" +
		"link:notanumber:vnic0:ipackets\t1\n" +
		"link:0:vnic0:ipackets\t77\n"
	r, _ := fakeReader(t, out, nil)

	records, err := r.Read(context.Background(), Query{})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1 (malformed lines skipped)", len(records))
	}
	if v, ok := records[0].Float("ipackets"); !ok || v != 77 {
		t.Errorf("Float(ipackets) = %v, %v; want 77, true", v, ok)
	}
}

func TestReadCommandError(t *testing.T) {
	r, _ := fakeReader(t, "", errors.New("exec: kstat not found"))

	if _, err := r.Read(context.Background(), Query{Class: "net"}); err == nil {
		t.Fatal("Read() should propagate command failure")
	}
}

func TestFloatNonNumeric(t *testing.T) {
	rec := Record{Fields: map[string]string{"state": "up"}}
	if _, ok := rec.Float("state"); ok {
		t.Error("Float() on a non-numeric field should return ok=false")
	}
	if _, ok := rec.Float("missing"); ok {
		t.Error("Float() on a missing field should return ok=false")
	}
}
