package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestLogger_NotNil(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestClock_Advance(t *testing.T) {
	c := NewClock()
	start := c.Now()
	c.Advance(5 * time.Minute)
	if got := c.Now().Sub(start); got != 5*time.Minute {
		t.Errorf("Advance: elapsed = %v, want 5m", got)
	}
}

func TestClock_Set(t *testing.T) {
	c := NewClock()
	target := time.Date(2030, 6, 15, 12, 0, 0, 0, time.UTC)
	c.Set(target)
	if !c.Now().Equal(target) {
		t.Errorf("Set: got %v, want %v", c.Now(), target)
	}
}

func TestNewZone_Defaults(t *testing.T) {
	z := NewZone()
	if _, err := uuid.Parse(z.UUID); err != nil {
		t.Errorf("UUID = %q, want a valid uuid", z.UUID)
	}
	if z.Name != z.UUID {
		t.Errorf("Name = %q, want the uuid", z.Name)
	}
	if z.Dataset != "zones/"+z.UUID {
		t.Errorf("Dataset = %q", z.Dataset)
	}
	if z.Brand != "joyent" {
		t.Errorf("Brand = %q, want joyent", z.Brand)
	}
}

func TestNewZone_WithOptions(t *testing.T) {
	z := NewZone(
		WithZoneID(42),
		WithZoneName("web01"),
		WithBrand("lx"),
		WithDataset("zones/custom"),
	)
	if z.ID != 42 {
		t.Errorf("ID = %d, want 42", z.ID)
	}
	if z.Name != "web01" {
		t.Errorf("Name = %q, want web01", z.Name)
	}
	if z.Brand != "lx" {
		t.Errorf("Brand = %q, want lx", z.Brand)
	}
	if z.Dataset != "zones/custom" {
		t.Errorf("Dataset = %q, want zones/custom", z.Dataset)
	}
}
