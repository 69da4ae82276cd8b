package testutil

import (
	"github.com/google/uuid"

	"github.com/zonemon/agent/internal/zones"
)

// NewZone returns a Zone with sensible defaults, suitable for test
// fixtures. Override individual fields via options as needed.
func NewZone(opts ...func(*zones.Zone)) zones.Zone {
	id := uuid.New().String()
	z := zones.Zone{
		ID:      1,
		UUID:    id,
		Name:    id,
		Brand:   "joyent",
		Dataset: "zones/" + id,
	}
	for _, opt := range opts {
		opt(&z)
	}
	return z
}

// WithUUID pins the zone uuid, keeping name and dataset consistent
// unless overridden by later options.
func WithUUID(id string) func(*zones.Zone) {
	return func(z *zones.Zone) {
		z.UUID = id
		z.Name = id
		z.Dataset = "zones/" + id
	}
}

// WithZoneID sets the numeric zone id.
func WithZoneID(id int) func(*zones.Zone) {
	return func(z *zones.Zone) { z.ID = id }
}

// WithZoneName sets the zonename.
func WithZoneName(name string) func(*zones.Zone) {
	return func(z *zones.Zone) { z.Name = name }
}

// WithBrand sets the zone brand.
func WithBrand(brand string) func(*zones.Zone) {
	return func(z *zones.Zone) { z.Brand = brand }
}

// WithDataset sets the zone's root dataset.
func WithDataset(dataset string) func(*zones.Zone) {
	return func(z *zones.Zone) { z.Dataset = dataset }
}
