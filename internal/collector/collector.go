// Package collector defines the collector module interface and the
// per-domain modules that map raw snapshots into metric values.
//
// Modules are stateless: each invocation receives a target and a bundle
// of raw snapshots and returns derived values. The static descriptor
// tables live next to each module as pure data.
package collector

import (
	"time"

	"github.com/zonemon/agent/internal/fsusage"
	"github.com/zonemon/agent/internal/kstat"
	"github.com/zonemon/agent/internal/ntpd"
	"github.com/zonemon/agent/internal/zones"
)

// Type is the exposition type of a metric.
type Type string

// Exposition types.
const (
	Gauge   Type = "gauge"
	Counter Type = "counter"
)

// Desc describes one output metric: its source field, wire name, help
// text, type and optional unit conversion. Conversions are applied at
// mapping time, never at render time.
type Desc struct {
	// Key is the field name in the raw record this metric maps from.
	Key     string
	Name    string
	Help    string
	Type    Type
	Convert func(float64) float64
}

// Label is a single name/value pair. Label order on a Value is the order
// it will be rendered in.
type Label struct {
	Name  string
	Value string
}

// Value is one populated metric sample.
type Value struct {
	Desc   *Desc
	Value  float64
	Labels []Label
}

// Domain identifies a raw data source.
type Domain string

// Raw data domains.
const (
	DomainLink     Domain = "link"
	DomainMemcap   Domain = "memory_cap"
	DomainTCP      Domain = "tcp"
	DomainCPUCap   Domain = "cpucap"
	DomainZoneMisc Domain = "zone_misc"
	DomainARC      Domain = "arcstats"
	DomainCPU      Domain = "cpu"
	DomainFS       Domain = "fsusage"
	DomainNTP      Domain = "ntp"
)

// Scope says which class of target a module applies to.
type Scope int

// Target scopes.
const (
	ScopeHost Scope = iota
	ScopeZone
)

// Target is the resolved subject of a collection pass: the global host
// or a single zone.
type Target struct {
	IsHost bool
	Zone   zones.Zone
}

// Bundle carries the raw snapshots a module may consume, plus the
// collection timestamp. Only the domains the module declared are
// guaranteed to be populated.
type Bundle struct {
	Kstats map[Domain][]kstat.Record
	FS     []fsusage.Usage
	NTP    ntpd.Status
	Now    time.Time
}

// Module maps a raw snapshot subset for one target into metric values.
// Implementations must be pure: no retained state across invocations.
type Module interface {
	Name() string
	Scope() Scope
	// Domains lists the raw sources this module needs. An empty list
	// means the module is snapshot-free (e.g. time of day).
	Domains() []Domain
	Collect(t Target, b Bundle) ([]Value, error)
}
