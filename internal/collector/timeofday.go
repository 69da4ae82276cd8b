package collector

// The help text says seconds while the value is the raw millisecond
// clock reading. This mirrors the wire format existing consumers scrape
// and cannot be corrected without breaking them.
var timeOfDayDesc = Desc{
	Name: "time_of_day",
	Help: "System time in seconds since epoch",
	Type: Counter,
}

// TimeOfDay reports the host clock. It needs no raw snapshot; the
// engine supplies the collection timestamp in the bundle.
type TimeOfDay struct{}

var _ Module = (*TimeOfDay)(nil)

func (TimeOfDay) Name() string      { return "time_of_day" }
func (TimeOfDay) Scope() Scope      { return ScopeHost }
func (TimeOfDay) Domains() []Domain { return nil }

func (TimeOfDay) Collect(_ Target, b Bundle) ([]Value, error) {
	return []Value{{Desc: &timeOfDayDesc, Value: float64(b.Now.UnixMilli())}}, nil
}
