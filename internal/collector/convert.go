package collector

// Unit conversions attached to descriptors. All are pure.

// NsToSeconds converts a nanosecond counter to seconds.
func NsToSeconds(v float64) float64 { return v / 1e9 }

// MsToSeconds converts a millisecond value to seconds.
func MsToSeconds(v float64) float64 { return v / 1e3 }

// FixedPoint8 converts a 1/256 fixed-point value (kernel load averages)
// to a plain decimal.
func FixedPoint8(v float64) float64 { return v / 256 }
