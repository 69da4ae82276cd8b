package collector

import "github.com/zonemon/agent/internal/kstat"

// mapRecord applies a descriptor table to one kstat record. Records
// missing a descriptor's field contribute nothing for that descriptor;
// a malformed field never aborts the rest of the mapping.
func mapRecord(rec kstat.Record, descs []Desc, labels ...Label) []Value {
	values := make([]Value, 0, len(descs))
	for i := range descs {
		d := &descs[i]
		v, ok := rec.Float(d.Key)
		if !ok {
			continue
		}
		if d.Convert != nil {
			v = d.Convert(v)
		}
		values = append(values, Value{Desc: d, Value: v, Labels: labels})
	}
	return values
}
