// Package kstat reads named kernel-statistics records by shelling out to
// kstat(8) and parsing its parseable (-p) output into structured records.
package kstat

import (
	"context"
	"strconv"
)

// Query selects a subset of kernel statistics. Empty fields match anything.
type Query struct {
	Module string
	Class  string
	Name   string
}

// Record is one named kstat: every statistic published under a single
// module:instance:name triple.
type Record struct {
	Module   string
	Instance int
	Name     string
	Class    string
	Fields   map[string]string
}

// Float returns the named statistic parsed as a float64.
func (r Record) Float(key string) (float64, bool) {
	raw, ok := r.Fields[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// String returns the named statistic as its raw string value.
func (r Record) String(key string) (string, bool) {
	v, ok := r.Fields[key]
	return v, ok
}

// Reader reads kernel statistics matching a query. Implementations must
// return either the full matching set or an error, never a partial read.
type Reader interface {
	Read(ctx context.Context, q Query) ([]Record, error)
}
