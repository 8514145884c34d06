package esql

import (
	"fmt"
	"reflect"
)

// NamedValue is one entry of a Parameters set: a placeholder name and
// the value bound to it at execution time.
type NamedValue struct {
	Name  string
	Value any
}

// Parameters is an ordered, name-deduplicated set of query parameters.
//
// Populated only when the builder runs in parameterize mode. Invariants:
//   - stable first-use ordering (Ordered returns entries in the order
//     their names were first added)
//   - unique names: adding the same name with an equal value reuses the
//     existing entry; adding it with a different value allocates a
//     numbered variant (name_2, name_3, ...)
//
// Parameters is not safe for concurrent use: a collector belongs to a
// single in-flight translation and is discarded with it.
type Parameters struct {
	entries []NamedValue
	index   map[string]int // name -> position in entries
}

// NewParameters creates an empty parameter set.
func NewParameters() *Parameters {
	return &Parameters{index: make(map[string]int)}
}

// Add records a value under the given base name and returns the
// placeholder name actually assigned (which may carry a numeric suffix
// when the base name is taken by a different value).
func (p *Parameters) Add(name string, value any) string {
	if name == "" {
		name = "p"
	}

	candidate := name
	for n := 2; ; n++ {
		i, ok := p.index[candidate]
		if !ok {
			p.index[candidate] = len(p.entries)
			p.entries = append(p.entries, NamedValue{Name: candidate, Value: value})
			return candidate
		}
		// DeepEqual, not ==: bound values may be slices or maps.
		if reflect.DeepEqual(p.entries[i].Value, value) {
			// Same name, same value: reuse.
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d", name, n)
	}
}

// Ordered returns the parameters in stable first-use order.
// The returned slice is a copy; mutating it does not affect the set.
func (p *Parameters) Ordered() []NamedValue {
	out := make([]NamedValue, len(p.entries))
	copy(out, p.entries)
	return out
}

// Len returns the number of distinct parameters recorded.
func (p *Parameters) Len() int {
	return len(p.entries)
}
