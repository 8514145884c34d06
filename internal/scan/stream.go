package scan

import (
	"reflect"

	"github.com/roach88/esquel/internal/execute"
	"github.com/roach88/esquel/internal/schema"
)

// Stream yields materialized rows lazily from a fully-buffered
// response: forward-only, single-pass, not restartable. It is a
// convenience over the buffered matrix, not a network stream.
//
//	rows, err := scan.NewStream[LogEntry](resp, resolver)
//	for rows.Next() {
//	    entry := rows.Value()
//	    ...
//	}
type Stream[T any] struct {
	resp *execute.Response
	m    *mapping // nil for scalar targets
	i    int      // next row to yield
	cur  T
}

// NewStream prepares a row stream over a response. The column mapping
// is built once, up front.
func NewStream[T any](resp *execute.Response, r schema.Resolver) (*Stream[T], error) {
	var zero T
	target := reflect.TypeOf(zero)

	s := &Stream[T]{resp: resp}
	if target != nil && target.Kind() == reflect.Struct && !isScalarStruct(target) {
		m, err := buildMapping(resp.Columns, target, r)
		if err != nil {
			return nil, err
		}
		s.m = m
	}
	return s, nil
}

// Next advances to the next row, reporting whether one was available.
func (s *Stream[T]) Next() bool {
	if s.i >= len(s.resp.Values) {
		return false
	}
	row := s.resp.Values[s.i]
	s.i++

	if s.m != nil {
		s.cur = scanRow[T](s.m, row)
		return true
	}

	var zero T
	s.cur = zero
	if len(row) > 0 {
		s.cur = coerce(row[0], reflect.TypeOf(zero)).Interface().(T)
	}
	return true
}

// Value returns the row materialized by the last successful Next.
func (s *Stream[T]) Value() T { return s.cur }
