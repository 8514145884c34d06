package scan

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/roach88/esquel/internal/execute"
	"github.com/roach88/esquel/internal/schema"
)

// Sequence-operator faults. These mirror standard sequence semantics
// and are not translation-specific.
var (
	// ErrNoRows is returned by First/Single/Scalar over an empty
	// response.
	ErrNoRows = errors.New("sequence contains no elements")

	// ErrTooManyRows is returned by Single over more than one row.
	ErrTooManyRows = errors.New("sequence contains more than one element")
)

// Count reads a single-cell aggregate response as a row count.
func Count(resp *execute.Response) (int64, error) {
	return Scalar[int64](resp)
}

// First materializes the first row. Empty responses fault with
// ErrNoRows.
func First[T any](resp *execute.Response, r schema.Resolver) (T, error) {
	var zero T
	if len(resp.Values) == 0 {
		return zero, ErrNoRows
	}
	return materializeRow[T](resp, r, 0)
}

// FirstOrDefault materializes the first row, or returns the zero value
// without faulting when the response is empty.
func FirstOrDefault[T any](resp *execute.Response, r schema.Resolver) (T, error) {
	var zero T
	if len(resp.Values) == 0 {
		return zero, nil
	}
	return materializeRow[T](resp, r, 0)
}

// Single materializes exactly one row, faulting with ErrNoRows on
// empty responses and ErrTooManyRows when more than one row came back.
func Single[T any](resp *execute.Response, r schema.Resolver) (T, error) {
	var zero T
	switch len(resp.Values) {
	case 0:
		return zero, ErrNoRows
	case 1:
		return materializeRow[T](resp, r, 0)
	default:
		return zero, ErrTooManyRows
	}
}

// SingleOrDefault materializes at most one row: zero value on empty,
// ErrTooManyRows on more than one.
func SingleOrDefault[T any](resp *execute.Response, r schema.Resolver) (T, error) {
	var zero T
	switch len(resp.Values) {
	case 0:
		return zero, nil
	case 1:
		return materializeRow[T](resp, r, 0)
	default:
		return zero, ErrTooManyRows
	}
}

// materializeRow scans one row by index through the same dispatch as
// Slice.
func materializeRow[T any](resp *execute.Response, r schema.Resolver, i int) (T, error) {
	var zero T
	target := reflect.TypeOf(zero)
	if target == nil {
		return zero, fmt.Errorf("cannot scan into interface type")
	}

	if target.Kind() != reflect.Struct || isScalarStruct(target) {
		row := resp.Values[i]
		if len(row) == 0 {
			return zero, nil
		}
		return coerce(row[0], target).Interface().(T), nil
	}

	m, err := buildMapping(resp.Columns, target, r)
	if err != nil {
		return zero, err
	}
	return scanRow[T](m, resp.Values[i]), nil
}
