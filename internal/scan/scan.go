package scan

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/roach88/esquel/internal/execute"
	"github.com/roach88/esquel/internal/schema"
)

// Scalar coerces the first cell of a response to T. Returns ErrNoRows
// when the response is empty.
func Scalar[T any](resp *execute.Response) (T, error) {
	var zero T
	target := reflect.TypeOf(zero)
	if target == nil {
		return zero, fmt.Errorf("cannot scan into interface type")
	}
	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		return zero, ErrNoRows
	}
	out := coerce(resp.Values[0][0], target)
	return out.Interface().(T), nil
}

// Slice materializes every row of a response into a []T.
//
// Struct targets are matched by column name (case-insensitive, wire
// names resolved through r, ignored members skipped); when no column
// matches any field by name, matching falls back to positional order.
// Unmatched fields keep their zero values; unparseable cells degrade
// to zero values without error.
//
// Non-struct targets treat the response as single-column and coerce
// each row's first cell.
func Slice[T any](resp *execute.Response, r schema.Resolver) ([]T, error) {
	var zero T
	target := reflect.TypeOf(zero)

	if target == nil || target.Kind() != reflect.Struct || isScalarStruct(target) {
		return scalarSlice[T](resp)
	}

	m, err := buildMapping(resp.Columns, target, r)
	if err != nil {
		return nil, err
	}

	out := make([]T, len(resp.Values))
	for i, row := range resp.Values {
		out[i] = scanRow[T](m, row)
	}
	return out, nil
}

// scalarSlice coerces the first cell of every row.
func scalarSlice[T any](resp *execute.Response) ([]T, error) {
	var zero T
	target := reflect.TypeOf(zero)
	if target == nil {
		return nil, fmt.Errorf("cannot scan into interface type")
	}

	out := make([]T, len(resp.Values))
	for i, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		out[i] = coerce(row[0], target).Interface().(T)
	}
	return out, nil
}

// isScalarStruct reports struct types that scan as single values
// (time.Time, uuid.UUID) rather than field-by-field.
func isScalarStruct(t reflect.Type) bool {
	return t == timeType || t == uuidType
}

// mapping binds response columns to struct field indices for one scan
// call. Built once per call and discarded with it.
type mapping struct {
	target reflect.Type
	// byColumn[i] is the field index for column i, or -1.
	byColumn []int
}

// buildMapping matches columns to settable fields.
//
// Name matching is case-insensitive over resolved wire names (explicit
// override > naming policy), with the raw Go member name accepted as a
// fallback spelling. Ignored members never match. When not a single
// column matches by name, columns map to exported fields positionally.
func buildMapping(cols []execute.Column, target reflect.Type, r schema.Resolver) (*mapping, error) {
	type fieldEntry struct {
		index int
		names []string // candidate spellings, lowercased
	}

	var fields []fieldEntry
	for i := 0; i < target.NumField(); i++ {
		f := target.Field(i)
		if !f.IsExported() {
			continue
		}
		if r != nil && r.IsIgnored(target, f.Name) {
			continue
		}

		names := []string{strings.ToLower(f.Name)}
		if r != nil {
			if wire, err := r.FieldName(target, f.Name); err == nil {
				names = append([]string{strings.ToLower(wire)}, names...)
			}
		}
		fields = append(fields, fieldEntry{index: i, names: names})
	}

	m := &mapping{target: target, byColumn: make([]int, len(cols))}
	claimed := make(map[int]bool, len(fields))
	matched := false

	for ci, col := range cols {
		m.byColumn[ci] = -1
		want := strings.ToLower(col.Name)
		for _, fe := range fields {
			if claimed[fe.index] {
				continue
			}
			for _, name := range fe.names {
				if name == want {
					m.byColumn[ci] = fe.index
					claimed[fe.index] = true
					matched = true
					break
				}
			}
			if claimed[fe.index] {
				break
			}
		}
	}

	if !matched {
		// Positional fallback: column i fills the i-th exported field.
		for ci := range m.byColumn {
			if ci < len(fields) {
				m.byColumn[ci] = fields[ci].index
			} else {
				m.byColumn[ci] = -1
			}
		}
	}

	return m, nil
}

// scanRow constructs one T and assigns each matched column.
func scanRow[T any](m *mapping, row []any) T {
	out := reflect.New(m.target).Elem()
	for ci, fi := range m.byColumn {
		if fi < 0 || ci >= len(row) {
			continue
		}
		field := out.Field(fi)
		field.Set(coerce(row[ci], field.Type()))
	}
	return out.Interface().(T)
}
