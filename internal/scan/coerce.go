package scan

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
)

var (
	timeType     = reflect.TypeOf(time.Time{})
	uuidType     = reflect.TypeOf(uuid.UUID{})
	durationType = reflect.TypeOf(time.Duration(0))
)

// coerce converts a response cell to the target type, returning the
// target's zero value on any failure. Coercion never reports errors:
// permissive degradation is the contract.
func coerce(v any, target reflect.Type) reflect.Value {
	out, _ := coerceValue(v, target)
	return out
}

// coerceValue additionally reports whether the cell converted. Pointer
// targets need the distinction: an unparseable cell must leave them
// nil, not pointing at a zero element.
func coerceValue(v any, target reflect.Type) (reflect.Value, bool) {
	zero := reflect.Zero(target)
	if v == nil {
		return zero, true
	}

	// Tagged-value containers are unwrapped by kind before coercion.
	v = unwrap(v)
	if v == nil {
		return zero, true
	}

	// Nullable targets: coerce the element and take its address.
	if target.Kind() == reflect.Pointer {
		elem, ok := coerceValue(v, target.Elem())
		if !ok {
			return zero, false
		}
		out := reflect.New(target.Elem())
		out.Elem().Set(elem)
		return out, true
	}

	switch target {
	case timeType:
		if t, ok := coerceTime(v); ok {
			return reflect.ValueOf(t), true
		}
		return zero, false
	case uuidType:
		if s, ok := v.(string); ok {
			if id, err := uuid.Parse(s); err == nil {
				return reflect.ValueOf(id), true
			}
		}
		return zero, false
	case durationType:
		if s, ok := v.(string); ok {
			if d, err := time.ParseDuration(s); err == nil {
				return reflect.ValueOf(d), true
			}
		}
		if n, ok := toInt64(v); ok {
			return reflect.ValueOf(time.Duration(n) * time.Millisecond), true
		}
		return zero, false
	}

	switch target.Kind() {
	case reflect.String:
		if s, ok := toString(v); ok {
			return reflect.ValueOf(s).Convert(target), true
		}
		return zero, false

	case reflect.Bool:
		switch b := v.(type) {
		case bool:
			return reflect.ValueOf(b).Convert(target), true
		case string:
			if parsed, err := strconv.ParseBool(b); err == nil {
				return reflect.ValueOf(parsed).Convert(target), true
			}
		}
		return zero, false

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n, ok := toInt64(v); ok {
			out := reflect.New(target).Elem()
			out.SetInt(n)
			return out, true
		}
		return zero, false

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n, ok := toInt64(v); ok && n >= 0 {
			out := reflect.New(target).Elem()
			out.SetUint(uint64(n))
			return out, true
		}
		return zero, false

	case reflect.Float32, reflect.Float64:
		if f, ok := toFloat64(v); ok {
			out := reflect.New(target).Elem()
			out.SetFloat(f)
			return out, true
		}
		return zero, false

	case reflect.Interface:
		if target.NumMethod() == 0 {
			return reflect.ValueOf(v), true
		}
		return zero, false

	default:
		rv := reflect.ValueOf(v)
		if rv.Type().AssignableTo(target) {
			return rv, true
		}
		if rv.Type().ConvertibleTo(target) {
			return rv.Convert(target), true
		}
		return zero, false
	}
}

// unwrap extracts the payload of a generic tagged-value container
// ({"kind": ..., "value": ...}); anything else passes through.
func unwrap(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	if inner, ok := m["value"]; ok {
		return inner
	}
	return v
}

// toString converts scalar cells to strings. Enum names and numeric
// text both pass through; composite values do not.
func toString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case fmt.Stringer:
		return s.String(), true
	case bool:
		return strconv.FormatBool(s), true
	case int64, int, float64, float32, json.Number:
		return fmt.Sprint(s), true
	}
	return "", false
}

// toInt64 widens numeric cells to int64. Strings parse with invariant
// formatting; enum ordinals arrive as numbers and take this path too.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	case float32:
		return int64(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if f, err := n.Float64(); err == nil {
			return int64(f), true
		}
	case string:
		if i, err := strconv.ParseInt(n, 10, 64); err == nil {
			return i, true
		}
	}
	return 0, false
}

// toFloat64 widens numeric cells to float64.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f, true
		}
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// timeFormats are accepted ISO-8601 spellings, most specific first.
var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02",
}

// coerceTime parses date cells from ISO-8601 strings or epoch
// milliseconds.
func coerceTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range timeFormats {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	default:
		if n, ok := toInt64(v); ok {
			return time.UnixMilli(n).UTC(), true
		}
	}
	return time.Time{}, false
}
