package render

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"
)

// formatLiteral renders a constant as ES|QL literal text, dispatching
// on the value's type:
//
//   - strings: quoted and escaped
//   - time.Time: ISO-8601 string literal (UTC, millisecond precision)
//   - time.Duration: ES|QL duration literal, largest whole unit
//   - floats: NaN and ±Infinity coerce to null
//   - fmt.Stringer and named string types: their name, quoted
//   - nil: null
//   - everything else: invariant string conversion
func formatLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return quoteString(val)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.FormatInt(int64(val), 10)
	case int8:
		return strconv.FormatInt(int64(val), 10)
	case int16:
		return strconv.FormatInt(int64(val), 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint8:
		return strconv.FormatUint(uint64(val), 10)
	case uint16:
		return strconv.FormatUint(uint64(val), 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return formatFloat(float64(val))
	case float64:
		return formatFloat(val)
	case time.Time:
		return quoteString(val.UTC().Format("2006-01-02T15:04:05.000Z"))
	case time.Duration:
		return formatDuration(val)
	case fmt.Stringer:
		return quoteString(val.String())
	}

	// Named string and integer types (enum-style) fall through to
	// kind-based dispatch: string kinds render as their name, integer
	// kinds keep their ordinal for numeric-mapped fields.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return quoteString(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return formatFloat(rv.Float())
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	}

	return fmt.Sprint(v)
}

// formatFloat renders a float, coercing NaN and ±Infinity to null - the
// engine has no literal spelling for them.
func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// durationUnits orders ES|QL temporal units largest-first for
// whole-unit selection.
var durationUnits = []struct {
	d    time.Duration
	name string
}{
	{24 * time.Hour, "days"},
	{time.Hour, "hours"},
	{time.Minute, "minutes"},
	{time.Second, "seconds"},
	{time.Millisecond, "milliseconds"},
}

// formatDuration renders a duration as an ES|QL duration literal using
// the largest unit that divides it evenly: 90 minutes stays "90
// minutes", 2 hours renders "2 hours".
func formatDuration(d time.Duration) string {
	neg := ""
	if d < 0 {
		neg = "-"
		d = -d
	}
	for _, u := range durationUnits {
		if d >= u.d && d%u.d == 0 {
			return fmt.Sprintf("%s%d %s", neg, d/u.d, u.name)
		}
	}
	// Sub-millisecond remainders round down to milliseconds.
	return fmt.Sprintf("%s%d milliseconds", neg, d/time.Millisecond)
}

// quoteString renders a double-quoted, escaped ES|QL string literal.
func quoteString(s string) string {
	var b []byte
	b = append(b, '"')
	for _, r := range s {
		switch r {
		case '"':
			b = append(b, '\\', '"')
		case '\\':
			b = append(b, '\\', '\\')
		case '\n':
			b = append(b, '\\', 'n')
		case '\r':
			b = append(b, '\\', 'r')
		case '\t':
			b = append(b, '\\', 't')
		default:
			if r < 0x20 {
				b = append(b, fmt.Sprintf("\\u%04x", r)...)
			} else {
				b = append(b, string(r)...)
			}
		}
	}
	b = append(b, '"')
	return string(b)
}
