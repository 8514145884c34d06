package query

// markerIsNull is the internal pseudo-function behind IsNull; it
// translates to a dedicated IS NULL node rather than a call.
const markerIsNull = "__is_null"

// functionTable maps Go-facing marker-function names to ES|QL function
// names. Argument order maps 1:1 - no reordering, no defaults.
//
// A marker function exists only to be pattern-matched by the translator;
// calls outside this table are an ErrCodeUnmappedFunction translation
// error, never silently passed through.
var functionTable = map[string]string{
	// String family.
	"Concat":    "CONCAT",
	"Length":    "LENGTH",
	"ToLower":   "TO_LOWER",
	"ToUpper":   "TO_UPPER",
	"Trim":      "TRIM",
	"LTrim":     "LTRIM",
	"RTrim":     "RTRIM",
	"Substring": "SUBSTRING",
	"Replace":   "REPLACE",
	"Split":     "SPLIT",
	"Left":      "LEFT",
	"Right":     "RIGHT",
	"Reverse":   "REVERSE",
	"Locate":    "LOCATE",

	// Math family.
	"Abs":    "ABS",
	"Ceil":   "CEIL",
	"Floor":  "FLOOR",
	"Round":  "ROUND",
	"Sqrt":   "SQRT",
	"Cbrt":   "CBRT",
	"Pow":    "POW",
	"Log":    "LOG",
	"Log10":  "LOG10",
	"Exp":    "EXP",
	"Signum": "SIGNUM",

	// Search family.
	"Match":       "MATCH",
	"MatchPhrase": "MATCH_PHRASE",
	"QueryString": "QSTR",
	"Kql":         "KQL",

	// IP family.
	"CidrMatch": "CIDR_MATCH",
	"IpPrefix":  "IP_PREFIX",

	// Cast family.
	"ToString":   "TO_STRING",
	"ToInteger":  "TO_INTEGER",
	"ToLong":     "TO_LONG",
	"ToDouble":   "TO_DOUBLE",
	"ToBoolean":  "TO_BOOLEAN",
	"ToDatetime": "TO_DATETIME",
	"ToIp":       "TO_IP",
	"ToVersion":  "TO_VERSION",

	// Null-handling family.
	"Coalesce": "COALESCE",
	"Greatest": "GREATEST",
	"Least":    "LEAST",

	// Aggregate family (valid inside GroupBy projections).
	"Count":         "COUNT",
	"CountDistinct": "COUNT_DISTINCT",
	"Sum":           "SUM",
	"Average":       "AVG",
	"Min":           "MIN",
	"Max":           "MAX",
	"Median":        "MEDIAN",
	"Percentile":    "PERCENTILE",
	"StdDev":        "STD_DEV",
	"Values":        "VALUES",
	"Top":           "TOP",
}

// aggregateFunctions is the subset of the table that only makes sense
// inside a STATS projection.
var aggregateFunctions = map[string]bool{
	"Count":         true,
	"CountDistinct": true,
	"Sum":           true,
	"Average":       true,
	"Min":           true,
	"Max":           true,
	"Median":        true,
	"Percentile":    true,
	"StdDev":        true,
	"Values":        true,
	"Top":           true,
}

// Fn is the generic marker-function call. Name is the Go-facing name
// looked up in the function table at Build time; an unmapped name is a
// translation error.
func Fn(name string, args ...any) Expr {
	coerced := make([]Expr, len(args))
	for i, a := range args {
		coerced[i] = coerce(a)
	}
	return callExpr{name: name, args: coerced}
}

// Named helpers for the common marker functions. Each is exactly
// Fn(name, args...) - the table stays the single source of truth.

func Concat(args ...any) Expr         { return Fn("Concat", args...) }
func Length(f Expr) Expr              { return Fn("Length", f) }
func ToLower(f Expr) Expr             { return Fn("ToLower", f) }
func ToUpper(f Expr) Expr             { return Fn("ToUpper", f) }
func Trim(f Expr) Expr                { return Fn("Trim", f) }
func Substring(f Expr, at, n any) Expr { return Fn("Substring", f, at, n) }
func Replace(f Expr, old, new any) Expr { return Fn("Replace", f, old, new) }

func Abs(f Expr) Expr        { return Fn("Abs", f) }
func Round(args ...any) Expr { return Fn("Round", args...) }
func Pow(a, b any) Expr      { return Fn("Pow", a, b) }

// Match is full-text search over a field.
func Match(f Expr, text string) Expr { return Fn("Match", f, text) }

// QueryString is a Lucene query-string search.
func QueryString(q string) Expr { return Fn("QueryString", q) }

// CidrMatch tests an IP field against one or more CIDR blocks.
func CidrMatch(f Expr, blocks ...any) Expr {
	args := append([]any{any(f)}, blocks...)
	return Fn("CidrMatch", args...)
}

func ToString(f Expr) Expr   { return Fn("ToString", f) }
func ToLong(f Expr) Expr     { return Fn("ToLong", f) }
func ToDouble(f Expr) Expr   { return Fn("ToDouble", f) }
func ToDatetime(f Expr) Expr { return Fn("ToDatetime", f) }

// Coalesce returns the first non-null argument.
func Coalesce(args ...any) Expr { return Fn("Coalesce", args...) }

// Aggregators. Count with no argument counts rows (COUNT(*)).

func Count(args ...any) Expr       { return Fn("Count", args...) }
func CountDistinct(f Expr) Expr    { return Fn("CountDistinct", f) }
func Sum(f Expr) Expr              { return Fn("Sum", f) }
func Average(f Expr) Expr          { return Fn("Average", f) }
func Min(f Expr) Expr              { return Fn("Min", f) }
func Max(f Expr) Expr              { return Fn("Max", f) }
func Median(f Expr) Expr           { return Fn("Median", f) }
func Percentile(f Expr, p any) Expr { return Fn("Percentile", f, p) }
