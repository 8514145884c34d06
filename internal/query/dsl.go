package query

import "github.com/roach88/esquel/internal/esql"

// Expr is a node of the predicate/projection DSL.
//
// This is a sealed interface - only types in this package implement it.
// DSL nodes are unresolved: member paths still carry Go member names and
// values still carry native Go values. Build resolves them against the
// chain's FieldMetadataResolver into esql.Expr nodes.
//
// The DSL stands in for the expression trees of the original operator
// surface: instead of introspecting closures, callers compose explicit
// nodes (Eq, And, Contains, ...) over F/V leaves.
type Expr interface {
	dslExpr() // Marker method - seals interface to this package
}

type (
	// fieldExpr references a member path on the row type (F) or, when
	// side is set, on a join side (OuterF/InnerF).
	fieldExpr struct {
		path []string
		side joinSide
	}

	// colExpr references a raw output column by name, e.g. one
	// declared by a prior Row or Eval.
	colExpr struct {
		name string
	}

	// valueExpr is a constant. In parameterize mode it is hoisted to a
	// named parameter; hint carries the preferred parameter name.
	valueExpr struct {
		v    any
		hint string
	}

	// keyExpr references the i-th GroupBy key inside a grouped
	// projection.
	keyExpr struct {
		i int
	}

	// binExpr applies an infix operator.
	binExpr struct {
		op   esql.BinaryOp
		l, r Expr
	}

	// notExpr negates a boolean expression.
	notExpr struct {
		x Expr
	}

	// likeExpr is a *-wrapped LIKE pattern match (Contains and
	// friends). The pattern is always inlined, never parameterized.
	likeExpr struct {
		f       Expr
		pattern string
	}

	// nullOrEmptyExpr expands to (f IS NULL OR f == "").
	nullOrEmptyExpr struct {
		f Expr
	}

	// callExpr is a marker-function call, mapped through the static
	// function table at translation time.
	callExpr struct {
		name string
		args []Expr
	}

	// dateExtractExpr extracts a date part via DATE_EXTRACT.
	dateExtractExpr struct {
		unit string
		f    Expr
	}

	// dateAddExpr offsets a temporal expression by a duration. A
	// negative n collapses to subtraction at translation time.
	dateAddExpr struct {
		f    Expr
		n    int64
		unit string
	}

	// nowExpr is the current timestamp, rendering as NOW().
	nowExpr struct{}
)

func (fieldExpr) dslExpr()       {}
func (colExpr) dslExpr()         {}
func (valueExpr) dslExpr()       {}
func (keyExpr) dslExpr()         {}
func (binExpr) dslExpr()         {}
func (notExpr) dslExpr()         {}
func (likeExpr) dslExpr()        {}
func (nullOrEmptyExpr) dslExpr() {}
func (callExpr) dslExpr()        {}
func (dateExtractExpr) dslExpr() {}
func (dateAddExpr) dslExpr()     {}
func (nowExpr) dslExpr()         {}

// joinSide tags a field reference with the join side it binds to.
type joinSide int

const (
	sideRow   joinSide = iota // regular row member
	sideOuter                 // left side of a lookup join predicate
	sideInner                 // right side of a lookup join predicate
)

// F references a member of the row type. Additional path segments
// descend into sub-members, appending dotted suffixes to the resolved
// field name:
//
//	F("Level")          // -> log.level (via resolver)
//	F("Net", "Port")    // -> net.port
func F(path ...string) Expr { return fieldExpr{path: path} }

// Col references an output column by its raw name, such as a column
// declared by a prior Row command. No resolution is applied.
func Col(name string) Expr { return colExpr{name: name} }

// V is a constant value. Inlined as a type-directed literal, or hoisted
// to a deduplicated named parameter when the chain is parameterized.
func V(v any) Expr { return valueExpr{v: v} }

// Key references the group key of a GroupBy(...) chain. For composite
// keys, use KeyAt.
func Key() Expr { return keyExpr{i: 0} }

// KeyAt references the i-th GroupBy key (0-based) of a composite group.
func KeyAt(i int) Expr { return keyExpr{i: i} }

// coerce lifts a raw Go value into a DSL node; Expr values pass
// through untouched so comparison helpers accept both forms.
func coerce(v any) Expr {
	if e, ok := v.(Expr); ok {
		return e
	}
	return valueExpr{v: v}
}

// Comparison operators. Either operand may be an Expr or a raw Go
// value; raw values become literals (or parameters).

func Eq(a, b any) Expr  { return binExpr{op: esql.OpEq, l: coerce(a), r: coerce(b)} }
func Ne(a, b any) Expr  { return binExpr{op: esql.OpNe, l: coerce(a), r: coerce(b)} }
func Lt(a, b any) Expr  { return binExpr{op: esql.OpLt, l: coerce(a), r: coerce(b)} }
func Lte(a, b any) Expr { return binExpr{op: esql.OpLte, l: coerce(a), r: coerce(b)} }
func Gt(a, b any) Expr  { return binExpr{op: esql.OpGt, l: coerce(a), r: coerce(b)} }
func Gte(a, b any) Expr { return binExpr{op: esql.OpGte, l: coerce(a), r: coerce(b)} }

// Boolean composition. Compound trees are parenthesized for precedence
// safety by the renderer.

// And composes predicates with AND. Requires at least one operand.
func And(xs ...Expr) Expr { return composeBool(esql.OpAnd, xs) }

// Or composes predicates with OR. Requires at least one operand.
func Or(xs ...Expr) Expr { return composeBool(esql.OpOr, xs) }

// Not negates a predicate.
func Not(x Expr) Expr { return notExpr{x: x} }

func composeBool(op esql.BinaryOp, xs []Expr) Expr {
	switch len(xs) {
	case 0:
		// Build reports this as an unsupported shape.
		return binExpr{op: op}
	case 1:
		return xs[0]
	}
	acc := xs[0]
	for _, x := range xs[1:] {
		acc = binExpr{op: op, l: acc, r: x}
	}
	return acc
}

// Arithmetic operators.

func Add(a, b any) Expr { return binExpr{op: esql.OpAdd, l: coerce(a), r: coerce(b)} }
func Sub(a, b any) Expr { return binExpr{op: esql.OpSub, l: coerce(a), r: coerce(b)} }
func Mul(a, b any) Expr { return binExpr{op: esql.OpMul, l: coerce(a), r: coerce(b)} }
func Div(a, b any) Expr { return binExpr{op: esql.OpDiv, l: coerce(a), r: coerce(b)} }
func Mod(a, b any) Expr { return binExpr{op: esql.OpMod, l: coerce(a), r: coerce(b)} }

// String predicates, all rendered as LIKE with *-wrapped patterns.

// Contains matches fields containing the substring.
func Contains(f Expr, s string) Expr { return likeExpr{f: f, pattern: "*" + s + "*"} }

// StartsWith matches fields beginning with the prefix.
func StartsWith(f Expr, s string) Expr { return likeExpr{f: f, pattern: s + "*"} }

// EndsWith matches fields ending with the suffix.
func EndsWith(f Expr, s string) Expr { return likeExpr{f: f, pattern: "*" + s} }

// Like matches a raw LIKE pattern without wrapping.
func Like(f Expr, pattern string) Expr { return likeExpr{f: f, pattern: pattern} }

// IsNullOrEmpty expands to (field IS NULL OR field == "").
func IsNullOrEmpty(f Expr) Expr { return nullOrEmptyExpr{f: f} }

// IsNull tests a field for null.
func IsNull(f Expr) Expr { return callExpr{name: markerIsNull, args: []Expr{f}} }

// Projection is one item of a Select/Keep/GroupBy-Select projection: an
// output name plus the expression producing it.
type Projection struct {
	name string
	expr Expr
	bare bool // true when produced by Pick (output name = wire name)
}

// As projects an expression under an explicit output name.
func As(name string, e Expr) Projection {
	return Projection{name: name, expr: e}
}

// Pick projects a member under its own resolved wire name. A Pick is
// never a rename, so an all-Pick projection compiles to a plain KEEP.
func Pick(path ...string) Projection {
	return Projection{expr: fieldExpr{path: path}, bare: true}
}
