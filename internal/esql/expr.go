package esql

// Expr represents an expression node inside a command.
//
// This is a sealed interface - only types in this package implement it.
// Nodes stay dumb data containers; all rendering logic lives in
// internal/render so the model can be compared and inspected freely.
//
// Expression types:
//   - FieldRef: resolved wire field name (possibly dotted)
//   - Literal: inlined constant, formatted type-directed at render time
//   - Param: named parameter placeholder (?name)
//   - Binary: infix operator over two operands
//   - Not: boolean negation
//   - IsNull: null test (field IS NULL)
//   - Call: function call from the marker-function table
//   - Interval: ES|QL duration literal (e.g. 3 days)
type Expr interface {
	expr() // Marker method - seals interface to this package
}

// BinaryOp is the operator of a Binary expression. Values are the exact
// ES|QL operator spellings - the renderer emits them verbatim.
type BinaryOp string

const (
	OpEq   BinaryOp = "=="
	OpNe   BinaryOp = "!="
	OpLt   BinaryOp = "<"
	OpLte  BinaryOp = "<="
	OpGt   BinaryOp = ">"
	OpGte  BinaryOp = ">="
	OpAnd  BinaryOp = "AND"
	OpOr   BinaryOp = "OR"
	OpLike BinaryOp = "LIKE"
	OpAdd  BinaryOp = "+"
	OpSub  BinaryOp = "-"
	OpMul  BinaryOp = "*"
	OpDiv  BinaryOp = "/"
	OpMod  BinaryOp = "%"
)

// FieldRef references a wire field by its resolved name.
//
// The name is fully resolved by the time it reaches the model: explicit
// override > naming policy > raw member name, with sub-member accessors
// already appended as dotted suffixes.
type FieldRef struct {
	Name string
}

func (FieldRef) expr() {}

// Literal is a constant value inlined into the query text.
//
// Value holds the native Go value; formatting is type-directed and
// happens entirely in the renderer (strings quoted, times as ISO-8601,
// durations as ES|QL intervals, NaN/Inf coerced to null).
type Literal struct {
	Value any
}

func (Literal) expr() {}

// Param is a named parameter placeholder, rendered as ?name.
//
// Params only appear when the builder runs in parameterize mode; the
// corresponding value lives in the query's Parameters set.
type Param struct {
	Name string
}

func (Param) expr() {}

// Binary applies an infix operator to two operands.
//
// Compound boolean trees are parenthesized by the renderer for
// precedence safety; the model itself records no grouping.
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (Binary) expr() {}

// Not negates a boolean expression, rendering as NOT (<expr>).
type Not struct {
	X Expr
}

func (Not) expr() {}

// IsNull tests an expression for null, rendering as <expr> IS NULL.
type IsNull struct {
	X Expr
}

func (IsNull) expr() {}

// Call invokes an ES|QL function.
//
// Func is the target function name exactly as emitted (e.g. "TO_LOWER",
// "DATE_EXTRACT", "COUNT"). Argument order is preserved 1:1 from the
// marker-function table.
type Call struct {
	Func string
	Args []Expr
}

func (Call) expr() {}

// Interval is an ES|QL duration literal, rendered as "<n> <unit>".
//
// Unit is an ES|QL temporal unit name ("days", "hours", ...). N is
// always non-negative: the builder collapses negative offsets into a
// subtraction around the interval.
type Interval struct {
	N    int64
	Unit string
}

func (Interval) expr() {}
