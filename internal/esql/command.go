package esql

// Command represents one pipeline command in an ES|QL query.
//
// This is a sealed interface - only types in this package implement it.
// The marker method pattern prevents external implementations and enables
// exhaustive type switches in the renderer.
//
// Source commands (From, Row) may only appear first. Every other command
// is a processing command and may appear any number of times, in any
// order. The model records exactly what the builder produced; semantic
// rules (one source, Limit last-wins) live in Validate and the renderer.
type Command interface {
	command() // Marker method - seals interface to this package
}

// Column is a named expression inside Row, Eval, or Stats.
//
// Name may be empty for Stats BY keys whose alias equals the underlying
// field name, in which case the renderer emits the bare field.
type Column struct {
	Name  string // Output column name ("" = bare field)
	Value Expr   // Expression producing the column
}

// SortKey is one key of a Sort command.
type SortKey struct {
	Field string // Resolved wire field name
	Desc  bool   // true = DESC suffix, false = ASC (default, unsuffixed)
}

// From is the source command reading an index pattern.
//
// Renders as:
//
//	FROM <pattern>
//
// Pattern is emitted verbatim - index patterns containing * or ? are
// never escaped.
type From struct {
	Pattern string // Index name or wildcard pattern (e.g. "logs-*")
}

func (From) command() {}

// Row is the source command producing a single literal row.
//
// Renders as:
//
//	ROW name1 = expr1, name2 = expr2
type Row struct {
	Columns []Column
}

func (Row) command() {}

// Where filters rows by a boolean condition.
//
// Renders as:
//
//	WHERE <cond>
//
// One Where per builder call - consecutive filters are never merged.
type Where struct {
	Cond Expr
}

func (Where) command() {}

// Eval appends computed columns.
//
// Renders as:
//
//	EVAL name1 = expr1, name2 = expr2
//
// Produced by the projection translator for renamed or computed members;
// a same-named direct field access never generates an Eval.
type Eval struct {
	Columns []Column
}

func (Eval) command() {}

// Stats aggregates rows, optionally grouped.
//
// Renders as:
//
//	STATS alias1 = AGG(...), alias2 = AGG(...) BY key1, key2
//
// Aggs are emitted in projection order, By keys in GroupBy key order.
// A By column with an empty Name (or a Name equal to the field it
// references) renders as the bare field.
type Stats struct {
	Aggs []Column
	By   []Column
}

func (Stats) command() {}

// Sort orders rows by one or more keys.
//
// Renders as:
//
//	SORT field1, field2 DESC
//
// A single Sort accumulates every OrderBy/ThenBy call in call order.
type Sort struct {
	Keys []SortKey
}

func (Sort) command() {}

// Limit caps the number of returned rows.
//
// Renders as:
//
//	LIMIT <n>
//
// Every Take call is recorded as its own Limit, but only the last one
// in the command list renders (last wins).
type Limit struct {
	N int64
}

func (Limit) command() {}

// Keep restricts output to the named columns, in order.
//
// Renders as:
//
//	KEEP field1, field2
type Keep struct {
	Fields []string
}

func (Keep) command() {}

// Drop removes the named columns.
//
// Renders as:
//
//	DROP field1, field2
type Drop struct {
	Fields []string
}

func (Drop) command() {}

// Completion runs an inference completion over a prompt expression.
//
// Renders as:
//
//	COMPLETION <column> = <prompt> WITH { "inference_id" : "<id>" }
//
// when Column is set, otherwise:
//
//	COMPLETION <prompt> WITH { "inference_id" : "<id>" }
//
// Prompt may be a string literal, a field reference, or a column
// reference declared by a prior Row command.
type Completion struct {
	Prompt      Expr
	InferenceID string
	Column      string // Optional output column ("" = engine default)
}

func (Completion) command() {}

// LookupJoin enriches rows with matching rows from a lookup index.
//
// Renders as:
//
//	LOOKUP JOIN <index> ON <field>            (shorthand form)
//	LOOKUP JOIN <index> ON <on-condition>     (predicate form)
//
// Shorthand is used when both join keys resolve to the same wire field
// name; exactly one of Shorthand/On is set.
type LookupJoin struct {
	Index     string
	Shorthand string // Bare field name; "" when On is set
	On        Expr   // Join predicate; nil when Shorthand is set
}

func (LookupJoin) command() {}
