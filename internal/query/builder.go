package query

import (
	"reflect"

	"github.com/roach88/esquel/internal/esql"
	"github.com/roach88/esquel/internal/schema"
)

// Builder is a typed, fluent operator chain over a document type T.
//
// Each fluent call records an operator and returns a NEW builder; the
// receiver is never mutated, so a chain prefix can be extended in
// multiple directions without perturbing queries already built from it.
//
// Build walks the recorded operators and produces a fresh esql.Query on
// every call. Translation is synchronous and pure apart from the
// per-call parameter collector; independent builders are safe to use
// concurrently.
type Builder[T any] struct {
	resolver schema.Resolver
	rowType  reflect.Type // nil for Row-sourced chains

	pattern string       // From source ("" for Row chains)
	rowCols []Projection // Row source (nil for From chains)
	isRow   bool

	ops          []op
	parameterize bool
}

// op is one recorded operator call.
type op interface{ operator() }

type (
	whereOp      struct{ cond Expr }
	selectOp     struct{ items []Projection }
	statsOp      struct {
		keys  []Expr
		items []Projection
	}
	sortOp struct {
		field Expr
		desc  bool
	}
	takeOp struct{ n int64 }
	keepOp struct{ items []any }
	dropOp struct{ items []any }
	completionOp struct {
		prompt      Expr
		inferenceID string
		column      string
	}
	joinOp struct {
		lookup Lookup
		on     JoinOn
	}
)

func (whereOp) operator()      {}
func (selectOp) operator()     {}
func (statsOp) operator()      {}
func (sortOp) operator()       {}
func (takeOp) operator()       {}
func (keepOp) operator()       {}
func (dropOp) operator()       {}
func (completionOp) operator() {}
func (joinOp) operator()       {}

// From starts a chain over T, reading the index pattern from the
// resolver. Chains with no resolvable pattern fail at Build time with
// ErrCodeMissingSource.
func From[T any](r schema.Resolver) *Builder[T] {
	var zero T
	typ := reflect.TypeOf(zero)
	return &Builder[T]{
		resolver: r,
		rowType:  typ,
		pattern:  r.IndexPattern(typ),
	}
}

// FromIndex starts a chain over T with an explicit index pattern,
// overriding whatever the resolver declares.
func FromIndex[T any](r schema.Resolver, pattern string) *Builder[T] {
	var zero T
	return &Builder[T]{
		resolver: r,
		rowType:  reflect.TypeOf(zero),
		pattern:  pattern,
	}
}

// Row starts a chain from a single literal row instead of an index.
// Members of the row are referenced downstream via Col.
func Row(cols ...Projection) *Builder[struct{}] {
	return &Builder[struct{}]{rowCols: cols, isRow: true}
}

// with returns a copy of the builder with one more operator recorded.
// The ops slice is copied in full: appends on a shared backing array
// would let sibling chains overwrite each other.
func (b *Builder[T]) with(o op) *Builder[T] {
	nb := *b
	nb.ops = make([]op, len(b.ops), len(b.ops)+1)
	copy(nb.ops, b.ops)
	nb.ops = append(nb.ops, o)
	return &nb
}

// Parameterize switches the chain to parameterize mode: constants are
// hoisted to deduplicated ?name placeholders instead of being inlined.
func (b *Builder[T]) Parameterize() *Builder[T] {
	nb := *b
	nb.ops = append([]op(nil), b.ops...)
	nb.parameterize = true
	return &nb
}

// Where appends one WHERE command. Consecutive calls are never merged.
func (b *Builder[T]) Where(cond Expr) *Builder[T] {
	return b.with(whereOp{cond: cond})
}

// Select projects the row shape. Compiles to a bare KEEP when every
// item is a same-named direct field access, otherwise to an EVAL for
// the renamed/computed items followed by a KEEP in declared order.
func (b *Builder[T]) Select(items ...Projection) *Builder[T] {
	return b.with(selectOp{items: items})
}

// GroupBy groups rows by one or more field keys. The returned group
// must be completed with Select to produce a STATS command.
func (b *Builder[T]) GroupBy(keys ...Expr) *Grouped[T] {
	return &Grouped[T]{b: b, keys: keys}
}

// Grouped is an intermediate chain state between GroupBy and its
// aggregating Select.
type Grouped[T any] struct {
	b    *Builder[T]
	keys []Expr
}

// Select completes a GroupBy with an aggregating projection. Items must
// either reference the group key (Key/KeyAt) or call an aggregator.
func (g *Grouped[T]) Select(items ...Projection) *Builder[T] {
	return g.b.with(statsOp{keys: g.keys, items: items})
}

// OrderBy sorts ascending by a field. Together with ThenBy variants it
// accumulates into a single SORT command, in call order.
func (b *Builder[T]) OrderBy(field Expr) *Builder[T] {
	return b.with(sortOp{field: field})
}

// OrderByDesc sorts descending by a field.
func (b *Builder[T]) OrderByDesc(field Expr) *Builder[T] {
	return b.with(sortOp{field: field, desc: true})
}

// ThenBy adds a subsequent ascending sort key.
func (b *Builder[T]) ThenBy(field Expr) *Builder[T] {
	return b.with(sortOp{field: field})
}

// ThenByDesc adds a subsequent descending sort key.
func (b *Builder[T]) ThenByDesc(field Expr) *Builder[T] {
	return b.with(sortOp{field: field, desc: true})
}

// Take records a LIMIT. Every call is recorded; only the last renders.
func (b *Builder[T]) Take(n int64) *Builder[T] {
	return b.with(takeOp{n: n})
}

// Keep restricts output columns. Items may be raw column names
// (strings) or projections; renamed/computed projections follow the
// same EVAL-then-KEEP rule as Select.
func (b *Builder[T]) Keep(items ...any) *Builder[T] {
	return b.with(keepOp{items: items})
}

// Drop removes output columns. Accepts the same item forms as Keep.
func (b *Builder[T]) Drop(items ...any) *Builder[T] {
	return b.with(dropOp{items: items})
}

// Completion appends a COMPLETION command. The prompt may be a literal
// (V), a field accessor (F), or a prior Row-declared column (Col).
func (b *Builder[T]) Completion(prompt Expr, inferenceID string, column ...string) *Builder[T] {
	col := ""
	if len(column) > 0 {
		col = column[0]
	}
	return b.with(completionOp{prompt: prompt, inferenceID: inferenceID, column: col})
}

// LookupJoin enriches rows from a lookup index. Chained calls produce
// chained LOOKUP JOIN commands in call order. The joined row shape is
// left unchanged (identity result): project afterwards with Select to
// narrow it.
func (b *Builder[T]) LookupJoin(lookup Lookup, on JoinOn) *Builder[T] {
	return b.with(joinOp{lookup: lookup, on: on})
}

// Build translates the recorded chain into a fresh Query Model value.
// Translation errors (unsupported shapes, unmapped functions, malformed
// joins) surface here, synchronously.
func (b *Builder[T]) Build() (esql.Query, error) {
	t := &translator{resolver: b.resolver, rowType: b.rowType}

	var params *esql.Parameters
	if b.parameterize {
		params = esql.NewParameters()
		t.params = params
	}

	var cmds []esql.Command

	src, err := b.buildSource(t)
	if err != nil {
		return esql.Query{}, err
	}
	cmds = append(cmds, src)

	sortIdx := -1 // position of the accumulating Sort command
	for _, o := range b.ops {
		switch rec := o.(type) {
		case whereOp:
			cond, err := t.expr(rec.cond)
			if err != nil {
				return esql.Query{}, err
			}
			cmds = append(cmds, esql.Where{Cond: cond})

		case selectOp:
			out, err := translateProjection(t, rec.items)
			if err != nil {
				return esql.Query{}, err
			}
			cmds = append(cmds, out...)

		case statsOp:
			stats, err := translateStats(t, rec.keys, rec.items)
			if err != nil {
				return esql.Query{}, err
			}
			cmds = append(cmds, stats)

		case sortOp:
			key, err := translateSortKey(t, rec)
			if err != nil {
				return esql.Query{}, err
			}
			if sortIdx < 0 {
				cmds = append(cmds, esql.Sort{Keys: []esql.SortKey{key}})
				sortIdx = len(cmds) - 1
			} else {
				s := cmds[sortIdx].(esql.Sort)
				s.Keys = append(s.Keys, key)
				cmds[sortIdx] = s
			}

		case takeOp:
			cmds = append(cmds, esql.Limit{N: rec.n})

		case keepOp:
			out, err := translateKeepDrop(t, rec.items, false)
			if err != nil {
				return esql.Query{}, err
			}
			cmds = append(cmds, out...)

		case dropOp:
			out, err := translateKeepDrop(t, rec.items, true)
			if err != nil {
				return esql.Query{}, err
			}
			cmds = append(cmds, out...)

		case completionOp:
			cmd, err := translateCompletion(t, rec)
			if err != nil {
				return esql.Query{}, err
			}
			cmds = append(cmds, cmd)

		case joinOp:
			cmd, err := translateJoin(t, rec)
			if err != nil {
				return esql.Query{}, err
			}
			cmds = append(cmds, cmd)
		}
	}

	q := esql.Query{Commands: cmds, Params: params}
	if err := esql.Validate(q); err != nil {
		return esql.Query{}, err
	}
	return q, nil
}

// buildSource translates the leading From or Row command.
func (b *Builder[T]) buildSource(t *translator) (esql.Command, error) {
	if b.isRow {
		cols := make([]esql.Column, len(b.rowCols))
		for i, p := range b.rowCols {
			if p.name == "" {
				return nil, newTranslationError(ErrCodeUnsupportedExpression, "",
					"Row columns require explicit names (use As)")
			}
			v, err := t.expr(p.expr)
			if err != nil {
				return nil, err
			}
			cols[i] = esql.Column{Name: p.name, Value: v}
		}
		return esql.Row{Columns: cols}, nil
	}

	if b.pattern == "" {
		return nil, newTranslationError(ErrCodeMissingSource, typeNameOf(b.rowType),
			"no index pattern: resolver declares none and no explicit pattern was given")
	}
	return esql.From{Pattern: b.pattern}, nil
}

// translateSortKey resolves one OrderBy/ThenBy call. Sort keys must be
// plain field references.
func translateSortKey(t *translator, rec sortOp) (esql.SortKey, error) {
	resolved, err := t.expr(rec.field)
	if err != nil {
		return esql.SortKey{}, err
	}
	ref, ok := resolved.(esql.FieldRef)
	if !ok {
		return esql.SortKey{}, newTranslationError(ErrCodeUnsupportedExpression,
			"OrderBy", "sort keys must be field references")
	}
	return esql.SortKey{Field: ref.Name, Desc: rec.desc}, nil
}

// translateCompletion resolves a Completion operator. The prompt is
// restricted to a literal, a field accessor, or a raw column reference.
func translateCompletion(t *translator, rec completionOp) (esql.Command, error) {
	switch rec.prompt.(type) {
	case valueExpr, fieldExpr, colExpr:
	default:
		return nil, newTranslationError(ErrCodeUnsupportedExpression, "Completion",
			"prompt must be a literal, field accessor, or column reference")
	}
	prompt, err := t.expr(rec.prompt)
	if err != nil {
		return nil, err
	}
	return esql.Completion{
		Prompt:      prompt,
		InferenceID: rec.inferenceID,
		Column:      rec.column,
	}, nil
}

func typeNameOf(t reflect.Type) string {
	if t == nil {
		return "<row>"
	}
	return t.Name()
}
