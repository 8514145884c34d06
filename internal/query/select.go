package query

import "github.com/roach88/esquel/internal/esql"

// resolvedItem is one projection item after field resolution.
type resolvedItem struct {
	outName string    // emitted column name
	value   esql.Expr // producing expression
	rename  bool      // needs an EVAL before the KEEP
}

// resolveItems applies the rename rule to a projection.
//
// An item is a rename whenever its emitted name differs from the
// resolved wire field name of its source member, or it is a computed
// expression. A Pick is never a rename by construction. The distinction
// is purely about names, never structural.
func resolveItems(t *translator, items []Projection) ([]resolvedItem, error) {
	out := make([]resolvedItem, 0, len(items))
	for _, item := range items {
		value, err := t.expr(item.expr)
		if err != nil {
			return nil, err
		}

		ref, isField := value.(esql.FieldRef)
		switch {
		case item.bare:
			// Pick: output name is the resolved wire name itself.
			out = append(out, resolvedItem{outName: ref.Name, value: value})

		case isField:
			out = append(out, resolvedItem{
				outName: item.name,
				value:   value,
				rename:  item.name != ref.Name,
			})

		default:
			// Computed expression: always an EVAL.
			out = append(out, resolvedItem{outName: item.name, value: value, rename: true})
		}
	}
	return out, nil
}

// translateProjection compiles a Select into commands.
//
// KEEP only, when every projected member is a same-named direct field
// access; otherwise EVAL for the renamed/computed members followed by
// KEEP of all output names in declared member order.
func translateProjection(t *translator, items []Projection) ([]esql.Command, error) {
	resolved, err := resolveItems(t, items)
	if err != nil {
		return nil, err
	}

	var evalCols []esql.Column
	keep := make([]string, len(resolved))
	for i, item := range resolved {
		keep[i] = item.outName
		if item.rename {
			evalCols = append(evalCols, esql.Column{Name: item.outName, Value: item.value})
		}
	}

	if len(evalCols) == 0 {
		return []esql.Command{esql.Keep{Fields: keep}}, nil
	}
	return []esql.Command{
		esql.Eval{Columns: evalCols},
		esql.Keep{Fields: keep},
	}, nil
}

// translateKeepDrop compiles a Keep/Drop operator. Items are raw column
// names (strings) or projections; projections follow the same
// rename/compute rule as Select.
func translateKeepDrop(t *translator, items []any, drop bool) ([]esql.Command, error) {
	var evalCols []esql.Column
	names := make([]string, 0, len(items))

	for _, raw := range items {
		switch item := raw.(type) {
		case string:
			names = append(names, item)

		case Projection:
			resolved, err := resolveItems(t, []Projection{item})
			if err != nil {
				return nil, err
			}
			r := resolved[0]
			names = append(names, r.outName)
			if r.rename {
				evalCols = append(evalCols, esql.Column{Name: r.outName, Value: r.value})
			}

		default:
			return nil, newTranslationError(ErrCodeUnsupportedExpression,
				typeName(raw), "Keep/Drop items must be column names or projections")
		}
	}

	var target esql.Command
	if drop {
		target = esql.Drop{Fields: names}
	} else {
		target = esql.Keep{Fields: names}
	}

	if len(evalCols) == 0 {
		return []esql.Command{target}, nil
	}
	return []esql.Command{esql.Eval{Columns: evalCols}, target}, nil
}

// translateStats compiles GroupBy(...).Select(...) into a STATS command.
//
// Aggregator calls become "alias = AGG(field)" columns in projection
// order; Key/KeyAt references assign aliases to the BY keys, which are
// emitted in GroupBy key order regardless of where the projection
// mentions them.
func translateStats(t *translator, keys []Expr, items []Projection) (esql.Command, error) {
	keyFields := make([]string, len(keys))
	for i, k := range keys {
		resolved, err := t.expr(k)
		if err != nil {
			return nil, err
		}
		ref, ok := resolved.(esql.FieldRef)
		if !ok {
			return nil, newTranslationError(ErrCodeUnsupportedExpression, "GroupBy",
				"group keys must be field references")
		}
		keyFields[i] = ref.Name
	}

	keyAlias := make(map[int]string, len(keyFields))
	var aggs []esql.Column

	for _, item := range items {
		switch n := item.expr.(type) {
		case keyExpr:
			if n.i < 0 || n.i >= len(keyFields) {
				return nil, newTranslationError(ErrCodeUnsupportedExpression, "KeyAt",
					"group key index %d out of range (have %d keys)", n.i, len(keyFields))
			}
			keyAlias[n.i] = item.name

		case callExpr:
			if !aggregateFunctions[n.name] {
				return nil, newTranslationError(ErrCodeUnsupportedExpression, n.name,
					"grouped projections must aggregate or reference the group key")
			}
			if item.name == "" {
				return nil, newTranslationError(ErrCodeUnsupportedExpression, n.name,
					"aggregations require an explicit alias (use As)")
			}
			agg, err := t.expr(item.expr)
			if err != nil {
				return nil, err
			}
			aggs = append(aggs, esql.Column{Name: item.name, Value: agg})

		default:
			return nil, newTranslationError(ErrCodeUnsupportedExpression,
				typeName(item.expr), "grouped projections must aggregate or reference the group key")
		}
	}

	by := make([]esql.Column, len(keyFields))
	for i, kf := range keyFields {
		by[i] = esql.Column{Name: keyAlias[i], Value: esql.FieldRef{Name: kf}}
	}

	return esql.Stats{Aggs: aggs, By: by}, nil
}
