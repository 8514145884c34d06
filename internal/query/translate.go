package query

import (
	"reflect"
	"strings"

	"github.com/roach88/esquel/internal/esql"
	"github.com/roach88/esquel/internal/schema"
)

// translator resolves DSL nodes into Query Model nodes for one Build
// call. It owns the parameter collector for that call; the collector is
// scoped to the translation and discarded with it, so independent
// builds are safe to run concurrently.
type translator struct {
	resolver  schema.Resolver
	rowType   reflect.Type // nil for Row-sourced chains
	innerType reflect.Type // lookup join inner type; nil outside joins
	params    *esql.Parameters
}

// expr translates a DSL node without a parameter-name hint.
func (t *translator) expr(e Expr) (esql.Expr, error) {
	return t.exprH(e, "")
}

// exprH translates a DSL node. hint is the preferred parameter name for
// hoisted values, derived from the field the value is compared against.
func (t *translator) exprH(e Expr, hint string) (esql.Expr, error) {
	switch n := e.(type) {
	case fieldExpr:
		name, err := t.fieldName(n)
		if err != nil {
			return nil, err
		}
		return esql.FieldRef{Name: name}, nil

	case colExpr:
		return esql.FieldRef{Name: n.name}, nil

	case valueExpr:
		return t.value(n, hint), nil

	case keyExpr:
		return nil, newTranslationError(ErrCodeUnsupportedExpression, "Key()",
			"group key references are only valid inside a GroupBy projection")

	case binExpr:
		return t.binary(n)

	case notExpr:
		inner, err := t.expr(n.x)
		if err != nil {
			return nil, err
		}
		return esql.Not{X: inner}, nil

	case likeExpr:
		f, err := t.expr(n.f)
		if err != nil {
			return nil, err
		}
		// LIKE patterns are part of the query shape, never hoisted.
		return esql.Binary{Op: esql.OpLike, Left: f, Right: esql.Literal{Value: n.pattern}}, nil

	case nullOrEmptyExpr:
		f, err := t.expr(n.f)
		if err != nil {
			return nil, err
		}
		return esql.Binary{
			Op:    esql.OpOr,
			Left:  esql.IsNull{X: f},
			Right: esql.Binary{Op: esql.OpEq, Left: f, Right: esql.Literal{Value: ""}},
		}, nil

	case callExpr:
		return t.call(n)

	case dateExtractExpr:
		f, err := t.expr(n.f)
		if err != nil {
			return nil, err
		}
		return esql.Call{Func: "DATE_EXTRACT", Args: []esql.Expr{
			esql.Literal{Value: n.unit},
			f,
		}}, nil

	case dateAddExpr:
		f, err := t.expr(n.f)
		if err != nil {
			return nil, err
		}
		op := esql.OpAdd
		count := n.n
		if count < 0 {
			// Negative offsets collapse to subtraction.
			op = esql.OpSub
			count = -count
		}
		return esql.Binary{Op: op, Left: f, Right: esql.Interval{N: count, Unit: n.unit}}, nil

	case nowExpr:
		return esql.Call{Func: "NOW"}, nil

	case nil:
		return nil, newTranslationError(ErrCodeUnsupportedExpression, "nil",
			"nil expression")

	default:
		return nil, newTranslationError(ErrCodeUnsupportedExpression,
			typeName(n), "unsupported expression shape")
	}
}

// binary translates an infix operator, threading a parameter-name hint
// from a field operand to a value operand.
func (t *translator) binary(b binExpr) (esql.Expr, error) {
	if b.l == nil || b.r == nil {
		return nil, newTranslationError(ErrCodeUnsupportedExpression,
			string(b.op), "boolean composition requires at least one operand")
	}

	left, err := t.exprH(b.l, t.hintFor(b.r))
	if err != nil {
		return nil, err
	}
	right, err := t.exprH(b.r, t.hintFor(b.l))
	if err != nil {
		return nil, err
	}
	return esql.Binary{Op: b.op, Left: left, Right: right}, nil
}

// hintFor derives a parameter-name hint from the opposite operand of a
// comparison: the last dotted segment of the field it references.
func (t *translator) hintFor(opposite Expr) string {
	fe, ok := opposite.(fieldExpr)
	if !ok {
		return ""
	}
	name, err := t.fieldName(fe)
	if err != nil {
		return ""
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return sanitizeParamName(name)
}

// value inlines a constant, or hoists it to a named parameter when the
// translation runs in parameterize mode.
func (t *translator) value(v valueExpr, hint string) esql.Expr {
	if t.params == nil {
		return esql.Literal{Value: v.v}
	}
	name := v.hint
	if name == "" {
		name = hint
	}
	return esql.Param{Name: t.params.Add(sanitizeParamName(name), v.v)}
}

// call maps a marker function through the function table.
func (t *translator) call(c callExpr) (esql.Expr, error) {
	if c.name == markerIsNull {
		f, err := t.expr(c.args[0])
		if err != nil {
			return nil, err
		}
		return esql.IsNull{X: f}, nil
	}

	target, ok := functionTable[c.name]
	if !ok {
		return nil, newTranslationError(ErrCodeUnmappedFunction, c.name,
			"no ES|QL mapping for marker function")
	}

	// COUNT with no argument counts rows.
	if c.name == "Count" && len(c.args) == 0 {
		return esql.Call{Func: target, Args: []esql.Expr{esql.FieldRef{Name: "*"}}}, nil
	}

	args := make([]esql.Expr, len(c.args))
	for i, a := range c.args {
		translated, err := t.expr(a)
		if err != nil {
			return nil, err
		}
		args[i] = translated
	}
	return esql.Call{Func: target, Args: args}, nil
}

// fieldName resolves a member path to a dotted wire field name.
func (t *translator) fieldName(fe fieldExpr) (string, error) {
	if len(fe.path) == 0 {
		return "", newTranslationError(ErrCodeUnknownMember, "", "empty member path")
	}

	typ := t.rowType
	if fe.side == sideInner {
		typ = t.innerType
	}
	if typ == nil {
		return "", newTranslationError(ErrCodeUnknownMember, strings.Join(fe.path, "."),
			"chain source has no typed members; reference columns with Col")
	}

	parts := make([]string, 0, len(fe.path))
	cur := typ
	for i, member := range fe.path {
		if t.resolver.IsIgnored(cur, member) {
			return "", newTranslationError(ErrCodeUnknownMember, member,
				"member is marked ignored")
		}
		name, err := t.resolver.FieldName(cur, member)
		if err != nil {
			return "", newTranslationError(ErrCodeUnknownMember, member, "%v", err)
		}
		parts = append(parts, name)

		if i+1 < len(fe.path) {
			next, ok := schema.MemberType(cur, member)
			if !ok {
				return "", newTranslationError(ErrCodeUnknownMember, member,
					"cannot descend into member")
			}
			cur = next
		}
	}
	return strings.Join(parts, "."), nil
}

// sanitizeParamName restricts a hint to [A-Za-z0-9_], mapping anything
// else to underscores and trimming them from the edges.
func sanitizeParamName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "_")
}

func typeName(v any) string {
	return strings.TrimPrefix(reflect.TypeOf(v).String(), "query.")
}
