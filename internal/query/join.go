package query

import (
	"reflect"

	"github.com/roach88/esquel/internal/esql"
	"github.com/roach88/esquel/internal/schema"
)

// Lookup identifies the secondary index of a LookupJoin, together with
// the document type used to resolve inner-side field references.
type Lookup struct {
	Index string
	typ   reflect.Type
}

// LookupIndex describes a lookup over L, reading the index pattern from
// the resolver.
func LookupIndex[L any](r schema.Resolver) Lookup {
	var zero L
	typ := reflect.TypeOf(zero)
	return Lookup{Index: r.IndexPattern(typ), typ: typ}
}

// LookupNamed describes a lookup over L with an explicit index name.
func LookupNamed[L any](index string) Lookup {
	var zero L
	return Lookup{Index: index, typ: reflect.TypeOf(zero)}
}

// JoinOn is the ON clause of a LookupJoin, in one of two forms:
//
//  1. Key-selector pair (OnKeys): one member per side. When both
//     resolve to the same wire field name, the join renders the ES|QL
//     shorthand (bare field); otherwise "outerField == innerField".
//  2. Boolean predicate (OnPred) over OuterF/InnerF references,
//     restricted to equality, comparison, AND composition, and marker
//     search functions. Anything else is a malformed-join error.
type JoinOn struct {
	outerMember string
	innerMember string
	pred        Expr
}

// OnKeys joins by one key member per side.
func OnKeys(outerMember, innerMember string) JoinOn {
	return JoinOn{outerMember: outerMember, innerMember: innerMember}
}

// OnPred joins by a boolean predicate over OuterF/InnerF references.
func OnPred(pred Expr) JoinOn {
	return JoinOn{pred: pred}
}

// OuterF references a member of the primary (outer) row inside a join
// predicate.
func OuterF(path ...string) Expr { return fieldExpr{path: path, side: sideOuter} }

// InnerF references a member of the lookup (inner) row inside a join
// predicate.
func InnerF(path ...string) Expr { return fieldExpr{path: path, side: sideInner} }

// joinSearchFunctions is the marker subset allowed inside join
// predicates beyond comparisons and AND.
var joinSearchFunctions = map[string]bool{
	"Match":       true,
	"MatchPhrase": true,
	"QueryString": true,
	"Kql":         true,
}

// translateJoin compiles a LookupJoin operator into a command.
func translateJoin(t *translator, rec joinOp) (esql.Command, error) {
	if rec.lookup.Index == "" {
		return nil, newTranslationError(ErrCodeMalformedJoin, typeNameOf(rec.lookup.typ),
			"lookup index pattern is empty")
	}

	if rec.on.pred == nil {
		return translateKeyJoin(t, rec)
	}
	return translatePredicateJoin(t, rec)
}

// translateKeyJoin handles the key-selector form, including the
// same-name shorthand tie-break.
func translateKeyJoin(t *translator, rec joinOp) (esql.Command, error) {
	outerName, err := t.fieldName(fieldExpr{path: []string{rec.on.outerMember}})
	if err != nil {
		return nil, err
	}

	inner := &translator{resolver: t.resolver, rowType: rec.lookup.typ, params: t.params}
	innerName, err := inner.fieldName(fieldExpr{path: []string{rec.on.innerMember}})
	if err != nil {
		return nil, err
	}

	if outerName == innerName {
		// Identical resolved names: ES|QL bare-field shorthand.
		return esql.LookupJoin{Index: rec.lookup.Index, Shorthand: outerName}, nil
	}
	return esql.LookupJoin{
		Index: rec.lookup.Index,
		On: esql.Binary{
			Op:    esql.OpEq,
			Left:  esql.FieldRef{Name: outerName},
			Right: esql.FieldRef{Name: innerName},
		},
	}, nil
}

// translatePredicateJoin handles the boolean-predicate form.
func translatePredicateJoin(t *translator, rec joinOp) (esql.Command, error) {
	if err := checkJoinPredicate(rec.on.pred); err != nil {
		return nil, err
	}

	// Inner-side references resolve against the lookup type for the
	// duration of this predicate.
	jt := &translator{
		resolver:  t.resolver,
		rowType:   t.rowType,
		innerType: rec.lookup.typ,
		params:    t.params,
	}
	on, err := jt.expr(rec.on.pred)
	if err != nil {
		return nil, err
	}
	return esql.LookupJoin{Index: rec.lookup.Index, On: on}, nil
}

// checkJoinPredicate enforces the supported ON-clause shapes before
// translation: comparisons, AND composition, and search functions over
// field/value leaves.
func checkJoinPredicate(e Expr) error {
	switch n := e.(type) {
	case binExpr:
		switch n.op {
		case esql.OpEq, esql.OpNe, esql.OpLt, esql.OpLte, esql.OpGt, esql.OpGte:
			return checkJoinOperands(n.l, n.r)
		case esql.OpAnd:
			if err := checkJoinPredicate(n.l); err != nil {
				return err
			}
			return checkJoinPredicate(n.r)
		default:
			return newTranslationError(ErrCodeMalformedJoin, string(n.op),
				"join predicates support comparisons and AND composition only")
		}

	case callExpr:
		if !joinSearchFunctions[n.name] {
			return newTranslationError(ErrCodeMalformedJoin, n.name,
				"only search functions may appear in join predicates")
		}
		return nil

	default:
		return newTranslationError(ErrCodeMalformedJoin, typeName(e),
			"unsupported join predicate shape")
	}
}

// checkJoinOperands restricts comparison operands to field references
// and constants.
func checkJoinOperands(operands ...Expr) error {
	for _, o := range operands {
		switch o.(type) {
		case fieldExpr, colExpr, valueExpr:
		default:
			return newTranslationError(ErrCodeMalformedJoin, typeName(o),
				"join comparisons must be over fields and constants")
		}
	}
	return nil
}
