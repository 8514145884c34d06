package render

import (
	"fmt"
	"strings"

	"github.com/roach88/esquel/internal/esql"
)

// renderExpr formats an expression node.
//
// Parenthesization rules, chosen for precedence safety over minimality:
//   - OR expressions are always parenthesized
//   - AND expressions are parenthesized when nested inside another
//     operator
//   - binary operands of NOT are parenthesized
//
// Everything else relies on ES|QL's natural precedence (comparison
// binds tighter than AND, arithmetic tighter than comparison).
func renderExpr(e esql.Expr) (string, error) {
	return renderExprNested(e, false)
}

// renderExprNested formats an expression; nested reports whether the
// node is an operand of an enclosing operator.
func renderExprNested(e esql.Expr, nested bool) (string, error) {
	switch n := e.(type) {
	case esql.FieldRef:
		return quoteIdent(n.Name), nil

	case esql.Literal:
		return formatLiteral(n.Value), nil

	case esql.Param:
		return "?" + n.Name, nil

	case esql.Binary:
		return renderBinary(n, nested)

	case esql.Not:
		inner, err := renderExprNested(n.X, true)
		if err != nil {
			return "", err
		}
		if _, ok := n.X.(esql.Binary); ok {
			inner = "(" + inner + ")"
		}
		return "NOT " + inner, nil

	case esql.IsNull:
		inner, err := renderExprNested(n.X, true)
		if err != nil {
			return "", err
		}
		return inner + " IS NULL", nil

	case esql.Call:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			rendered, err := renderExprNested(a, false)
			if err != nil {
				return "", err
			}
			args[i] = rendered
		}
		return n.Func + "(" + strings.Join(args, ", ") + ")", nil

	case esql.Interval:
		return fmt.Sprintf("%d %s", n.N, n.Unit), nil

	case nil:
		return "", fmt.Errorf("cannot render nil expression")

	default:
		return "", fmt.Errorf("unsupported expression type: %T", e)
	}
}

func renderBinary(b esql.Binary, nested bool) (string, error) {
	left, err := renderExprNested(b.Left, true)
	if err != nil {
		return "", err
	}
	right, err := renderExprNested(b.Right, true)
	if err != nil {
		return "", err
	}

	text := left + " " + string(b.Op) + " " + right

	switch b.Op {
	case esql.OpOr:
		// Always wrapped: OR binds loosest and reads ambiguously
		// next to AND.
		return "(" + text + ")", nil
	case esql.OpAnd:
		if nested {
			return "(" + text + ")", nil
		}
		return text, nil
	case esql.OpAdd, esql.OpSub:
		// Date arithmetic reads as a unit: (field + 3 days).
		if _, ok := b.Right.(esql.Interval); ok {
			return "(" + text + ")", nil
		}
		return text, nil
	default:
		return text, nil
	}
}
