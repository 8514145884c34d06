package render

import (
	"fmt"
	"strings"

	"github.com/roach88/esquel/internal/esql"
)

// Render formats a query as ES|QL pipeline text: the first command
// bare, every following command on its own line prefixed with "| ".
func Render(q esql.Query) (string, error) {
	if len(q.Commands) == 0 {
		return "", fmt.Errorf("cannot render empty query")
	}

	lastLimit := q.EffectiveLimit()

	var b strings.Builder
	first := true
	for i, cmd := range q.Commands {
		if _, ok := cmd.(esql.Limit); ok && i != lastLimit {
			// Last wins: earlier Limit commands are recorded but
			// never rendered.
			continue
		}

		text, err := renderCommand(cmd)
		if err != nil {
			return "", err
		}

		if !first {
			b.WriteString("\n| ")
		}
		b.WriteString(text)
		first = false
	}

	return b.String(), nil
}

// renderCommand formats a single pipeline command.
func renderCommand(cmd esql.Command) (string, error) {
	switch c := cmd.(type) {
	case esql.From:
		// Index patterns are emitted verbatim - * and ? are pattern
		// syntax, never escaped.
		return "FROM " + c.Pattern, nil

	case esql.Row:
		cols, err := renderColumns(c.Columns)
		if err != nil {
			return "", err
		}
		return "ROW " + cols, nil

	case esql.Where:
		cond, err := renderExpr(c.Cond)
		if err != nil {
			return "", err
		}
		return "WHERE " + cond, nil

	case esql.Eval:
		cols, err := renderColumns(c.Columns)
		if err != nil {
			return "", err
		}
		return "EVAL " + cols, nil

	case esql.Stats:
		return renderStats(c)

	case esql.Sort:
		keys := make([]string, len(c.Keys))
		for i, k := range c.Keys {
			keys[i] = quoteIdent(k.Field)
			if k.Desc {
				keys[i] += " DESC"
			}
		}
		return "SORT " + strings.Join(keys, ", "), nil

	case esql.Limit:
		return fmt.Sprintf("LIMIT %d", c.N), nil

	case esql.Keep:
		return "KEEP " + joinIdents(c.Fields), nil

	case esql.Drop:
		return "DROP " + joinIdents(c.Fields), nil

	case esql.Completion:
		return renderCompletion(c)

	case esql.LookupJoin:
		return renderLookupJoin(c)

	default:
		return "", fmt.Errorf("unsupported command type: %T", cmd)
	}
}

// renderColumns formats "name = expr" column lists for Row and Eval.
func renderColumns(cols []esql.Column) (string, error) {
	parts := make([]string, len(cols))
	for i, col := range cols {
		value, err := renderExpr(col.Value)
		if err != nil {
			return "", err
		}
		parts[i] = quoteIdent(col.Name) + " = " + value
	}
	return strings.Join(parts, ", "), nil
}

// renderStats formats a STATS command: aggregations in projection
// order, then BY keys in group-key order. A BY column whose alias is
// empty or equal to its field renders as the bare field.
func renderStats(c esql.Stats) (string, error) {
	var b strings.Builder
	b.WriteString("STATS")

	if len(c.Aggs) > 0 {
		aggs, err := renderColumns(c.Aggs)
		if err != nil {
			return "", err
		}
		b.WriteString(" ")
		b.WriteString(aggs)
	}

	if len(c.By) > 0 {
		keys := make([]string, len(c.By))
		for i, col := range c.By {
			field, err := renderExpr(col.Value)
			if err != nil {
				return "", err
			}
			if col.Name == "" || col.Name == fieldNameOf(col.Value) {
				keys[i] = field
			} else {
				keys[i] = quoteIdent(col.Name) + " = " + field
			}
		}
		b.WriteString(" BY ")
		b.WriteString(strings.Join(keys, ", "))
	}

	return b.String(), nil
}

// renderCompletion formats a COMPLETION command.
func renderCompletion(c esql.Completion) (string, error) {
	prompt, err := renderExpr(c.Prompt)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("COMPLETION ")
	if c.Column != "" {
		b.WriteString(quoteIdent(c.Column))
		b.WriteString(" = ")
	}
	b.WriteString(prompt)
	fmt.Fprintf(&b, " WITH { \"inference_id\" : %s }", quoteString(c.InferenceID))
	return b.String(), nil
}

// renderLookupJoin formats a LOOKUP JOIN command, preferring the
// bare-field shorthand when set.
func renderLookupJoin(c esql.LookupJoin) (string, error) {
	if c.Shorthand != "" {
		return "LOOKUP JOIN " + c.Index + " ON " + quoteIdent(c.Shorthand), nil
	}
	on, err := renderExpr(c.On)
	if err != nil {
		return "", err
	}
	return "LOOKUP JOIN " + c.Index + " ON " + on, nil
}

// fieldNameOf returns the name of a bare field reference, or "".
func fieldNameOf(e esql.Expr) string {
	if ref, ok := e.(esql.FieldRef); ok {
		return ref.Name
	}
	return ""
}

func joinIdents(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quoteIdent(n)
	}
	return strings.Join(quoted, ", ")
}
