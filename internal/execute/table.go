package execute

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Table renders a response as an aligned text table for debugging.
// Column headers carry the engine-declared type; null cells render as
// the literal "null".
func Table(r *Response) string {
	w := table.NewWriter()

	header := make(table.Row, len(r.Columns))
	for i, c := range r.Columns {
		header[i] = fmt.Sprintf("%s (%s)", c.Name, c.Type)
	}
	w.AppendHeader(header)

	for _, row := range r.Values {
		cells := make(table.Row, len(row))
		for i, v := range row {
			if v == nil {
				cells[i] = "null"
			} else {
				cells[i] = v
			}
		}
		w.AppendRow(cells)
	}

	return w.Render()
}
