package esql

import "fmt"

// Validate checks a query's structural invariants.
//
// Rules:
//  1. The command list is non-empty.
//  2. The first command is a source command (From or Row).
//  3. No source command appears after the first position.
//
// Validate deliberately does NOT check semantic well-formedness beyond
// source placement: command order is the caller's contract and renders
// verbatim, including multiple Limit commands (last wins) and Keep/Drop
// of columns the engine may not know about.
//
// Validate is a pure function with no side effects.
func Validate(q Query) error {
	if len(q.Commands) == 0 {
		return fmt.Errorf("empty query: a source command (FROM or ROW) is required")
	}

	if q.Source() == nil {
		return fmt.Errorf("first command must be FROM or ROW, got %T", q.Commands[0])
	}

	for i, c := range q.Commands[1:] {
		switch c.(type) {
		case From, Row:
			return fmt.Errorf("source command %T at position %d: sources may only appear first", c, i+1)
		}
	}

	return nil
}
