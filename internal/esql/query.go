package esql

// Query is a complete ES|QL pipeline: an ordered command list plus an
// optional parameter set.
//
// Queries are value types built fresh by the translator on every
// Build/format call - building on top of an existing operator chain
// never perturbs previously produced text or results.
type Query struct {
	Commands []Command
	Params   *Parameters // nil unless built in parameterize mode
}

// Source returns the leading From or Row command, or nil when the query
// has no source (invalid per Validate, but representable).
func (q Query) Source() Command {
	if len(q.Commands) == 0 {
		return nil
	}
	switch c := q.Commands[0].(type) {
	case From:
		return c
	case Row:
		return c
	}
	return nil
}

// EffectiveLimit returns the index of the Limit command that renders
// (the last one recorded), or -1 when the query has no Limit.
//
// Every Take call is recorded; only the last one wins at render time.
func (q Query) EffectiveLimit() int {
	last := -1
	for i, c := range q.Commands {
		if _, ok := c.(Limit); ok {
			last = i
		}
	}
	return last
}
