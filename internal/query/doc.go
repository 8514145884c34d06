// Package query is the Expression Translator: a typed, fluent operator
// chain over document types that compiles to the Query Model.
//
// A chain starts from a source (From, FromIndex, Row) and records
// operators (Where, Select, GroupBy, OrderBy, Take, Keep, Drop,
// Completion, LookupJoin) without translating anything. Build walks the
// recorded chain, resolves member references through the chain's
// FieldMetadataResolver, and produces a fresh esql.Query; Text renders
// it in one step.
//
// Predicate and projection bodies are written in a small expression DSL
// instead of introspectable closures:
//
//	q := query.From[LogEntry](resolver).
//	    Where(query.Eq(query.F("Level"), "ERROR")).
//	    OrderByDesc(query.F("Timestamp")).
//	    Take(10)
//	text, err := q.Text()
//
// Builders are immutable: every fluent call returns a new builder, so a
// shared prefix can be extended freely. Translation errors (unsupported
// shapes, unmapped marker functions, malformed join predicates) are
// raised synchronously by Build and never silently degraded.
package query
