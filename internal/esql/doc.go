// Package esql defines the Query Model: a pure-data AST for ES|QL
// pipeline queries.
//
// The model sits between the typed query builder (internal/query) and the
// text renderer (internal/render). It carries no behavior beyond
// construction helpers and invariant validation - commands and expressions
// are dumb data containers so backends can pattern-match exhaustively.
//
// Structure:
//   - Query: ordered command list plus an optional named-parameter set
//   - Command: sealed interface over the closed set of pipeline commands
//     (From, Row, Where, Eval, Stats, Sort, Limit, Keep, Drop,
//     Completion, LookupJoin)
//   - Expr: sealed interface over expression nodes (field references,
//     literals, parameters, binary/unary operators, function calls,
//     duration intervals)
//
// Invariants (checked by Validate):
//   - At most one of From/Row exists, and it is always the first command.
//   - Commands render in exactly the order recorded. No reordering,
//     no optimization - source order is the contract.
//   - Every Limit is recorded, but only the last one renders ("last wins").
package esql
