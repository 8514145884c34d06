// Package render formats a Query Model into exact ES|QL text.
//
// Rendering is pure and stateless: the same query value always yields
// byte-identical text, and commands render in exactly the order
// recorded - no semantic validation, no reordering, no optimization.
// Source order is the contract; the only rendering-time rule is that
// every Limit is recorded but only the last one is emitted.
//
// The produced text is the sole wire output of the system. Spacing,
// command order, and keyword case are load-bearing: conformance tests
// assert exact string equality against golden files.
package render
