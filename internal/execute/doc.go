// Package execute runs rendered ES|QL text against a query engine and
// manages the async query lifecycle.
//
// The Executor interface is the system's only transport contract:
// connection pooling, authentication, and retry policy all live behind
// it. ESClient adapts the official Elasticsearch Go client to the
// contract; testutil provides a scripted fake.
//
// Async queries follow a two-state machine: a started query is either
// already Completed (no ID assigned) or Running with an ID to poll.
// WaitForCompletion polls on a fixed short interval until the engine
// reports completion, honoring cancellation - cancelling the wait does
// NOT delete the remote query. Close issues a best-effort delete;
// failures are swallowed because caller correctness must never depend
// on cleanup succeeding.
package execute
