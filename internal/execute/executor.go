package execute

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/esquel/internal/esql"
)

// Column is one column of a query response: its output name and the
// engine-declared type (e.g. "keyword", "long", "date").
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Response is the columnar result of a query: ordered column metadata
// plus a row-major value matrix.
//
// Every row's length equals the column count. This is a precondition
// trusted from the executor, not re-checked defensively.
type Response struct {
	Columns   []Column `json:"columns"`
	Values    [][]any  `json:"values"`
	IsRunning bool     `json:"is_running"`
	ID        string   `json:"id"`
}

// Executor is the transport contract: it executes query text and
// manages async query resources. Transport, auth, pooling, and retry
// policy are implementation concerns behind this interface.
//
// Implementations must return an ExecutionError for non-success engine
// responses rather than a bare transport error, so callers can inspect
// the status code and raw body.
type Executor interface {
	// Execute runs query text. For async-configured executors the
	// response may come back with IsRunning set and an ID to poll.
	Execute(ctx context.Context, query string, params []esql.NamedValue) (*Response, error)

	// AsyncStatus fetches the current state of a running async query.
	AsyncStatus(ctx context.Context, id string) (*Response, error)

	// DeleteAsync releases the remote resources of an async query.
	DeleteAsync(ctx context.Context, id string) error
}

// ExecutionError represents a non-success engine response. It carries
// the status code and raw body for offline diagnosis; no retry happens
// at this layer.
type ExecutionError struct {
	// StatusCode is the HTTP status returned by the engine.
	StatusCode int

	// Body is the raw response body, unparsed.
	Body string
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("query execution failed with status %d: %s", e.StatusCode, e.Body)
}

// IsExecutionError reports whether err is (or wraps) an ExecutionError.
func IsExecutionError(err error) bool {
	var ee *ExecutionError
	return errors.As(err, &ee)
}
