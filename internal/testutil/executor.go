// Package testutil provides deterministic test doubles for the
// execution layer: a scripted fake executor and response builders.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/roach88/esquel/internal/esql"
	"github.com/roach88/esquel/internal/execute"
)

// FakeExecutor is a scripted Executor for tests.
//
// Execute pops responses from a queue in order; AsyncStatus pops from a
// separate status queue. Every call is recorded so tests can assert on
// the exact query text and parameters sent.
//
// Thread-safety: all methods are safe for concurrent use via internal
// mutex, matching the contract real executors must honor.
type FakeExecutor struct {
	mu sync.Mutex

	responses []*execute.Response
	statuses  []*execute.Response

	// Err, when set, is returned by every Execute call.
	Err error

	// DeleteErr, when set, is returned by every DeleteAsync call.
	DeleteErr error

	// Executed records the query text of each Execute call.
	Executed []string

	// ExecutedParams records the parameters of each Execute call.
	ExecutedParams [][]esql.NamedValue

	// Polled records the IDs passed to AsyncStatus.
	Polled []string

	// Deleted records the IDs passed to DeleteAsync.
	Deleted []string
}

// NewFakeExecutor creates a fake that answers Execute calls with the
// given responses, in order.
func NewFakeExecutor(responses ...*execute.Response) *FakeExecutor {
	return &FakeExecutor{responses: responses}
}

// QueueStatus appends responses for subsequent AsyncStatus calls.
func (f *FakeExecutor) QueueStatus(responses ...*execute.Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, responses...)
}

// Execute implements execute.Executor.
func (f *FakeExecutor) Execute(ctx context.Context, query string, params []esql.NamedValue) (*execute.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.Executed = append(f.Executed, query)
	f.ExecutedParams = append(f.ExecutedParams, params)

	if f.Err != nil {
		return nil, f.Err
	}
	if len(f.responses) == 0 {
		return nil, fmt.Errorf("fake executor: no response queued for %q", query)
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

// AsyncStatus implements execute.Executor.
func (f *FakeExecutor) AsyncStatus(ctx context.Context, id string) (*execute.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.Polled = append(f.Polled, id)
	if len(f.statuses) == 0 {
		return nil, fmt.Errorf("fake executor: no status queued for %q", id)
	}
	resp := f.statuses[0]
	f.statuses = f.statuses[1:]
	return resp, nil
}

// DeleteAsync implements execute.Executor.
func (f *FakeExecutor) DeleteAsync(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Deleted = append(f.Deleted, id)
	return f.DeleteErr
}

// NewResponse builds a completed response from column "name:type"
// specs and rows.
//
//	testutil.NewResponse(
//	    []string{"log.level:keyword", "count:long"},
//	    []any{"ERROR", int64(12)},
//	)
func NewResponse(columns []string, rows ...[]any) *execute.Response {
	cols := make([]execute.Column, len(columns))
	for i, spec := range columns {
		name, typ := spec, ""
		for j := len(spec) - 1; j >= 0; j-- {
			if spec[j] == ':' {
				name, typ = spec[:j], spec[j+1:]
				break
			}
		}
		cols[i] = execute.Column{Name: name, Type: typ}
	}
	return &execute.Response{Columns: cols, Values: rows}
}

// NewRunningResponse builds a still-running async response with a
// fresh query ID.
func NewRunningResponse() *execute.Response {
	return &execute.Response{
		ID:        uuid.NewString(),
		IsRunning: true,
	}
}
