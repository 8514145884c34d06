package execute

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/esquel/internal/esql"
)

// AsyncQuery tracks one long-running query: its remote ID (when the
// engine assigned one) and the last response observed.
//
// State machine: Started -> Running (ID assigned, wait-for-completion
// window elapsed before the engine finished) or Started -> Completed
// (results came back immediately, no ID). A Running query transitions
// to Completed through polling; Completed is terminal.
type AsyncQuery struct {
	exec Executor
	id   string
	last *Response

	interval time.Duration
	log      *slog.Logger

	// sleep is swappable for deterministic poll-loop tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// StartAsync submits query text and wraps the engine's answer in an
// AsyncQuery. A completed response carries no ID; a running one carries
// the ID used for subsequent polling and cleanup.
func StartAsync(ctx context.Context, exec Executor, queryText string, params []esql.NamedValue, opts Options) (*AsyncQuery, error) {
	resp, err := exec.Execute(ctx, queryText, params)
	if err != nil {
		return nil, err
	}

	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultOptions().PollInterval
	}

	return &AsyncQuery{
		exec:     exec,
		id:       resp.ID,
		last:     resp,
		interval: interval,
		log:      slog.Default(),
		sleep:    sleepCtx,
	}, nil
}

// WithLogger replaces the logger used for poll and cleanup diagnostics.
func (q *AsyncQuery) WithLogger(log *slog.Logger) *AsyncQuery {
	if log != nil {
		q.log = log
	}
	return q
}

// ID returns the remote query ID, or "" when the query completed
// within the initial wait window.
func (q *AsyncQuery) ID() string { return q.id }

// Running reports whether the engine was still executing at the last
// observation.
func (q *AsyncQuery) Running() bool { return q.last.IsRunning }

// Response returns the most recent response observed.
func (q *AsyncQuery) Response() *Response { return q.last }

// WaitForCompletion polls the status endpoint on a fixed interval until
// the engine reports completion, then returns the final response.
//
// Cancellation aborts the loop and propagates ctx.Err(); it does NOT
// delete the remote query - cleanup happens only through Close.
func (q *AsyncQuery) WaitForCompletion(ctx context.Context) (*Response, error) {
	for q.last.IsRunning {
		if err := q.sleep(ctx, q.interval); err != nil {
			return nil, err
		}

		resp, err := q.exec.AsyncStatus(ctx, q.id)
		if err != nil {
			return nil, fmt.Errorf("poll async query %s: %w", q.id, err)
		}
		q.last = resp
		q.log.Debug("polled async query", "id", q.id, "running", resp.IsRunning)
	}
	return q.last, nil
}

// Close issues a best-effort delete of the remote query resource when
// an ID exists. Delete failures are swallowed: caller correctness must
// never depend on cleanup succeeding.
func (q *AsyncQuery) Close() error {
	if q.id == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := q.exec.DeleteAsync(ctx, q.id); err != nil {
		q.log.Warn("async query cleanup failed", "id", q.id, "error", err)
	}
	return nil
}

// sleepCtx sleeps for d or until the context is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
