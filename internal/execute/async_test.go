package execute_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/esquel/internal/esql"
	"github.com/roach88/esquel/internal/execute"
	"github.com/roach88/esquel/internal/testutil"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func fastOpts() execute.Options {
	opts := execute.DefaultOptions()
	opts.PollInterval = time.Millisecond
	return opts
}

func TestStartAsync_CompletedImmediately(t *testing.T) {
	done := testutil.NewResponse([]string{"count:long"}, []any{int64(12)})
	f := testutil.NewFakeExecutor(done)

	q, err := execute.StartAsync(context.Background(), f, "FROM logs-*", nil, fastOpts())
	require.NoError(t, err)

	assert.Empty(t, q.ID())
	assert.False(t, q.Running())
	assert.Same(t, done, q.Response())

	// Nothing to poll: the final response is already in hand.
	resp, err := q.WaitForCompletion(context.Background())
	require.NoError(t, err)
	assert.Same(t, done, resp)
	assert.Empty(t, f.Polled)
}

func TestStartAsync_PassesQueryAndParams(t *testing.T) {
	f := testutil.NewFakeExecutor(testutil.NewResponse(nil))
	params := []esql.NamedValue{{Name: "level", Value: "ERROR"}}

	_, err := execute.StartAsync(context.Background(), f, "FROM logs-* | WHERE log.level == ?level", params, fastOpts())
	require.NoError(t, err)

	require.Len(t, f.Executed, 1)
	assert.Equal(t, "FROM logs-* | WHERE log.level == ?level", f.Executed[0])
	assert.Equal(t, params, f.ExecutedParams[0])
}

func TestStartAsync_ExecuteError(t *testing.T) {
	f := testutil.NewFakeExecutor()
	f.Err = errors.New("engine unavailable")

	_, err := execute.StartAsync(context.Background(), f, "FROM logs-*", nil, fastOpts())
	assert.ErrorIs(t, err, f.Err)
}

func TestWaitForCompletion_PollsUntilDone(t *testing.T) {
	running := testutil.NewRunningResponse()
	f := testutil.NewFakeExecutor(running)

	stillRunning := &execute.Response{ID: running.ID, IsRunning: true}
	done := testutil.NewResponse([]string{"count:long"}, []any{int64(42)})
	f.QueueStatus(stillRunning, done)

	q, err := execute.StartAsync(context.Background(), f, "FROM logs-*", nil, fastOpts())
	require.NoError(t, err)
	q.WithLogger(quiet)

	assert.Equal(t, running.ID, q.ID())
	assert.True(t, q.Running())

	resp, err := q.WaitForCompletion(context.Background())
	require.NoError(t, err)
	assert.Same(t, done, resp)
	assert.False(t, q.Running())

	// One poll per queued status, all against the assigned ID.
	assert.Equal(t, []string{running.ID, running.ID}, f.Polled)
}

func TestWaitForCompletion_CancellationAbortsWithoutDelete(t *testing.T) {
	f := testutil.NewFakeExecutor(testutil.NewRunningResponse())

	q, err := execute.StartAsync(context.Background(), f, "FROM logs-*", nil, fastOpts())
	require.NoError(t, err)
	q.WithLogger(quiet)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = q.WaitForCompletion(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	// Cancellation is not cleanup: the remote query must survive.
	assert.Empty(t, f.Deleted)
}

func TestWaitForCompletion_PollErrorPropagates(t *testing.T) {
	running := testutil.NewRunningResponse()
	f := testutil.NewFakeExecutor(running)
	// No statuses queued: the first poll fails.

	q, err := execute.StartAsync(context.Background(), f, "FROM logs-*", nil, fastOpts())
	require.NoError(t, err)
	q.WithLogger(quiet)

	_, err = q.WaitForCompletion(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), running.ID)
}

func TestClose_DeletesRemoteQuery(t *testing.T) {
	running := testutil.NewRunningResponse()
	f := testutil.NewFakeExecutor(running)

	q, err := execute.StartAsync(context.Background(), f, "FROM logs-*", nil, fastOpts())
	require.NoError(t, err)

	require.NoError(t, q.Close())
	assert.Equal(t, []string{running.ID}, f.Deleted)
}

func TestClose_NoIDIsANoOp(t *testing.T) {
	f := testutil.NewFakeExecutor(testutil.NewResponse(nil))

	q, err := execute.StartAsync(context.Background(), f, "FROM logs-*", nil, fastOpts())
	require.NoError(t, err)

	require.NoError(t, q.Close())
	assert.Empty(t, f.Deleted)
}

func TestClose_SwallowsDeleteFailure(t *testing.T) {
	running := testutil.NewRunningResponse()
	f := testutil.NewFakeExecutor(running)
	f.DeleteErr = errors.New("already expired")

	q, err := execute.StartAsync(context.Background(), f, "FROM logs-*", nil, fastOpts())
	require.NoError(t, err)
	q.WithLogger(quiet)

	// Cleanup failures never surface.
	assert.NoError(t, q.Close())
	assert.Equal(t, []string{running.ID}, f.Deleted)
}
