package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/esquel/internal/execute"
)

func TestNewResponse_ParsesColumnSpecs(t *testing.T) {
	resp := NewResponse(
		[]string{"log.level:keyword", "count:long", "untyped"},
		[]any{"ERROR", int64(12), nil},
	)

	assert.Equal(t, []execute.Column{
		{Name: "log.level", Type: "keyword"},
		{Name: "count", Type: "long"},
		{Name: "untyped", Type: ""},
	}, resp.Columns)
	require.Len(t, resp.Values, 1)
}

func TestFakeExecutor_PopsResponsesInOrder(t *testing.T) {
	first := NewResponse([]string{"n:long"}, []any{int64(1)})
	second := NewResponse([]string{"n:long"}, []any{int64(2)})
	f := NewFakeExecutor(first, second)

	got, err := f.Execute(context.Background(), "q1", nil)
	require.NoError(t, err)
	assert.Same(t, first, got)

	got, err = f.Execute(context.Background(), "q2", nil)
	require.NoError(t, err)
	assert.Same(t, second, got)

	assert.Equal(t, []string{"q1", "q2"}, f.Executed)

	_, err = f.Execute(context.Background(), "q3", nil)
	assert.Error(t, err, "an exhausted queue must not answer")
}

func TestFakeExecutor_HonorsContext(t *testing.T) {
	f := NewFakeExecutor(NewResponse(nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Execute(ctx, "q", nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.Executed, "cancelled calls are not recorded")
}

func TestNewRunningResponse(t *testing.T) {
	resp := NewRunningResponse()
	assert.True(t, resp.IsRunning)
	assert.NotEmpty(t, resp.ID)
	assert.NotEqual(t, resp.ID, NewRunningResponse().ID)
}
