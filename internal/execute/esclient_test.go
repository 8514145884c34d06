package execute_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/esquel/internal/esql"
	"github.com/roach88/esquel/internal/execute"
)

// mockTransport scripts HTTP responses for the wrapped client.
type mockTransport struct {
	mu       sync.Mutex
	requests []*http.Request
	bodies   []string
	respond  func(req *http.Request) *http.Response
}

func (m *mockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	body := ""
	if req.Body != nil {
		raw, _ := io.ReadAll(req.Body)
		body = string(raw)
	}
	m.requests = append(m.requests, req)
	m.bodies = append(m.bodies, body)

	return m.respond(req), nil
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header: http.Header{
			"X-Elastic-Product": []string{"Elasticsearch"},
			"Content-Type":      []string{"application/json"},
		},
		Body: io.NopCloser(strings.NewReader(body)),
	}
}

func newTestClient(t *testing.T, opts execute.Options, respond func(req *http.Request) *http.Response) (*execute.ESClient, *mockTransport) {
	t.Helper()
	mt := &mockTransport{respond: respond}
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://example.invalid:9200"},
		Transport: mt,
	})
	require.NoError(t, err)
	return execute.NewESClient(es, opts), mt
}

// lastRequest returns the final request and body seen by the transport,
// skipping any handshake traffic the client may have issued.
func (m *mockTransport) lastRequest() (*http.Request, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[len(m.requests)-1], m.bodies[len(m.bodies)-1]
}

const columnarBody = `{
	"columns": [{"name": "log.level", "type": "keyword"}, {"name": "count", "type": "long"}],
	"values": [["ERROR", 12], ["WARN", 3]]
}`

func TestESClient_Execute(t *testing.T) {
	c, mt := newTestClient(t, execute.DefaultOptions(), func(req *http.Request) *http.Response {
		return jsonResponse(http.StatusOK, columnarBody)
	})

	resp, err := c.Execute(context.Background(), `FROM logs-*`, []esql.NamedValue{{Name: "level", Value: "ERROR"}})
	require.NoError(t, err)

	req, body := mt.lastRequest()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/_query", req.URL.Path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &sent))
	assert.Equal(t, "FROM logs-*", sent["query"])
	assert.Equal(t, []any{map[string]any{"level": "ERROR"}}, sent["params"])

	require.Len(t, resp.Columns, 2)
	assert.Equal(t, execute.Column{Name: "log.level", Type: "keyword"}, resp.Columns[0])
	require.Len(t, resp.Values, 2)
	assert.Equal(t, "ERROR", resp.Values[0][0])
	assert.False(t, resp.IsRunning)
}

func TestESClient_Execute_AsyncRequestShape(t *testing.T) {
	opts := execute.DefaultOptions()
	opts.Async = true
	opts.WaitForCompletion = 2 * time.Second
	opts.KeepAlive = 5 * time.Minute

	c, mt := newTestClient(t, opts, func(req *http.Request) *http.Response {
		return jsonResponse(http.StatusOK, `{"id": "q-123", "is_running": true}`)
	})

	resp, err := c.Execute(context.Background(), "FROM logs-*", nil)
	require.NoError(t, err)
	assert.Equal(t, "q-123", resp.ID)
	assert.True(t, resp.IsRunning)

	req, body := mt.lastRequest()
	assert.Equal(t, "/_query/async", req.URL.Path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &sent))
	assert.Equal(t, "2s", sent["wait_for_completion_timeout"])
	assert.Equal(t, "5m0s", sent["keep_alive"])
	_, hasParams := sent["params"]
	assert.False(t, hasParams, "empty params must be omitted")
}

func TestESClient_AsyncStatus(t *testing.T) {
	c, mt := newTestClient(t, execute.DefaultOptions(), func(req *http.Request) *http.Response {
		return jsonResponse(http.StatusOK, columnarBody)
	})

	resp, err := c.AsyncStatus(context.Background(), "q-123")
	require.NoError(t, err)
	assert.Len(t, resp.Columns, 2)

	req, _ := mt.lastRequest()
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/_query/async/q-123", req.URL.Path)
}

func TestESClient_DeleteAsync(t *testing.T) {
	c, mt := newTestClient(t, execute.DefaultOptions(), func(req *http.Request) *http.Response {
		// Delete acknowledgements may come back empty.
		return jsonResponse(http.StatusOK, "")
	})

	require.NoError(t, c.DeleteAsync(context.Background(), "q-123"))

	req, _ := mt.lastRequest()
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/_query/async/q-123", req.URL.Path)
}

func TestESClient_NonSuccessBecomesExecutionError(t *testing.T) {
	c, _ := newTestClient(t, execute.DefaultOptions(), func(req *http.Request) *http.Response {
		return jsonResponse(http.StatusBadRequest, `{"error": {"reason": "line 1:8: mismatched input"}}`)
	})

	_, err := c.Execute(context.Background(), "FROM", nil)
	require.Error(t, err)
	require.True(t, execute.IsExecutionError(err))

	var ee *execute.ExecutionError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, http.StatusBadRequest, ee.StatusCode)
	assert.Contains(t, ee.Body, "mismatched input")
}
