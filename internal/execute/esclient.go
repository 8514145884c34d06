package execute

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/roach88/esquel/internal/esql"
)

// ESClient adapts the official Elasticsearch Go client to the Executor
// contract over the /_query endpoints. The underlying client owns
// transport, auth, pooling, and retries; this adapter only shapes
// requests and decodes the columnar response.
type ESClient struct {
	es   *elasticsearch.Client
	opts Options
}

// NewESClient wraps an existing client.
func NewESClient(es *elasticsearch.Client, opts Options) *ESClient {
	return &ESClient{es: es, opts: opts}
}

// NewDefaultClient builds a client from the configured addresses. Auth
// beyond the URL is the caller's concern: construct your own
// elasticsearch.Client and use NewESClient instead.
func NewDefaultClient(opts Options) (*ESClient, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: opts.Addresses})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}
	return NewESClient(es, opts), nil
}

// queryRequest is the /_query request body.
type queryRequest struct {
	Query                    string           `json:"query"`
	Params                   []map[string]any `json:"params,omitempty"`
	WaitForCompletionTimeout string           `json:"wait_for_completion_timeout,omitempty"`
	KeepAlive                string           `json:"keep_alive,omitempty"`
}

// Execute implements Executor.
func (c *ESClient) Execute(ctx context.Context, query string, params []esql.NamedValue) (*Response, error) {
	body := queryRequest{Query: query}
	for _, p := range params {
		body.Params = append(body.Params, map[string]any{p.Name: p.Value})
	}

	path := "/_query"
	if c.opts.Async {
		path = "/_query/async"
		if c.opts.WaitForCompletion > 0 {
			body.WaitForCompletionTimeout = c.opts.WaitForCompletion.String()
		}
		if c.opts.KeepAlive > 0 {
			body.KeepAlive = c.opts.KeepAlive.String()
		}
	}

	return c.perform(ctx, http.MethodPost, path, body)
}

// AsyncStatus implements Executor.
func (c *ESClient) AsyncStatus(ctx context.Context, id string) (*Response, error) {
	return c.perform(ctx, http.MethodGet, "/_query/async/"+url.PathEscape(id), nil)
}

// DeleteAsync implements Executor.
func (c *ESClient) DeleteAsync(ctx context.Context, id string) error {
	_, err := c.perform(ctx, http.MethodDelete, "/_query/async/"+url.PathEscape(id), nil)
	return err
}

// perform sends one request and decodes the columnar response.
// Non-success statuses become an ExecutionError carrying the raw body.
func (c *ESClient) perform(ctx context.Context, method, path string, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.es.Perform(req)
	if err != nil {
		return nil, fmt.Errorf("perform request: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &ExecutionError{StatusCode: res.StatusCode, Body: string(raw)}
	}

	if len(raw) == 0 {
		// DELETE acknowledgements may come back empty.
		return &Response{}, nil
	}

	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &resp, nil
}
