package highbond

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/samvad-hq/highbond-go/pkg/httpclient"
)

// request is one call relative to the organization root.
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	form   map[string]string
	files  []httpclient.File
}

type requestLog struct {
	ID     string `json:"request_id"`
	Method string `json:"method"`
	Path   string `json:"path"`
	Status int    `json:"status,omitempty"`
	Took   string `json:"took,omitempty"`
	Error  string `json:"error,omitempty"`
}

// do sends r and decodes the JSON:API document.
func (c *Client) do(ctx context.Context, r request) (Document, error) {
	status, body, err := c.send(ctx, r)
	if err != nil {
		return nil, err
	}
	return decodeDocument(status, body)
}

// raw sends r and returns the undecoded 2xx body.
func (c *Client) raw(ctx context.Context, r request) ([]byte, error) {
	_, body, err := c.send(ctx, r)
	return body, err
}

func (c *Client) send(ctx context.Context, r request) (int, []byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	reqID := uuid.NewString()
	endpoint := c.BaseURL()
	if r.path != "" {
		endpoint += "/" + r.path
	}

	headers := map[string]string{
		"Authorization": "Bearer " + c.cfg.Token,
		"Accept":        mediaType,
		"User-Agent":    c.userAgent,
		"X-Request-Id":  reqID,
	}

	out := httpclient.Request{
		Method:  r.method,
		URL:     endpoint,
		Headers: headers,
		Query:   r.query,
		Form:    r.form,
		Files:   r.files,
	}
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return 0, nil, fmt.Errorf("highbond: encode %s %s body: %w", r.method, r.path, err)
		}
		out.Body = payload
		headers["Content-Type"] = mediaType
	}

	entry := requestLog{ID: reqID, Method: r.method, Path: "/" + r.path}
	c.log.DebugObj("highbond request", "request", entry)

	resource := resourceLabel(r.path)
	start := time.Now()
	resp, err := c.http.Do(ctx, out)
	took := time.Since(start)
	requestDuration.WithLabelValues(r.method, resource).Observe(took.Seconds())
	entry.Took = took.String()

	if err != nil {
		requestsTotal.WithLabelValues(r.method, resource, "error").Inc()
		entry.Error = err.Error()
		c.log.WarnObj("highbond request failed", "request", entry)
		return 0, nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, r.method, endpoint, err)
	}

	if resp == nil {
		requestsTotal.WithLabelValues(r.method, resource, "error").Inc()
		entry.Error = "empty response"
		c.log.WarnObj("highbond request failed", "request", entry)
		return 0, nil, fmt.Errorf("%w: %s %s: transport returned no response", ErrTransport, r.method, endpoint)
	}

	status := resp.StatusCode()
	requestsTotal.WithLabelValues(r.method, resource, strconv.Itoa(status)).Inc()
	entry.Status = status

	if status < 200 || status > 299 {
		c.log.WarnObj("highbond response error", "request", entry)
		return status, nil, newAPIError(status, r.method, endpoint, reqID, resp.Body())
	}

	c.log.InfoObj("highbond response", "request", entry)
	return status, resp.Body(), nil
}

// Requests are labelled by their leading collection for metrics.
func resourceLabel(path string) string {
	if path == "" {
		return "organization"
	}
	for i := 0; i < len(path); i++ {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return path
}

func get(path string, q url.Values) request {
	return request{method: http.MethodGet, path: path, query: q}
}
