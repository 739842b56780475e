package highbond

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/samvad-hq/highbond-go/pkg/httpclient"
)

// stubResponse and stubTransport let tests inspect the outbound request
// without a server.
type stubResponse struct {
	status int
	body   []byte
}

func (r stubResponse) Body() []byte        { return r.body }
func (r stubResponse) StatusCode() int     { return r.status }
func (r stubResponse) Header() http.Header { return http.Header{} }

type stubTransport struct {
	calls  int
	last   httpclient.Request
	status int
	body   string
	err    error
}

func (s *stubTransport) Do(_ context.Context, req httpclient.Request) (httpclient.Response, error) {
	s.calls++
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	status := s.status
	if status == 0 {
		status = http.StatusOK
	}
	body := s.body
	if body == "" && status != http.StatusNoContent {
		body = `{"data":[]}`
	}
	return stubResponse{status: status, body: []byte(body)}, nil
}

// path returns the request path relative to the organization root.
func (s *stubTransport) path(t *testing.T) string {
	t.Helper()
	const root = "https://apis-us.highbond.com/v1/orgs/42"
	if !strings.HasPrefix(s.last.URL, root) {
		t.Fatalf("url %q is not under %q", s.last.URL, root)
	}
	return strings.TrimPrefix(s.last.URL, root)
}

func newStubClient(t *testing.T) (*Client, *stubTransport) {
	t.Helper()
	tr := &stubTransport{}
	c, err := New(Config{Token: "secret", OrgID: "42"}, WithHTTPClient(tr))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, tr
}

func newServerClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(Config{Token: "secret", OrgID: "42"}, WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func expectInvalid(t *testing.T, err error, tr *stubTransport) {
	t.Helper()
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	if tr != nil && tr.calls != 0 {
		t.Fatalf("transport called %d times for an invalid request", tr.calls)
	}
}

func TestNewValidatesConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		opts []Option
	}{
		{"missing token", Config{OrgID: "1"}, nil},
		{"missing org", Config{Token: "t"}, nil},
		{"bad protocol", Config{Token: "t", OrgID: "1", Protocol: "ftp"}, nil},
		{"bad base url", Config{Token: "t", OrgID: "1"}, []Option{WithBaseURL("::nope")}},
		{"nil transport", Config{Token: "t", OrgID: "1"}, []Option{WithHTTPClient(nil)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.cfg, tc.opts...); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	c, err := New(Config{Token: " t ", OrgID: "99"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cfg := c.Config()
	if cfg.Server != ServerUS || cfg.Protocol != "https" || cfg.Timeout != DefaultTimeout {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Token != "t" {
		t.Fatalf("token not trimmed: %q", cfg.Token)
	}
	if got := c.BaseURL(); got != "https://apis-us.highbond.com/v1/orgs/99" {
		t.Fatalf("unexpected base url %q", got)
	}
	if strings.Contains(cfg.String(), "token") {
		t.Fatalf("token leaked in %s", cfg.String())
	}
}

func TestRegionalServer(t *testing.T) {
	c, err := New(Config{Token: "t", OrgID: "7", Server: ServerEU})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := c.BaseURL(); got != "https://apis-eu.highbond.com/v1/orgs/7" {
		t.Fatalf("unexpected base url %q", got)
	}
}

func TestRequestCarriesAuthAndOrg(t *testing.T) {
	c := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/orgs/42/projects/7" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Fatalf("unexpected auth header %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/vnd.api+json" {
			t.Fatalf("unexpected accept header %q", got)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Fatalf("missing request id")
		}
		if got := r.Header.Get("User-Agent"); got != "highbond-go" {
			t.Fatalf("unexpected user agent %q", got)
		}
		w.Header().Set("Content-Type", "application/vnd.api+json")
		_, _ = w.Write([]byte(`{"data":{"id":"7","type":"projects","attributes":{"name":"Audit"}}}`))
	})

	doc, err := c.Projects.Get(context.Background(), "7", nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	data, ok := doc.Data().(map[string]any)
	if !ok || data["id"] != "7" {
		t.Fatalf("unexpected data: %#v", doc.Data())
	}
	attrs := data["attributes"].(map[string]any)
	if attrs["name"] != "Audit" {
		t.Fatalf("unexpected attributes: %#v", attrs)
	}
}

func TestGetOrganizationHitsRoot(t *testing.T) {
	c, tr := newStubClient(t)
	if _, err := c.GetOrganization(context.Background()); err != nil {
		t.Fatalf("GetOrganization: %v", err)
	}
	if tr.last.URL != "https://apis-us.highbond.com/v1/orgs/42" {
		t.Fatalf("unexpected url %q", tr.last.URL)
	}
	if tr.last.Method != http.MethodGet {
		t.Fatalf("unexpected method %s", tr.last.Method)
	}
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusUnsupportedMediaType, ErrUnsupportedMediaType},
		{http.StatusUnprocessableEntity, ErrUnprocessableEntity},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusInternalServerError, ErrServer},
		{http.StatusBadGateway, ErrServer},
	}
	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			c, tr := newStubClient(t)
			tr.status = tc.status
			tr.body = `{"errors":[{"detail":"nope"}]}`

			_, err := c.Users.List(context.Background())
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %T", err)
			}
			if apiErr.StatusCode != tc.status || StatusCode(err) != tc.status {
				t.Fatalf("unexpected status %d", apiErr.StatusCode)
			}
			if apiErr.Method != http.MethodGet || !strings.HasSuffix(apiErr.URL, "/users") {
				t.Fatalf("unexpected request in error: %s %s", apiErr.Method, apiErr.URL)
			}
			if !strings.Contains(apiErr.Body, "nope") {
				t.Fatalf("body snippet missing: %q", apiErr.Body)
			}
		})
	}
}

func TestUnmappedStatusIsPlainAPIError(t *testing.T) {
	c, tr := newStubClient(t)
	tr.status = http.StatusConflict
	_, err := c.Users.List(context.Background())
	if StatusCode(err) != http.StatusConflict {
		t.Fatalf("expected 409, got %v", err)
	}
	for _, sentinel := range []error{ErrBadRequest, ErrNotFound, ErrServer, ErrUnauthorized} {
		if errors.Is(err, sentinel) {
			t.Fatalf("409 should not match %v", sentinel)
		}
	}
}

func TestAuthErrors(t *testing.T) {
	c, tr := newStubClient(t)
	tr.status = http.StatusUnauthorized
	_, err := c.Robots.List(context.Background())
	if !IsAuthError(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
}

func TestErrorBodyIsTruncated(t *testing.T) {
	c, tr := newStubClient(t)
	tr.status = http.StatusBadRequest
	tr.body = strings.Repeat("x", 2000)
	_, err := c.Users.List(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if len(apiErr.Body) != maxErrorBody {
		t.Fatalf("expected %d byte snippet, got %d", maxErrorBody, len(apiErr.Body))
	}
}

func TestErrorBodyKeepsRunesWhole(t *testing.T) {
	c, tr := newStubClient(t)
	tr.status = http.StatusBadRequest
	tr.body = "x" + strings.Repeat("é", 600)
	_, err := c.Users.List(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if !utf8.ValidString(apiErr.Body) {
		t.Fatalf("snippet is not valid UTF-8: %q", apiErr.Body[len(apiErr.Body)-4:])
	}
	if len(apiErr.Body) != maxErrorBody-1 {
		t.Fatalf("expected %d byte snippet, got %d", maxErrorBody-1, len(apiErr.Body))
	}
}

func TestNoContentAndAccepted(t *testing.T) {
	c, tr := newStubClient(t)

	tr.status = http.StatusNoContent
	doc, err := c.Projects.Delete(context.Background(), "5", false)
	if err != nil || doc != nil {
		t.Fatalf("expected nil document and error, got %v %v", doc, err)
	}

	tr.status = http.StatusAccepted
	tr.body = "queued"
	doc, err = c.Robots.RunTask(context.Background(), "5", nil)
	if err != nil {
		t.Fatalf("RunTask: %v", err)
	}
	if doc["response"] != "queued" {
		t.Fatalf("unexpected document %#v", doc)
	}

	tr.body = `{"data":{"id":"j1"}}`
	doc, err = c.Robots.RunTask(context.Background(), "5", nil)
	if err != nil {
		t.Fatalf("RunTask: %v", err)
	}
	if doc.Data().(map[string]any)["id"] != "j1" {
		t.Fatalf("unexpected document %#v", doc)
	}
}

func TestMalformedBody(t *testing.T) {
	c, tr := newStubClient(t)
	tr.body = "<html>oops</html>"
	_, err := c.Users.List(context.Background())
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestTransportError(t *testing.T) {
	c, tr := newStubClient(t)
	tr.err = errors.New("dial tcp: connection refused")
	_, err := c.Users.List(context.Background())
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("cause missing from %v", err)
	}
}

func TestNilResponseIsTransportError(t *testing.T) {
	c, err := New(Config{Token: "t", OrgID: "42"}, WithHTTPClient(nilTransport{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = c.Users.List(context.Background())
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

type nilTransport struct{}

func (nilTransport) Do(context.Context, httpclient.Request) (httpclient.Response, error) {
	return nil, nil
}

func TestCanceledContextIsTransportError(t *testing.T) {
	c := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("request should not reach the server")
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Users.List(ctx)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestPathIDsAreEscaped(t *testing.T) {
	c, tr := newStubClient(t)
	if _, err := c.Users.Get(context.Background(), "a/b c"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got := tr.path(t); got != "/users/"+url.PathEscape("a/b c") {
		t.Fatalf("unexpected path %q", got)
	}
}

func TestWithUserAgentAndLogger(t *testing.T) {
	log := &recordingLogger{}
	tr := &stubTransport{}
	c, err := New(Config{Token: "t", OrgID: "42"}, WithHTTPClient(tr), WithUserAgent("audit-bot/1.0"), WithLogger(log))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Users.List(context.Background()); err != nil {
		t.Fatalf("List: %v", err)
	}
	if got := tr.last.Headers["User-Agent"]; got != "audit-bot/1.0" {
		t.Fatalf("unexpected user agent %q", got)
	}
	if log.debug != 1 || log.info != 1 {
		t.Fatalf("expected a debug request log and an info response log, got debug=%d info=%d", log.debug, log.info)
	}

	tr.status = http.StatusNotFound
	_, _ = c.Users.List(context.Background())
	if log.warn != 1 {
		t.Fatalf("expected one warn log, got %d", log.warn)
	}
}

type recordingLogger struct {
	info, debug, warn, errs int
}

func (l *recordingLogger) InfoObj(string, string, interface{})  { l.info++ }
func (l *recordingLogger) DebugObj(string, string, interface{}) { l.debug++ }
func (l *recordingLogger) WarnObj(string, string, interface{})  { l.warn++ }
func (l *recordingLogger) ErrorObj(string, string, interface{}) { l.errs++ }
