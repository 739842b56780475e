package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	Header() http.Header
}

// File is one part of a multipart upload.
type File struct {
	Param    string
	FileName string
	Reader   io.Reader
}

// Request describes a single outbound call. Body is sent as-is; Form and
// Files switch the request to multipart/form-data.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Query   url.Values
	Body    []byte
	Form    map[string]string
	Files   []File
}

// Multipart reports whether the request carries file parts.
func (r Request) Multipart() bool { return len(r.Files) > 0 }

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Do(ctx context.Context, req Request) (Response, error)
}
