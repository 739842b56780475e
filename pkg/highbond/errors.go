package highbond

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

var (
	// ErrInvalidParameter is matched by every *ValidationError.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrTransport wraps network-level failures (DNS, TLS, timeouts, cancellation).
	ErrTransport = errors.New("highbond transport error")
	// ErrMalformedResponse is returned when a 2xx body cannot be decoded.
	ErrMalformedResponse = errors.New("malformed response body")

	ErrBadRequest           = errors.New("bad request")
	ErrUnauthorized         = errors.New("authentication failed")
	ErrForbidden            = errors.New("forbidden")
	ErrNotFound             = errors.New("resource not found")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrUnprocessableEntity  = errors.New("unprocessable entity")
	ErrRateLimited          = errors.New("rate limited")
	ErrServer               = errors.New("server error")
)

const maxErrorBody = 512

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	Method     string
	URL        string
	Body       string
	RequestID  string
}

func newAPIError(status int, method, url, requestID string, body []byte) *APIError {
	return &APIError{
		StatusCode: status,
		Method:     method,
		URL:        url,
		Body:       bodySnippet(body),
		RequestID:  requestID,
	}
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("highbond: %s %s: HTTP %d", e.Method, e.URL, e.StatusCode)
	if kind := e.kind(); kind != nil {
		msg += " (" + kind.Error() + ")"
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Is lets errors.Is match the status-specific sentinels.
func (e *APIError) Is(target error) bool {
	kind := e.kind()
	return kind != nil && kind == target
}

func (e *APIError) kind() error {
	switch {
	case e.StatusCode == http.StatusBadRequest:
		return ErrBadRequest
	case e.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.StatusCode == http.StatusForbidden:
		return ErrForbidden
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode == http.StatusUnsupportedMediaType:
		return ErrUnsupportedMediaType
	case e.StatusCode == http.StatusUnprocessableEntity:
		return ErrUnprocessableEntity
	case e.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case e.StatusCode >= 500 && e.StatusCode < 600:
		return ErrServer
	default:
		return nil
	}
}

// IsAuthError reports whether err is a 401 or 403 from the API.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}

// StatusCode extracts the HTTP status from err, or 0 if err is not an *APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// ValidationError reports a caller-supplied parameter rejected before any
// request was sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("highbond: invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidParameter }

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func bodySnippet(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if len(body) > maxErrorBody {
		cut := maxErrorBody
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut]
	}
	return strings.TrimSpace(string(body))
}
