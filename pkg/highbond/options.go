package highbond

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/samvad-hq/highbond-go/pkg/httpclient"
)

// Option configures a Client during construction in New.
type Option func(*Client) error

// WithHTTPClient replaces the resty transport, typically with a stub in tests.
func WithHTTPClient(hc httpclient.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("highbond: http client is nil")
		}
		c.http = hc
		return nil
	}
}

// WithLogger routes request diagnostics to log.
func WithLogger(log Logger) Option {
	return func(c *Client) error {
		c.log = log
		return nil
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		ua = strings.TrimSpace(ua)
		if ua == "" {
			return errors.New("highbond: user agent is empty")
		}
		c.userAgent = ua
		return nil
	}
}

// WithBaseURL points the client at an explicit scheme://host, bypassing the
// Server and Protocol settings. Useful for proxies and test servers.
func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("highbond: parse base url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("highbond: base url scheme must be http or https, got %q", u.Scheme)
		}
		if u.Host == "" {
			return errors.New("highbond: base url has no host")
		}
		c.root = u.Scheme + "://" + u.Host + strings.TrimRight(u.Path, "/")
		return nil
	}
}
