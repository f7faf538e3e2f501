package resource

import (
	"net/http"
	"strings"
	"time"

	"github.com/s0up4200/outsidein/metrics"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests. The default client
// has no timeout; bound calls with the context instead.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithBaseURL overrides the http://{host}/v{version} base that relative
// resource paths are resolved against.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithMetrics records request counts and durations
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithClock sets the time source used for signatures
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.signer.Now = now
	}
}

// WithDigest replaces the signature digest
func WithDigest(digest DigestFunc) Option {
	return func(c *Client) {
		c.signer.Digest = digest
	}
}
