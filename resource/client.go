package resource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/outsidein/metrics"
	"github.com/s0up4200/outsidein/query"
)

// Service defaults
const (
	DefaultHost    = "hyperlocal-api.outside.in"
	DefaultVersion = "1.1"
)

// Config holds the connection and signing settings for a Client
type Config struct {
	Host    string
	Version string
	Key     string
	Secret  string
}

// Endpoint describes how one query resource is scoped and parameterized.
// Endpoints are stateless and shared across calls.
type Endpoint struct {
	Name   string
	Scoper Scoper
	Params *query.Params
}

// Client issues signed GET requests against the hyperlocal API
type Client struct {
	baseURL    string
	signer     Signer
	httpClient *http.Client
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// NewClient creates a new Client. Missing key or secret is not an error
// here; requests fail with a SignatureError before any network call.
func NewClient(cfg Config, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	if strings.ContainsAny(cfg.Host, "/?#") {
		return nil, fmt.Errorf("invalid host %q", cfg.Host)
	}

	c := &Client{
		baseURL:    fmt.Sprintf("http://%s/v%s", cfg.Host, cfg.Version),
		signer:     Signer{Key: cfg.Key, Secret: cfg.Secret},
		httpClient: &http.Client{},
		logger:     logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the base relative paths are resolved against
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL returns the scoped, parameterized and signed URL for a request
func (c *Client) URL(ep Endpoint, path string, in query.Inputs) (string, error) {
	return c.signer.Sign(c.unsignedURL(ep, path, in))
}

func (c *Client) unsignedURL(ep Endpoint, path string, in query.Inputs) string {
	u := path
	if strings.HasPrefix(path, "/") {
		u = c.baseURL + path
	}
	if ep.Scoper != nil {
		u = ep.Scoper.Scope(u, in)
	}
	if ep.Params != nil {
		u = ep.Params.Build(u, in)
	}
	return u
}

// Get requests a resource and returns the decoded JSON body. Paths starting
// with "/" are resolved against the base URL; anything else is used as an
// absolute URL. Non-2xx responses are returned as typed errors. There is
// exactly one attempt per call.
func (c *Client) Get(ctx context.Context, ep Endpoint, path string, in query.Inputs) (map[string]any, error) {
	unsigned := c.unsignedURL(ep, path, in)
	signed, err := c.signer.Sign(unsigned)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("endpoint", ep.Name).
		Str("url", unsigned).
		Msg("Requesting")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, signed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(ep.Name, metrics.OutcomeTransportError, start)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.ObserveRequest(ep.Name, metrics.OutcomeTransportError, start)
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug().
		Str("endpoint", ep.Name).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Response received")

	if resp.StatusCode < http.StatusMultipleChoices {
		var data map[string]any
		if err := json.Unmarshal(body, &data); err != nil {
			c.metrics.ObserveRequest(ep.Name, metrics.OutcomeTransportError, start)
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		c.metrics.ObserveRequest(ep.Name, metrics.OutcomeOK, start)
		return data, nil
	}

	err = classify(resp, body, unsigned)
	c.metrics.ObserveRequest(ep.Name, outcome(err), start)
	c.logger.Debug().Err(err).Str("endpoint", ep.Name).Msg("Request failed")
	return nil, err
}

// classify maps an error response to the error taxonomy
func classify(resp *http.Response, body []byte, requestURL string) error {
	switch resp.StatusCode {
	case http.StatusForbidden, http.StatusNotFound:
		return &StatusError{StatusCode: resp.StatusCode, URL: requestURL}
	}

	if code := resp.Header.Get(MasheryErrorHeader); code != "" {
		return &ServiceError{StatusCode: resp.StatusCode, Code: code}
	}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: unknownQueryError}
	}
	return newAPIError(resp.StatusCode, data)
}

func outcome(err error) string {
	var (
		svcErr *ServiceError
		apiErr *APIError
	)
	switch {
	case errors.Is(err, ErrForbidden):
		return metrics.OutcomeForbidden
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.As(err, &svcErr):
		return metrics.OutcomeServiceError
	case errors.As(err, &apiErr):
		return metrics.OutcomeAPIError
	}
	return metrics.OutcomeTransportError
}
