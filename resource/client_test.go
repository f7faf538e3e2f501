package resource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/outsidein/metrics"
	"github.com/s0up4200/outsidein/query"
)

var storiesEndpoint = Endpoint{
	Name:   "stories",
	Scoper: PublicationBeforeStories,
	Params: query.NewParams(
		[]query.Mapping{{Input: "limit", API: "limit"}},
		[]query.Mapping{{Input: "keyword", API: "keyword"}},
	),
}

// testServer replies with status, headers and body and counts requests
func testServer(t *testing.T, status int, header map[string]string, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		for k, v := range header {
			w.Header().Set(k, v)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func newTestClient(t *testing.T, baseURL string, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithBaseURL(baseURL), WithClock(fixedClock(1262304000))}, opts...)
	client, err := NewClient(Config{Key: "key", Secret: "secret"}, zerolog.Nop(), opts...)
	require.NoError(t, err)
	return client
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(Config{}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "http://hyperlocal-api.outside.in/v1.1", client.BaseURL())

	client, err = NewClient(Config{Host: "api.example.com", Version: "2.0"}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "http://api.example.com/v2.0", client.BaseURL())

	_, err = NewClient(Config{Host: "api.example.com/v1"}, zerolog.Nop())
	require.Error(t, err)
}

func TestClientURL(t *testing.T) {
	client, err := NewClient(Config{Key: "key", Secret: "secret"}, zerolog.Nop(), WithClock(fixedClock(1262304000)))
	require.NoError(t, err)

	var in query.Inputs
	in.Set(PublicationInput, "7").Set("limit", "3").SetList("keyword", "fire")

	got, err := client.URL(storiesEndpoint, "/states/NY/stories", in)
	require.NoError(t, err)
	assert.Equal(t,
		"http://hyperlocal-api.outside.in/v1.1/states/NY/publications/7/stories?limit=3&keyword=fire&dev_key=key&sig="+
			MD5Digest("keysecret1262304000"),
		got)
}

func TestClientGetSuccess(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"total": 2, "stories": [{"title": "a"}, {"title": "b"}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	var in query.Inputs
	in.Set(PublicationInput, "7").Set("limit", "2")

	data, err := client.Get(context.Background(), storiesEndpoint, "/zipcodes/11215/stories", in)
	require.NoError(t, err)

	assert.Equal(t, "/zipcodes/11215/publications/7/stories", gotPath)
	assert.Equal(t, "limit=2&dev_key=key&sig="+MD5Digest("keysecret1262304000"), gotQuery)
	assert.Equal(t, float64(2), data["total"])
	assert.Len(t, data["stories"], 2)
}

func TestClientGetAbsoluteURL(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, "http://unused.invalid")

	_, err := client.Get(context.Background(), Endpoint{Name: "raw"}, server.URL+"/absolute/path", query.Inputs{})
	require.NoError(t, err)
	assert.Equal(t, "/absolute/path", gotPath)
}

func TestClientGetErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		header  map[string]string
		body    string
		check   func(t *testing.T, err error)
		outcome string
	}{
		{
			name:   "forbidden",
			status: http.StatusForbidden,
			body:   `{"error": "ignored"}`,
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, ErrForbidden))
				assert.False(t, errors.Is(err, ErrNotFound))
			},
			outcome: metrics.OutcomeForbidden,
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, ErrNotFound))
				var statusErr *StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
				assert.NotContains(t, statusErr.URL, "sig=")
			},
			outcome: metrics.OutcomeNotFound,
		},
		{
			name:   "provider header takes precedence over body",
			status: http.StatusServiceUnavailable,
			header: map[string]string{MasheryErrorHeader: "ERR_403_DEVELOPER_OVER_QPS"},
			body:   `{"error": "ignored"}`,
			check: func(t *testing.T, err error) {
				var svcErr *ServiceError
				require.ErrorAs(t, err, &svcErr)
				assert.Equal(t, "ERR_403_DEVELOPER_OVER_QPS", svcErr.Code)
				assert.Equal(t, http.StatusServiceUnavailable, svcErr.StatusCode)
			},
			outcome: metrics.OutcomeServiceError,
		},
		{
			name:   "errors list joined",
			status: http.StatusBadRequest,
			body:   `{"errors": ["bad zip", "bad state"]}`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "bad zip; bad state", apiErr.Message)
				assert.Equal(t, "bad zip; bad state", err.Error())
			},
			outcome: metrics.OutcomeAPIError,
		},
		{
			name:   "null error falls back to errors list",
			status: http.StatusBadRequest,
			body:   `{"error": null, "errors": ["bad zip"]}`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "bad zip", apiErr.Message)
			},
			outcome: metrics.OutcomeAPIError,
		},
		{
			name:   "single error",
			status: http.StatusBadRequest,
			body:   `{"error": "limit must be positive"}`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "limit must be positive", apiErr.Message)
			},
			outcome: metrics.OutcomeAPIError,
		},
		{
			name:   "no message",
			status: http.StatusBadRequest,
			body:   `{}`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "unknown query error", apiErr.Message)
			},
			outcome: metrics.OutcomeAPIError,
		},
		{
			name:   "body not json",
			status: http.StatusInternalServerError,
			body:   `<html>oops</html>`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "unknown query error", apiErr.Message)
				assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
			},
			outcome: metrics.OutcomeAPIError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, calls := testServer(t, tt.status, tt.header, tt.body)
			m := metrics.New(prometheus.NewRegistry())
			client := newTestClient(t, server.URL, WithMetrics(m))

			data, err := client.Get(context.Background(), storiesEndpoint, "/states/NY/stories", query.Inputs{})
			require.Error(t, err)
			assert.Nil(t, data)
			tt.check(t, err)

			assert.Equal(t, int32(1), calls.Load(), "requests must not be retried")
			assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("stories", tt.outcome)))
		})
	}
}

func TestClientGetMissingSecretMakesNoRequest(t *testing.T) {
	server, calls := testServer(t, http.StatusOK, nil, `{}`)

	client, err := NewClient(Config{Key: "key"}, zerolog.Nop(), WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = client.Get(context.Background(), storiesEndpoint, "/states/NY/stories", query.Inputs{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSignature))
	assert.Equal(t, int32(0), calls.Load())
}

func TestClientGetMalformedSuccessBody(t *testing.T) {
	server, _ := testServer(t, http.StatusOK, nil, `not json`)
	m := metrics.New(prometheus.NewRegistry())
	client := newTestClient(t, server.URL, WithMetrics(m))

	_, err := client.Get(context.Background(), storiesEndpoint, "/states/NY/stories", query.Inputs{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
	assert.Equal(t, float64(0), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("stories", metrics.OutcomeOK)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("stories", metrics.OutcomeTransportError)))
}

func TestClientGetCanceledContext(t *testing.T) {
	server, _ := testServer(t, http.StatusOK, nil, `{}`)
	m := metrics.New(prometheus.NewRegistry())
	client := newTestClient(t, server.URL, WithMetrics(m))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Get(ctx, storiesEndpoint, "/states/NY/stories", query.Inputs{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("stories", metrics.OutcomeTransportError)))
}

func TestWithHTTPClient(t *testing.T) {
	custom := &http.Client{}
	client, err := NewClient(Config{}, zerolog.Nop(), WithHTTPClient(custom))
	require.NoError(t, err)
	assert.Same(t, custom, client.httpClient)

	client, err = NewClient(Config{}, zerolog.Nop(), WithHTTPClient(nil))
	require.NoError(t, err)
	assert.NotNil(t, client.httpClient)
}
