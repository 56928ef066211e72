package discovery

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/kailas-cloud/searchview/internal/domain"
	"github.com/kailas-cloud/searchview/internal/domain/search/request"
)

func newRequest(t *testing.T) *request.Request {
	t.Helper()
	f := false
	r, err := request.New("mounting bracket", request.Params{PageSize: 7, ReturnSnippet: &f})
	require.NoError(t, err)
	return &r
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := New(&Config{
		Endpoint:   srv.URL,
		Project:    "acme",
		Engine:     "manuals",
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)
	return c
}

func TestBuildURL(t *testing.T) {
	u, err := buildURL(&Config{Endpoint: "https://discoveryengine.googleapis.com/", Project: "p1", Engine: "e1"})
	require.NoError(t, err)
	assert.Equal(t,
		"https://discoveryengine.googleapis.com/v1/projects/p1/locations/global/collections/default_collection/engines/e1/servingConfigs/default_search:search",
		u)

	u, err = buildURL(&Config{Endpoint: "http://proxy:9000/search", RawEndpoint: true})
	require.NoError(t, err)
	assert.Equal(t, "http://proxy:9000/search", u)

	_, err = buildURL(&Config{Endpoint: "not a url"})
	assert.Error(t, err)

	_, err = buildURL(&Config{Endpoint: "https://host"})
	assert.Error(t, err, "project and engine are required without raw_endpoint")
}

func TestSearch_SendsBodyAndReturnsPayload(t *testing.T) {
	var got []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/projects/acme/locations/global/collections/default_collection/engines/manuals/servingConfigs/default_search:search", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		got, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"results":[],"totalSize":0}`))
	}))
	defer srv.Close()

	payload, err := newTestClient(t, srv).Search(context.Background(), newRequest(t))
	require.NoError(t, err)
	assert.JSONEq(t, `{"results":[],"totalSize":0}`, string(payload))

	body := gjson.ParseBytes(got)
	assert.Equal(t, "mounting bracket", body.Get("query").String())
	assert.Equal(t, int64(7), body.Get("pageSize").Int())
	assert.Equal(t, "AUTO", body.Get("queryExpansionSpec.condition").String())
	assert.Equal(t, "AUTO", body.Get("spellCorrectionSpec.mode").String())
	assert.False(t, body.Get("contentSearchSpec.snippetSpec.returnSnippet").Bool())
	assert.Equal(t, int64(5), body.Get("contentSearchSpec.summarySpec.summaryResultCount").Int())
	assert.True(t, body.Get("contentSearchSpec.summarySpec.includeCitations").Bool())
	assert.True(t, body.Get("contentSearchSpec.summarySpec.ignoreAdversarialQuery").Bool())
	assert.Equal(t, int64(1), body.Get("contentSearchSpec.extractiveContentSpec.maxExtractiveAnswerCount").Int())
	assert.Equal(t, int64(1), body.Get("contentSearchSpec.extractiveContentSpec.maxExtractiveSegmentCount").Int())
}

func TestSearch_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    error
		message string
	}{
		{"bad request", 400, `{"error":{"code":400,"message":"Invalid serving config","status":"INVALID_ARGUMENT"}}`, domain.ErrBackendRejected, "Invalid serving config"},
		{"forbidden", 403, `{"error":{"message":"Permission denied"}}`, domain.ErrBackendRejected, "Permission denied"},
		{"server error plain body", 500, "upstream exploded", domain.ErrBackendRejected, "upstream exploded"},
		{"rate limited", 429, `{"error":{"message":"Quota exceeded"}}`, domain.ErrRateLimited, "Quota exceeded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv).Search(context.Background(), newRequest(t))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var be *domain.BackendError
			require.True(t, errors.As(err, &be))
			assert.Equal(t, tt.status, be.StatusCode)
			assert.Equal(t, tt.message, be.Message)
			assert.Equal(t, int32(1), calls.Load(), "no retries")
		})
	}
}

func TestSearch_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	c := newTestClient(t, srv)
	srv.Close()

	_, err := c.Search(context.Background(), newRequest(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
}

func TestSearch_RateLimitHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := New(&Config{Endpoint: srv.URL, RawEndpoint: true, RateLimit: 0.001, HTTPClient: srv.Client()})
	require.NoError(t, err)

	_, err = c.Search(context.Background(), newRequest(t))
	require.NoError(t, err, "first call uses the burst token")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Search(ctx, newRequest(t))
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestSearch_CancelledContextIsNotRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := New(&Config{Endpoint: srv.URL, RawEndpoint: true, RateLimit: 0.001, HTTPClient: srv.Client()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Search(ctx, newRequest(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrRateLimited)
}

func TestSearch_ResponseSizeLimit(t *testing.T) {
	const limit = 64
	body := `{"results":[{"id":"a"}],"pad":"` + strings.Repeat("x", 2*limit) + `"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("exact") == "1" {
			_, _ = w.Write([]byte(body[:limit]))
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	c, err := New(&Config{Endpoint: srv.URL, RawEndpoint: true, HTTPClient: srv.Client(), MaxResponseBytes: limit})
	require.NoError(t, err)

	payload, err := c.Search(context.Background(), newRequest(t))
	require.Error(t, err, "oversized body must not be returned truncated")
	assert.Nil(t, payload)
	assert.ErrorIs(t, err, domain.ErrBackendRejected)

	exact, err := New(&Config{Endpoint: srv.URL + "?exact=1", RawEndpoint: true, HTTPClient: srv.Client(), MaxResponseBytes: limit})
	require.NoError(t, err)
	payload, err = exact.Search(context.Background(), newRequest(t))
	require.NoError(t, err)
	assert.Len(t, payload, limit)
}

func TestNew_DefaultResponseLimit(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	assert.Equal(t, int64(defaultMaxResponseBytes), newTestClient(t, srv).maxBytes)
}

func TestHealthCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	c := newTestClient(t, srv)

	assert.NoError(t, c.HealthCheck(context.Background()), "any HTTP answer is healthy")

	srv.Close()
	assert.ErrorIs(t, c.HealthCheck(context.Background()), domain.ErrBackendUnavailable)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "boom", errorMessage([]byte(`{"error":{"message":"boom"}}`)))
	assert.Equal(t, `{"error":{"message":1}}`, errorMessage([]byte(`{"error":{"message":1}}`)))
	assert.Equal(t, "", errorMessage(nil))
}
