package metrics_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchview/internal/domain/raw"
	"github.com/kailas-cloud/searchview/internal/domain/search/request"
	"github.com/kailas-cloud/searchview/internal/metrics"
	"github.com/kailas-cloud/searchview/internal/render"
	chiTransport "github.com/kailas-cloud/searchview/internal/transport/chi"
	healthuc "github.com/kailas-cloud/searchview/internal/usecase/health"
	"github.com/kailas-cloud/searchview/internal/usecase/normalize"
	searchuc "github.com/kailas-cloud/searchview/internal/usecase/search"
)

type stubBackend struct{}

func (stubBackend) Search(context.Context, *request.Request) ([]byte, error) {
	return []byte(`{"results":[{"id":"a","document":{"structData":{"title":"Bolts"}}}]}`), nil
}

func newInstrumentedRouter() http.Handler {
	svc := searchuc.New(stubBackend{}, normalize.New(nil))
	html := render.NewHTMLRenderer("Search", normalize.ExtractSummary(raw.Node{}, normalize.DefaultSummaryPlaceholder))
	srv := chiTransport.NewServer(svc, healthuc.New(nil), html, zap.NewNop())

	r := chi.NewRouter()
	r.Use(metrics.Middleware())
	srv.Routes(r)
	return r
}

func TestMiddleware_LabelsServerRoutes(t *testing.T) {
	router := newInstrumentedRouter()

	tests := []struct {
		name   string
		method string
		target string
		body   string
		route  string
		status string
	}{
		{"search", "GET", "/api/v1/search?q=bolts", "", "/api/v1/search", "200"},
		{"search validation", "GET", "/api/v1/search", "", "/api/v1/search", "400"},
		{"normalize", "POST", "/api/v1/normalize", `{"results":[]}`, "/api/v1/normalize", "200"},
		{"index", "GET", "/", "", "/", "200"},
		{"unmatched root", "GET", "/wp-login.php", "", metrics.UnmatchedRoute, "404"},
		{"unmatched api", "GET", "/api/v1/nope", "", metrics.UnmatchedRoute, "404"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			counter := metrics.HTTPRequestsTotal.WithLabelValues(tc.method, tc.route, tc.status)
			before := testutil.ToFloat64(counter)

			req := httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if got := strconv.Itoa(rr.Code); got != tc.status {
				t.Fatalf("status = %s, want %s: %s", got, tc.status, rr.Body.String())
			}
			if delta := testutil.ToFloat64(counter) - before; delta != 1 {
				t.Errorf("requests_total{%s,%s,%s} delta = %v, want 1", tc.method, tc.route, tc.status, delta)
			}
		})
	}

	if n := testutil.CollectAndCount(metrics.HTTPRequestDuration); n == 0 {
		t.Error("expected request_duration_seconds observations")
	}
	if n := testutil.CollectAndCount(metrics.HTTPResponseBytes); n == 0 {
		t.Error("expected response_bytes observations")
	}
}

func TestMiddleware_ImplicitStatusIsOK(t *testing.T) {
	r := chi.NewRouter()
	r.Use(metrics.Middleware())
	r.Get("/silent", func(http.ResponseWriter, *http.Request) {})

	counter := metrics.HTTPRequestsTotal.WithLabelValues("GET", "/silent", "200")
	before := testutil.ToFloat64(counter)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/silent", http.NoBody))

	if delta := testutil.ToFloat64(counter) - before; delta != 1 {
		t.Errorf("requests_total delta = %v, want 1", delta)
	}
}
