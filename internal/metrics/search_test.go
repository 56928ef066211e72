package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterSearchMetrics_Idempotent(t *testing.T) {
	RegisterSearchMetrics()
	RegisterSearchMetrics()

	BackendRequestsTotal.WithLabelValues("200").Inc()
	if v := testutil.ToFloat64(BackendRequestsTotal.WithLabelValues("200")); v < 1 {
		t.Errorf("backend_requests_total = %f", v)
	}
}

func TestCollectors_RegisterOnCustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	for _, c := range Collectors() {
		if err := reg.Register(c); err != nil {
			t.Fatalf("register: %v", err)
		}
	}

	DocumentSectionsTotal.WithLabelValues("snippets").Inc()
	if n := testutil.CollectAndCount(DocumentSectionsTotal); n == 0 {
		t.Error("expected document_sections_total series")
	}
}
