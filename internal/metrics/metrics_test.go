package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.Logins.WithLabelValues("email").Inc()
	m.Logins.WithLabelValues("email").Inc()
	m.Logins.WithLabelValues("google").Inc()
	m.OpenSessions.Add(3)
	m.OpenSessions.Dec()

	if got := testutil.ToFloat64(m.Logins.WithLabelValues("email")); got != 2 {
		t.Errorf("email logins = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.OpenSessions); got != 2 {
		t.Errorf("open sessions = %v, want 2", got)
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.GroupsCreated.Inc()
	m.RPCs.WithLabelValues("/wishlist.v1.GroupService/CreateGroup", "ok").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		"wishlist_groups_created_total 1",
		`wishlist_rpc_requests_total{code="ok",procedure="/wishlist.v1.GroupService/CreateGroup"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestNew_Independent(t *testing.T) {
	a, b := New(), New()
	a.ItemsAdded.Inc()

	if got := testutil.ToFloat64(b.ItemsAdded); got != 0 {
		t.Errorf("registries should be independent, got %v", got)
	}
}
