package metric

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry returned nil")
	}

	r.LoginsTotal.WithLabelValues("success").Inc()
	r.ForcedLogouts.Inc()

	if got := testutil.ToFloat64(r.LoginsTotal.WithLabelValues("success")); got != 1 {
		t.Errorf("logins_total{result=success} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.ForcedLogouts); got != 1 {
		t.Errorf("forced_logouts_total = %v, want 1", got)
	}
}

func TestInstrumentRoundTripper(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	r := NewRegistry()
	client := &http.Client{Transport: r.InstrumentRoundTripper(nil)}

	for _, path := range []string{"/libros", "/libros", "/missing"} {
		resp, err := client.Get(server.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
	}

	if got := testutil.ToFloat64(r.RequestsTotal.WithLabelValues("get", "200")); got != 2 {
		t.Errorf("requests_total{get,200} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.RequestsTotal.WithLabelValues("get", "404")); got != 1 {
		t.Errorf("requests_total{get,404} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.InFlight); got != 0 {
		t.Errorf("requests_in_flight = %v, want 0 after completion", got)
	}
}

func TestWriteText(t *testing.T) {
	r := NewRegistry()
	r.ForcedLogouts.Inc()

	var buf bytes.Buffer
	if err := r.WriteText(&buf); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "libros_session_forced_logouts_total 1") {
		t.Errorf("exposition missing counter, got:\n%s", out)
	}
	if !strings.Contains(out, "# HELP libros_session_forced_logouts_total") {
		t.Errorf("exposition missing HELP line, got:\n%s", out)
	}
}

func TestSessionCollector(t *testing.T) {
	present := false
	c := NewSessionCollector(func() bool { return present })

	r := NewRegistry()
	if err := r.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if got := testutil.ToFloat64(c); got != 0 {
		t.Errorf("authenticated = %v, want 0", got)
	}

	present = true
	if got := testutil.ToFloat64(c); got != 1 {
		t.Errorf("authenticated = %v, want 1", got)
	}

	if n := testutil.CollectAndCount(c); n != 1 {
		t.Errorf("CollectAndCount = %d, want 1", n)
	}
}
