package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/zonemon/agent/internal/engine"
	"github.com/zonemon/agent/internal/errdefs"
	"github.com/zonemon/agent/internal/telemetry"
)

// fakeEngine returns canned responses per target.
type fakeEngine struct {
	text map[string]string
	err  error
}

func (f *fakeEngine) GetMetrics(_ context.Context, target string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	text, ok := f.text[target]
	if !ok {
		return "", errdefs.NotFound(target)
	}
	return text, nil
}

func newTestServer(eng MetricsGetter) *Server {
	return New("127.0.0.1:0", eng, telemetry.New(), zap.NewNop())
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)
	return w
}

func TestHostMetrics(t *testing.T) {
	body := "# HELP time_of_day System time in seconds since epoch\n" +
		"# TYPE time_of_day counter\n" +
		"time_of_day 1507171309247\n"
	s := newTestServer(&fakeEngine{text: map[string]string{engine.HostTarget: body}})

	w := get(t, s, "/v1/gz/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := w.Header().Get("Content-Type"); got != "text/plain; version=0.0.4" {
		t.Errorf("Content-Type = %q", got)
	}
	if w.Body.String() != body {
		t.Errorf("body = %q, want %q", w.Body.String(), body)
	}
}

func TestZoneMetrics(t *testing.T) {
	const id = "3f1a8f22-14e1-4f62-98a0-9c6b0f4648a5"
	s := newTestServer(&fakeEngine{text: map[string]string{id: "zone text\n"}})

	w := get(t, s, "/v1/"+id+"/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if w.Body.String() != "zone text\n" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestZoneMetricsNotFound(t *testing.T) {
	s := newTestServer(&fakeEngine{text: map[string]string{}})

	w := get(t, s, "/v1/11111111-2222-3333-4444-555555555555/metrics")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}

	var p Problem
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("decode problem: %v", err)
	}
	if p.Type != ProblemTypeNotFound {
		t.Errorf("problem type = %q, want %q", p.Type, ProblemTypeNotFound)
	}
	if p.Status != http.StatusNotFound {
		t.Errorf("problem status = %d", p.Status)
	}
}

func TestMetricsAfterStop(t *testing.T) {
	s := newTestServer(&fakeEngine{err: errdefs.ErrStopped})

	w := get(t, s, "/v1/gz/metrics")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}

func TestMetricsInternalError(t *testing.T) {
	s := newTestServer(&fakeEngine{err: errors.New("boom")})

	w := get(t, s, "/v1/gz/metrics")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(&fakeEngine{})

	w := get(t, s, "/v1/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status field = %v", resp["status"])
	}
	if w.Header().Get("X-Zonemon-Version") == "" {
		t.Error("missing version header")
	}
}

func TestSelfTelemetryEndpoint(t *testing.T) {
	s := newTestServer(&fakeEngine{text: map[string]string{engine.HostTarget: "x\n"}})

	// Serve one scrape so a counter exists.
	get(t, s, "/v1/gz/metrics")

	w := get(t, s, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if body := w.Body.String(); !strings.Contains(body, "zonemon_scrapes_total") {
		t.Errorf("self telemetry missing scrape counter:\n%s", body)
	}
}
