package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/weave/pkg/errors"
	"github.com/matzehuels/weave/pkg/observability"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidConfig, "bad"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeInvalidPreset, "bad"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeInvalidTime, "backwards"), http.StatusConflict},
		{errors.New(errors.ErrCodeSessionNotFound, "gone"), http.StatusNotFound},
		{errors.New(errors.ErrCodeUnsupported, "no"), http.StatusNotImplemented},
		{fmt.Errorf("wrapped: %w", errors.New(errors.ErrCodeNotFound, "x")), http.StatusNotFound},
		{fmt.Errorf("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", "abc"))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var body ErrorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Code != errors.ErrCodeSessionNotFound || body.Message != `session "abc" not found` {
		t.Errorf("body = %+v", body)
	}
}

func TestWriteErrorPlain(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, fmt.Errorf("boom"))

	var body ErrorBody
	_ = json.NewDecoder(rec.Body).Decode(&body)
	if rec.Code != http.StatusInternalServerError || body.Code != errors.ErrCodeInternal {
		t.Errorf("status %d body %+v", rec.Code, body)
	}
}

func TestQueryParams(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x?t=1.25&seed=42&bad=x", nil)

	if v, err := QueryFloat(r, "t", 0); err != nil || v != 1.25 {
		t.Errorf("QueryFloat(t) = %v, %v", v, err)
	}
	if v, err := QueryFloat(r, "missing", 3); err != nil || v != 3 {
		t.Errorf("QueryFloat(missing) = %v, %v", v, err)
	}
	if _, err := QueryFloat(r, "bad", 0); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("QueryFloat(bad) error = %v", err)
	}
	if v, err := QueryUint(r, "seed", 0); err != nil || v != 42 {
		t.Errorf("QueryUint(seed) = %v, %v", v, err)
	}
	if _, err := QueryUint(r, "bad", 0); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("QueryUint(bad) error = %v", err)
	}
}

type serverRecorder struct {
	mu        sync.Mutex
	routes    []string
	statuses  []int
	requested int
}

func (s *serverRecorder) OnRequest(context.Context, string, string) {
	s.mu.Lock()
	s.requested++
	s.mu.Unlock()
}

func (s *serverRecorder) OnResponse(_ context.Context, _ string, route string, status int, _ time.Duration) {
	s.mu.Lock()
	s.routes = append(s.routes, route)
	s.statuses = append(s.statuses, status)
	s.mu.Unlock()
}

func TestInstrumentReportsRoutePattern(t *testing.T) {
	rec := &serverRecorder{}
	observability.SetServerHooks(rec)
	t.Cleanup(observability.Reset)

	r := chi.NewRouter()
	r.Use(Instrument(nil))
	r.Get("/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/sessions/abc")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.requested != 1 {
		t.Errorf("requests = %d", rec.requested)
	}
	if len(rec.routes) != 1 || rec.routes[0] != "/sessions/{id}" || rec.statuses[0] != http.StatusTeapot {
		t.Errorf("routes %v statuses %v", rec.routes, rec.statuses)
	}
}
