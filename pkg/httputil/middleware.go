package httputil

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/weave/pkg/observability"
)

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Instrument wraps next so each request is reported to the server hooks
// and logged at debug level. A nil logger skips logging.
func Instrument(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			hooks := observability.Server()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
			next.ServeHTTP(rec, r)

			route := r.URL.Path
			if rc := chi.RouteContext(r.Context()); rc != nil {
				if p := rc.RoutePattern(); p != "" {
					route = p
				}
			}
			dur := time.Since(start)
			hooks.OnResponse(r.Context(), r.Method, route, rec.status, dur)
			if logger != nil {
				logger.Debug("request", "method", r.Method, "route", route, "status", rec.status, "duration", dur.Round(time.Microsecond))
			}
		})
	}
}
