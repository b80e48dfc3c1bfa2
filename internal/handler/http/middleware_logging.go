package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-project-tracker/internal/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// withLogging writes one access log entry per served request. 5xx answers
// are logged at warn level.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			// nothing was written, net/http answers 200
			status = http.StatusOK
		}

		log := logger.FromRequest(r)
		entry := log.Info()
		if status >= http.StatusInternalServerError {
			entry = log.Warn()
		}
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			entry = entry.Str("route", rctx.RoutePattern())
		}

		entry.
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", status).
			Int("size", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Send()
	})
}
