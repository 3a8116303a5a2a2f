package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// requestLogger logs one line per request once it has been served.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		slog.InfoContext(r.Context(), "request served",
			"status", status,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
			"htmx", r.Header.Get("HX-Request") == "true",
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
