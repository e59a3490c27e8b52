package middleware

import (
	"net/http"

	"github.com/Lixing-Zhang/menuboard/internal/metrics"
)

// Metrics middleware counts requests per route pattern and status code
func Metrics(rec *metrics.Recorder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(ww, r)

			rec.IncHTTP(routePattern(r), ww.statusCode)
		})
	}
}
