package middleware

import (
	"net/http"
	"time"
)

// RequestObserver receives the outcome of each completed request.
type RequestObserver interface {
	ObserveRequest(method string, status int, elapsed time.Duration)
}

// Metrics returns middleware that reports method, status, and latency to obs.
func Metrics(obs RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := record(w)
			next.ServeHTTP(rec, r)
			obs.ObserveRequest(r.Method, rec.status, time.Since(start))
		})
	}
}
