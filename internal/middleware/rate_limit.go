package middleware

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/baharkarakas/users-admin/internal/api/httpx"
)

// RateLimit allows rps requests per second with a burst of the same size.
// rps <= 0 disables limiting.
func RateLimit(rps int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	lim := rate.NewLimiter(rate.Limit(rps), rps)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !lim.Allow() {
				httpx.WriteError(w, http.StatusTooManyRequests, "rate_limited", "too many requests", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
