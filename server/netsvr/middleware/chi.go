package middleware

import (
	"net/http"
	"time"

	chimid "github.com/go-chi/chi/v5/middleware"
)

// RequestID 每個請求產生 id，並回寫到 X-Request-Id header
func RequestID(next http.Handler) http.Handler {
	return chimid.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(chimid.RequestIDHeader, chimid.GetReqID(r.Context()))
		next.ServeHTTP(w, r)
	}))
}

// GetReqID 取出目前請求的 id
func GetReqID(r *http.Request) string {
	return chimid.GetReqID(r.Context())
}

// Recover panic 轉 500
func Recover(next http.Handler) http.Handler {
	return chimid.Recoverer(next)
}

// Timeout 請求 context 逾時；handler 需自行檢查 ctx
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return chimid.Timeout(d)
}
