package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

type rateWindow struct {
	hits    int
	resetAt time.Time
}

// RateLimit enforces a fixed-window request limit per client IP. It protects
// the credential endpoints; authenticated mutations are deduplicated by
// idempotency keys instead.
func RateLimit(limit int, per time.Duration) func(http.Handler) http.Handler {
	var mu sync.Mutex
	windows := make(map[string]*rateWindow)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rateLimitKey(r)
			now := time.Now()

			mu.Lock()
			win, ok := windows[key]
			if !ok || now.After(win.resetAt) {
				// Prune other stale windows while we hold the lock.
				for k, v := range windows {
					if now.After(v.resetAt) {
						delete(windows, k)
					}
				}
				win = &rateWindow{resetAt: now.Add(per)}
				windows[key] = win
			}
			if win.hits >= limit {
				resetAt := win.resetAt
				mu.Unlock()
				w.Header().Set("Retry-After", strconv.Itoa(int(time.Until(resetAt).Seconds())+1))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate_limited","message":"too many requests"}`))
				return
			}
			win.hits++
			mu.Unlock()

			next.ServeHTTP(w, r)
		})
	}
}

// rateLimitKey picks the first parseable IP so a forged X-Forwarded-For entry
// cannot smuggle an arbitrary bucket key.
func rateLimitKey(r *http.Request) string {
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		for _, part := range strings.Split(xf, ",") {
			ip := strings.TrimSpace(part)
			if ip != "" && net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && net.ParseIP(host) != nil {
		return host
	}
	return r.RemoteAddr
}
