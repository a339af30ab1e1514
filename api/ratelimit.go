package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateCounter is the slice of the redis client the rate limiter needs
type RateCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// SubmissionRateLimiter allows each client at most limit requests per window.
// Clients are told apart by address; X-Forwarded-For is only read when the
// request comes from one of trustedProxies. Redis errors let the request
// through, so an unavailable redis never blocks citizens from reporting.
func SubmissionRateLimiter(counter RateCounter, prefix string, limit int, window time.Duration, trustedProxies ...string) func(http.Handler) http.Handler {
	trusted := make(map[string]bool, len(trustedProxies))
	for _, p := range trustedProxies {
		if p = strings.TrimSpace(p); p != "" {
			trusted[p] = true
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			key := prefix + ":" + clientAddress(r, trusted)

			count, err := counter.Incr(ctx, key).Result()
			if err != nil {
				zap.S().Warnw("rate limiter unavailable", "key", key, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			// the first hit of a window starts its expiry; a key left without
			// one (ttl -1) by a failed Expire gets it back on the next hit
			ttl := window
			if count > 1 {
				ttl, err = counter.TTL(ctx, key).Result()
				if err != nil {
					ttl = window
				}
			}
			if count == 1 || (err == nil && ttl < 0) {
				if err := counter.Expire(ctx, key, window).Err(); err != nil {
					zap.S().Warnw("failed to set rate limit expiry", "key", key, "error", err)
				}
				ttl = window
			}

			if count > int64(limit) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"error":       "rate limit exceeded",
					"retry_after": ttl.Seconds(),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientAddress returns the peer address, or, when the peer is a trusted
// proxy, the right-most X-Forwarded-For entry that is not itself trusted
func clientAddress(r *http.Request, trusted map[string]bool) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if !trusted[host] {
		return host
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop != "" && !trusted[hop] {
			return hop
		}
	}
	return host
}
