package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// RateLimiter throttles spin requests per user over a fixed one-minute
// window backed by redis. A nil limiter disables throttling.
type RateLimiter struct {
	rdb       *redis.Client
	perMinute int
}

func NewRateLimiter(rdb *redis.Client, perMinute int) *RateLimiter {
	return &RateLimiter{rdb: rdb, perMinute: perMinute}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl == nil || rl.rdb == nil {
			next.ServeHTTP(w, r)
			return
		}

		claims, ok := claimsFrom(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		key := fmt.Sprintf("ratelimit:spin:%d", claims.UserID)

		count, err := rl.rdb.Incr(r.Context(), key).Result()
		if err != nil {
			// Fail open: the limiter protects the casino, it must not take
			// it down with redis.
			log.WithError(err).Warn("rate limiter unavailable")
			next.ServeHTTP(w, r)
			return
		}

		if count == 1 {
			rl.rdb.Expire(r.Context(), key, time.Minute)
		}

		if count > int64(rl.perMinute) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
