package handler

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const maxTrackedSessions = 10000

// UploadLimiter applies a token bucket per session so one client cannot
// queue unbounded OCR and generation work.
type UploadLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewUploadLimiter allows perMinute uploads per session with the given burst.
// A non-positive perMinute disables limiting.
func NewUploadLimiter(perMinute float64, burst int) *UploadLimiter {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Duration(float64(time.Minute) / perMinute))
	}
	return &UploadLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

// Allow reports whether the session may start another upload now
func (l *UploadLimiter) Allow(sessionID string) bool {
	if l.limit == rate.Inf {
		return true
	}
	l.mu.Lock()
	limiter, ok := l.limiters[sessionID]
	if !ok {
		if len(l.limiters) >= maxTrackedSessions {
			l.prune()
		}
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[sessionID] = limiter
	}
	l.mu.Unlock()
	return limiter.Allow()
}

// prune drops fully refilled buckets, which are indistinguishable from new
// ones. Callers hold l.mu.
func (l *UploadLimiter) prune() {
	for id, limiter := range l.limiters {
		if limiter.Tokens() >= float64(l.burst) {
			delete(l.limiters, id)
		}
	}
}

// Middleware rejects requests over the limit with 429. It must run after
// SessionMiddleware.
func (l *UploadLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, _ := GetSessionIDFromContext(r)
		if !l.Allow(sessionID) {
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "Too many uploads, please wait before sending another file.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
