package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, попробуйте позже"

// idleLimiterTTL через сколько неактивный лимитер пользователя удаляется
const idleLimiterTTL = 10 * time.Minute

type userLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает мутирующие запросы (POST, PUT, PATCH, DELETE) на пользователя.
// Читающие запросы не ограничиваются. Должен стоять после Auth.
type RateLimiter struct {
	mu    sync.Mutex
	users map[int64]*userLimiter
	rps   rate.Limit
	burst int
	now   func() time.Time

	lastSweep time.Time
}

// NewRateLimiter создает лимитер на rps запросов в секунду с пиком burst
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		users: make(map[int64]*userLimiter),
		rps:   rate.Limit(rps),
		burst: burst,
		now:   time.Now,
	}
}

// Middleware возвращает mux middleware
func (l *RateLimiter) Middleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isMutating(r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			userID, ok := GetUserID(r.Context())
			if ok && !l.allow(userID) {
				w.Header().Set("Retry-After", "1")
				handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (l *RateLimiter) allow(userID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	u, ok := l.users[userID]
	if !ok {
		u = &userLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.users[userID] = u
	}
	u.lastSeen = now

	l.evictIdle(now)
	return u.limiter.AllowN(now, 1)
}

func (l *RateLimiter) evictIdle(now time.Time) {
	if now.Sub(l.lastSweep) < time.Minute {
		return
	}
	l.lastSweep = now
	for id, u := range l.users {
		if now.Sub(u.lastSeen) > idleLimiterTTL {
			delete(l.users, id)
		}
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}
