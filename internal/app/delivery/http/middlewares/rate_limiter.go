package middlewares

import (
	"email-attestation-service/internal/pkg/constvars"
	"email-attestation-service/internal/pkg/exceptions"
	"email-attestation-service/internal/pkg/utils"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	rateLimitGroupBurst = "burst"
	rateLimitSweepEvery = time.Minute
)

// RateLimiter is a per-IP token bucket that blocks an IP for blockTime once
// its bucket runs dry.
type RateLimiter struct {
	limiters  map[string]*rate.Limiter
	blocked   map[string]time.Time
	mu        sync.Mutex
	requests  int
	per       time.Duration
	blockTime time.Duration
	lastSweep time.Time
	log       *zap.Logger
	now       func() time.Time
}

func NewRateLimiter(burst int, per, blockTime time.Duration, log *zap.Logger) *RateLimiter {
	return &RateLimiter{
		limiters:  make(map[string]*rate.Limiter),
		blocked:   make(map[string]time.Time),
		requests:  burst,
		per:       per,
		blockTime: blockTime,
		log:       log,
		now:       time.Now,
	}
}

// VerifyRateLimiter refills one token per second up to App.VerifyBurst.
func (m *Middlewares) VerifyRateLimiter() *RateLimiter {
	blockTime := time.Duration(m.InternalConfig.App.VerifyBlockTimeInSeconds) * time.Second
	return NewRateLimiter(m.InternalConfig.App.VerifyBurst, time.Second, blockTime, m.Log)
}

func (r *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ip, _, err := net.SplitHostPort(req.RemoteAddr)
		if err != nil {
			ip = req.RemoteAddr
		}

		if retryAfter, ok := r.allow(ip); !ok {
			r.log.Info("RateLimiter.Limit blocked request",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(req.Context())),
				zap.String(constvars.LoggingRemoteAddrKey, ip),
				zap.Int(constvars.LoggingRetryAfterSecondsKey, retryAfter),
			)
			w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(retryAfter))
			utils.BuildErrorResponse(r.log, w, exceptions.ErrTooManyRequests(rateLimitGroupBurst))
			return
		}

		next.ServeHTTP(w, req)
	})
}

// allow reports whether ip may proceed and, when it may not, the seconds
// until its block lifts.
func (r *RateLimiter) allow(ip string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if now.Sub(r.lastSweep) >= rateLimitSweepEvery {
		r.sweep(now)
		r.lastSweep = now
	}

	if blockedUntil, found := r.blocked[ip]; found {
		if now.Before(blockedUntil) {
			return secondsUntil(now, blockedUntil), false
		}
		delete(r.blocked, ip)
	}

	limiter, exists := r.limiters[ip]
	if !exists {
		limiter = rate.NewLimiter(rate.Every(r.per), r.requests)
		r.limiters[ip] = limiter
	}

	if !limiter.AllowN(now, 1) {
		blockedUntil := now.Add(r.blockTime)
		r.blocked[ip] = blockedUntil
		return secondsUntil(now, blockedUntil), false
	}
	return 0, true
}

// sweep drops expired blocks and buckets that have refilled completely, since
// a fresh bucket behaves the same.
func (r *RateLimiter) sweep(now time.Time) {
	for ip, blockedUntil := range r.blocked {
		if !now.Before(blockedUntil) {
			delete(r.blocked, ip)
		}
	}
	for ip, limiter := range r.limiters {
		if _, found := r.blocked[ip]; found {
			continue
		}
		if limiter.TokensAt(now) >= float64(r.requests) {
			delete(r.limiters, ip)
		}
	}
}

func secondsUntil(now, until time.Time) int {
	return int(math.Ceil(until.Sub(now).Seconds()))
}
