package ratelimit

import (
	"io"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dankdash1/dispatch-service/internal/logx"
)

// Middleware throttles the dispatch HTTP surface per client IP.
// A denied request costs one bucket lookup and never reaches a handler.
type Middleware struct {
	logger  logx.Logger
	denied  prometheus.Counter
	limiter Limiter
}

// New creates the middleware. A nil limiter admits everything, a nil
// counter skips metrics.
func New(logger logx.Logger, denied prometheus.Counter, limiter Limiter) *Middleware {
	if limiter == nil {
		limiter = NopLimiter{}
	}
	return &Middleware{logger: logger, denied: denied, limiter: limiter}
}

// Handler returns chi-style middleware.
func (m *Middleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if m.limiter.Allow(ip) {
				next.ServeHTTP(w, r)
				return
			}

			if m.denied != nil {
				m.denied.Inc()
			}
			m.logger.Warn("rate limit exceeded",
				logx.String("ip", ip),
				logx.String("method", r.Method),
				logx.String("path", r.URL.Path),
			)

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			if _, err := io.WriteString(w, `{"error":"too many requests"}`); err != nil {
				// the client may have hung up already
				m.logger.Debug("rate limit response write failed",
					logx.String("ip", ip),
					logx.Any("error", err),
				)
			}
		})
	}
}

// clientIP expects RealIP upstream to have rewritten RemoteAddr from
// the forwarding headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
