package ratelimit

// Limiter decides whether a client key may proceed.
type Limiter interface {
	Allow(key string) bool
}
