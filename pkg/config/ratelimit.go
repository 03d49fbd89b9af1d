package config

import (
	"net/http"
	"time"

	"github.com/tendant/simple-signup/pkg/ratelimit"
)

// RateLimitConfig contains rate limiting settings for the form's POST routes.
type RateLimitConfig struct {
	PerIPEnabled    bool
	PerIPCapacity   int
	PerIPRefillRate float64 // tokens per second

	// Submit endpoint specific limits
	SubmitEnabled    bool
	SubmitCapacity   int
	SubmitRefillRate float64 // tokens per second

	BucketTTL      time.Duration
	IncludeHeaders bool
}

// DefaultRateLimitConfig returns a RateLimitConfig with sensible defaults
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		// Per-IP: ~100 requests per minute, keystrokes included
		PerIPEnabled:    true,
		PerIPCapacity:   100,
		PerIPRefillRate: 1.67,

		// Submit: 5 per 5 minutes
		SubmitEnabled:    true,
		SubmitCapacity:   5,
		SubmitRefillRate: 0.017,

		BucketTTL:      time.Hour,
		IncludeHeaders: true,
	}
}

// NewRateLimitConfigFromEnv loads RateLimitConfig from environment variables.
//
// Environment variables:
//   - RATELIMIT_PER_IP_ENABLED (default: true)
//   - RATELIMIT_PER_IP_CAPACITY (default: 100)
//   - RATELIMIT_PER_IP_REFILL_RATE (default: 1.67)
//   - RATELIMIT_SUBMIT_ENABLED (default: true)
//   - RATELIMIT_SUBMIT_CAPACITY (default: 5)
//   - RATELIMIT_SUBMIT_REFILL_RATE (default: 0.017)
//   - RATELIMIT_BUCKET_TTL (default: 1h)
//   - RATELIMIT_INCLUDE_HEADERS (default: true)
func NewRateLimitConfigFromEnv() RateLimitConfig {
	d := DefaultRateLimitConfig()
	return RateLimitConfig{
		PerIPEnabled:     GetEnvBool("RATELIMIT_PER_IP_ENABLED", d.PerIPEnabled),
		PerIPCapacity:    GetEnvInt("RATELIMIT_PER_IP_CAPACITY", d.PerIPCapacity),
		PerIPRefillRate:  GetEnvFloat64("RATELIMIT_PER_IP_REFILL_RATE", d.PerIPRefillRate),
		SubmitEnabled:    GetEnvBool("RATELIMIT_SUBMIT_ENABLED", d.SubmitEnabled),
		SubmitCapacity:   GetEnvInt("RATELIMIT_SUBMIT_CAPACITY", d.SubmitCapacity),
		SubmitRefillRate: GetEnvFloat64("RATELIMIT_SUBMIT_REFILL_RATE", d.SubmitRefillRate),
		BucketTTL:        GetEnvDuration("RATELIMIT_BUCKET_TTL", d.BucketTTL),
		IncludeHeaders:   GetEnvBool("RATELIMIT_INCLUDE_HEADERS", d.IncludeHeaders),
	}
}

// ToMiddlewareConfig builds the middleware configuration. Submit limits apply
// to both the HTML post and the JSON submit route under signupPrefix. The
// router keeps visibility toggles, which share the HTML post route, out of
// the limiter.
func (c RateLimitConfig) ToMiddlewareConfig(signupPrefix string) *ratelimit.Config {
	cfg := &ratelimit.Config{
		PerIPEnabled:    c.PerIPEnabled,
		PerIPCapacity:   c.PerIPCapacity,
		PerIPRefillRate: c.PerIPRefillRate,
		BucketTTL:       c.BucketTTL,
		IncludeHeaders:  c.IncludeHeaders,
		EndpointLimits:  make(map[string]ratelimit.EndpointLimit),
	}
	if c.SubmitEnabled {
		limit := ratelimit.EndpointLimit{Capacity: c.SubmitCapacity, RefillRate: c.SubmitRefillRate}
		cfg.EndpointLimits[http.MethodPost+" "+signupPrefix] = limit
		cfg.EndpointLimits[http.MethodPost+" "+signupPrefix+"/"] = limit
		cfg.EndpointLimits[http.MethodPost+" "+signupPrefix+"/submit"] = limit
	}
	return cfg
}
