package ratelimit

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/tendant/simple-signup/pkg/errors"
)

// Config holds rate limiting configuration
type Config struct {
	// Per-IP rate limiting across all wrapped routes
	PerIPEnabled    bool
	PerIPCapacity   int
	PerIPRefillRate float64 // Requests per second

	// Limits keyed by "METHOD /path", applied per client IP
	EndpointLimits map[string]EndpointLimit

	// How long to keep inactive buckets in memory
	BucketTTL time.Duration

	IncludeHeaders bool

	// Clock for bucket refills; nil means time.Now
	Clock Clock
}

// EndpointLimit defines rate limits for a specific endpoint
type EndpointLimit struct {
	Capacity   int
	RefillRate float64
}

// DefaultConfig allows 100 requests per minute per IP. Endpoint limits are
// left to the caller since they depend on where routes are mounted.
func DefaultConfig() *Config {
	return &Config{
		PerIPEnabled:    true,
		PerIPCapacity:   100,
		PerIPRefillRate: 100.0 / 60.0,
		BucketTTL:       1 * time.Hour,
		IncludeHeaders:  true,
		EndpointLimits:  make(map[string]EndpointLimit),
	}
}

// Middleware holds the rate limiting middleware state
type Middleware struct {
	config           *Config
	ipLimiter        *RateLimiter
	endpointLimiters map[string]*RateLimiter
}

// NewMiddleware creates a new rate limiting middleware
func NewMiddleware(config *Config) *Middleware {
	if config == nil {
		config = DefaultConfig()
	}

	m := &Middleware{
		config:           config,
		endpointLimiters: make(map[string]*RateLimiter),
	}

	if config.PerIPEnabled {
		m.ipLimiter = NewRateLimiter(config.PerIPCapacity, config.PerIPRefillRate, config.BucketTTL, config.Clock)
	}

	for endpoint, limit := range config.EndpointLimits {
		m.endpointLimiters[endpoint] = NewRateLimiter(limit.Capacity, limit.RefillRate, config.BucketTTL, config.Clock)
	}

	return m
}

// Handler returns the rate limiting middleware handler
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIP(r)
		if m.ipLimiter != nil && ip != "" && !m.ipLimiter.Allow(ip) {
			m.rateLimitExceeded(w, r, ip, "ip")
			return
		}

		endpointKey := r.Method + " " + r.URL.Path
		if limiter, exists := m.endpointLimiters[endpointKey]; exists {
			if !limiter.Allow(ip) {
				m.rateLimitExceeded(w, r, ip, "endpoint")
				return
			}
		}

		if m.config.IncludeHeaders && m.ipLimiter != nil {
			w.Header().Set("X-RateLimit-Limit-IP", strconv.Itoa(m.config.PerIPCapacity))
		}

		next.ServeHTTP(w, r)
	})
}

// Stop ends background eviction for every limiter
func (m *Middleware) Stop() {
	if m.ipLimiter != nil {
		m.ipLimiter.Stop()
	}
	for _, l := range m.endpointLimiters {
		l.Stop()
	}
}

// GetStats returns statistics about all rate limiters
func (m *Middleware) GetStats() map[string]Stats {
	stats := make(map[string]Stats)
	if m.ipLimiter != nil {
		stats["ip"] = m.ipLimiter.GetStats()
	}
	for endpoint, limiter := range m.endpointLimiters {
		stats["endpoint:"+endpoint] = limiter.GetStats()
	}
	return stats
}

func (m *Middleware) rateLimitExceeded(w http.ResponseWriter, r *http.Request, ip, limitType string) {
	slog.Warn("Rate limit exceeded",
		"type", limitType,
		"ip", ip,
		"path", r.URL.Path,
		"method", r.Method,
	)
	w.Header().Set("Retry-After", "60")
	apperrors.Render(w, r, apperrors.RateLimitExceeded(limitType))
}

// ClientIP extracts the client IP, preferring proxy headers
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
