package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	pkgconfig "github.com/tendant/simple-signup/pkg/config"
	"github.com/tendant/simple-signup/pkg/ratelimit"
	signuphandler "github.com/tendant/simple-signup/pkg/signupform/handler"
)

// Config holds the handlers and middleware needed to setup routes
type Config struct {
	PrefixConfig pkgconfig.PrefixConfig

	SignupHandle *signuphandler.Handle

	// Optional: nil disables rate limiting
	RateLimiter *ratelimit.Middleware
}

// SetupRoutes mounts the sign-up form and its login destination
func SetupRoutes(router chi.Router, cfg Config) {
	router.Route(cfg.PrefixConfig.Signup, func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(limitPosts(cfg.RateLimiter.Handler, cfg.SignupHandle.IsToggle))
		}
		cfg.SignupHandle.RegisterRoutes(r)
	})

	router.Get(cfg.PrefixConfig.Login, cfg.SignupHandle.LoginPage)
}

// limitPosts applies mw to POST requests. Rendering the form is never
// limited, and neither are visibility toggles, which only re-render it.
func limitPosts(mw func(http.Handler) http.Handler, isToggle func(*http.Request) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		limited := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || isToggle(r) {
				next.ServeHTTP(w, r)
				return
			}
			limited.ServeHTTP(w, r)
		})
	}
}
