package config

import (
	"fmt"
	"strings"
)

// PrefixConfig holds where the form and its navigation target are mounted.
//
// Example environment variables:
//
//	SIGNUP_PREFIX=/signup
//	LOGIN_PREFIX=/login
type PrefixConfig struct {
	Signup string `env:"SIGNUP_PREFIX" env-default:"/signup"`
	Login  string `env:"LOGIN_PREFIX" env-default:"/login"`
}

// DefaultPrefixes returns the default mount points
func DefaultPrefixes() PrefixConfig {
	return PrefixConfig{
		Signup: "/signup",
		Login:  "/login",
	}
}

// Validate checks that both prefixes are absolute and distinct
func (p PrefixConfig) Validate() error {
	for name, prefix := range map[string]string{"signup": p.Signup, "login": p.Login} {
		if !strings.HasPrefix(prefix, "/") {
			return fmt.Errorf("%s prefix must start with '/': %q", name, prefix)
		}
		if len(prefix) > 1 && strings.HasSuffix(prefix, "/") {
			return fmt.Errorf("%s prefix must not end with '/': %q", name, prefix)
		}
	}
	if p.Signup == p.Login {
		return fmt.Errorf("signup and login prefixes must differ: %q", p.Signup)
	}
	return nil
}
