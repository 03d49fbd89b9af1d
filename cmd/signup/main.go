package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/tendant/chi-demo/app"
	pkgconfig "github.com/tendant/simple-signup/pkg/config"
	"github.com/tendant/simple-signup/pkg/ratelimit"
	"github.com/tendant/simple-signup/pkg/router"
	signuphandler "github.com/tendant/simple-signup/pkg/signupform/handler"
)

type Config struct {
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	PrefixConfig pkgconfig.PrefixConfig

	// Server
	AppConfig app.AppConfig
}

func main() {
	loadEnvFile()

	config := Config{}
	if err := cleanenv.ReadEnv(&config); err != nil {
		slog.Error("Failed to read configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      pkgconfig.ParseLogLevel(config.LogLevel),
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	if err := config.PrefixConfig.Validate(); err != nil {
		slog.Error("Invalid route prefixes", "error", err)
		os.Exit(1)
	}

	rateLimitConfig := pkgconfig.NewRateLimitConfigFromEnv()
	limiter := ratelimit.NewMiddleware(rateLimitConfig.ToMiddlewareConfig(config.PrefixConfig.Signup))
	defer limiter.Stop()

	signupHandle := signuphandler.NewHandle(
		signuphandler.WithSignupPath(config.PrefixConfig.Signup),
		signuphandler.WithLoginPath(config.PrefixConfig.Login),
	)

	server := app.DefaultApp()
	server.R.Use(middleware.RequestID)
	app.RoutesHealthz(server.R)

	router.SetupRoutes(server.R, router.Config{
		PrefixConfig: config.PrefixConfig,
		SignupHandle: signupHandle,
		RateLimiter:  limiter,
	})

	slog.Info("Signup form ready",
		"signup", config.PrefixConfig.Signup,
		"login", config.PrefixConfig.Login,
	)

	server.Run()
}

// loadEnvFile loads .env from the executable's directory, falling back to the working directory
func loadEnvFile() {
	envFile := ".env"
	if execPath, err := os.Executable(); err == nil {
		envFile = filepath.Join(filepath.Dir(execPath), ".env")
	}

	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		cwd, _ := os.Getwd()
		envFile = filepath.Join(cwd, ".env")
	}

	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		slog.Debug("No .env file found (using environment variables or defaults)")
		return
	}

	slog.Info("Loading configuration from .env file", "path", envFile)
	if err := godotenv.Load(envFile); err != nil {
		slog.Warn("Failed to load .env file", "error", err)
	}
}
