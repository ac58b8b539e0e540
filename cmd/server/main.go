// Package main is the entry point for the laundrydesk admin API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"laundrydesk/internal/app"
	"laundrydesk/internal/domain/auth"
	v1 "laundrydesk/internal/infrastructure/http/v1"
	"laundrydesk/pkg/logger"
)

const version = "0.1.0"

func main() {
	development := getEnv("APP_ENV", "development") == "development"

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)
	log.Infow("starting laundrydesk server", "version", version)

	// --- Storage and domain services ---
	application, err := app.New(ctx, app.Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		MaxConns:        int32(getEnvInt("DB_MAX_CONNS", 10)),
		ApplicationName: "laundrydesk-server",
	})
	if err != nil {
		log.Fatalw("failed to initialize application", "error", err)
	}
	defer application.Close()

	// --- Auth ---
	jwtConfig := auth.DefaultJWTConfig(mustEnv("JWT_SECRET"))
	jwtConfig.AccessTokenTTL = getEnvDuration("JWT_TTL", jwtConfig.AccessTokenTTL)
	jwtService := auth.NewJWTService(jwtConfig)

	passwordHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if passwordHash == "" {
		if !development {
			fmt.Println("required environment variable ADMIN_PASSWORD_HASH not set")
			os.Exit(1)
		}
		passwordHash, err = auth.HashPassword(mustEnv("ADMIN_PASSWORD"))
		if err != nil {
			log.Fatalw("failed to hash admin password", "error", err)
		}
	}

	authService := auth.NewService(
		[]auth.Account{{
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			PasswordHash: passwordHash,
		}},
		jwtService,
		auth.DefaultServiceConfig(),
	)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:       log,
		Pool:         application.Pool,
		Version:      version,
		JWTValidator: jwtService,
		AuthService:  authService,
		Hotels:       application.Hotels,
		Services:     application.Services,
		Finance:      application.Finance,
		Backfill:     application.Backfill,
		Debug:        development,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: getEnvDuration("HTTP_WRITE_TIMEOUT", 5*time.Minute),
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port, "storage", storageName(application))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func storageName(a *app.App) string {
	if a.Pool == nil {
		return "memory"
	}
	return "postgres"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
