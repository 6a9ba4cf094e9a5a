// Package main is the entry point for the audiens API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"audiens/internal/domain/eval"
	"audiens/internal/domain/refdata"
	"audiens/internal/domain/targetgroup"
	v1 "audiens/internal/infrastructure/http/v1"
	"audiens/internal/infrastructure/refsource"
	"audiens/internal/infrastructure/storage/postgres"
	"audiens/internal/infrastructure/storage/postgres/employee_repo"
	"audiens/internal/infrastructure/storage/postgres/targetgroup_repo"
	"audiens/pkg/logger"
)

func main() {
	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting audiens server")

	// --- Database connection ---
	dsn := mustEnv("DATABASE_URL")
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	// --- Repositories ---
	tgRepo := targetgroup_repo.New(pool)
	empRepo := employee_repo.New(pool)

	// --- Reference values ---
	// One fetch per categorical attribute at startup; failures degrade the
	// attribute to free-text input rather than blocking startup.
	refStore := refdata.NewStore(nil)
	var refSource refdata.Source
	if baseURL := getEnv("REF_BASE_URL", ""); baseURL != "" {
		refSource = refsource.New(refsource.Config{
			BaseURL: baseURL,
			Timeout: getEnvDuration("REF_TIMEOUT", 10*time.Second),
		})
		log.Infow("loading reference values from upstream", "base_url", baseURL)
	} else {
		refSource = refdata.NewEmployeeSource(empRepo)
		log.Info("loading reference values from employee store")
	}
	refStore.LoadAll(ctx, refSource)

	// --- Evaluator ---
	evaluator, err := eval.New()
	if err != nil {
		log.Fatalw("failed to create evaluator", "error", err)
	}

	// --- Audit ---
	audit, err := postgres.NewAuditService(pool)
	if err != nil {
		log.Fatalw("failed to create audit service", "error", err)
	}

	// --- Target Group Service ---
	tgService := targetgroup.NewService(tgRepo, empRepo, evaluator, audit)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:         pool,
		Logger:       log,
		TargetGroups: tgService,
		RefStore:     refStore,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
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

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
