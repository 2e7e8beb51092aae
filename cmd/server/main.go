package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"momentum_legal_go/config"
	"momentum_legal_go/handlers"
	"momentum_legal_go/middleware"
	"momentum_legal_go/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logCloser, err := config.SetupLogging(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()

	if missing := cfg.MissingDeliveryKeys(); len(missing) > 0 {
		log.Printf("[WARNING] Contact form delivery is not configured, missing: %v", missing)
	}
	if len(cfg.AllowedOrigins) == 0 {
		log.Printf("[WARNING] ALLOWED_ORIGINS is empty, contact form accepts every origin")
	}

	limiterConfig := middleware.ContactRateLimitConfig()
	limiterConfig.Requests = cfg.RateLimitRequests
	limiterConfig.Window = cfg.RateLimitWindow
	limiter := middleware.NewRateLimiter(limiterConfig)

	e := handlers.NewServer(cfg, services.NewDeliverer(cfg), limiter)

	// Start server
	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("[ERROR] Server shutdown failed: %v", err)
	}
}
