package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ChathuraSudaraka/WEB2-sub001/internal/checkout"
	"github.com/ChathuraSudaraka/WEB2-sub001/internal/config"
	"github.com/ChathuraSudaraka/WEB2-sub001/internal/handlers"
	"github.com/ChathuraSudaraka/WEB2-sub001/internal/middleware"
	"github.com/ChathuraSudaraka/WEB2-sub001/internal/orderapi"
	"github.com/ChathuraSudaraka/WEB2-sub001/internal/repository"
	"github.com/ChathuraSudaraka/WEB2-sub001/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting storefront checkout server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"order_api", cfg.OrderAPI.BaseURL,
		"log_level", cfg.LogLevel,
	)

	// Upstream order API client and response normalizer
	apiClient := orderapi.NewClient(cfg.OrderAPI.BaseURL, time.Duration(cfg.OrderAPI.Timeout)*time.Second)
	normalizer := &orderapi.Normalizer{Log: log}

	// Checkout sessions
	sessionRepo := repository.NewInMemorySessionRepository()
	checkoutManager := checkout.NewManager(sessionRepo, apiClient, apiClient, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutManager, log)
	orderHandler := handlers.NewOrderHandler(apiClient, normalizer, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "api_key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Checkout wizard endpoints
		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutHandler.StartCheckout)
			r.Get("/{sessionID}", checkoutHandler.GetCheckout)
			r.Put("/{sessionID}/shipping", checkoutHandler.UpdateShipping)
			r.Post("/{sessionID}/next", checkoutHandler.NextStep)
			r.Post("/{sessionID}/back", checkoutHandler.PrevStep)
			r.Post("/{sessionID}/submit", checkoutHandler.Submit)
		})

		// Order history endpoints
		r.Get("/orders/user/{userID}", orderHandler.ListUserOrders)
		r.Get("/orders/{orderID}", orderHandler.GetOrder)

		// Admin endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(cfg.Auth))
			r.Get("/orders", orderHandler.ListAllOrders)
			r.Put("/orders/{orderID}/status", orderHandler.UpdateOrderStatus)
		})
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
