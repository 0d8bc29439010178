package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"shoppingcart-backend/internal/checkout"
	"shoppingcart-backend/internal/client"
	"shoppingcart-backend/internal/config"
	"shoppingcart-backend/internal/repository"
	"shoppingcart-backend/internal/server"
	"shoppingcart-backend/internal/service"
	"shoppingcart-backend/internal/session"
	"shoppingcart-backend/internal/telemetry"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	telemetry.InitLogger(cfg.Log)

	db := client.InitSqliteClient(cfg.DatabasePath)
	paymentClient := client.NewPaymentClient(&cfg.Payment)

	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)

	reconciler := checkout.NewReconciler(
		repository.NewCheckoutStore(db, orderRepo, attemptRepo),
	)
	sessions := session.NewManager(
		service.NewSessionLoader(cartRepo, attemptRepo, paymentClient, cfg.Checkout),
	)

	cartService := service.NewCartService(cartRepo)
	checkoutService := service.NewCheckoutService(attemptRepo, paymentClient, reconciler)
	orderService := service.NewOrderService(orderRepo)

	srv := server.NewServer(cfg.Auth.JWTSecret, sessions, cartService, checkoutService, orderService)
	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	slog.Info("starting HTTP server", "addr", serverAddr, "environment", cfg.Environment.Name)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	slog.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
		os.Exit(1)
	}
}
