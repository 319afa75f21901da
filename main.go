package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"carrental/internal/app"
	"carrental/internal/config"
	"carrental/internal/services"
	"carrental/pkg/logger"
	"carrental/pkg/rabbitmq"

	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// --- Storage ---
	store, err := app.OpenStore(cfg)
	if err != nil {
		log.Fatal("failed to open store", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	defer store.Close()

	// --- RabbitMQ (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.RabbitMQExchange}, log)
		if err != nil {
			log.Fatal("failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close()
		publisher = mqClient

		if err := mqClient.Consume(cfg.RabbitMQExchange, "carrental_audit", "#", rabbitmq.AuditHandler(log)); err != nil {
			log.Error("failed to start audit consumer", zap.Error(err))
		}
	} else {
		log.Info("RABBITMQ_URL not set, domain events disabled")
	}

	application := app.New(app.Deps{
		Store:     store,
		Publisher: publisher,
		Exchange:  cfg.RabbitMQExchange,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		Logger:    log,
	})

	// --- Seed data ---
	if cfg.AdminEmail != "" {
		if err := application.AuthService.SeedAdmin(cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatal("failed to seed admin", zap.Error(err))
		}
	}
	if cfg.SeedCars {
		if err := app.SeedCars(store.Cars, log); err != nil {
			log.Fatal("failed to seed cars", zap.Error(err))
		}
	}

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("starting server", zap.String("port", cfg.AppPort))
		if err := application.Fiber.Listen(cfg.AppPort); err != nil {
			log.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-quit
	log.Info("shutting down server")
	if err := application.Fiber.Shutdown(); err != nil {
		log.Error("error during fiber shutdown", zap.Error(err))
	}
	log.Info("server gracefully stopped")
}
