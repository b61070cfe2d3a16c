package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NeuralTrust/AuthShield/pkg/config"
	"github.com/NeuralTrust/AuthShield/pkg/dependency_container"
	infraLogger "github.com/NeuralTrust/AuthShield/pkg/infra/logger"
	"github.com/NeuralTrust/AuthShield/pkg/server"
	"github.com/NeuralTrust/AuthShield/pkg/server/router"
	"github.com/joho/godotenv"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger("authshield")

	cfg, err := config.Load("config")
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	container, err := dependency_container.NewContainer(dependency_container.ContainerDI{
		Cfg:    cfg,
		Logger: logger,
	})
	if err != nil {
		logger.Fatalf("Failed to initialize dependencies: %v", err)
	}

	container.Janitor.Start()

	srv := server.NewAdminServer(server.AdminServerDI{
		Config: cfg,
		Logger: logger,
		Routers: []router.ServerRouter{
			router.NewAdminRouter(
				container.Middlewares(),
				container.AdminAuthMiddleware,
				container.HandlerTransport,
			),
		},
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	fmt.Println("shutting down server...")
	if err := srv.Shutdown(); err != nil {
		fmt.Println("error shutting down server:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := container.Janitor.StopWithContext(ctx); err != nil {
		logger.WithError(err).Warn("janitor did not stop in time")
	}
	container.Close()
	fmt.Println("server gracefully stopped")
}
