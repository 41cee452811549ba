package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/macrolog/backend/config"
	"github.com/macrolog/backend/internal/database"
	"github.com/macrolog/backend/internal/server"
	"github.com/macrolog/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Redis unavailable, continuing without cache, sessions, and rate limiting: %v", err)
		redisClient = nil
	}

	var store service.ObjectStore
	s3cfg, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		log.Printf("Warning: S3 unavailable, photo endpoints disabled: %v", err)
	} else {
		store = s3cfg
	}

	srv := server.New(cfg, db, redisClient, store)

	errChan := make(chan error, 1)
	go func() {
		log.Println("Starting server...")
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
