package main

// @title           Friend Service API
// @version         1.0
// @description     Users, friend requests and friendships.
// @host            localhost:8080
// @BasePath        /
// @schemes         http https

// @securityDefinitions.apikey TokenAuth
// @in header
// @name Authorization
// @description Type "Token" or "Bearer" followed by a space and the session token.

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"friend-service/internal/adapters/kafka"
	"friend-service/internal/api/routes"
	"friend-service/internal/config"
	"friend-service/internal/database"
	"friend-service/internal/services"
	"friend-service/internal/websocket"
	"friend-service/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.Setup(cfg.LogLevel, cfg.Server.Mode)
	slog.Info("Starting friend service", "dbDriver", cfg.Database.Driver)

	redisClient, err := database.NewRedisConnection(&cfg.Redis)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	db, err := database.NewConnection(&cfg.Database, cfg.Server.Mode == "debug")
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	redisService := services.NewRedisService(redisClient)

	// Redis always carries notifications; Kafka additionally when enabled
	publishers := services.MultiPublisher{redisService}
	if cfg.Kafka.Enabled {
		producer, err := kafka.InitKafkaProducer(cfg.Kafka.Brokers)
		if err != nil {
			slog.Error("Failed to create Kafka producer", "brokers", cfg.Kafka.Brokers, "error", err)
			os.Exit(1)
		}
		kafkaPublisher := kafka.NewEventPublisher(producer, cfg.Kafka.Topic)
		defer kafkaPublisher.Close()
		publishers = append(publishers, kafkaPublisher)
		slog.Info("Kafka event publishing enabled", "topic", cfg.Kafka.Topic)
	}

	hub := websocket.NewHub(redisService)
	go hub.Run()

	router := routes.NewRouter(cfg, db, redisService, hub, publishers)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		slog.Info("Server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	hub.Stop()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	slog.Info("Server stopped")
}
