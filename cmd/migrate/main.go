package main

import (
	"log"
	"log/slog"

	"friend-service/internal/config"
	"friend-service/internal/database"
	"friend-service/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	logger.Setup(cfg.LogLevel, cfg.Server.Mode)

	slog.Info("Starting database migration...", "driver", cfg.Database.Driver)

	// NewConnection migrates the schema before returning
	db, err := database.NewConnection(&cfg.Database, true)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to get database instance:", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	slog.Info("Database migration completed successfully!")
}
