package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"friend-service/internal/config"
	"friend-service/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewConnection opens the configured database and migrates the schema.
func NewConnection(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, gormConfig(debug))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	configurePool(sqlDB, cfg.Driver)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// NewSQLiteConnection opens a SQLite database; used for local runs and tests.
// An in-memory DSN must use cache=shared to survive across pool connections.
func NewSQLiteConnection(dsn string) (*gorm.DB, error) {
	return NewConnection(&config.DatabaseConfig{Driver: "sqlite", DBName: dsn}, false)
}

func dialectorFor(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres":
		return postgres.Open(cfg.DSN()), nil
	case "mysql":
		return mysql.Open(cfg.DSN()), nil
	case "sqlite":
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func gormConfig(debug bool) *gorm.Config {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		SkipDefaultTransaction:                   true,
		TranslateError:                           true, // surface gorm.ErrDuplicatedKey
		NowFunc:                                  func() time.Time { return time.Now().UTC() },
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

func configurePool(db *sql.DB, driver string) {
	if driver == "sqlite" {
		// one writer; also keeps a shared in-memory database on a single connection
		db.SetMaxOpenConns(1)
		return
	}
	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(50)
	db.SetConnMaxLifetime(time.Hour)
}

// Migrate creates or updates the users, friend_requests and friendships tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.FriendRequest{},
		&models.Friendship{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
