// Package testutil builds throwaway SQLite and Redis backends for tests.
package testutil

import (
	"fmt"
	"testing"

	"friend-service/internal/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewTestDB returns a migrated, isolated in-memory database.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.NewSQLiteConnection(dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// NewTestRedis starts a miniredis server and returns a client bound to it.
func NewTestRedis(t testing.TB) (*miniredis.Miniredis, *database.RedisClient) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, database.NewRedisClient(client)
}
