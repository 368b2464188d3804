package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.True(t, cfg.Database.Serializable)
	assert.Equal(t, 3, cfg.Friends.RequestLimit)
	assert.Equal(t, time.Minute, cfg.Friends.RequestWindow)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpirationTime)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("FRIEND_REQUEST_LIMIT", "5")
	t.Setenv("FRIEND_REQUEST_WINDOW", "2m")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 5, cfg.Friends.RequestLimit)
	assert.Equal(t, 2*time.Minute, cfg.Friends.RequestWindow)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	_, err := load(viper.New())
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Driver: "postgres", Host: "h", Port: "5432", User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=d sslmode=disable TimeZone=UTC", db.DSN())

	db.Driver = "mysql"
	db.Port = "3306"
	assert.Equal(t, "u:p@tcp(h:3306)/d?charset=utf8mb4&parseTime=True&loc=UTC", db.DSN())

	db.Driver = "sqlite"
	db.DBName = "file:friends.db"
	assert.Equal(t, "file:friends.db", db.DSN())
}
