package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Friends   FriendsConfig
	Kafka     KafkaConfig
	RateLimit RateLimitConfig
	LogLevel  string
}

type ServerConfig struct {
	Host           string
	Port           string
	Mode           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Driver       string
	Host         string
	Port         string
	User         string
	Password     string
	DBName       string
	SSLMode      string
	Serializable bool
}

type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
	MinIdleConns int
}

type JWTConfig struct {
	Secret         string
	ExpirationTime time.Duration
}

// FriendsConfig bounds the outgoing friend request rate and search size.
type FriendsConfig struct {
	RequestLimit  int
	RequestWindow time.Duration
	SearchLimit   int
}

type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

// RateLimitConfig applies to the public auth routes, per client IP.
type RateLimitConfig struct {
	AuthRequests int
	AuthWindow   time.Duration
}

// DSN builds the driver specific connection string.
func (d DatabaseConfig) DSN() string {
	switch d.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.User, d.Password, d.Host, d.Port, d.DBName)
	case "sqlite":
		return d.DBName
	default:
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
	}
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("SERVER_READ_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_IDLE_TIMEOUT", 60*time.Second)
	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "friends")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_SERIALIZABLE", true)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_MAX_RETRIES", 3)
	v.SetDefault("REDIS_POOL_SIZE", 100)
	v.SetDefault("REDIS_MIN_IDLE_CONNS", 10)
	v.SetDefault("REDIS_DIAL_TIMEOUT", 5*time.Second)
	v.SetDefault("REDIS_READ_TIMEOUT", 3*time.Second)
	v.SetDefault("REDIS_WRITE_TIMEOUT", 3*time.Second)

	v.SetDefault("JWT_SECRET", "your-secret-key")
	v.SetDefault("JWT_EXPIRATION", 24*time.Hour)

	v.SetDefault("FRIEND_REQUEST_LIMIT", 3)
	v.SetDefault("FRIEND_REQUEST_WINDOW", time.Minute)
	v.SetDefault("SEARCH_LIMIT", 50)

	v.SetDefault("KAFKA_ENABLED", false)
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_TOPIC", "friend-requests")

	v.SetDefault("AUTH_RATE_LIMIT", 50)
	v.SetDefault("AUTH_RATE_WINDOW", time.Minute)
}

// LoadConfig reads an optional .env file, then the environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host:           v.GetString("SERVER_HOST"),
			Port:           v.GetString("SERVER_PORT"),
			Mode:           v.GetString("GIN_MODE"),
			ReadTimeout:    v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:   v.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:    v.GetDuration("SERVER_IDLE_TIMEOUT"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Driver:       strings.ToLower(v.GetString("DB_DRIVER")),
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASSWORD"),
			DBName:       v.GetString("DB_NAME"),
			SSLMode:      v.GetString("DB_SSLMODE"),
			Serializable: v.GetBool("DB_SERIALIZABLE"),
		},
		Redis: RedisConfig{
			Host:         v.GetString("REDIS_HOST"),
			Port:         v.GetString("REDIS_PORT"),
			Password:     v.GetString("REDIS_PASSWORD"),
			DB:           v.GetInt("REDIS_DB"),
			MaxRetries:   v.GetInt("REDIS_MAX_RETRIES"),
			DialTimeout:  v.GetDuration("REDIS_DIAL_TIMEOUT"),
			ReadTimeout:  v.GetDuration("REDIS_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("REDIS_WRITE_TIMEOUT"),
			PoolSize:     v.GetInt("REDIS_POOL_SIZE"),
			MinIdleConns: v.GetInt("REDIS_MIN_IDLE_CONNS"),
		},
		JWT: JWTConfig{
			Secret:         v.GetString("JWT_SECRET"),
			ExpirationTime: v.GetDuration("JWT_EXPIRATION"),
		},
		Friends: FriendsConfig{
			RequestLimit:  v.GetInt("FRIEND_REQUEST_LIMIT"),
			RequestWindow: v.GetDuration("FRIEND_REQUEST_WINDOW"),
			SearchLimit:   v.GetInt("SEARCH_LIMIT"),
		},
		Kafka: KafkaConfig{
			Enabled: v.GetBool("KAFKA_ENABLED"),
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		RateLimit: RateLimitConfig{
			AuthRequests: v.GetInt("AUTH_RATE_LIMIT"),
			AuthWindow:   v.GetDuration("AUTH_RATE_WINDOW"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.JWT.ExpirationTime <= 0 {
		return fmt.Errorf("JWT_EXPIRATION must be positive")
	}
	if c.Friends.RequestLimit <= 0 || c.Friends.RequestWindow <= 0 {
		return fmt.Errorf("FRIEND_REQUEST_LIMIT and FRIEND_REQUEST_WINDOW must be positive")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
