package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"friend-service/internal/database"
	"friend-service/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	notificationChannelPrefix = "user:"
	notificationChannelSuffix = ":notifications"
	// NotificationPattern matches every per-user notification channel.
	NotificationPattern = notificationChannelPrefix + "*" + notificationChannelSuffix
)

type RedisService struct {
	client *database.RedisClient
}

func NewRedisService(client *database.RedisClient) *RedisService {
	return &RedisService{
		client: client,
	}
}

func (r *RedisService) Client() *redis.Client {
	return r.client.GetClient()
}

// =============================================================================
// PubSub Operations
// =============================================================================

func NotificationChannel(userID uint) string {
	return notificationChannelPrefix + strconv.FormatUint(uint64(userID), 10) + notificationChannelSuffix
}

// UserIDFromChannel is the inverse of NotificationChannel.
func UserIDFromChannel(channel string) (uint, bool) {
	if !strings.HasPrefix(channel, notificationChannelPrefix) || !strings.HasSuffix(channel, notificationChannelSuffix) {
		return 0, false
	}
	raw := strings.TrimSuffix(strings.TrimPrefix(channel, notificationChannelPrefix), notificationChannelSuffix)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (r *RedisService) PublishUserNotification(ctx context.Context, userID uint, notification interface{}) error {
	data, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	err = r.client.GetClient().Publish(ctx, NotificationChannel(userID), data).Err()
	if err != nil {
		slog.Error("Failed to publish user notification", "userID", userID, "error", err)
		return err
	}

	slog.Debug("Published user notification", "userID", userID)
	return nil
}

// Publish routes a friend request event to the user it concerns.
func (r *RedisService) Publish(ctx context.Context, event models.FriendRequestEvent) error {
	return r.PublishUserNotification(ctx, event.Recipient(), event)
}

func (r *RedisService) PSubscribe(ctx context.Context, patterns ...string) *redis.PubSub {
	pubsub := r.client.GetClient().PSubscribe(ctx, patterns...)
	slog.Debug("Pattern subscribed to channels", "patterns", patterns)
	return pubsub
}

// =============================================================================
// Rate Limiting
// =============================================================================

// CheckRateLimit records a hit under key and reports whether fewer than
// limit hits were already recorded within the trailing window.
func (r *RedisService) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	windowStart := now.Add(-window).UnixMilli()

	pipe := r.client.GetClient().Pipeline()

	// Remove old entries
	pipe.ZRemRangeByScore(ctx, key, "-inf", fmt.Sprintf("(%d", windowStart))

	// Count current entries
	count := pipe.ZCard(ctx, key)

	// Add current request
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixMilli()), Member: uuid.NewString()})

	// Set expiration
	pipe.Expire(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return count.Val() < int64(limit), nil
}
