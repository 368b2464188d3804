package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"friend-service/internal/models"
	"friend-service/internal/services"

	"github.com/gin-gonic/gin"
)

type RateLimitMiddleware struct {
	redisService *services.RedisService
}

func NewRateLimitMiddleware(redisService *services.RedisService) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		redisService: redisService,
	}
}

// RateLimitIP limits public routes per client IP and path.
func (rm *RateLimitMiddleware) RateLimitIP(requests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit_ip:%s:%s", c.ClientIP(), c.FullPath())

		allowed, err := rm.redisService.CheckRateLimit(c.Request.Context(), key, requests, window)
		if err != nil {
			slog.Error("Rate limit check failed", "key", key, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Rate limit check failed"})
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Error: fmt.Sprintf("Too many requests. Limit: %d per %v", requests, window),
			})
			return
		}

		c.Next()
	}
}
