package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"friend-service/internal/models"
	"friend-service/internal/services"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key holding the authenticated user's ID.
const UserIDKey = "user_id"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (uint, error)
}

type AuthMiddleware struct {
	auth Authenticator
}

func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireAuth accepts "Authorization: Token <t>" or "Authorization: Bearer <t>".
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return am.require(false)
}

// RequireAuthOrQuery also accepts ?token=<t>, for WebSocket clients that
// cannot set headers.
func (am *AuthMiddleware) RequireAuthOrQuery() gin.HandlerFunc {
	return am.require(true)
}

func (am *AuthMiddleware) require(allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := tokenFromHeader(c.GetHeader("Authorization"))
		if !ok && allowQuery {
			token = c.Query("token")
			ok = token != ""
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication credentials were not provided."})
			return
		}

		userID, err := am.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, services.ErrInvalidToken) {
				slog.Error("Token check failed", "error", err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid token."})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

func tokenFromHeader(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return "", false
	}
	if !strings.EqualFold(scheme, "Token") && !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// UserID returns the ID stored by RequireAuth.
func UserID(c *gin.Context) uint {
	return c.GetUint(UserIDKey)
}
