package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"friend-service/internal/models"
	"friend-service/internal/services"

	"github.com/gin-gonic/gin"
)

const msgInternalError = "Internal server error"

type errorMapping struct {
	err     error
	status  int
	message string
}

// friendErrors maps domain errors shared by every friend request route.
func friendErrors(action string, limit int, window time.Duration) []errorMapping {
	return []errorMapping{
		{services.ErrReceiverNotFound, http.StatusNotFound, "Receiver not found"},
		{services.ErrSelfRequest, http.StatusBadRequest, "You cannot send a friend request to yourself"},
		{services.ErrRequestAlreadySent, http.StatusBadRequest, "Friend request already sent"},
		{services.ErrRateLimited, http.StatusTooManyRequests, fmt.Sprintf("You cannot send more than %d friend requests within %s", limit, windowText(window))},
		{services.ErrRequestNotFound, http.StatusNotFound, "Friend request not found"},
		{services.ErrNotReceiver, http.StatusForbidden, fmt.Sprintf("You are not authorized to %s this request", action)},
		{services.ErrFriendshipExists, http.StatusBadRequest, "Friendship already exists"},
		{services.ErrAlreadyRejected, http.StatusBadRequest, "Friend request has already been rejected"},
		{services.ErrNotPending, http.StatusBadRequest, "Friend request is not pending"},
		{services.ErrNoPendingRequests, http.StatusNotFound, "No pending friend requests found."},
	}
}

// respondError writes the first matching mapping, or a logged 500.
func respondError(c *gin.Context, err error, mappings []errorMapping) {
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			c.JSON(m.status, models.ErrorResponse{Error: m.message})
			return
		}
	}

	slog.Error("Request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: msgInternalError})
}

// windowText renders the rate window for messages: "a minute", "90 seconds".
func windowText(d time.Duration) string {
	switch {
	case d == time.Minute:
		return "a minute"
	case d == time.Second:
		return "a second"
	case d == time.Hour:
		return "an hour"
	case d%time.Hour == 0:
		return fmt.Sprintf("%d hours", d/time.Hour)
	case d%time.Minute == 0:
		return fmt.Sprintf("%d minutes", d/time.Minute)
	case d%time.Second == 0:
		return fmt.Sprintf("%d seconds", d/time.Second)
	default:
		return d.String()
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: message})
}
