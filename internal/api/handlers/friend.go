package handlers

import (
	"net/http"
	"strconv"

	"friend-service/internal/api/middleware"
	"friend-service/internal/models"
	"friend-service/internal/services"
	"friend-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type FriendHandler struct {
	friendService *services.FriendService
}

func NewFriendHandler(friendService *services.FriendService) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

func (h *FriendHandler) errorMappings(action string) []errorMapping {
	limit, window := h.friendService.RequestLimit()
	return friendErrors(action, limit, window)
}

// requestID parses the :id path parameter; a malformed id cannot name a request.
func requestID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Friend request not found"})
		return 0, false
	}
	return uint(id), true
}

// Send godoc
// @Summary Send a friend request
// @Description Sender is the caller. Rate limited per sender.
// @Tags friend-requests
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body models.SendFriendRequest true "Receiver"
// @Success 201 {object} models.FriendRequestResponse "Request created"
// @Failure 400 {object} models.ErrorResponse "Self request or already sent"
// @Failure 404 {object} models.ErrorResponse "Receiver not found"
// @Failure 429 {object} models.ErrorResponse "Too many friend requests"
// @Router /friend-requests/send/ [post]
func (h *FriendHandler) Send(c *gin.Context) {
	var req models.SendFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid input data")
		return
	}

	created, err := h.friendService.SendRequest(c.Request.Context(), middleware.UserID(c), req.ReceiverID)
	if err != nil {
		respondError(c, err, h.errorMappings("send"))
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Accept godoc
// @Summary Accept a friend request
// @Tags friend-requests
// @Produce json
// @Security TokenAuth
// @Param id path int true "Friend request ID"
// @Success 200 {object} models.StatusResponse "Accepted"
// @Failure 400 {object} models.ErrorResponse "Already friends or not pending"
// @Failure 403 {object} models.ErrorResponse "Caller is not the receiver"
// @Failure 404 {object} models.ErrorResponse "Friend request not found"
// @Router /friend-requests/{id}/accept/ [post]
func (h *FriendHandler) Accept(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	if err := h.friendService.AcceptRequest(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, err, h.errorMappings("accept"))
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: response.MsgRequestAccepted})
}

// Reject godoc
// @Summary Reject a friend request
// @Tags friend-requests
// @Produce json
// @Security TokenAuth
// @Param id path int true "Friend request ID"
// @Success 200 {object} models.StatusResponse "Rejected"
// @Failure 400 {object} models.ErrorResponse "Already rejected"
// @Failure 403 {object} models.ErrorResponse "Caller is not the receiver"
// @Failure 404 {object} models.ErrorResponse "Friend request not found"
// @Router /friend-requests/{id}/reject/ [post]
func (h *FriendHandler) Reject(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	if err := h.friendService.RejectRequest(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, err, h.errorMappings("reject"))
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: response.MsgRequestRejected})
}

// Pending godoc
// @Summary List pending friend requests
// @Description Pending requests addressed to the caller, oldest first
// @Tags friend-requests
// @Produce json
// @Security TokenAuth
// @Success 200 {object} response.Envelope{data=[]models.FriendRequestResponse}
// @Failure 404 {object} models.ErrorResponse "No pending friend requests"
// @Router /pending-requests/ [get]
func (h *FriendHandler) Pending(c *gin.Context) {
	pending, err := h.friendService.ListPending(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, h.errorMappings("view"))
		return
	}

	c.JSON(http.StatusOK, response.Success(pending, response.MsgPendingListed))
}

// Friends godoc
// @Summary List friends
// @Tags friends
// @Produce json
// @Security TokenAuth
// @Success 200 {object} response.Envelope{data=[]models.UserResponse}
// @Router /friends/ [get]
func (h *FriendHandler) Friends(c *gin.Context) {
	friends, err := h.friendService.ListFriends(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, response.Success(friends, response.MsgFriendsListed))
}

// ListReceived godoc
// @Summary List received friend requests
// @Description Every request addressed to the caller, any status, newest first
// @Tags friend-requests
// @Produce json
// @Security TokenAuth
// @Success 200 {array} models.FriendRequestResponse
// @Router /friend-requests/ [get]
func (h *FriendHandler) ListReceived(c *gin.Context) {
	received, err := h.friendService.ListReceived(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, received)
}

// GetReceived godoc
// @Summary Get a received friend request
// @Tags friend-requests
// @Produce json
// @Security TokenAuth
// @Param id path int true "Friend request ID"
// @Success 200 {object} models.FriendRequestResponse
// @Failure 404 {object} models.ErrorResponse "Friend request not found"
// @Router /friend-requests/{id}/ [get]
func (h *FriendHandler) GetReceived(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	got, err := h.friendService.GetReceived(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, err, h.errorMappings("view"))
		return
	}

	c.JSON(http.StatusOK, got)
}
