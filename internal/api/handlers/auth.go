package handlers

import (
	"net/http"

	"friend-service/internal/api/middleware"
	"friend-service/internal/models"
	"friend-service/internal/services"
	"friend-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService *services.UserService
}

func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// Signup godoc
// @Summary Register a new user
// @Description Create an account; the email is stored lowercase and must be unique
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SignupRequest true "Signup data"
// @Success 201 {object} models.UserResponse "User created"
// @Failure 400 {object} models.ErrorResponse "Invalid input or email already taken"
// @Failure 429 {object} models.ErrorResponse "Too many requests"
// @Router /signup/ [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid input data")
		return
	}

	user, err := h.userService.Signup(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, []errorMapping{
			{services.ErrEmailTaken, http.StatusBadRequest, "A user with this email already exists."},
			{services.ErrPasswordTooLong, http.StatusBadRequest, "Invalid input data"},
		})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary User login
// @Description Authenticate with email and password and receive the session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "User login credentials"
// @Success 200 {object} models.LoginResponse "Login successful"
// @Failure 400 {object} models.ErrorResponse "Invalid credentials"
// @Failure 429 {object} models.ErrorResponse "Too many requests"
// @Router /login/ [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid Credentials")
		return
	}

	token, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, []errorMapping{
			{services.ErrInvalidCredentials, http.StatusBadRequest, "Invalid Credentials"},
		})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{Message: response.MsgLoginSuccessful, Token: token})
}

// Logout godoc
// @Summary User logout
// @Description End the caller's session; the token stops working immediately
// @Tags auth
// @Produce json
// @Security TokenAuth
// @Success 200 {object} models.StatusResponse "Logged out"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /logout/ [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.userService.Logout(c.Request.Context(), middleware.UserID(c)); err != nil {
		respondError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, models.StatusResponse{Status: response.MsgLoggedOut})
}
