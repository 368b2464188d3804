package handlers

import (
	"net/http"

	"friend-service/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Search godoc
// @Summary Search users
// @Description Exact email match when q contains '@', otherwise a case-insensitive name substring
// @Tags users
// @Produce json
// @Security TokenAuth
// @Param q query string false "Email or part of a name"
// @Success 200 {array} models.UserResponse "Matching users ordered by id"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /search/ [get]
func (h *UserHandler) Search(c *gin.Context) {
	users, err := h.userService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, users)
}
