package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yns1000/haybank/internal/services"
)

// UserHandler exposes the user directory to operators holding the admin key.
type UserHandler struct {
	userService services.UserServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers lists every user.
// @Summary     List users
// @Tags        admin
// @Produce     json
// @Security    ApiKeyAuth
// @Param       page     query int false "Page number"
// @Param       pageSize query int false "Page size"
// @Success     200 {array}  models.User
// @Success     204 "No users"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Router      /admin/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respondList(c, "users", users)
}

// GetUser returns one user.
// @Summary     Get a user
// @Tags        admin
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path int true "User ID"
// @Success     200 {object} models.User
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /admin/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeleteUser removes a user that owns no account.
// @Summary     Delete a user
// @Tags        admin
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path int true "User ID"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     409 {object} ErrorResponse "User still owns accounts"
// @Router      /admin/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "User deleted"})
}
