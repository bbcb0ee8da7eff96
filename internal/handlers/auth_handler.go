package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Yns1000/haybank/internal/services"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userService       services.UserServicer
	credentialService services.CredentialServicer
	auditService      services.AuditServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserServicer, credentialService services.CredentialServicer, auditService services.AuditServicer) *AuthHandler {
	return &AuthHandler{userService: userService, credentialService: credentialService, auditService: auditService}
}

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Login    string `json:"login" binding:"required,not_blank,max=100"`
	Email    string `json:"email" binding:"omitempty,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents the user data in the response
type UserResponse struct {
	ID          uint       `json:"id"`
	Login       string     `json:"login"`
	Email       string     `json:"email,omitempty"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// AuthResponse represents the authentication response with token
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt *time.Time   `json:"expiresAt,omitempty"`
	User      UserResponse `json:"user"`
}

func newAuthResponse(cred *services.Credential, id uint, login, email string, lastLogin *time.Time) AuthResponse {
	return AuthResponse{
		Token:     cred.Token,
		ExpiresAt: cred.ExpiresAt,
		User:      UserResponse{ID: id, Login: login, Email: email, LastLoginAt: lastLogin},
	}
}

// Register handles user registration
// @Summary     Register a new user
// @Description Register a new user with a login and password
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "User registration data"
// @Success     201 {object} AuthResponse "User registered and token generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Login already taken"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	user, err := h.userService.CreateUser(ctx, req.Login, req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	cred, err := h.credentialService.Issue(ctx, user)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ctx, user.ID, "REGISTER", "user", user.ID, c.ClientIP(), nil)

	c.JSON(http.StatusCreated, newAuthResponse(cred, user.ID, user.Login, user.Email, user.LastLoginAt))
}

// Login handles user login
// @Summary     Login user
// @Description Authenticate a user and get a token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "User login credentials"
// @Success     200 {object} AuthResponse "User authenticated and token generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     423 {object} ErrorResponse "Account locked"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	user, err := h.userService.AttemptLogin(ctx, req.Login, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	cred, err := h.credentialService.Issue(ctx, user)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ctx, user.ID, "LOGIN", "user", user.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, newAuthResponse(cred, user.ID, user.Login, user.Email, user.LastLoginAt))
}

// Logout revokes the caller's current token
// @Summary     Logout user
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} MessageResponse "Token revoked"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.credentialService.Revoke(ctx, userID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ctx, userID, "LOGOUT", "user", userID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Logged out"})
}

// GetProfile returns the authenticated user's profile
// @Summary     Get user profile
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} UserResponse "User profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": UserResponse{
		ID:          user.ID,
		Login:       user.Login,
		Email:       user.Email,
		LastLoginAt: user.LastLoginAt,
	}})
}
