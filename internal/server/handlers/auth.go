package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abiwaumi/tablewater/internal/domain/models"
	"github.com/abiwaumi/tablewater/internal/domain/rbac"
	"github.com/abiwaumi/tablewater/internal/service/auth"
)

// AuthHandler handles sign-in, sign-out, profile, and navigation requests.
type AuthHandler struct {
	svc    *auth.Service
	logger *zap.Logger
}

// NewAuthHandler constructs the HTTP adapter over the session provider.
func NewAuthHandler(svc *auth.Service, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login exchanges credentials for a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, token, err := h.svc.SignIn(c.Request.Context(), req.Email, req.Password)
	var aerr *models.AuthenticationError
	if errors.As(err, &aerr) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err != nil {
		h.logger.Error("sign-in failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "identity backend unavailable"})
		return
	}

	c.JSON(http.StatusOK, loginResponse{Token: token, User: user})
}

// Logout closes the current session. Safe to call repeatedly.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Get(ContextTokenKey)
	if str, ok := token.(string); ok {
		h.svc.SignOut(str)
	}
	c.Status(http.StatusNoContent)
}

// Me returns the profile of the signed-in user.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// Navigation lists the routes visible to the signed-in user's role, in
// canonical menu order. Visibility only shapes the menu; the route guard
// enforces access.
func (h *AuthHandler) Navigation(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": rbac.VisibleRoutes(user.Role)})
}
