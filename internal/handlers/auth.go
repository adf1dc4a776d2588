package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/organiz-api/internal/constants"
	"github.com/yukikurage/organiz-api/internal/dto"
	apierrors "github.com/yukikurage/organiz-api/internal/errors"
	"github.com/yukikurage/organiz-api/internal/middleware"
	"github.com/yukikurage/organiz-api/internal/services"
)

// AuthHandler coordinates account-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	log         logrus.FieldLogger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

// Register creates a new account.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Firstname string `json:"firstname" binding:"required,min=1,max=25"`
		Lastname  string `json:"lastname" binding:"required,min=1,max=25"`
		Email     string `json:"email" binding:"required,email,max=35"`
		Password  string `json:"password" binding:"required,min=14,max=80,strongpassword"`
	}

	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.IDResponse{ID: user.ID})
}

// Login authenticates an account, returns a bearer token and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, result.User.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: result.Token})
}

// Logout revokes the presented token and removes the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if claims, ok := middleware.GetClaims(c); ok {
		if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
			respondError(c, h.log, err)
			return
		}
	}

	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated account.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}
