package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"marketsim/internal/auth"
	"marketsim/internal/models"
	"marketsim/internal/services"
	"marketsim/pkg/middleware"
	"marketsim/pkg/response"
)

// AuthHandler serves registration, login and profile.
type AuthHandler struct {
	users            *services.UserStore
	tokens           *auth.Service
	openRegistration bool
}

func NewAuthHandler(users *services.UserStore, tokens *auth.Service, openRegistration bool) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, openRegistration: openRegistration}
}

type registerRequest struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

// Register creates a user account. When registration is closed, only an
// authenticated admin may create accounts.
func (h *AuthHandler) Register(c *gin.Context) {
	if !h.openRegistration && middleware.Role(c) != models.RoleAdmin {
		response.Forbidden(c, "Registration is closed")
		return
	}

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.users.Register(services.RegisterParams{
		Email:       req.Email,
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Password:    req.Password,
	})
	if errors.Is(err, services.ErrUserExists) {
		response.Conflict(c, "Account already exists")
		return
	}
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, user)
}

type loginRequest struct {
	Login    string `json:"login"` // email or username
	Password string `json:"password"`
}

// Login verifies credentials and issues a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Login == "" || req.Password == "" {
		response.BadRequest(c, "Login and password are required")
		return
	}

	user, err := h.users.Authenticate(req.Login, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		response.Unauthorized(c, "Invalid credentials")
		return
	}
	if err != nil {
		response.InternalError(c, "Login failed")
		return
	}

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		response.InternalError(c, "Failed to issue token")
		return
	}
	response.OK(c, gin.H{"token": token.Token, "expiration": token.Expiration, "user": user})
}

// Profile returns the authenticated user's account, including play stats.
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.users.FindByID(middleware.UserID(c))
	if errors.Is(err, services.ErrUserNotFound) {
		response.Unauthorized(c, "Unknown account")
		return
	}
	if err != nil {
		response.InternalError(c, "Failed to load profile")
		return
	}
	response.OK(c, user)
}
