package handler

import (
	"errors"

	"github.com/fitlog-server/internal/middleware"
	"github.com/fitlog-server/internal/service"
	"github.com/fitlog-server/pkg/response"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles user account API requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles user registration
// POST /api/users/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			response.BadRequest(c, "user already exists")
			return
		}
		response.InternalError(c, "failed to register user")
		return
	}

	response.Created(c, user)
}

// Login handles form-encoded user login
// POST /api/users/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "invalid username or password")
			return
		}
		response.InternalError(c, "failed to login")
		return
	}

	response.Success(c, token)
}

// Me returns the authenticated user's profile
// GET /api/users/me
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		response.Unauthorized(c, "not authenticated")
		return
	}
	response.Success(c, user)
}

// CheckUsername reports whether a username is taken
// GET /api/users/check/:username
func (h *AuthHandler) CheckUsername(c *gin.Context) {
	exists, err := h.authService.UsernameExists(c.Param("username"))
	if err != nil {
		response.InternalError(c, "failed to check username")
		return
	}
	response.Success(c, gin.H{"exists": exists})
}

// RegisterRoutes registers user routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	users := rg.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.GET("/check/:username", h.CheckUsername)
		users.GET("/me", authMiddleware, h.Me)
	}
}
