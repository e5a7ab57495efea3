package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/hengrui/sitecms-backend/internal/common"
	"github.com/hengrui/sitecms-backend/internal/domain"
	"github.com/hengrui/sitecms-backend/internal/middleware"
	"github.com/hengrui/sitecms-backend/internal/service"
)

// AuthHandler handles HTTP requests for admin authentication
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login godoc
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body  domain.LoginRequest  true  "Credentials"
// @Success      200  {object}  common.APIResponse{data=domain.LoginResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      401  {object}  common.APIResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	resp, err := h.service.Login(req.Username, req.Password, c.ClientIP())
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			common.ErrorResponse(c, 401, "Invalid username or password", err)
			return
		}
		common.ErrorResponse(c, 500, "Login failed", err)
		return
	}

	common.SuccessResponse(c, resp, nil)
}

// GetProfile godoc
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  common.APIResponse{data=domain.User}
// @Failure      401  {object}  common.APIResponse
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, roles, err := h.service.GetProfile(middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			common.ErrorResponse(c, 404, "User not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to fetch profile", err)
		return
	}

	common.SuccessResponse(c, gin.H{"user": user, "roles": roles}, nil)
}
