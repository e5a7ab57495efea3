package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hengrui/sitecms-backend/internal/common"
)

// PermissionChecker interface for checking role permissions
// This avoids circular dependency with service package
type PermissionChecker interface {
	HasPermission(userID, permission string) (bool, error)
}

// RequirePermission returns a middleware that checks the authenticated
// user's role grants the given permission.
// It requires JWTAuth middleware to be applied first.
func RequirePermission(checker PermissionChecker, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == "" {
			common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
			c.Abort()
			return
		}

		allowed, err := checker.HasPermission(userID, permission)
		if err != nil {
			common.ErrorResponse(c, http.StatusInternalServerError, "Permission check failed", err)
			c.Abort()
			return
		}
		if !allowed {
			common.ErrorResponse(c, http.StatusForbidden, "Permission denied: "+permission, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
