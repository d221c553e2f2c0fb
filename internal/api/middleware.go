package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openbistro/cafe-booking-backend/internal/auth"
	"github.com/openbistro/cafe-booking-backend/internal/user"
)

// RequireStaff ensures the authenticated user is a manager or admin. The
// user is re-fetched so a deactivation or demotion takes effect before the
// token expires. MUST run after auth.AuthRequired.
func RequireStaff(userService user.Service) gin.HandlerFunc {
	return requireRole(userService, func(r user.Role) bool { return r.IsStaff() })
}

// RequireAdmin ensures the authenticated user is an admin.
// MUST run after auth.AuthRequired.
func RequireAdmin(userService user.Service) gin.HandlerFunc {
	return requireRole(userService, func(r user.Role) bool { return r == user.RoleAdmin })
}

func requireRole(userService user.Service, allowed func(user.Role) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		u, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		if !u.IsActive || !allowed(u.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: insufficient privileges"})
			return
		}

		c.Next()
	}
}
