package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking routes. All require authentication;
// confirm and finish additionally require staff privileges, restoring an
// archived booking requires admin.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")
	group.Use(authMiddleware)
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("/:id/cancel", h.Cancel)
		group.DELETE("/:id", h.Archive)
	}

	staff := group.Group("")
	staff.Use(staffMiddleware)
	{
		staff.POST("/:id/confirm", h.Confirm)
		staff.POST("/:id/finish", h.Finish)
	}

	admin := group.Group("")
	admin.Use(adminMiddleware)
	{
		admin.POST("/:id/restore", h.Restore)
	}
}
