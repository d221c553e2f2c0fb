package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers media routes. Downloads are public so cafe
// photos can be embedded directly; uploads and deletes require auth.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/media")

	group.GET("/:id", h.Download)
	group.GET("/:id/thumbnail", h.DownloadThumbnail)

	authed := group.Group("")
	authed.Use(authMiddleware)
	{
		authed.POST("", h.Upload)
		authed.GET("/:id/info", h.Get)
		authed.DELETE("/:id", h.Delete)
	}
}
