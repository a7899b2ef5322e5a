package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers authentication, self-service and public profile routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	// === Public Routes ===
	authGroup := g.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
	g.GET("/experts/:id", h.ExpertProfile)
	g.GET("/organizations/:id", h.OrganizationProfile)

	// === Authenticated Routes ===
	me := g.Group("/me", authMiddleware)
	{
		me.GET("", h.Me)
		me.PATCH("", h.UpdateMe)
	}
}
