package http

import (
	"github.com/gin-gonic/gin"

	"github.com/stkrfx/digitaloffices-1/internal/auth"
)

// RegisterRoutes registers service catalog routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/services")

	// === Public Routes ===
	group.GET("", h.List)
	group.GET("/:id", h.Get)

	// === Provider Routes ===
	providers := group.Group("", authMiddleware, auth.RequireRole(auth.RoleExpert, auth.RoleOrganization))
	{
		providers.POST("", h.Create)
		providers.PATCH("/:id", h.Update)
		providers.DELETE("/:id", h.Delete)
	}
}
