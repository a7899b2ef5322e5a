package http

import (
	"github.com/gin-gonic/gin"

	"github.com/stkrfx/digitaloffices-1/internal/auth"
)

// RegisterRoutes registers booking routes. Every route needs an authenticated participant.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings", authMiddleware)
	participants := auth.RequireRole(auth.RoleUser, auth.RoleExpert, auth.RoleOrganization)
	{
		group.POST("", auth.RequireRole(auth.RoleUser), h.Create)
		group.GET("", participants, h.List)
		group.GET("/:id", participants, h.Get)
		group.PATCH("/:id/status", participants, h.UpdateStatus)
	}
}
