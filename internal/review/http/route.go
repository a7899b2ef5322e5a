package http

import (
	"github.com/gin-gonic/gin"

	"github.com/stkrfx/digitaloffices-1/internal/auth"
)

// RegisterRoutes registers review routes under their booking.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings/:id/review", authMiddleware)
	{
		group.POST("", auth.RequireRole(auth.RoleUser), h.Create)
		group.GET("", auth.RequireRole(auth.RoleUser, auth.RoleExpert, auth.RoleOrganization), h.Get)
	}
}
