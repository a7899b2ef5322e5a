package http

import (
	"github.com/gin-gonic/gin"

	"github.com/stkrfx/digitaloffices-1/internal/auth"
)

// RegisterRoutes registers availability routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	g.GET("/experts/:id/availability", h.Get)
	g.PUT("/availability", authMiddleware, auth.RequireRole(auth.RoleExpert), h.Replace)
}
