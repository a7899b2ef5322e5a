package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stkrfx/digitaloffices-1/internal/auth"
	"github.com/stkrfx/digitaloffices-1/internal/availability"
	"github.com/stkrfx/digitaloffices-1/internal/pkg/request"
	"github.com/stkrfx/digitaloffices-1/internal/pkg/response"
)

type Handler struct {
	service availability.Service
}

func NewHandler(service availability.Service) *Handler {
	return &Handler{service: service}
}

// Replace swaps the calling expert's whole week.
func (h *Handler) Replace(c *gin.Context) {
	var body ReplaceScheduleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	expertID := auth.GetUserID(c)
	slots, err := h.service.ReplaceWeeklySchedule(c.Request.Context(), expertID, body.toSlots())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewScheduleResponse(expertID, slots))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	slots, err := h.service.GetWeeklySchedule(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewScheduleResponse(uri.ID, slots))
}
