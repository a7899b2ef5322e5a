package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stkrfx/digitaloffices-1/internal/auth"
	"github.com/stkrfx/digitaloffices-1/internal/catalog"
	"github.com/stkrfx/digitaloffices-1/internal/pkg/request"
	"github.com/stkrfx/digitaloffices-1/internal/pkg/response"
	"github.com/stkrfx/digitaloffices-1/internal/provider"
)

type Handler struct {
	catalog catalog.Catalog
}

func NewHandler(c catalog.Catalog) *Handler {
	return &Handler{catalog: c}
}

func (h *Handler) List(c *gin.Context) {
	var req ListServicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}

	filter := catalog.Filter{Page: req.Page, PageSize: req.PageSize}
	switch {
	case req.ExpertID != "" && req.OrganizationID != "":
		response.Error(c, catalog.ErrInvalidOwner)
		return
	case req.ExpertID != "":
		owner := provider.Expert(req.ExpertID)
		filter.Owner = &owner
	case req.OrganizationID != "":
		owner := provider.Organization(req.OrganizationID)
		filter.Owner = &owner
	}

	services, total, err := h.catalog.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ServiceResponse, len(services))
	for i, s := range services {
		items[i] = NewServiceResponse(s)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	svc, err := h.catalog.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewServiceResponse(svc))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateServiceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	owner, ok := actingProvider(c)
	if !ok {
		return
	}

	svc, err := h.catalog.Create(c.Request.Context(), catalog.CreateRequest{
		Owner:       owner,
		Title:       body.Title,
		Description: body.Description,
		Price:       body.Price,
		DurationMin: body.DurationMin,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewServiceResponse(svc))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}
	var body UpdateServiceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	owner, ok := actingProvider(c)
	if !ok {
		return
	}

	svc, err := h.catalog.Update(c.Request.Context(), uri.ID, owner, catalog.UpdateRequest{
		Title:       body.Title,
		Description: body.Description,
		Price:       body.Price,
		DurationMin: body.DurationMin,
		IsActive:    body.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewServiceResponse(svc))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	owner, ok := actingProvider(c)
	if !ok {
		return
	}

	soft, err := h.catalog.Delete(c.Request.Context(), uri.ID, owner)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, DeleteServiceResponse{Deactivated: soft})
}

func actingProvider(c *gin.Context) (provider.Owner, bool) {
	owner, err := provider.FromRole(string(auth.GetRole(c)), auth.GetUserID(c))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{Error: "only experts and organizations manage services"})
		return provider.Owner{}, false
	}
	return owner, true
}
