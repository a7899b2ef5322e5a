package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stkrfx/digitaloffices-1/internal/account"
	"github.com/stkrfx/digitaloffices-1/internal/auth"
	"github.com/stkrfx/digitaloffices-1/internal/pkg/request"
	"github.com/stkrfx/digitaloffices-1/internal/pkg/response"
	"github.com/stkrfx/digitaloffices-1/internal/provider"
)

type Handler struct {
	service    account.Service
	jwtManager *auth.JWTManager
}

func NewHandler(service account.Service, jwtManager *auth.JWTManager) *Handler {
	return &Handler{service: service, jwtManager: jwtManager}
}

//
// POST /v1/auth/register
//

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	a, err := h.service.Register(c.Request.Context(), auth.Role(req.Role), req.Email, req.Password, req.DisplayName)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewAccountResponse(a))
}

//
// POST /v1/auth/login
//

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	a, err := h.service.Login(c.Request.Context(), auth.Role(req.Role), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(a.ID, a.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, LoginResponse{AccessToken: token, Account: NewAccountResponse(a)})
}

//
// GET /v1/me
//

func (h *Handler) Me(c *gin.Context) {
	a, err := h.service.GetByID(c.Request.Context(), auth.GetRole(c), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewAccountResponse(a))
}

//
// PATCH /v1/me
//

func (h *Handler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	a, err := h.service.UpdateProfile(c.Request.Context(), auth.GetRole(c), auth.GetUserID(c), req.DisplayName)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewAccountResponse(a))
}

//
// GET /v1/experts/:id and GET /v1/organizations/:id
//

func (h *Handler) ExpertProfile(c *gin.Context) {
	h.profile(c, provider.Expert)
}

func (h *Handler) OrganizationProfile(c *gin.Context) {
	h.profile(c, provider.Organization)
}

func (h *Handler) profile(c *gin.Context, ownerOf func(id string) provider.Owner) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	p, err := h.service.GetProviderProfile(c.Request.Context(), ownerOf(uri.ID))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
