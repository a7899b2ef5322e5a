package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stkrfx/digitaloffices-1/internal/catalog"
	"github.com/stkrfx/digitaloffices-1/internal/pkg/request"
)

type ServiceResponse struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    *string         `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	DurationMin    int             `json:"durationMin"`
	IsActive       bool            `json:"isActive"`
	ExpertID       *string         `json:"expertId,omitempty"`
	OrganizationID *string         `json:"organizationId,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func NewServiceResponse(s *catalog.Service) ServiceResponse {
	expertID, orgID := s.Owner.Columns()
	return ServiceResponse{
		ID:             s.ID,
		Title:          s.Title,
		Description:    s.Description,
		Price:          s.Price,
		DurationMin:    s.DurationMin,
		IsActive:       s.IsActive,
		ExpertID:       expertID,
		OrganizationID: orgID,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

type ListServicesRequest struct {
	request.ListParams
	ExpertID       string `form:"expertId" binding:"omitempty,uuid"`
	OrganizationID string `form:"organizationId" binding:"omitempty,uuid"`
}

type CreateServiceRequest struct {
	Title       string          `json:"title" binding:"required,max=200"`
	Description *string         `json:"description" binding:"omitempty,max=2000"`
	Price       decimal.Decimal `json:"price"`
	DurationMin int             `json:"durationMin" binding:"required,min=5"`
}

type UpdateServiceRequest struct {
	Title       *string          `json:"title" binding:"omitempty,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	Price       *decimal.Decimal `json:"price"`
	DurationMin *int             `json:"durationMin" binding:"omitempty,min=5"`
	IsActive    *bool            `json:"isActive"`
}

type DeleteServiceResponse struct {
	Deactivated bool `json:"deactivated"`
}
