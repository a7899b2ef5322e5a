package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stkrfx/digitaloffices-1/internal/booking"
	"github.com/stkrfx/digitaloffices-1/internal/pkg/request"
)

type ListBookingsRequest struct {
	request.ListParams
	Status string     `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED COMPLETED NO_SHOW"`
	From   *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To     *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

type BookingResponse struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	ServiceID      string          `json:"serviceId"`
	ExpertID       *string         `json:"expertId,omitempty"`
	OrganizationID *string         `json:"organizationId,omitempty"`
	StartTime      time.Time       `json:"startTime"`
	EndTime        time.Time       `json:"endTime"`
	Status         string          `json:"status"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
	Notes          *string         `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	expertID, orgID := b.Owner.Columns()
	return BookingResponse{
		ID:             b.ID,
		UserID:         b.UserID,
		ServiceID:      b.ServiceID,
		ExpertID:       expertID,
		OrganizationID: orgID,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		Status:         string(b.Status),
		TotalPrice:     b.TotalPrice,
		Notes:          b.Notes,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

type CreateBookingRequest struct {
	ServiceID string    `json:"serviceId" binding:"required,uuid"`
	StartTime time.Time `json:"startTime" binding:"required"`
	Notes     *string   `json:"notes" binding:"omitempty,max=1000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING CONFIRMED CANCELLED COMPLETED NO_SHOW"`
}
