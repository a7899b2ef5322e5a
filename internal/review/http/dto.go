package http

import (
	"time"

	"github.com/stkrfx/digitaloffices-1/internal/review"
)

type CreateReviewRequest struct {
	Rating  int     `json:"rating" binding:"required,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,max=2000"`
}

type ReviewResponse struct {
	ID             string    `json:"id"`
	BookingID      string    `json:"bookingId"`
	UserID         string    `json:"userId"`
	ExpertID       *string   `json:"expertId,omitempty"`
	OrganizationID *string   `json:"organizationId,omitempty"`
	Rating         int       `json:"rating"`
	Comment        *string   `json:"comment,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func NewReviewResponse(r *review.Review) ReviewResponse {
	expertID, orgID := r.Owner.Columns()
	return ReviewResponse{
		ID:             r.ID,
		BookingID:      r.BookingID,
		UserID:         r.UserID,
		ExpertID:       expertID,
		OrganizationID: orgID,
		Rating:         r.Rating,
		Comment:        r.Comment,
		CreatedAt:      r.CreatedAt,
	}
}
