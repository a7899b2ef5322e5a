package review

import (
	"time"

	"github.com/stkrfx/digitaloffices-1/internal/pkg/apperror"
	"github.com/stkrfx/digitaloffices-1/internal/provider"
)

var (
	ErrNotFound        = apperror.NotFound("review not found")
	ErrAlreadyReviewed = apperror.Conflict("booking already reviewed")
	ErrNotCompleted    = apperror.Validation("only completed bookings can be reviewed")
	ErrInvalidRating   = apperror.Validation("rating must be between 1 and 5")
)

// Review is a client's rating of a completed booking. One per booking.
type Review struct {
	ID        string
	BookingID string
	UserID    string
	Owner     provider.Owner
	Rating    int
	Comment   *string
	CreatedAt time.Time
}
