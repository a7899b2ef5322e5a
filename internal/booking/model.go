package booking

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stkrfx/digitaloffices-1/internal/pkg/apperror"
	"github.com/stkrfx/digitaloffices-1/internal/provider"
)

var (
	ErrNotFound          = apperror.NotFound("booking not found")
	ErrSlotTaken         = apperror.Conflict("slot already reserved")
	ErrOutsideHours      = apperror.Validation("outside working hours")
	ErrStartInPast       = apperror.Validation("start time must be in the future")
	ErrSelfConfirm       = apperror.Forbidden("clients cannot confirm their own booking")
	ErrIllegalTransition = apperror.Validation("status transition not allowed")

	// ErrAlreadyInStatus is wrapped by the error returned when a booking already has
	// the requested status. Callers retrying a status change may ignore it.
	ErrAlreadyInStatus = errors.New("booking already in requested status")
)

type Booking struct {
	ID         string
	UserID     string
	ServiceID  string
	Owner      provider.Owner
	StartTime  time.Time
	EndTime    time.Time
	Status     Status
	TotalPrice decimal.Decimal
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Overlaps reports whether the half-open intervals [StartTime, EndTime) and [start, end) intersect.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

// HasParticipant reports whether actorID is the booking's client or its provider.
func (b *Booking) HasParticipant(actorID string) bool {
	return actorID != "" && (b.UserID == actorID || b.Owner.Matches(actorID))
}

// Filter defines parameters for listing bookings. Exactly one of UserID and Owner
// scopes the list to a participant.
type Filter struct {
	UserID   string
	Owner    *provider.Owner
	Status   Status
	From     *time.Time // bookings ending after From
	To       *time.Time // bookings starting before To
	Page     int
	PageSize int
}
