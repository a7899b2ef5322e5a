package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stkrfx/digitaloffices-1/internal/pkg/apperror"
	"github.com/stkrfx/digitaloffices-1/internal/provider"
)

const MinDurationMin = 5

var (
	ErrNotFound        = apperror.NotFound("service not found")
	ErrTitleRequired   = apperror.Validation("title is required")
	ErrInvalidPrice    = apperror.Validation("price must be between 0 and 99999999.99 with at most 2 decimal places")
	ErrInvalidDuration = apperror.Validation("duration must be at least 5 minutes")
	ErrNotOwner        = apperror.Forbidden("only the owning provider can modify this service")
	ErrInvalidOwner    = apperror.Validation("service owner must be an expert or an organization")
	ErrNothingToUpdate = apperror.Validation("no fields to update")
	ErrInUse           = apperror.Conflict("service is referenced by bookings")
	maxPriceExclusive  = decimal.New(1, 8)
)

// Service is a sellable offering owned by exactly one provider.
type Service struct {
	ID          string
	Title       string
	Description *string
	Price       decimal.Decimal
	DurationMin int
	IsActive    bool
	Owner       provider.Owner
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Duration is DurationMin as a time.Duration.
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMin) * time.Minute
}

// Filter defines parameters for listing services.
type Filter struct {
	Owner           *provider.Owner
	IncludeInactive bool
	Page            int
	PageSize        int
}

func validatePrice(p decimal.Decimal) error {
	if p.IsNegative() || p.GreaterThanOrEqual(maxPriceExclusive) || !p.Equal(p.Round(2)) {
		return ErrInvalidPrice
	}
	return nil
}

func validateDuration(min int) error {
	if min < MinDurationMin {
		return ErrInvalidDuration
	}
	return nil
}
