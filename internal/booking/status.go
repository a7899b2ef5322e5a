package booking

import (
	"fmt"
	"slices"

	"github.com/stkrfx/digitaloffices-1/internal/pkg/apperror"
)

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
	StatusNoShow    Status = "NO_SHOW"
)

// validTransitions is the booking state machine. Terminal states map to no targets.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
	StatusCancelled: {},
	StatusCompleted: {},
	StatusNoShow:    {},
}

// ActiveStatuses hold their time slot against other bookings of the same provider.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed}

func (s Status) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(validTransitions[s], target)
}

func (s Status) IsTerminal() bool {
	return s.IsValid() && len(validTransitions[s]) == 0
}

func (s Status) IsActive() bool {
	return slices.Contains(ActiveStatuses, s)
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a wire value to a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", apperror.Validation(fmt.Sprintf("unknown booking status %q", s))
	}
	return status, nil
}
