package availability

import (
	"fmt"
	"sort"

	"github.com/stkrfx/digitaloffices-1/internal/pkg/apperror"
	"github.com/stkrfx/digitaloffices-1/internal/pkg/request"
)

var ErrExpertRequired = apperror.Validation("expert id is required")

// Slot is a recurring weekly window in which an expert accepts bookings.
// Times are "HH:MM" on the UTC clock; DayOfWeek counts from Sunday = 0.
type Slot struct {
	ID        string
	ExpertID  string
	DayOfWeek int
	StartTime string
	EndTime   string
}

// Validate checks a single slot in isolation.
func (s Slot) Validate() error {
	if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
		return apperror.Validation(fmt.Sprintf("dayOfWeek %d must be between 0 and 6", s.DayOfWeek))
	}
	if !request.HHMM.MatchString(s.StartTime) {
		return apperror.Validation(fmt.Sprintf("startTime %q must be HH:MM", s.StartTime))
	}
	if !request.HHMM.MatchString(s.EndTime) {
		return apperror.Validation(fmt.Sprintf("endTime %q must be HH:MM", s.EndTime))
	}
	// Zero-padded HH:MM strings order lexicographically.
	if s.EndTime <= s.StartTime {
		return apperror.Validation(fmt.Sprintf("endTime %s must be after startTime %s", s.EndTime, s.StartTime))
	}
	return nil
}

// validateWeek checks every slot and rejects overlapping windows on the same day.
func validateWeek(slots []Slot) error {
	for i, s := range slots {
		if err := s.Validate(); err != nil {
			return apperror.Wrap(err, apperror.KindValidation, fmt.Sprintf("slots[%d]: %s", i, err.Error()))
		}
	}

	sorted := make([]Slot, len(slots))
	copy(sorted, slots)
	sortSlots(sorted)
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.DayOfWeek == cur.DayOfWeek && cur.StartTime < prev.EndTime {
			return apperror.Validation(fmt.Sprintf(
				"slots %s-%s and %s-%s overlap on day %d",
				prev.StartTime, prev.EndTime, cur.StartTime, cur.EndTime, cur.DayOfWeek,
			))
		}
	}
	return nil
}

func sortSlots(slots []Slot) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].DayOfWeek != slots[j].DayOfWeek {
			return slots[i].DayOfWeek < slots[j].DayOfWeek
		}
		return slots[i].StartTime < slots[j].StartTime
	})
}
