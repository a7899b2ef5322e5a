package availability

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/stkrfx/digitaloffices-1/internal/db"
	"github.com/stkrfx/digitaloffices-1/internal/observability/metrics"
)

const clockLayout = "15:04"

var tracer = otel.Tracer("digitaloffices/availability")

type Service interface {
	// ReplaceWeeklySchedule validates every slot, then swaps the expert's week atomically.
	// An empty list clears the week.
	ReplaceWeeklySchedule(ctx context.Context, expertID string, slots []Slot) ([]Slot, error)
	GetWeeklySchedule(ctx context.Context, expertID string) ([]Slot, error)
	// IsWithinAvailability reports whether one slot covers [start, start+duration) on start's UTC weekday.
	IsWithinAvailability(ctx context.Context, expertID string, start time.Time, durationMin int) (bool, error)
}

type service struct {
	repo    Repository
	tx      db.Transactor
	log     logrus.FieldLogger
	metrics *metrics.BookingMetrics
}

func NewService(repo Repository, tx db.Transactor, log logrus.FieldLogger, m *metrics.BookingMetrics) Service {
	return &service{repo: repo, tx: tx, log: log, metrics: m}
}

func (s *service) ReplaceWeeklySchedule(ctx context.Context, expertID string, slots []Slot) ([]Slot, error) {
	ctx, span := tracer.Start(ctx, "availability.ReplaceWeeklySchedule")
	defer span.End()
	span.SetAttributes(attribute.String("expert.id", expertID), attribute.Int("slots", len(slots)))

	if expertID == "" {
		return nil, ErrExpertRequired
	}
	if err := validateWeek(slots); err != nil {
		s.metrics.ObserveScheduleReplace(false)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var stored []Slot
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.ReplaceForExpert(ctx, expertID, slots); err != nil {
			return err
		}
		var err error
		stored, err = s.repo.ListByExpert(ctx, expertID)
		return err
	})
	if err != nil {
		s.metrics.ObserveScheduleReplace(false)
		span.RecordError(err)
		span.SetStatus(codes.Error, "replace schedule failed")
		return nil, err
	}

	s.metrics.ObserveScheduleReplace(true)
	s.log.WithFields(logrus.Fields{"expert_id": expertID, "slots": len(stored)}).Info("weekly schedule replaced")
	return stored, nil
}

func (s *service) GetWeeklySchedule(ctx context.Context, expertID string) ([]Slot, error) {
	return s.repo.ListByExpert(ctx, expertID)
}

func (s *service) IsWithinAvailability(ctx context.Context, expertID string, start time.Time, durationMin int) (bool, error) {
	start = start.UTC()
	end := start.Add(time.Duration(durationMin) * time.Minute)
	// Slots have minute precision; a partial minute past end counts as the whole minute.
	if t := end.Truncate(time.Minute); !t.Equal(end) {
		end = t.Add(time.Minute)
	}

	// A window ending on a later UTC day never fits one day's slot. Its end HH:MM
	// wraps to an early clock time, so it is rejected before the comparison.
	if !sameDay(start, end) {
		return false, nil
	}

	return s.repo.HasCoveringSlot(ctx, expertID, int(start.Weekday()), start.Format(clockLayout), end.Format(clockLayout))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
