package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/stkrfx/digitaloffices-1/internal/catalog"
	"github.com/stkrfx/digitaloffices-1/internal/db"
	"github.com/stkrfx/digitaloffices-1/internal/observability/metrics"
	"github.com/stkrfx/digitaloffices-1/internal/pkg/apperror"
)

var tracer = otel.Tracer("digitaloffices/booking")

// CatalogReader resolves a service that can currently be booked.
type CatalogReader interface {
	GetBookable(ctx context.Context, id string) (*catalog.Service, error)
}

// AvailabilityChecker answers whether an expert works during a window.
type AvailabilityChecker interface {
	IsWithinAvailability(ctx context.Context, expertID string, start time.Time, durationMin int) (bool, error)
}

type CreateRequest struct {
	UserID    string
	ServiceID string
	StartTime time.Time
	Notes     *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	UpdateStatus(ctx context.Context, id string, status Status, actorID string) (*Booking, error)
	GetByID(ctx context.Context, id string, actorID string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
}

type service struct {
	repo         Repository
	tx           db.Transactor
	catalog      CatalogReader
	availability AvailabilityChecker
	log          logrus.FieldLogger
	metrics      *metrics.BookingMetrics
	now          func() time.Time
}

func NewService(
	repo Repository,
	tx db.Transactor,
	catalog CatalogReader,
	availability AvailabilityChecker,
	log logrus.FieldLogger,
	m *metrics.BookingMetrics,
) Service {
	return &service{
		repo:         repo,
		tx:           tx,
		catalog:      catalog,
		availability: availability,
		log:          log,
		metrics:      m,
		now:          time.Now,
	}
}

// Create books a service for a client. The catalog read, availability check,
// overlap scan and insert share one transaction, serialized per provider.
func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	ctx, span := tracer.Start(ctx, "booking.Create", trace.WithAttributes(
		attribute.String("service.id", req.ServiceID),
		attribute.String("user.id", req.UserID),
	))
	defer span.End()

	if !req.StartTime.After(s.now()) {
		s.reject(span, "past", ErrStartInPast)
		return nil, ErrStartInPast
	}
	start := req.StartTime.UTC()

	var created *Booking
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		svc, err := s.catalog.GetBookable(ctx, req.ServiceID)
		if err != nil {
			return err
		}
		end := start.Add(svc.Duration())
		span.SetAttributes(attribute.String("provider", svc.Owner.String()))

		if err := s.repo.LockProvider(ctx, svc.Owner); err != nil {
			return err
		}

		// Organizations publish no schedule and are always bookable.
		if svc.Owner.IsExpert() {
			ok, err := s.availability.IsWithinAvailability(ctx, svc.Owner.ID(), start, svc.DurationMin)
			if err != nil {
				return err
			}
			if !ok {
				return ErrOutsideHours
			}
		}

		overlap, err := s.repo.HasOverlap(ctx, svc.Owner, start, end)
		if err != nil {
			return err
		}
		if overlap {
			return ErrSlotTaken
		}

		b := &Booking{
			UserID:     req.UserID,
			ServiceID:  svc.ID,
			Owner:      svc.Owner,
			StartTime:  start,
			EndTime:    end,
			Status:     StatusPending,
			TotalPrice: svc.Price,
			Notes:      req.Notes,
		}
		if err := s.repo.Create(ctx, b); err != nil {
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		s.reject(span, rejectReason(err), err)
		return nil, err
	}

	s.metrics.ObserveCreated(string(created.Owner.Kind()))
	s.log.WithFields(logrus.Fields{
		"booking_id": created.ID,
		"user_id":    created.UserID,
		"provider":   created.Owner.String(),
		"start":      created.StartTime,
		"end":        created.EndTime,
	}).Info("booking created")
	return created, nil
}

func (s *service) reject(span trace.Span, reason string, err error) {
	s.metrics.ObserveRejected(reason)
	span.SetStatus(codes.Error, reason)
	if apperror.KindOf(err) == apperror.KindInternal {
		span.RecordError(err)
		s.log.WithError(err).Error("create booking failed")
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrOutsideHours):
		return "outside_hours"
	case errors.Is(err, ErrSlotTaken):
		return "overlap"
	case apperror.IsKind(err, apperror.KindNotFound):
		return "not_found"
	case apperror.IsKind(err, apperror.KindValidation):
		return "invalid"
	default:
		return "error"
	}
}

// UpdateStatus moves a booking along the state machine on behalf of one of its participants.
// Actors who are not participants get ErrNotFound.
func (s *service) UpdateStatus(ctx context.Context, id string, status Status, actorID string) (*Booking, error) {
	ctx, span := tracer.Start(ctx, "booking.UpdateStatus", trace.WithAttributes(
		attribute.String("booking.id", id),
		attribute.String("status", string(status)),
	))
	defer span.End()

	if !status.IsValid() {
		return nil, apperror.Validation(fmt.Sprintf("unknown booking status %q", status))
	}

	var (
		updated *Booking
		from    Status
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := s.repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !b.HasParticipant(actorID) {
			return ErrNotFound
		}
		if b.Status == status {
			return apperror.Wrap(ErrAlreadyInStatus, apperror.KindValidation, "already "+string(status))
		}
		if status == StatusConfirmed && b.UserID == actorID {
			return ErrSelfConfirm
		}
		if !b.Status.CanTransitionTo(status) {
			return apperror.Wrap(ErrIllegalTransition, apperror.KindValidation,
				fmt.Sprintf("cannot move booking from %s to %s", b.Status, status))
		}

		from = b.Status
		b.Status = status
		if err := s.repo.UpdateStatus(ctx, b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.metrics.ObserveTransition(string(from), string(status))
	s.log.WithFields(logrus.Fields{
		"booking_id": id,
		"actor_id":   actorID,
		"from":       from,
		"to":         status,
	}).Info("booking status changed")
	return updated, nil
}

func (s *service) GetByID(ctx context.Context, id string, actorID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.HasParticipant(actorID) {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	if filter.UserID == "" && (filter.Owner == nil || filter.Owner.IsZero()) {
		return nil, 0, apperror.Validation("bookings can only be listed for a participant")
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, apperror.Validation(fmt.Sprintf("unknown booking status %q", filter.Status))
	}
	return s.repo.List(ctx, filter)
}
