package review

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/stkrfx/digitaloffices-1/internal/booking"
)

// BookingReader returns a booking only when actorID participates in it.
type BookingReader interface {
	GetByID(ctx context.Context, id string, actorID string) (*booking.Booking, error)
}

type CreateRequest struct {
	BookingID string
	ActorID   string
	Rating    int
	Comment   *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Review, error)
	GetByBooking(ctx context.Context, bookingID string, actorID string) (*Review, error)
}

type service struct {
	repo     Repository
	bookings BookingReader
	log      logrus.FieldLogger
}

func NewService(repo Repository, bookings BookingReader, log logrus.FieldLogger) Service {
	return &service{repo: repo, bookings: bookings, log: log}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	b, err := s.bookings.GetByID(ctx, req.BookingID, req.ActorID)
	if err != nil {
		return nil, err
	}
	// Providers can see the booking but only its client reviews it.
	if b.UserID != req.ActorID {
		return nil, booking.ErrNotFound
	}
	if b.Status != booking.StatusCompleted {
		return nil, ErrNotCompleted
	}

	if req.Comment != nil {
		trimmed := strings.TrimSpace(*req.Comment)
		if trimmed == "" {
			req.Comment = nil
		} else {
			req.Comment = &trimmed
		}
	}

	rv := &Review{
		BookingID: b.ID,
		UserID:    b.UserID,
		Owner:     b.Owner,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"booking_id": b.ID, "rating": rv.Rating}).Info("review created")
	return rv, nil
}

func (s *service) GetByBooking(ctx context.Context, bookingID string, actorID string) (*Review, error) {
	if _, err := s.bookings.GetByID(ctx, bookingID, actorID); err != nil {
		return nil, err
	}
	return s.repo.GetByBooking(ctx, bookingID)
}
