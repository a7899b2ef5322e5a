package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/stkrfx/digitaloffices-1/internal/db"
	"github.com/stkrfx/digitaloffices-1/internal/provider"
)

type Repository interface {
	Create(ctx context.Context, r *Review) error
	GetByBooking(ctx context.Context, bookingID string) (*Review, error)
}

type pgxRepository struct {
	pool db.DBTX
}

func NewPgxRepository(pool db.DBTX) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rv *Review) error {
	expertID, orgID := rv.Owner.Columns()
	query, args, err := db.PSQL.Insert("public.reviews").
		Columns("booking_id", "user_id", "expert_id", "organization_id", "rating", "comment").
		Values(rv.BookingID, rv.UserID, expertID, orgID, rv.Rating, rv.Comment).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create review query failed: %w", err)
	}

	if err := db.Executor(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&rv.ID, &rv.CreatedAt); err != nil {
		if db.IsUniqueViolation(err) {
			return ErrAlreadyReviewed
		}
		return fmt.Errorf("create review failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByBooking(ctx context.Context, bookingID string) (*Review, error) {
	query, args, err := db.PSQL.Select(
		"id", "booking_id", "user_id", "expert_id", "organization_id", "rating", "comment", "created_at",
	).
		From("public.reviews").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get review query failed: %w", err)
	}

	var (
		rv              Review
		expertID, orgID *string
	)
	if err := db.Executor(ctx, r.pool).QueryRow(ctx, query, args...).Scan(
		&rv.ID, &rv.BookingID, &rv.UserID, &expertID, &orgID, &rv.Rating, &rv.Comment, &rv.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get review failed: %w", err)
	}

	owner, err := provider.FromColumns(expertID, orgID)
	if err != nil {
		return nil, fmt.Errorf("review %s: %w", rv.ID, err)
	}
	rv.Owner = owner
	return &rv, nil
}
