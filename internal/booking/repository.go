package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/stkrfx/digitaloffices-1/internal/db"
	"github.com/stkrfx/digitaloffices-1/internal/provider"
)

type Repository interface {
	// LockProvider takes a transaction-scoped advisory lock on the provider's schedule.
	// It blocks until competing transactions for the same provider finish.
	LockProvider(ctx context.Context, owner provider.Owner) error
	// HasOverlap checks for an active booking of the provider intersecting [start, end).
	HasOverlap(ctx context.Context, owner provider.Owner, start, end time.Time) (bool, error)
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	// GetByIDForUpdate row-locks the booking until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*Booking, error)
	UpdateStatus(ctx context.Context, b *Booking) error
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
}

type pgxRepository struct {
	pool db.DBTX
}

func NewPgxRepository(pool db.DBTX) Repository {
	return &pgxRepository{pool: pool}
}

var bookingColumns = []string{
	"id", "user_id", "service_id", "expert_id", "organization_id",
	"start_time", "end_time", "status", "total_price::text", "notes",
	"created_at", "updated_at",
}

func activeStatusValues() []string {
	out := make([]string, len(ActiveStatuses))
	for i, s := range ActiveStatuses {
		out[i] = string(s)
	}
	return out
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner, extra ...any) (*Booking, error) {
	var (
		b               Booking
		expertID, orgID *string
		status, price   string
	)
	dest := append([]any{
		&b.ID, &b.UserID, &b.ServiceID, &expertID, &orgID,
		&b.StartTime, &b.EndTime, &status, &price, &b.Notes,
		&b.CreatedAt, &b.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	owner, err := provider.FromColumns(expertID, orgID)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", b.ID, err)
	}
	b.Owner = owner

	total, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse booking total %q: %w", price, err)
	}
	b.TotalPrice = total
	b.Status = Status(status)
	return &b, nil
}

func (r *pgxRepository) LockProvider(ctx context.Context, owner provider.Owner) error {
	if !db.InTx(ctx) {
		return errors.New("lock provider: no transaction in context")
	}
	if _, err := db.Executor(ctx, r.pool).Exec(ctx,
		"SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", owner.LockKey(),
	); err != nil {
		return fmt.Errorf("lock provider schedule failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, owner provider.Owner, start, end time.Time) (bool, error) {
	sub, args, err := db.PSQL.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{owner.ColumnName(): owner.ID()}).
		Where(squirrel.Eq{"status": activeStatusValues()}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	var exists bool
	if err := db.Executor(ctx, r.pool).QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	expertID, orgID := b.Owner.Columns()
	query, args, err := db.PSQL.Insert("public.bookings").
		Columns("user_id", "service_id", "expert_id", "organization_id",
			"start_time", "end_time", "status", "total_price", "notes").
		Values(b.UserID, b.ServiceID, expertID, orgID,
			b.StartTime, b.EndTime, string(b.Status), b.TotalPrice.StringFixed(2), b.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := db.Executor(ctx, r.pool).QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if db.IsWriteConflict(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	return r.get(ctx, id, false)
}

func (r *pgxRepository) GetByIDForUpdate(ctx context.Context, id string) (*Booking, error) {
	return r.get(ctx, id, true)
}

func (r *pgxRepository) get(ctx context.Context, id string, forUpdate bool) (*Booking, error) {
	q := db.PSQL.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(db.Executor(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, b *Booking) error {
	query, args, err := db.PSQL.Update("public.bookings").
		Set("status", string(b.Status)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	if err := db.Executor(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update booking status failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	query := db.PSQL.Select(append(bookingColumns, "count(*) OVER() AS total_count")...).
		From("public.bookings")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.Owner != nil && !filter.Owner.IsZero() {
		query = query.Where(squirrel.Eq{filter.Owner.ColumnName(): filter.Owner.ID()})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": string(filter.Status)})
	}
	// Intersection with [From, To).
	if filter.From != nil {
		query = query.Where(squirrel.Gt{"end_time": *filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.Lt{"start_time": *filter.To})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	sql, args, err := query.OrderBy("start_time DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := db.Executor(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var (
		bookings []*Booking
		total    int
	)
	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	return bookings, total, nil
}
