package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/stkrfx/digitaloffices-1/internal/db"
	"github.com/stkrfx/digitaloffices-1/internal/provider"
)

type Repository interface {
	Create(ctx context.Context, svc *Service) error
	GetByID(ctx context.Context, id string) (*Service, error)
	List(ctx context.Context, filter Filter) ([]*Service, int, error)
	Update(ctx context.Context, svc *Service) error
	Delete(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error

	// CountBookings returns how many bookings, in any status, reference the service.
	CountBookings(ctx context.Context, id string) (int, error)
}

type pgxRepository struct {
	pool db.DBTX
}

func NewPgxRepository(pool db.DBTX) Repository {
	return &pgxRepository{pool: pool}
}

var serviceColumns = []string{
	"id", "title", "description", "price::text", "duration_min", "is_active",
	"expert_id", "organization_id", "created_at", "updated_at",
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanService(row rowScanner, extra ...any) (*Service, error) {
	var (
		s               Service
		price           string
		expertID, orgID *string
	)
	dest := append([]any{
		&s.ID, &s.Title, &s.Description, &price, &s.DurationMin, &s.IsActive,
		&expertID, &orgID, &s.CreatedAt, &s.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	p, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse service price %q: %w", price, err)
	}
	s.Price = p

	owner, err := provider.FromColumns(expertID, orgID)
	if err != nil {
		return nil, fmt.Errorf("service %s: %w", s.ID, err)
	}
	s.Owner = owner
	return &s, nil
}

func (r *pgxRepository) Create(ctx context.Context, s *Service) error {
	expertID, orgID := s.Owner.Columns()
	query, args, err := db.PSQL.Insert("public.services").
		Columns("title", "description", "price", "duration_min", "is_active", "expert_id", "organization_id").
		Values(s.Title, s.Description, s.Price.StringFixed(2), s.DurationMin, s.IsActive, expertID, orgID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create service query failed: %w", err)
	}

	if err := db.Executor(ctx, r.pool).QueryRow(ctx, query, args...).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return fmt.Errorf("create service failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Service, error) {
	query, args, err := db.PSQL.Select(serviceColumns...).
		From("public.services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get service query failed: %w", err)
	}

	s, err := scanService(db.Executor(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get service failed: %w", err)
	}
	return s, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Service, int, error) {
	query := db.PSQL.Select(append(serviceColumns, "count(*) OVER() AS total_count")...).
		From("public.services")

	if filter.Owner != nil && !filter.Owner.IsZero() {
		query = query.Where(squirrel.Eq{filter.Owner.ColumnName(): filter.Owner.ID()})
	}
	if !filter.IncludeInactive {
		query = query.Where(squirrel.Eq{"is_active": true})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	sql, args, err := query.OrderBy("created_at DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list services query failed: %w", err)
	}

	rows, err := db.Executor(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list services failed: %w", err)
	}
	defer rows.Close()

	var (
		services []*Service
		total    int
	)
	for rows.Next() {
		s, err := scanService(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan service failed: %w", err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list services failed: %w", err)
	}
	return services, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, s *Service) error {
	query, args, err := db.PSQL.Update("public.services").
		Set("title", s.Title).
		Set("description", s.Description).
		Set("price", s.Price.StringFixed(2)).
		Set("duration_min", s.DurationMin).
		Set("is_active", s.IsActive).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": s.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update service query failed: %w", err)
	}

	if err := db.Executor(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update service failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	query, args, err := db.PSQL.Delete("public.services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete service query failed: %w", err)
	}

	ct, err := db.Executor(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return ErrInUse
		}
		return fmt.Errorf("delete service failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Deactivate(ctx context.Context, id string) error {
	query, args, err := db.PSQL.Update("public.services").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build deactivate service query failed: %w", err)
	}

	ct, err := db.Executor(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deactivate service failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) CountBookings(ctx context.Context, id string) (int, error) {
	query, args, err := db.PSQL.Select("count(*)").
		From("public.bookings").
		Where(squirrel.Eq{"service_id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count bookings query failed: %w", err)
	}

	var n int
	if err := db.Executor(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count service bookings failed: %w", err)
	}
	return n, nil
}
