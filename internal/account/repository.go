package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/stkrfx/digitaloffices-1/internal/auth"
	"github.com/stkrfx/digitaloffices-1/internal/db"
)

// Repository is the capability every role table provides.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id string) (*Account, error)
	Create(ctx context.Context, a *Account) error
	Update(ctx context.Context, a *Account) error
	UpdateLastLogin(ctx context.Context, id string, t time.Time) error
}

// Repositories holds one repository per role.
type Repositories struct {
	Users         Repository
	Experts       Repository
	Organizations Repository
	Admins        Repository
}

// NewPgxRepositories builds the role repositories over their identity tables.
func NewPgxRepositories(pool db.DBTX) Repositories {
	return Repositories{
		Users:         &pgxRepository{pool: pool, table: "public.users", role: auth.RoleUser},
		Experts:       &pgxRepository{pool: pool, table: "public.experts", role: auth.RoleExpert},
		Organizations: &pgxRepository{pool: pool, table: "public.organizations", role: auth.RoleOrganization},
		Admins:        &pgxRepository{pool: pool, table: "public.admins", role: auth.RoleAdmin},
	}
}

// For returns the repository backing role.
func (r Repositories) For(role auth.Role) (Repository, error) {
	switch role {
	case auth.RoleUser:
		return r.Users, nil
	case auth.RoleExpert:
		return r.Experts, nil
	case auth.RoleOrganization:
		return r.Organizations, nil
	case auth.RoleAdmin:
		return r.Admins, nil
	default:
		return nil, ErrUnknownRole
	}
}

type pgxRepository struct {
	pool  db.DBTX
	table string
	role  auth.Role
}

var accountColumns = []string{
	"id", "email", "password_hash", "display_name", "is_active", "created_at", "last_login_at",
}

func (r *pgxRepository) findOne(ctx context.Context, where squirrel.Eq) (*Account, error) {
	query, args, err := db.PSQL.Select(accountColumns...).
		From(r.table).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find %s query failed: %w", r.role, err)
	}

	a := Account{Role: r.role}
	if err := db.Executor(ctx, r.pool).QueryRow(ctx, query, args...).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.DisplayName, &a.IsActive, &a.CreatedAt, &a.LastLoginAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find %s failed: %w", r.role, err)
	}
	return &a, nil
}

func (r *pgxRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	return r.findOne(ctx, squirrel.Eq{"email": email})
}

func (r *pgxRepository) FindByID(ctx context.Context, id string) (*Account, error) {
	return r.findOne(ctx, squirrel.Eq{"id": id})
}

func (r *pgxRepository) Create(ctx context.Context, a *Account) error {
	query, args, err := db.PSQL.Insert(r.table).
		Columns("email", "password_hash", "display_name", "is_active").
		Values(a.Email, a.PasswordHash, a.DisplayName, a.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create %s query failed: %w", r.role, err)
	}

	if err := db.Executor(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&a.ID, &a.CreatedAt); err != nil {
		if db.IsUniqueViolation(err) {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("create %s failed: %w", r.role, err)
	}
	a.Role = r.role
	return nil
}

func (r *pgxRepository) Update(ctx context.Context, a *Account) error {
	query, args, err := db.PSQL.Update(r.table).
		Set("display_name", a.DisplayName).
		Set("is_active", a.IsActive).
		Where(squirrel.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update %s query failed: %w", r.role, err)
	}

	ct, err := db.Executor(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update %s failed: %w", r.role, err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	query, args, err := db.PSQL.Update(r.table).
		Set("last_login_at", t).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update last login query failed: %w", err)
	}

	if _, err := db.Executor(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("update %s last login failed: %w", r.role, err)
	}
	return nil
}
