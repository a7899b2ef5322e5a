package availability

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/stkrfx/digitaloffices-1/internal/db"
)

type Repository interface {
	// ReplaceForExpert deletes the expert's week and inserts slots. Callers run it inside a transaction.
	ReplaceForExpert(ctx context.Context, expertID string, slots []Slot) error
	ListByExpert(ctx context.Context, expertID string) ([]Slot, error)
	// HasCoveringSlot reports whether one slot on day spans [start, end].
	HasCoveringSlot(ctx context.Context, expertID string, day int, start, end string) (bool, error)
}

type pgxRepository struct {
	pool db.DBTX
}

func NewPgxRepository(pool db.DBTX) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) ReplaceForExpert(ctx context.Context, expertID string, slots []Slot) error {
	exec := db.Executor(ctx, r.pool)

	query, args, err := db.PSQL.Delete("public.availability").
		Where(squirrel.Eq{"expert_id": expertID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete availability query failed: %w", err)
	}
	if _, err := exec.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete availability failed: %w", err)
	}

	if len(slots) == 0 {
		return nil
	}

	insert := db.PSQL.Insert("public.availability").
		Columns("expert_id", "day_of_week", "start_time", "end_time")
	for _, s := range slots {
		insert = insert.Values(expertID, s.DayOfWeek, s.StartTime, s.EndTime)
	}
	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("build insert availability query failed: %w", err)
	}
	if _, err := exec.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert availability failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListByExpert(ctx context.Context, expertID string) ([]Slot, error) {
	query, args, err := db.PSQL.Select("id", "expert_id", "day_of_week", "start_time", "end_time").
		From("public.availability").
		Where(squirrel.Eq{"expert_id": expertID}).
		OrderBy("day_of_week", "start_time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list availability query failed: %w", err)
	}

	rows, err := db.Executor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list availability failed: %w", err)
	}
	defer rows.Close()

	slots := make([]Slot, 0)
	for rows.Next() {
		var s Slot
		if err := rows.Scan(&s.ID, &s.ExpertID, &s.DayOfWeek, &s.StartTime, &s.EndTime); err != nil {
			return nil, fmt.Errorf("scan availability failed: %w", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list availability failed: %w", err)
	}
	return slots, nil
}

func (r *pgxRepository) HasCoveringSlot(ctx context.Context, expertID string, day int, start, end string) (bool, error) {
	sub, args, err := db.PSQL.Select("1").
		From("public.availability").
		Where(squirrel.Eq{"expert_id": expertID, "day_of_week": day}).
		Where(squirrel.LtOrEq{"start_time": start}).
		Where(squirrel.GtOrEq{"end_time": end}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build availability check query failed: %w", err)
	}

	var ok bool
	if err := db.Executor(ctx, r.pool).QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&ok); err != nil {
		return false, fmt.Errorf("check availability failed: %w", err)
	}
	return ok, nil
}
