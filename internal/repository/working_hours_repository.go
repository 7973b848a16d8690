package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/salon_bot/internal/model"
	"github.com/Freeeeeet/salon_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

// TIME отдаём строкой "HH:MM", чтобы не зависеть от бинарного формата pgtype.Time
const workingHoursColumns = `working_hour_id, barber_id, day_of_week,
	to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	to_char(break_start, 'HH24:MI'), to_char(break_end, 'HH24:MI'), created_at`

type WorkingHoursRepository struct {
	db base.DBTX
}

func NewWorkingHoursRepository(db base.DBTX) *WorkingHoursRepository {
	return &WorkingHoursRepository{db: db}
}

func (r *WorkingHoursRepository) WithTx(tx pgx.Tx) *WorkingHoursRepository {
	return &WorkingHoursRepository{db: tx}
}

func scanWorkingHours(row pgx.Row) (*model.WorkingHours, error) {
	var wh model.WorkingHours
	err := row.Scan(
		&wh.ID,
		&wh.BarberID,
		&wh.DayOfWeek,
		&wh.StartTime,
		&wh.EndTime,
		&wh.BreakStart,
		&wh.BreakEnd,
		&wh.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &wh, nil
}

// Upsert задаёт рабочее окно мастера на день недели, заменяя предыдущее
func (r *WorkingHoursRepository) Upsert(ctx context.Context, wh *model.WorkingHours) error {
	query := `
		INSERT INTO working_hours (barber_id, day_of_week, start_time, end_time, break_start, break_end)
		VALUES ($1, $2, $3::text::time, $4::text::time, $5::text::time, $6::text::time)
		ON CONFLICT (barber_id, day_of_week) DO UPDATE
		SET start_time = EXCLUDED.start_time,
		    end_time = EXCLUDED.end_time,
		    break_start = EXCLUDED.break_start,
		    break_end = EXCLUDED.break_end
		RETURNING working_hour_id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		wh.BarberID,
		wh.DayOfWeek,
		wh.StartTime,
		wh.EndTime,
		wh.BreakStart,
		wh.BreakEnd,
	).Scan(&wh.ID, &wh.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert working hours: %w", err)
	}

	return nil
}

// ListByBarber возвращает недельный график мастера
func (r *WorkingHoursRepository) ListByBarber(ctx context.Context, barberID int64) ([]*model.WorkingHours, error) {
	query := `
		SELECT ` + workingHoursColumns + `
		FROM working_hours
		WHERE barber_id = $1
		ORDER BY day_of_week, start_time
	`
	return r.list(ctx, "list working hours", query, barberID)
}

// ListByBarberAndDay возвращает окна мастера на конкретный день недели (0 = воскресенье)
func (r *WorkingHoursRepository) ListByBarberAndDay(ctx context.Context, barberID int64, dayOfWeek int) ([]*model.WorkingHours, error) {
	query := `
		SELECT ` + workingHoursColumns + `
		FROM working_hours
		WHERE barber_id = $1 AND day_of_week = $2
		ORDER BY start_time
	`
	return r.list(ctx, "list working hours by day", query, barberID, dayOfWeek)
}

// Delete убирает рабочий день мастера
func (r *WorkingHoursRepository) Delete(ctx context.Context, barberID int64, dayOfWeek int) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM working_hours WHERE barber_id = $1 AND day_of_week = $2`, barberID, dayOfWeek)
	if err != nil {
		return fmt.Errorf("delete working hours: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete working hours: %w", ErrNotFound)
	}

	return nil
}

func (r *WorkingHoursRepository) list(ctx context.Context, op, query string, args ...any) ([]*model.WorkingHours, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var hours []*model.WorkingHours
	for rows.Next() {
		wh, err := scanWorkingHours(rows)
		if err != nil {
			return nil, fmt.Errorf("scan working hours: %w", err)
		}
		hours = append(hours, wh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate working hours: %w", err)
	}

	return hours, nil
}
