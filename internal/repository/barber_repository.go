package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/salon_bot/internal/model"
	"github.com/Freeeeeet/salon_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

const barberColumns = `barber_id, full_name, phone_number, work_schedule, created_at`

type BarberRepository struct {
	db base.DBTX
}

func NewBarberRepository(db base.DBTX) *BarberRepository {
	return &BarberRepository{db: db}
}

func (r *BarberRepository) WithTx(tx pgx.Tx) *BarberRepository {
	return &BarberRepository{db: tx}
}

func scanBarber(row pgx.Row) (*model.Barber, error) {
	var barber model.Barber
	err := row.Scan(
		&barber.ID,
		&barber.FullName,
		&barber.PhoneNumber,
		&barber.WorkSchedule,
		&barber.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &barber, nil
}

// Create создаёт мастера. Телефон уникален.
func (r *BarberRepository) Create(ctx context.Context, barber *model.Barber) error {
	if barber.WorkSchedule == "" {
		barber.WorkSchedule = model.EmptyWorkSchedule
	}

	query := `
		INSERT INTO barbers (full_name, phone_number, work_schedule)
		VALUES ($1, $2, $3)
		RETURNING barber_id, created_at
	`

	err := r.db.QueryRow(ctx, query, barber.FullName, barber.PhoneNumber, barber.WorkSchedule).
		Scan(&barber.ID, &barber.CreatedAt)
	if err != nil {
		return fmt.Errorf("create barber: %w", err)
	}

	return nil
}

// GetByID получает мастера по ID
func (r *BarberRepository) GetByID(ctx context.Context, id int64) (*model.Barber, error) {
	query := `SELECT ` + barberColumns + ` FROM barbers WHERE barber_id = $1`

	barber, err := scanBarber(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get barber by id: %w", err)
	}

	return barber, nil
}

// GetByPhone получает мастера по номеру телефона
func (r *BarberRepository) GetByPhone(ctx context.Context, phone string) (*model.Barber, error) {
	query := `SELECT ` + barberColumns + ` FROM barbers WHERE phone_number = $1`

	barber, err := scanBarber(r.db.QueryRow(ctx, query, phone))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get barber by phone: %w", err)
	}

	return barber, nil
}

// List возвращает всех мастеров по имени
func (r *BarberRepository) List(ctx context.Context) ([]*model.Barber, error) {
	query := `SELECT ` + barberColumns + ` FROM barbers ORDER BY full_name, barber_id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list barbers: %w", err)
	}
	defer rows.Close()

	var barbers []*model.Barber
	for rows.Next() {
		barber, err := scanBarber(rows)
		if err != nil {
			return nil, fmt.Errorf("scan barber: %w", err)
		}
		barbers = append(barbers, barber)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate barbers: %w", err)
	}

	return barbers, nil
}

// UpdateWorkSchedule заменяет произвольное описание графика
func (r *BarberRepository) UpdateWorkSchedule(ctx context.Context, barberID int64, schedule string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE barbers SET work_schedule = $1 WHERE barber_id = $2`, schedule, barberID)
	if err != nil {
		return fmt.Errorf("update work schedule: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update work schedule: %w", ErrNotFound)
	}

	return nil
}
