package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/salon_bot/internal/model"
	"github.com/Freeeeeet/salon_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

const serviceColumns = `s.service_id, s.service_name, s.description, s.price, s.duration_minutes, s.created_at`

// ServiceRepository хранит услуги и их привязку к мастерам
type ServiceRepository struct {
	db base.DBTX
}

func NewServiceRepository(db base.DBTX) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) WithTx(tx pgx.Tx) *ServiceRepository {
	return &ServiceRepository{db: tx}
}

func scanService(row pgx.Row) (*model.Service, error) {
	var svc model.Service
	err := row.Scan(
		&svc.ID,
		&svc.Name,
		&svc.Description,
		&svc.Price,
		&svc.DurationMinutes,
		&svc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

// Create создаёт услугу
func (r *ServiceRepository) Create(ctx context.Context, svc *model.Service) error {
	query := `
		INSERT INTO services (service_name, description, price, duration_minutes)
		VALUES ($1, $2, $3, $4)
		RETURNING service_id, created_at
	`

	err := r.db.QueryRow(ctx, query, svc.Name, svc.Description, svc.Price, svc.DurationMinutes).
		Scan(&svc.ID, &svc.CreatedAt)
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}

	return nil
}

// GetByID получает услугу по ID
func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*model.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services s WHERE s.service_id = $1`

	svc, err := scanService(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service by id: %w", err)
	}

	return svc, nil
}

// List возвращает все услуги
func (r *ServiceRepository) List(ctx context.Context) ([]*model.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services s ORDER BY s.service_name, s.service_id`
	return r.list(ctx, "list services", query)
}

// ListByBarber возвращает услуги, которые оказывает мастер
func (r *ServiceRepository) ListByBarber(ctx context.Context, barberID int64) ([]*model.Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services s
		JOIN barber_services bs ON bs.service_id = s.service_id
		WHERE bs.barber_id = $1
		ORDER BY s.service_name, s.service_id
	`
	return r.list(ctx, "list services by barber", query, barberID)
}

// LinkBarber привязывает услугу к мастеру.
// Повторная привязка ничего не меняет и не возвращает ошибку; linked = false в этом случае.
func (r *ServiceRepository) LinkBarber(ctx context.Context, barberID, serviceID int64) (bool, error) {
	query := `
		INSERT INTO barber_services (barber_id, service_id)
		VALUES ($1, $2)
		ON CONFLICT (barber_id, service_id) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query, barberID, serviceID)
	if err != nil {
		return false, fmt.Errorf("link barber service: %w", err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *ServiceRepository) list(ctx context.Context, op, query string, args ...any) ([]*model.Service, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var services []*model.Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate services: %w", err)
	}

	return services, nil
}
