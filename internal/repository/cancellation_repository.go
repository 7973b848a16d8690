package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/salon_bot/internal/model"
	"github.com/Freeeeeet/salon_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

// CancellationRepository журнал отмен (только вставка)
type CancellationRepository struct {
	db base.DBTX
}

func NewCancellationRepository(db base.DBTX) *CancellationRepository {
	return &CancellationRepository{db: db}
}

func (r *CancellationRepository) WithTx(tx pgx.Tx) *CancellationRepository {
	return &CancellationRepository{db: tx}
}

// Create добавляет запись об отмене
func (r *CancellationRepository) Create(ctx context.Context, c *model.Cancellation) error {
	query := `
		INSERT INTO cancellations (booking_id, reason)
		VALUES ($1, $2)
		RETURNING cancellation_id, created_at
	`

	if err := r.db.QueryRow(ctx, query, c.BookingID, c.Reason).Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("create cancellation: %w", err)
	}

	return nil
}

// ListByBookingID возвращает отмены записи (по схеме не больше одной)
func (r *CancellationRepository) ListByBookingID(ctx context.Context, bookingID int64) ([]*model.Cancellation, error) {
	query := `
		SELECT cancellation_id, booking_id, reason, created_at
		FROM cancellations
		WHERE booking_id = $1
		ORDER BY cancellation_id
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get cancellations by booking: %w", err)
	}
	defer rows.Close()

	var cancellations []*model.Cancellation
	for rows.Next() {
		var c model.Cancellation
		if err := rows.Scan(&c.ID, &c.BookingID, &c.Reason, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cancellation: %w", err)
		}
		cancellations = append(cancellations, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cancellations: %w", err)
	}

	return cancellations, nil
}
