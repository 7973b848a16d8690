package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/salon_bot/internal/model"
	"github.com/Freeeeeet/salon_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

const bookingColumns = `booking_id, user_id, barber_id, service_id, booking_date,
	to_char(booking_time, 'HH24:MI'), status, created_at`

type BookingRepository struct {
	db base.DBTX
}

func NewBookingRepository(db base.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) WithTx(tx pgx.Tx) *BookingRepository {
	return &BookingRepository{db: tx}
}

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var booking model.Booking
	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.BarberID,
		&booking.ServiceID,
		&booking.Date,
		&booking.Time,
		&booking.Status,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Create создаёт запись.
// Активная запись на тот же (мастер, дата, время) даёт нарушение уникальности.
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if booking.Status == "" {
		booking.Status = model.BookingStatusPending
	}

	query := `
		INSERT INTO bookings (user_id, barber_id, service_id, booking_date, booking_time, status)
		VALUES ($1, $2, $3, $4::text::date, $5::text::time, $6)
		RETURNING booking_id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		booking.UserID,
		booking.BarberID,
		booking.ServiceID,
		booking.DateString(),
		booking.Time,
		booking.Status,
	).Scan(&booking.ID, &booking.CreatedAt)

	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

// GetByID получает запись по ID
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return booking, nil
}

// ListByUser получает все записи клиента, ближайшие сверху
func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY booking_date DESC, booking_time DESC
	`
	return r.list(ctx, "get bookings by user", query, userID)
}

// ListByBarber получает все записи мастера
func (r *BookingRepository) ListByBarber(ctx context.Context, barberID int64) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE barber_id = $1
		ORDER BY booking_date, booking_time
	`
	return r.list(ctx, "get bookings by barber", query, barberID)
}

// ListByBarberAndDate получает записи мастера на дату (включая отменённые)
func (r *BookingRepository) ListByBarberAndDate(ctx context.Context, barberID int64, date time.Time) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE barber_id = $1 AND booking_date = $2::text::date
		ORDER BY booking_time
	`
	return r.list(ctx, "get bookings by barber and date", query, barberID, date.Format(model.DateLayout))
}

// UpdateStatus обновляет статус записи. Отменённая запись не меняется:
// ErrNotFound, если записи нет или она отменена.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $1
		WHERE booking_id = $2 AND status <> 'cancelled'
	`

	result, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update booking status: %w", ErrNotFound)
	}

	return nil
}

// MarkCancelled переводит запись в cancelled.
// Возвращает false, если записи нет или она уже отменена.
func (r *BookingRepository) MarkCancelled(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'cancelled'
		WHERE booking_id = $1 AND status <> 'cancelled'
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("mark booking cancelled: %w", err)
	}

	return result.RowsAffected() == 1, nil
}

// CompleteBefore завершает активные записи, время которых раньше now
func (r *BookingRepository) CompleteBefore(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE bookings
		SET status = 'completed'
		WHERE status IN ('pending', 'confirmed')
		  AND booking_date + booking_time < $1::text::timestamp
	`

	result, err := r.db.Exec(ctx, query, now.Format("2006-01-02 15:04:05"))
	if err != nil {
		return 0, fmt.Errorf("complete past bookings: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *BookingRepository) list(ctx context.Context, op, query string, args ...any) ([]*model.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	return bookings, nil
}
