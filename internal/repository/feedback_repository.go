package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/salon_bot/internal/model"
	"github.com/Freeeeeet/salon_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

type FeedbackRepository struct {
	db base.DBTX
}

func NewFeedbackRepository(db base.DBTX) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) WithTx(tx pgx.Tx) *FeedbackRepository {
	return &FeedbackRepository{db: tx}
}

// Create сохраняет отзыв. Рейтинг вне 1..5 отклоняется CHECK ограничением.
func (r *FeedbackRepository) Create(ctx context.Context, f *model.Feedback) error {
	query := `
		INSERT INTO feedback (user_id, booking_id, rating, comments)
		VALUES ($1, $2, $3, $4)
		RETURNING feedback_id, created_at
	`

	err := r.db.QueryRow(ctx, query, f.UserID, f.BookingID, f.Rating, f.Comments).
		Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}

	return nil
}

// ListByBooking возвращает отзывы к записи
func (r *FeedbackRepository) ListByBooking(ctx context.Context, bookingID int64) ([]*model.Feedback, error) {
	query := `
		SELECT feedback_id, user_id, booking_id, rating, comments, created_at
		FROM feedback
		WHERE booking_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get feedback for booking: %w", err)
	}
	defer rows.Close()

	var feedback []*model.Feedback
	for rows.Next() {
		var f model.Feedback
		if err := rows.Scan(&f.ID, &f.UserID, &f.BookingID, &f.Rating, &f.Comments, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		feedback = append(feedback, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedback: %w", err)
	}

	return feedback, nil
}
