package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/salon_bot/internal/metrics"
	"github.com/Freeeeeet/salon_bot/internal/model"
	"github.com/Freeeeeet/salon_bot/internal/repository"
	"github.com/Freeeeeet/salon_bot/internal/repository/base"
	"go.uber.org/zap"
)

// FeedbackService отзывы клиентов о визитах
type FeedbackService struct {
	bookingRepo  *repository.BookingRepository
	feedbackRepo *repository.FeedbackRepository
	logger       *zap.Logger
}

func NewFeedbackService(
	bookingRepo *repository.BookingRepository,
	feedbackRepo *repository.FeedbackRepository,
	logger *zap.Logger,
) *FeedbackService {
	return &FeedbackService{
		bookingRepo:  bookingRepo,
		feedbackRepo: feedbackRepo,
		logger:       logger,
	}
}

// LeaveFeedback сохраняет оценку клиента к своей записи
func (s *FeedbackService) LeaveFeedback(ctx context.Context, userID, bookingID int64, rating int, comments string) (*model.Feedback, error) {
	if rating < model.MinRating || rating > model.MaxRating {
		return nil, ErrInvalidRating
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.UserID != userID {
		return nil, ErrNotBookingOwner
	}

	feedback := &model.Feedback{
		UserID:    userID,
		BookingID: bookingID,
		Rating:    rating,
		Comments:  strings.TrimSpace(comments),
	}
	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		if base.IsCheckViolation(err) {
			return nil, ErrInvalidRating
		}
		return nil, fmt.Errorf("create feedback: %w", err)
	}

	metrics.FeedbackReceived.WithLabelValues(strconv.Itoa(rating)).Inc()
	s.logger.Info("Feedback received",
		zap.Int64("feedback_id", feedback.ID),
		zap.Int64("booking_id", bookingID),
		zap.Int("rating", rating),
	)

	return feedback, nil
}

// BookingFeedback возвращает отзывы к записи
func (s *FeedbackService) BookingFeedback(ctx context.Context, bookingID int64) ([]*model.Feedback, error) {
	return s.feedbackRepo.ListByBooking(ctx, bookingID)
}
