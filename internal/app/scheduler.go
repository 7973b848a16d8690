package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// BookingCompleter закрывает записи, время которых прошло
type BookingCompleter interface {
	CompletePastBookings(ctx context.Context, now time.Time) (int64, error)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	bookingService BookingCompleter
	interval       time.Duration
	logger         *zap.Logger
	stopChan       chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(bookingService BookingCompleter, interval time.Duration, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{
		bookingService: bookingService,
		interval:       interval,
		logger:         logger,
		stopChan:       make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))

	go s.runCompletionTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runCompletionTask периодически закрывает прошедшие записи
func (s *Scheduler) runCompletionTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.completeBookings(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.completeBookings(ctx)
		case <-s.stopChan:
			s.logger.Info("Booking completion task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Booking completion task cancelled")
			return
		}
	}
}

func (s *Scheduler) completeBookings(ctx context.Context) {
	n, err := s.bookingService.CompletePastBookings(ctx, time.Now())
	if err != nil {
		s.logger.Error("Failed to complete past bookings", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("Past bookings completed", zap.Int64("count", n))
	}
}
