package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/salon_bot/internal/availability"
	"github.com/Freeeeeet/salon_bot/internal/metrics"
	"github.com/Freeeeeet/salon_bot/internal/model"
	"github.com/Freeeeeet/salon_bot/internal/repository"
	"github.com/Freeeeeet/salon_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingService struct {
	db               base.TxBeginner
	barberRepo       *repository.BarberRepository
	serviceRepo      *repository.ServiceRepository
	hoursRepo        *repository.WorkingHoursRepository
	bookingRepo      *repository.BookingRepository
	cancellationRepo *repository.CancellationRepository
	slotStep         time.Duration
	now              func() time.Time
	logger           *zap.Logger
}

func NewBookingService(
	db base.TxBeginner,
	barberRepo *repository.BarberRepository,
	serviceRepo *repository.ServiceRepository,
	hoursRepo *repository.WorkingHoursRepository,
	bookingRepo *repository.BookingRepository,
	cancellationRepo *repository.CancellationRepository,
	slotStep time.Duration,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		db:               db,
		barberRepo:       barberRepo,
		serviceRepo:      serviceRepo,
		hoursRepo:        hoursRepo,
		bookingRepo:      bookingRepo,
		cancellationRepo: cancellationRepo,
		slotStep:         slotStep,
		now:              time.Now,
		logger:           logger,
	}
}

// BookRequest параметры новой записи
type BookRequest struct {
	UserID    int64
	BarberID  int64
	ServiceID *int64
	Date      time.Time
	Time      string // "HH:MM"
}

// Book записывает клиента к мастеру.
// Время должно быть свободным слотом графика; гонку двух одновременных записей
// разрешает уникальный индекс, проигравший получает ErrSlotTaken.
func (s *BookingService) Book(ctx context.Context, req BookRequest) (*model.Booking, error) {
	clock, err := availability.ParseClock(req.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutsideWorkingHours, err)
	}
	slotTime := availability.FormatClock(clock)

	day := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, time.Local)
	if day.Add(clock).Before(s.now()) {
		return nil, ErrSlotInPast
	}

	barber, err := s.barberRepo.GetByID(ctx, req.BarberID)
	if err != nil {
		return nil, fmt.Errorf("get barber: %w", err)
	}
	if barber == nil {
		return nil, ErrBarberNotFound
	}

	if req.ServiceID != nil {
		if err := s.checkServiceOffered(ctx, req.BarberID, *req.ServiceID); err != nil {
			return nil, err
		}
	}

	hours, err := s.hoursRepo.ListByBarberAndDay(ctx, req.BarberID, int(day.Weekday()))
	if err != nil {
		return nil, fmt.Errorf("get working hours: %w", err)
	}
	configured, err := availability.FreeSlots(hours, nil, day, s.slotStep)
	if err != nil {
		return nil, fmt.Errorf("compute slots: %w", err)
	}
	if !availability.Contains(configured, slotTime) {
		return nil, ErrOutsideWorkingHours
	}

	booking := &model.Booking{
		UserID:    req.UserID,
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		Date:      day,
		Time:      slotTime,
		Status:    model.BookingStatusPending,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if base.IsUniqueViolation(err) {
			metrics.BookingConflicts.Inc()
			s.logger.Info("Slot already taken",
				zap.Int64("barber_id", req.BarberID),
				zap.String("date", booking.DateString()),
				zap.String("time", slotTime),
			)
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	metrics.BookingsCreated.Inc()
	s.logger.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("user_id", req.UserID),
		zap.Int64("barber_id", req.BarberID),
		zap.String("date", booking.DateString()),
		zap.String("time", slotTime),
	)

	booking.Barber = barber
	return booking, nil
}

// Cancel отменяет запись и пишет причину в журнал отмен одной транзакцией.
// Повторная отмена возвращает ErrAlreadyCancelled и ничего не пишет.
func (s *BookingService) Cancel(ctx context.Context, bookingID int64, reason string) error {
	err := base.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		bookings := s.bookingRepo.WithTx(tx)

		changed, err := bookings.MarkCancelled(ctx, bookingID)
		if err != nil {
			return err
		}
		if !changed {
			existing, err := bookings.GetByID(ctx, bookingID)
			if err != nil {
				return err
			}
			if existing == nil {
				return ErrBookingNotFound
			}
			return ErrAlreadyCancelled
		}

		return s.cancellationRepo.WithTx(tx).Create(ctx, &model.Cancellation{
			BookingID: bookingID,
			Reason:    reason,
		})
	})
	if err != nil {
		return fmt.Errorf("cancel booking %d: %w", bookingID, err)
	}

	metrics.BookingsCancelled.Inc()
	s.logger.Info("Booking cancelled",
		zap.Int64("booking_id", bookingID),
		zap.String("reason", reason),
	)

	return nil
}

// CancelByUser отменяет запись от имени клиента, проверяя что запись его
func (s *BookingService) CancelByUser(ctx context.Context, bookingID, userID int64, reason string) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return ErrBookingNotFound
	}
	if booking.UserID != userID {
		return ErrNotBookingOwner
	}

	return s.Cancel(ctx, bookingID, reason)
}

// UpdateStatus меняет статус активной записи. Отмена идёт только через Cancel,
// отменённую запись вернуть нельзя (ErrBookingCancelled).
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID int64, status model.BookingStatus) error {
	if !status.Valid() || status == model.BookingStatusCancelled {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, status); err != nil {
		switch {
		case isNotFound(err):
			existing, getErr := s.bookingRepo.GetByID(ctx, bookingID)
			if getErr != nil {
				return fmt.Errorf("get booking: %w", getErr)
			}
			if existing == nil {
				return ErrBookingNotFound
			}
			return ErrBookingCancelled
		case base.IsUniqueViolation(err):
			return ErrSlotTaken
		}
		return err
	}

	s.logger.Info("Booking status updated",
		zap.Int64("booking_id", bookingID),
		zap.String("status", string(status)),
	)
	return nil
}

// GetByID получает запись по ID
func (s *BookingService) GetByID(ctx context.Context, bookingID int64) (*model.Booking, error) {
	return s.bookingRepo.GetByID(ctx, bookingID)
}

// UserBookings получает все записи клиента
func (s *BookingService) UserBookings(ctx context.Context, userID int64) ([]*model.Booking, error) {
	return s.bookingRepo.ListByUser(ctx, userID)
}

// BarberBookings получает все записи мастера
func (s *BookingService) BarberBookings(ctx context.Context, barberID int64) ([]*model.Booking, error) {
	return s.bookingRepo.ListByBarber(ctx, barberID)
}

// WorkingWindows возвращает настроенные окна мастера на дату, без учёта записей
func (s *BookingService) WorkingWindows(ctx context.Context, barberID int64, date time.Time) ([]availability.Window, error) {
	hours, err := s.hoursRepo.ListByBarberAndDay(ctx, barberID, int(date.Weekday()))
	if err != nil {
		return nil, fmt.Errorf("get working hours: %w", err)
	}
	return availability.Windows(hours, date), nil
}

// AvailableTimes возвращает свободное время мастера на дату: график минус активные записи.
// Нет графика на этот день - пустой список.
func (s *BookingService) AvailableTimes(ctx context.Context, barberID int64, date time.Time) ([]string, error) {
	hours, err := s.hoursRepo.ListByBarberAndDay(ctx, barberID, int(date.Weekday()))
	if err != nil {
		return nil, fmt.Errorf("get working hours: %w", err)
	}
	if len(hours) == 0 {
		return []string{}, nil
	}

	bookings, err := s.bookingRepo.ListByBarberAndDate(ctx, barberID, date)
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	slots, err := availability.FreeSlots(hours, bookings, date, s.slotStep)
	if err != nil {
		return nil, fmt.Errorf("compute free slots: %w", err)
	}

	// на сегодня прошедшее время не предлагаем
	now := s.now()
	if sameDay(date, now) {
		current := time.Duration(now.Hour())*time.Hour + time.Duration(now.Minute())*time.Minute
		upcoming := slots[:0]
		for _, slot := range slots {
			d, _ := availability.ParseClock(slot)
			if d > current {
				upcoming = append(upcoming, slot)
			}
		}
		slots = upcoming
	}

	if slots == nil {
		slots = []string{}
	}
	return slots, nil
}

// CompletePastBookings завершает активные записи, время которых прошло
func (s *BookingService) CompletePastBookings(ctx context.Context, now time.Time) (int64, error) {
	return s.bookingRepo.CompleteBefore(ctx, now)
}

// checkServiceOffered услуга должна быть привязана к мастеру
func (s *BookingService) checkServiceOffered(ctx context.Context, barberID, serviceID int64) error {
	services, err := s.serviceRepo.ListByBarber(ctx, barberID)
	if err != nil {
		return fmt.Errorf("get barber services: %w", err)
	}
	for _, svc := range services {
		if svc.ID == serviceID {
			return nil
		}
	}
	return ErrServiceNotOffered
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
