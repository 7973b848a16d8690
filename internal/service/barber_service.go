package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Freeeeeet/salon_bot/internal/availability"
	"github.com/Freeeeeet/salon_bot/internal/model"
	"github.com/Freeeeeet/salon_bot/internal/repository"
	"github.com/Freeeeeet/salon_bot/internal/repository/base"
	"go.uber.org/zap"
)

// BarberService управляет мастерами, их графиком и услугами
type BarberService struct {
	barberRepo  *repository.BarberRepository
	serviceRepo *repository.ServiceRepository
	hoursRepo   *repository.WorkingHoursRepository
	logger      *zap.Logger
}

func NewBarberService(
	barberRepo *repository.BarberRepository,
	serviceRepo *repository.ServiceRepository,
	hoursRepo *repository.WorkingHoursRepository,
	logger *zap.Logger,
) *BarberService {
	return &BarberService{
		barberRepo:  barberRepo,
		serviceRepo: serviceRepo,
		hoursRepo:   hoursRepo,
		logger:      logger,
	}
}

// CreateBarber добавляет мастера
func (s *BarberService) CreateBarber(ctx context.Context, fullName, phone string) (*model.Barber, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, fmt.Errorf("barber name is required")
	}

	barber := &model.Barber{FullName: fullName}
	if phone = strings.TrimSpace(phone); phone != "" {
		barber.PhoneNumber = &phone
	}

	if err := s.barberRepo.Create(ctx, barber); err != nil {
		if base.IsUniqueViolation(err) {
			return nil, ErrDuplicatePhone
		}
		return nil, fmt.Errorf("create barber: %w", err)
	}

	s.logger.Info("Barber created",
		zap.Int64("barber_id", barber.ID),
		zap.String("name", barber.FullName),
	)

	return barber, nil
}

// GetBarber получает мастера по ID (nil, если не найден)
func (s *BarberService) GetBarber(ctx context.Context, id int64) (*model.Barber, error) {
	return s.barberRepo.GetByID(ctx, id)
}

// ListBarbers возвращает всех мастеров
func (s *BarberService) ListBarbers(ctx context.Context) ([]*model.Barber, error) {
	return s.barberRepo.List(ctx)
}

// SetWorkSchedule сохраняет произвольное JSON описание графика мастера
func (s *BarberService) SetWorkSchedule(ctx context.Context, barberID int64, schedule string) error {
	if !json.Valid([]byte(schedule)) {
		return ErrInvalidSchedule
	}

	if err := s.barberRepo.UpdateWorkSchedule(ctx, barberID, schedule); err != nil {
		if isNotFound(err) {
			return ErrBarberNotFound
		}
		return err
	}

	s.logger.Info("Work schedule updated", zap.Int64("barber_id", barberID))
	return nil
}

// SetWorkingHours задаёт рабочее окно мастера на день недели.
// breakStart и breakEnd задаются вместе или не задаются вовсе.
func (s *BarberService) SetWorkingHours(ctx context.Context, barberID int64, dayOfWeek int, start, end string, breakStart, breakEnd *string) (*model.WorkingHours, error) {
	if err := validateHours(dayOfWeek, start, end, breakStart, breakEnd); err != nil {
		return nil, err
	}

	barber, err := s.barberRepo.GetByID(ctx, barberID)
	if err != nil {
		return nil, fmt.Errorf("get barber: %w", err)
	}
	if barber == nil {
		return nil, ErrBarberNotFound
	}

	wh := &model.WorkingHours{
		BarberID:   barberID,
		DayOfWeek:  dayOfWeek,
		StartTime:  start,
		EndTime:    end,
		BreakStart: breakStart,
		BreakEnd:   breakEnd,
	}
	if err := s.hoursRepo.Upsert(ctx, wh); err != nil {
		return nil, fmt.Errorf("set working hours: %w", err)
	}

	s.logger.Info("Working hours set",
		zap.Int64("barber_id", barberID),
		zap.Int("day_of_week", dayOfWeek),
		zap.String("start", start),
		zap.String("end", end),
	)

	return wh, nil
}

// RemoveWorkingDay делает день недели выходным; уже выходной день не ошибка
func (s *BarberService) RemoveWorkingDay(ctx context.Context, barberID int64, dayOfWeek int) error {
	if err := s.hoursRepo.Delete(ctx, barberID, dayOfWeek); err != nil && !isNotFound(err) {
		return err
	}

	s.logger.Info("Working day removed",
		zap.Int64("barber_id", barberID),
		zap.Int("day_of_week", dayOfWeek),
	)
	return nil
}

// WorkingHours возвращает недельный график мастера
func (s *BarberService) WorkingHours(ctx context.Context, barberID int64) ([]*model.WorkingHours, error) {
	return s.hoursRepo.ListByBarber(ctx, barberID)
}

// CreateService добавляет услугу салона
func (s *BarberService) CreateService(ctx context.Context, name, description string, price int64, durationMinutes int) (*model.Service, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("service name is required")
	}
	if price < 0 || durationMinutes <= 0 {
		return nil, fmt.Errorf("invalid price or duration")
	}

	svc := &model.Service{
		Name:            name,
		Description:     description,
		Price:           price,
		DurationMinutes: durationMinutes,
	}
	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}

	s.logger.Info("Service created",
		zap.Int64("service_id", svc.ID),
		zap.String("name", svc.Name),
		zap.Int64("price", svc.Price),
	)

	return svc, nil
}

// ListServices возвращает все услуги
func (s *BarberService) ListServices(ctx context.Context) ([]*model.Service, error) {
	return s.serviceRepo.List(ctx)
}

// LinkService привязывает услугу к мастеру; повторная привязка - no-op
func (s *BarberService) LinkService(ctx context.Context, barberID, serviceID int64) error {
	barber, err := s.barberRepo.GetByID(ctx, barberID)
	if err != nil {
		return fmt.Errorf("get barber: %w", err)
	}
	if barber == nil {
		return ErrBarberNotFound
	}

	svc, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return fmt.Errorf("get service: %w", err)
	}
	if svc == nil {
		return ErrServiceNotFound
	}

	linked, err := s.serviceRepo.LinkBarber(ctx, barberID, serviceID)
	if err != nil {
		return err
	}

	s.logger.Info("Service linked to barber",
		zap.Int64("barber_id", barberID),
		zap.Int64("service_id", serviceID),
		zap.Bool("new_link", linked),
	)

	return nil
}

// ServicesForBarber возвращает услуги мастера
func (s *BarberService) ServicesForBarber(ctx context.Context, barberID int64) ([]*model.Service, error) {
	return s.serviceRepo.ListByBarber(ctx, barberID)
}

func validateHours(dayOfWeek int, start, end string, breakStart, breakEnd *string) error {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return fmt.Errorf("%w: day of week must be 0-6", ErrInvalidHours)
	}

	startD, err := availability.ParseClock(start)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHours, err)
	}
	endD, err := availability.ParseClock(end)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHours, err)
	}
	if endD <= startD {
		return fmt.Errorf("%w: end must be after start", ErrInvalidHours)
	}

	if (breakStart == nil) != (breakEnd == nil) {
		return fmt.Errorf("%w: break needs both start and end", ErrInvalidHours)
	}
	if breakStart == nil {
		return nil
	}

	bs, err := availability.ParseClock(*breakStart)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHours, err)
	}
	be, err := availability.ParseClock(*breakEnd)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHours, err)
	}
	if be <= bs || bs < startD || be > endD {
		return fmt.Errorf("%w: break must lie inside the working window", ErrInvalidHours)
	}

	return nil
}
