package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/salon_bot/internal/model"
	"github.com/Freeeeeet/salon_bot/internal/repository"
	"github.com/Freeeeeet/salon_bot/internal/repository/base"
	"go.uber.org/zap"
)

// AdminService определяет кто может управлять мастерами и графиком
type AdminService struct {
	adminTelegramID int64
	userRepo        *repository.UserRepository
	adminRepo       *repository.AdminRepository
	logger          *zap.Logger
}

func NewAdminService(
	adminTelegramID int64,
	userRepo *repository.UserRepository,
	adminRepo *repository.AdminRepository,
	logger *zap.Logger,
) *AdminService {
	return &AdminService{
		adminTelegramID: adminTelegramID,
		userRepo:        userRepo,
		adminRepo:       adminRepo,
		logger:          logger,
	}
}

// NotificationChatID Telegram ID, куда отправляются уведомления (0 - не настроен)
func (s *AdminService) NotificationChatID() int64 {
	return s.adminTelegramID
}

// IsAdmin проверяет права: настроенный администратор или строка в admins
func (s *AdminService) IsAdmin(ctx context.Context, telegramID int64) (bool, error) {
	if s.adminTelegramID != 0 && telegramID == s.adminTelegramID {
		return true, nil
	}

	user, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return false, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return false, nil
	}

	admin, err := s.adminRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return false, fmt.Errorf("get admin: %w", err)
	}

	return admin != nil, nil
}

// AddAdmin назначает зарегистрированного пользователя администратором
func (s *AdminService) AddAdmin(ctx context.Context, telegramID int64, name string, superAdmin bool) (*model.Admin, error) {
	user, err := s.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	admin := &model.Admin{
		UserID:       user.ID,
		Name:         name,
		IsSuperAdmin: superAdmin,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if base.IsUniqueViolation(err) {
			return nil, ErrAlreadyAdmin
		}
		return nil, fmt.Errorf("create admin: %w", err)
	}

	s.logger.Info("Admin added",
		zap.Int64("admin_id", admin.ID),
		zap.Int64("user_id", user.ID),
		zap.Bool("super_admin", superAdmin),
	)

	return admin, nil
}

// ListAdmins возвращает всех администраторов
func (s *AdminService) ListAdmins(ctx context.Context) ([]*model.Admin, error) {
	return s.adminRepo.List(ctx)
}

// RemoveAdmin снимает права администратора
func (s *AdminService) RemoveAdmin(ctx context.Context, adminID int64) error {
	if err := s.adminRepo.Delete(ctx, adminID); err != nil {
		if isNotFound(err) {
			return ErrAdminNotFound
		}
		return err
	}

	s.logger.Info("Admin removed", zap.Int64("admin_id", adminID))
	return nil
}
