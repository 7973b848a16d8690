package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/salon_bot/internal/metrics"
	"github.com/Freeeeeet/salon_bot/internal/model"
	"github.com/Freeeeeet/salon_bot/internal/repository"
	"go.uber.org/zap"
)

type UserService struct {
	userRepo *repository.UserRepository
	logger   *zap.Logger
}

func NewUserService(userRepo *repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// RegisterUser регистрирует пользователя при первом контакте.
// Вставка атомарна: при гонке двух /start второй вызов получит существующую строку и created = false.
func (s *UserService) RegisterUser(ctx context.Context, telegramID int64, username, fullName, language string) (*model.User, bool, error) {
	candidate := &model.User{
		TelegramID: telegramID,
		Username:   username,
		FullName:   fullName,
	}
	if language != "" {
		candidate.Language = &language
	}

	user, created, err := s.userRepo.EnsureByTelegramID(ctx, candidate)
	if err != nil {
		return nil, false, fmt.Errorf("register user: %w", err)
	}

	if created {
		metrics.UserRegistrations.Inc()
		s.logger.Info("New user registered",
			zap.Int64("user_id", user.ID),
			zap.Int64("telegram_id", telegramID),
			zap.String("username", username),
		)
	}

	return user, created, nil
}

// GetByTelegramID получает пользователя по Telegram ID (nil, если не найден)
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	return s.userRepo.GetByTelegramID(ctx, telegramID)
}

// GetByID получает пользователя по ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ListUsers возвращает всех пользователей
func (s *UserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.List(ctx)
}

// UpdatePhone сохраняет телефон пользователя в виде +<цифры>
func (s *UserService) UpdatePhone(ctx context.Context, userID int64, phone string) (string, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return "", err
	}

	if err := s.userRepo.UpdatePhone(ctx, userID, normalized); err != nil {
		return "", s.notFound(err)
	}

	s.logger.Info("User phone updated", zap.Int64("user_id", userID))
	return normalized, nil
}

// Activate снова делает пользователя активным (и снимает блокировку)
func (s *UserService) Activate(ctx context.Context, userID int64) error {
	if err := s.userRepo.SetActive(ctx, userID, true); err != nil {
		return s.notFound(err)
	}

	s.logger.Info("User activated", zap.Int64("user_id", userID))
	return nil
}

// Deactivate помечает пользователя неактивным
func (s *UserService) Deactivate(ctx context.Context, userID int64) error {
	if err := s.userRepo.SetActive(ctx, userID, false); err != nil {
		return s.notFound(err)
	}

	s.logger.Info("User deactivated", zap.Int64("user_id", userID))
	return nil
}

// NormalizePhone убирает пробелы, скобки и дефисы; Telegram присылает номер без "+".
// Вместе с "+" номер помещается в VARCHAR(15).
func NormalizePhone(phone string) (string, error) {
	var digits strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return "", ErrInvalidPhone
		}
	}

	if n := digits.Len(); n < 7 || n > 14 {
		return "", ErrInvalidPhone
	}
	return "+" + digits.String(), nil
}

// Block помечает что пользователь заблокировал бота
func (s *UserService) Block(ctx context.Context, userID int64) error {
	if err := s.userRepo.MarkBlocked(ctx, userID); err != nil {
		return s.notFound(err)
	}

	s.logger.Info("User blocked the bot", zap.Int64("user_id", userID))
	return nil
}

func (s *UserService) notFound(err error) error {
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		return fmt.Errorf("%w: %v", ErrUserNotFound, err)
	}
	return err
}
