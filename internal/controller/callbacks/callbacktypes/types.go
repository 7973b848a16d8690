package callbacktypes

import (
	"github.com/Freeeeeet/salon_bot/internal/service"
	"go.uber.org/zap"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

// StateManager интерфейс для управления состоянием пользователей
type StateManager interface {
	ClearState(telegramID int64)
	GetState(telegramID int64) UserState
	SetState(telegramID int64, state UserState)
	SetData(telegramID int64, key string, value interface{})
	GetData(telegramID int64, key string) (interface{}, bool)
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	UserService    *service.UserService
	BarberService  *service.BarberService
	BookingService *service.BookingService
	AdminService   *service.AdminService
	StateManager   StateManager
	Logger         *zap.Logger

	// DaysAhead на сколько дней вперёд можно записаться
	DaysAhead int
}
