package callbacks

import (
	"context"

	"github.com/Freeeeeet/salon_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/salon_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Handler обертка для callbacktypes.Handler с методами
type Handler struct {
	*callbacktypes.Handler
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	userService *service.UserService,
	barberService *service.BarberService,
	bookingService *service.BookingService,
	adminService *service.AdminService,
	stateManager callbacktypes.StateManager,
	daysAhead int,
	logger *zap.Logger,
) *Handler {
	inner := &callbacktypes.Handler{
		UserService:    userService,
		BarberService:  barberService,
		BookingService: bookingService,
		AdminService:   adminService,
		StateManager:   stateManager,
		Logger:         logger,
		DaysAhead:      daysAhead,
	}
	return &Handler{Handler: inner}
}

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	Route(ctx, b, update.CallbackQuery, h.Handler)
}
