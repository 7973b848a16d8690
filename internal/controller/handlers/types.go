package handlers

import (
	"github.com/Freeeeeet/salon_bot/internal/controller/state"
	"github.com/Freeeeeet/salon_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService     *service.UserService
	barberService   *service.BarberService
	bookingService  *service.BookingService
	feedbackService *service.FeedbackService
	adminService    *service.AdminService
	stateManager    *state.Manager
	logger          *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	userService *service.UserService,
	barberService *service.BarberService,
	bookingService *service.BookingService,
	feedbackService *service.FeedbackService,
	adminService *service.AdminService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService:     userService,
		barberService:   barberService,
		bookingService:  bookingService,
		feedbackService: feedbackService,
		adminService:    adminService,
		stateManager:    stateManager,
		logger:          logger,
	}
}
