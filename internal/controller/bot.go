package controller

import (
	"context"
	"time"

	"github.com/Freeeeeet/salon_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/salon_bot/internal/controller/handlers"
	"github.com/Freeeeeet/salon_bot/internal/controller/state"
	"github.com/Freeeeeet/salon_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Services сервисы, которыми пользуется бот
type Services struct {
	Users    *service.UserService
	Barbers  *service.BarberService
	Bookings *service.BookingService
	Feedback *service.FeedbackService
	Admins   *service.AdminService
}

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	stateManager    *state.Manager
	logger          *zap.Logger
}

func NewBotController(
	services Services,
	stateManager *state.Manager,
	daysAhead int,
	logger *zap.Logger,
) *BotController {
	cmdHandlers := handlers.NewHandlers(
		services.Users,
		services.Barbers,
		services.Bookings,
		services.Feedback,
		services.Admins,
		stateManager,
		logger,
	)

	callbackHandler := callbacks.NewHandler(
		services.Users,
		services.Barbers,
		services.Bookings,
		services.Admins,
		state.NewAdapter(stateManager),
		daysAhead,
		logger,
	)

	return &BotController{
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		stateManager:    stateManager,
		logger:          logger,
	}
}

// Options опции для bot.New: middleware обновлений и обработчик всего,
// что не попало в зарегистрированные команды (диалоги и неизвестные команды)
func (c *BotController) Options() []bot.Option {
	return []bot.Option{
		bot.WithMiddlewares(UpdateMiddleware(c.logger)),
		bot.WithDefaultHandler(c.handlers.HandleTextMessage),
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context, botInstance *bot.Bot) error {
	c.bot = botInstance

	// Команды клиентов
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/barbers", bot.MatchTypeExact, c.handlers.HandleBarbers)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mybookings", bot.MatchTypeExact, c.handlers.HandleMyBookings)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/feedback", bot.MatchTypePrefix, c.handlers.HandleFeedback)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/phone", bot.MatchTypeExact, c.handlers.HandlePhone)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/stop", bot.MatchTypeExact, c.handlers.HandleStop)

	// Команды администратора
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/admin", bot.MatchTypeExact, c.handlers.HandleAdmin)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/addbarber", bot.MatchTypePrefix, c.handlers.HandleAddBarber)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/sethours", bot.MatchTypePrefix, c.handlers.HandleSetHours)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/dayoff", bot.MatchTypePrefix, c.handlers.HandleDayOff)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/addservice", bot.MatchTypePrefix, c.handlers.HandleAddService)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/linkservice", bot.MatchTypePrefix, c.handlers.HandleLinkService)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/bookings", bot.MatchTypePrefix, c.handlers.HandleBarberBookings)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/confirm", bot.MatchTypePrefix, c.handlers.HandleSetStatus)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/complete", bot.MatchTypePrefix, c.handlers.HandleSetStatus)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/setschedule", bot.MatchTypePrefix, c.handlers.HandleSetSchedule)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/users", bot.MatchTypeExact, c.handlers.HandleUsers)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/admins", bot.MatchTypeExact, c.handlers.HandleAdmins)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/addadmin", bot.MatchTypePrefix, c.handlers.HandleAddAdmin)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/removeadmin", bot.MatchTypePrefix, c.handlers.HandleRemoveAdmin)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "barbers", Description: "💈 Записаться к мастеру"},
		{Command: "mybookings", Description: "📅 Мои записи"},
		{Command: "feedback", Description: "⭐️ Оставить отзыв"},
		{Command: "phone", Description: "📱 Оставить номер телефона"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// Start запускает long polling и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot...")
	go c.sweepStates(ctx, state.DefaultTTL)
	c.bot.Start(ctx)
}

// sweepStates периодически забывает брошенные диалоги
func (c *BotController) sweepStates(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := c.stateManager.Sweep(); removed > 0 {
				c.logger.Debug("Expired dialogs removed", zap.Int("count", removed))
			}
		}
	}
}
