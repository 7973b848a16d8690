package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/salon_bot/internal/app"
	"github.com/Freeeeeet/salon_bot/internal/config"
	"github.com/Freeeeeet/salon_bot/internal/controller"
	"github.com/Freeeeeet/salon_bot/internal/controller/state"
	"github.com/Freeeeeet/salon_bot/internal/metrics"
	"github.com/Freeeeeet/salon_bot/internal/repository"
	"github.com/Freeeeeet/salon_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// completionInterval как часто прошедшие записи переводятся в completed
const completionInterval = 15 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Sugar().Infow("Starting salon bot",
		"environment", cfg.Environment,
		"slot_step", cfg.SlotStep.String(),
		"days_ahead", cfg.BookingDaysAhead)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}
	logger.Info("Bot stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}

	migrator, err := app.NewMigrator(pool, logger)
	if err != nil {
		return err
	}
	if err := migrator.EnsureSchema(ctx); err != nil {
		return err
	}
	if version, err := migrator.Version(ctx); err == nil {
		logger.Info("Database schema ready", zap.Int64("version", version))
	}
	_ = migrator.Close()

	// Репозитории
	userRepo := repository.NewUserRepository(pool)
	barberRepo := repository.NewBarberRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)
	hoursRepo := repository.NewWorkingHoursRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	cancellationRepo := repository.NewCancellationRepository(pool)
	feedbackRepo := repository.NewFeedbackRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)

	// Сервисы
	services := controller.Services{
		Users:    service.NewUserService(userRepo, logger),
		Barbers:  service.NewBarberService(barberRepo, serviceRepo, hoursRepo, logger),
		Bookings: service.NewBookingService(pool, barberRepo, serviceRepo, hoursRepo, bookingRepo, cancellationRepo, cfg.SlotStep, logger),
		Feedback: service.NewFeedbackService(bookingRepo, feedbackRepo, logger),
		Admins:   service.NewAdminService(cfg.AdminTelegramID, userRepo, adminRepo, logger),
	}

	ctrl := controller.NewBotController(services, state.NewManager(state.DefaultTTL), cfg.BookingDaysAhead, logger)

	b, err := bot.New(cfg.TelegramToken, ctrl.Options()...)
	if err != nil {
		return err
	}

	if err := ctrl.RegisterHandlers(ctx, b); err != nil {
		// без меню команд бот всё равно работает
		logger.Warn("Bot commands menu not set", zap.Error(err))
	}

	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr, logger); err != nil {
				logger.Error("Metrics server failed", zap.Error(err))
			}
		}()
	}

	scheduler := app.NewScheduler(services.Bookings, completionInterval, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	ctrl.Start(ctx)
	return nil
}
