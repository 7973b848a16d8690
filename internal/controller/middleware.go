package controller

import (
	"context"
	"time"

	"github.com/Freeeeeet/salon_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/salon_bot/internal/metrics"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UpdateMiddleware выдаёт каждому обновлению request_id, кладёт логгер с ним в контекст,
// считает обновления в Prometheus и превращает панику обработчика в извинение пользователю.
func UpdateMiddleware(logger *zap.Logger) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			kind := updateType(update)
			reqLogger := logger.With(
				zap.String("request_id", uuid.NewString()),
				zap.Int64("update_id", update.ID),
				zap.String("update_type", kind),
			)

			start := time.Now()
			metrics.UpdatesTotal.WithLabelValues(kind).Inc()

			defer func() {
				metrics.UpdateDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

				if p := recover(); p != nil {
					metrics.HandlerErrors.WithLabelValues("panic").Inc()
					reqLogger.Error("Handler panicked", zap.Any("panic", p), zap.Stack("stack"))
					apologize(ctx, b, update, reqLogger)
				}
			}()

			next(common.WithLogger(ctx, reqLogger), b, update)
		}
	}
}

// apologize отправляет общее извинение в чат обновления
func apologize(ctx context.Context, b *bot.Bot, update *models.Update, logger *zap.Logger) {
	chatID := chatIDOf(update)
	if chatID == 0 || b == nil {
		return
	}

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   common.GenericApology,
	}); err != nil {
		logger.Error("Failed to send apology", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// updateType метка типа обновления для метрик
func updateType(update *models.Update) string {
	switch {
	case update == nil:
		return "unknown"
	case update.CallbackQuery != nil:
		return "callback"
	case update.Message != nil && update.Message.Text != "" && update.Message.Text[0] == '/':
		return "command"
	case update.Message != nil:
		return "message"
	default:
		return "other"
	}
}

// chatIDOf чат, в который можно ответить на обновление (0 - некуда)
func chatIDOf(update *models.Update) int64 {
	switch {
	case update == nil:
		return 0
	case update.Message != nil:
		return update.Message.Chat.ID
	case update.CallbackQuery != nil:
		if msg := common.GetMessageFromCallback(update.CallbackQuery); msg != nil {
			return msg.Chat.ID
		}
		return update.CallbackQuery.From.ID
	default:
		return 0
	}
}
