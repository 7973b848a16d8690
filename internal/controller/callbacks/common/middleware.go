package common

import (
	"context"

	"github.com/Freeeeeet/salon_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/salon_bot/internal/metrics"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// WithUser создаёт HandlerContext и загружает пользователя.
// При ошибке сам отвечает пользователю и handler не вызывается.
func WithUser(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.LoadUser(); err != nil {
		HandleError(hc, err, "load_user")
		return
	}

	handler(hc)
}

// HandleError логирует ошибку и отвечает пользователю.
// Доменные ошибки превращаются в понятный текст, остальные в общее извинение.
func HandleError(hc *HandlerContext, err error, operation string) {
	if IsExpected(err) {
		hc.Logger.Info("Operation rejected",
			zap.String("operation", operation),
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
	} else {
		metrics.HandlerErrors.WithLabelValues(operation).Inc()
		hc.Logger.Error("Operation failed",
			zap.String("operation", operation),
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
	}
	hc.AnswerAlert(ErrorMessage(err))
}
