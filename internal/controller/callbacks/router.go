package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/salon_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/salon_bot/internal/controller/callbacks/client"
	"github.com/Freeeeeet/salon_bot/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	common.LoggerFrom(ctx, h.Logger).Debug("Routing callback",
		zap.String("data", data),
		zap.Int64("telegram_id", callback.From.ID),
	)

	switch {
	case data == common.Noop:
		common.AnswerCallback(ctx, b, callback.ID, "")

	case strings.HasPrefix(data, common.PrefixBarbers):
		client.HandleBarbersPage(ctx, b, callback, h)
	case strings.HasPrefix(data, common.PrefixBarber):
		client.HandleBarber(ctx, b, callback, h)
	case strings.HasPrefix(data, common.PrefixService):
		client.HandleService(ctx, b, callback, h)
	case strings.HasPrefix(data, common.PrefixDay):
		client.HandleDay(ctx, b, callback, h)
	case strings.HasPrefix(data, common.PrefixBook):
		client.HandleBook(ctx, b, callback, h)
	case strings.HasPrefix(data, common.PrefixCancelSkip):
		client.HandleCancelSkip(ctx, b, callback, h)
	case strings.HasPrefix(data, common.PrefixCancel):
		client.HandleCancel(ctx, b, callback, h)

	default:
		common.LoggerFrom(ctx, h.Logger).Warn("Unknown callback data", zap.String("data", data))
		common.AnswerCallbackAlert(ctx, b, callback.ID, "❌ Неизвестная команда")
	}
}
