package handlers

import (
	"context"

	"github.com/Freeeeeet/salon_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/salon_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireUser проверяет что пользователь зарегистрирован
// Возвращает user и true если OK, nil и false если нет
func (h *Handlers) requireUser(ctx context.Context, b *bot.Bot, update *models.Update) (*model.User, bool) {
	if update.Message == nil || update.Message.From == nil {
		return nil, false
	}

	telegramID := update.Message.From.ID
	user, err := h.userService.GetByTelegramID(ctx, telegramID)
	if err != nil {
		h.fail(ctx, b, update.Message.Chat.ID, "get_user", err)
		return nil, false
	}

	if user == nil {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Пользователь не найден. Используйте /start для регистрации.")
		return nil, false
	}

	return user, true
}

// requireAdmin пропускает только администраторов; остальным отвечает как на неизвестную команду
func (h *Handlers) requireAdmin(ctx context.Context, b *bot.Bot, update *models.Update) bool {
	if update.Message == nil || update.Message.From == nil {
		return false
	}

	isAdmin, err := h.adminService.IsAdmin(ctx, update.Message.From.ID)
	if err != nil {
		h.fail(ctx, b, update.Message.Chat.ID, "check_admin", err)
		return false
	}
	if !isAdmin {
		h.log(ctx).Warn("Admin command from non-admin",
			zap.Int64("telegram_id", update.Message.From.ID),
			zap.String("text", update.Message.Text),
		)
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Команда доступна только администраторам.")
		return false
	}

	return true
}

// log логгер текущего обновления (с request_id)
func (h *Handlers) log(ctx context.Context) *zap.Logger {
	return common.LoggerFrom(ctx, h.logger)
}
