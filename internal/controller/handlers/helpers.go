package handlers

import (
	"context"
	"errors"

	"github.com/Freeeeeet/salon_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/salon_bot/internal/metrics"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// sendMessage отправляет HTML сообщение и логирует если не удалось.
// Если пользователь заблокировал бота, он помечается в базе.
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string, keyboard ...*models.InlineKeyboardMarkup) {
	var markup models.ReplyMarkup
	if len(keyboard) > 0 && keyboard[0] != nil {
		markup = keyboard[0]
	}
	h.send(ctx, b, chatID, text, markup)
}

// send отправляет сообщение с любой разметкой: inline, reply клавиатура или её удаление
func (h *Handlers) send(ctx context.Context, b *bot.Bot, chatID int64, text string, markup models.ReplyMarkup) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
	if err == nil {
		return
	}

	h.log(ctx).Error("Failed to send message",
		zap.Int64("chat_id", chatID),
		zap.Error(err),
	)

	if errors.Is(err, bot.ErrorForbidden) {
		h.markBlocked(ctx, chatID)
	}
}

// markBlocked в личном чате chat_id совпадает с telegram_id
func (h *Handlers) markBlocked(ctx context.Context, telegramID int64) {
	user, err := h.userService.GetByTelegramID(ctx, telegramID)
	if err != nil || user == nil {
		return
	}
	if err := h.userService.Block(ctx, user.ID); err != nil {
		h.log(ctx).Error("Failed to mark user blocked", zap.Int64("user_id", user.ID), zap.Error(err))
	}
}

// fail отвечает на ошибку: доменные ошибки пользователь видит текстом, остальные - общим извинением
func (h *Handlers) fail(ctx context.Context, b *bot.Bot, chatID int64, operation string, err error) {
	if common.IsExpected(err) {
		h.log(ctx).Info("Command rejected", zap.String("operation", operation), zap.Error(err))
	} else {
		metrics.HandlerErrors.WithLabelValues(operation).Inc()
		h.log(ctx).Error("Command failed", zap.String("operation", operation), zap.Error(err))
	}

	h.sendMessage(ctx, b, chatID, common.ErrorMessage(err))
}

// notifyClient пишет клиенту о его записи; отписавшимся и заблокировавшим бота не пишем
func (h *Handlers) notifyClient(ctx context.Context, b *bot.Bot, userID int64, text string) {
	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		h.log(ctx).Warn("Failed to load client for notification", zap.Int64("user_id", userID), zap.Error(err))
		return
	}
	if user == nil || !user.Reachable() {
		return
	}

	h.sendMessage(ctx, b, user.TelegramID, text)
}

// notifyAdmin шлёт сообщение настроенному администратору, если он задан
func (h *Handlers) notifyAdmin(ctx context.Context, b *bot.Bot, text string) {
	chatID := h.adminService.NotificationChatID()
	if chatID == 0 {
		return
	}

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}); err != nil {
		h.log(ctx).Warn("Failed to notify admin", zap.Int64("admin_chat_id", chatID), zap.Error(err))
	}
}
