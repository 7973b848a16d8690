package common

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// AnswerCallback гасит "часики" на кнопке; text показывается всплывающей подсказкой
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	answer(ctx, b, callbackID, text, false)
}

// AnswerCallbackAlert как AnswerCallback, но текст показывается окном с кнопкой OK
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	answer(ctx, b, callbackID, text, true)
}

func answer(ctx context.Context, b *bot.Bot, callbackID, text string, alert bool) {
	_, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       alert,
	})
	if err != nil {
		// кнопка старше 15 минут или уже отвечена - пользователю это не важно
		LoggerFrom(ctx, zap.NewNop()).Debug("Callback answer failed",
			zap.String("callback_id", callbackID),
			zap.Error(err),
		)
	}
}

// GetMessageFromCallback сообщение с кнопкой; nil, если оно недоступно (слишком старое)
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	return callback.Message.Message
}
