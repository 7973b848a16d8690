package keyboard

import "github.com/go-telegram/bot/models"

// ContactRequest reply клавиатура с одной кнопкой "поделиться телефоном"
func ContactRequest(text string) *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: text, RequestContact: true}},
		},
		OneTimeKeyboard: true,
		ResizeKeyboard:  true,
	}
}

// Remove убирает reply клавиатуру
func Remove() *models.ReplyKeyboardRemove {
	return &models.ReplyKeyboardRemove{RemoveKeyboard: true}
}
