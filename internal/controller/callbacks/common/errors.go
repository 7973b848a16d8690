package common

import (
	"errors"
	"strings"

	"github.com/Freeeeeet/salon_bot/internal/service"
)

// Ошибки слоя обработчиков
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

// GenericApology ответ на любую неожиданную ошибку
const GenericApology = "😔 Извините, что-то пошло не так. Попробуйте позже."

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, service.ErrUserNotFound):
		return "❌ Пользователь не найден. Используйте /start"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, service.ErrSlotTaken):
		return "❌ Это время уже занято. Выберите другое."
	case errors.Is(err, service.ErrSlotInPast):
		return "❌ Это время уже прошло. Выберите другое."
	case errors.Is(err, service.ErrOutsideWorkingHours):
		return "❌ Мастер в это время не работает"
	case errors.Is(err, service.ErrBarberNotFound):
		return "❌ Мастер не найден"
	case errors.Is(err, service.ErrServiceNotFound):
		return "❌ Услуга не найдена"
	case errors.Is(err, service.ErrBookingNotFound):
		return "❌ Запись не найдена"
	case errors.Is(err, service.ErrNotBookingOwner):
		return "❌ Это не ваша запись"
	case errors.Is(err, service.ErrAlreadyCancelled):
		return "ℹ️ Запись уже отменена"
	case errors.Is(err, service.ErrInvalidRating):
		return "❌ Оценка должна быть от 1 до 5"
	case errors.Is(err, service.ErrInvalidHours):
		return "❌ Неверный график работы"
	case errors.Is(err, service.ErrDuplicatePhone):
		return "❌ Мастер с таким телефоном уже есть"
	case errors.Is(err, service.ErrAlreadyAdmin):
		return "ℹ️ Пользователь уже администратор"
	case errors.Is(err, service.ErrBookingCancelled):
		return "❌ Запись отменена, её статус уже не меняется"
	case errors.Is(err, service.ErrServiceNotOffered):
		return "❌ Мастер не оказывает эту услугу"
	case errors.Is(err, service.ErrAdminNotFound):
		return "❌ Администратор не найден. Список: /admins"
	case errors.Is(err, service.ErrInvalidSchedule):
		return "❌ Описание графика должно быть корректным JSON"
	case errors.Is(err, service.ErrInvalidPhone):
		return "❌ Не удалось распознать номер телефона"
	default:
		return GenericApology
	}
}

// IsExpected отличает доменные ошибки (ответ пользователю) от сбоев (лог уровня error)
func IsExpected(err error) bool {
	return ErrorMessage(err) != GenericApology
}

// IsMessageNotModifiedError ошибка Telegram при редактировании сообщения тем же текстом
func IsMessageNotModifiedError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
