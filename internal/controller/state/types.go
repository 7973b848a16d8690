package state

import "time"

// UserState текущий шаг диалога пользователя
type UserState string

const (
	StateNone UserState = "" // Нет активного диалога

	// Клиент отменяет запись и пишет причину
	StateCancelReason UserState = "cancel_reason"
)

// Ключи временных данных диалога
const (
	KeyBookingID = "booking_id"
)

// DefaultTTL через сколько брошенный диалог забывается
const DefaultTTL = 30 * time.Minute

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State     UserState
	Data      map[string]interface{}
	UpdatedAt time.Time
}
