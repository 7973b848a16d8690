package model

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"   // Ожидает подтверждения
	BookingStatusConfirmed BookingStatus = "confirmed" // Подтверждено
	BookingStatusCompleted BookingStatus = "completed" // Завершено
	BookingStatusCancelled BookingStatus = "cancelled" // Отменено
)

// Valid проверяет что статус известен
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// DateLayout формат даты записи
const DateLayout = "2006-01-02"

type Booking struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"user_id"`
	BarberID  int64         `json:"barber_id"`
	ServiceID *int64        `json:"service_id"`
	Date      time.Time     `json:"booking_date"` // только дата, время суток = 00:00
	Time      string        `json:"booking_time"` // "15:04"
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`

	// Дополнительные поля для удобства (не из БД)
	Barber *Barber `json:"barber,omitempty"`
}

// IsActive занимает ли запись слот
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// DateString возвращает дату в формате YYYY-MM-DD
func (b *Booking) DateString() string {
	return b.Date.Format(DateLayout)
}
