package model

import "time"

// Cancellation запись журнала отмен
type Cancellation struct {
	ID        int64     `json:"id"`
	BookingID int64     `json:"booking_id"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
