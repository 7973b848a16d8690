package model

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Feedback struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	BookingID int64     `json:"booking_id"`
	Rating    int       `json:"rating"` // 1-5
	Comments  string    `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
}
