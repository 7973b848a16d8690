package model

import "time"

// Service услуга салона (стрижка, бритьё и т.д.)
type Service struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           int64     `json:"price"`            // в копейках/центах
	DurationMinutes int       `json:"duration_minutes"` // длительность в минутах
	CreatedAt       time.Time `json:"created_at"`
}

// BarberService связь мастера и услуги
type BarberService struct {
	ID        int64     `json:"id"`
	BarberID  int64     `json:"barber_id"`
	ServiceID int64     `json:"service_id"`
	CreatedAt time.Time `json:"created_at"`
}
