package model

import "time"

// WorkingHours рабочее окно мастера в конкретный день недели
type WorkingHours struct {
	ID         int64     `json:"id"`
	BarberID   int64     `json:"barber_id"`
	DayOfWeek  int       `json:"day_of_week"` // 0 = Sunday, 6 = Saturday
	StartTime  string    `json:"start_time"`  // "15:04"
	EndTime    string    `json:"end_time"`
	BreakStart *string   `json:"break_start"`
	BreakEnd   *string   `json:"break_end"`
	CreatedAt  time.Time `json:"created_at"`
}

// HasBreak проверяет задан ли перерыв
func (w *WorkingHours) HasBreak() bool {
	return w.BreakStart != nil && w.BreakEnd != nil && *w.BreakStart != "" && *w.BreakEnd != ""
}
