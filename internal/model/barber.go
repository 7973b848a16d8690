package model

import "time"

// EmptyWorkSchedule значение work_schedule по умолчанию
const EmptyWorkSchedule = "{}"

type Barber struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"full_name"`
	PhoneNumber  *string   `json:"phone_number"`
	WorkSchedule string    `json:"work_schedule"` // произвольный JSON, в логике доступности не участвует
	CreatedAt    time.Time `json:"created_at"`
}
