package model

import "time"

type User struct {
	ID          int64     `json:"id"`
	TelegramID  int64     `json:"telegram_id"`
	Username    string    `json:"username"`
	FullName    string    `json:"full_name"`
	PhoneNumber *string   `json:"phone_number"` // указатель - может быть nil
	Language    *string   `json:"language"`
	IsActive    bool      `json:"is_active"`
	IsBlocked   bool      `json:"is_blocked"`
	CreatedAt   time.Time `json:"created_at"`
}

// Reachable можно ли писать пользователю первым
func (u *User) Reachable() bool {
	return u.IsActive && !u.IsBlocked
}
