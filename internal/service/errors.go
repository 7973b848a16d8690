package service

import "errors"

// Доменные ошибки. Обработчики бота сопоставляют их с сообщениями через errors.Is.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrBarberNotFound      = errors.New("barber not found")
	ErrServiceNotFound     = errors.New("service not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrNotBookingOwner     = errors.New("booking belongs to another user")
	ErrSlotTaken           = errors.New("slot is no longer available")
	ErrOutsideWorkingHours = errors.New("time is outside working hours")
	ErrSlotInPast          = errors.New("slot is in the past")
	ErrAlreadyCancelled    = errors.New("booking is already cancelled")
	ErrBookingCancelled    = errors.New("booking is cancelled")
	ErrServiceNotOffered   = errors.New("barber does not offer this service")
	ErrAdminNotFound       = errors.New("admin not found")
	ErrInvalidSchedule     = errors.New("work schedule must be valid JSON")
	ErrInvalidPhone        = errors.New("invalid phone number")
	ErrInvalidStatus       = errors.New("invalid booking status")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrInvalidHours        = errors.New("invalid working hours")
	ErrDuplicatePhone      = errors.New("phone number is already registered")
	ErrAlreadyAdmin        = errors.New("user is already an admin")
)
