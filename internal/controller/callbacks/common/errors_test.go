package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Freeeeeet/salon_bot/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	wrapped := fmt.Errorf("book: %w", service.ErrSlotTaken)
	assert.Equal(t, "❌ Это время уже занято. Выберите другое.", ErrorMessage(wrapped))
	assert.True(t, IsExpected(wrapped))

	boom := errors.New("connection reset by peer")
	assert.Equal(t, GenericApology, ErrorMessage(boom))
	assert.False(t, IsExpected(boom))
}

func TestErrorMessage_DomainErrorsAreExpected(t *testing.T) {
	for _, err := range []error{
		service.ErrUserNotFound, service.ErrBarberNotFound, service.ErrServiceNotFound,
		service.ErrBookingNotFound, service.ErrNotBookingOwner, service.ErrSlotTaken,
		service.ErrOutsideWorkingHours, service.ErrSlotInPast, service.ErrAlreadyCancelled,
		service.ErrBookingCancelled, service.ErrServiceNotOffered, service.ErrInvalidRating,
		service.ErrInvalidHours, service.ErrDuplicatePhone, service.ErrAlreadyAdmin,
		service.ErrAdminNotFound, service.ErrInvalidSchedule, service.ErrInvalidPhone,
	} {
		assert.True(t, IsExpected(fmt.Errorf("op: %w", err)), err.Error())
	}
}

func TestIsMessageNotModifiedError(t *testing.T) {
	assert.False(t, IsMessageNotModifiedError(nil))
	assert.True(t, IsMessageNotModifiedError(errors.New("bad request, Bad Request: message is not modified: specified new message content")))
	assert.False(t, IsMessageNotModifiedError(errors.New("bad request, chat not found")))
}
