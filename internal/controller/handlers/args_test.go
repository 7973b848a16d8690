package handlers

import (
	"testing"

	"github.com/Freeeeeet/salon_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFeedbackArgs(t *testing.T) {
	args, err := ParseFeedbackArgs("/feedback 12 5 Отличная   стрижка!")
	require.NoError(t, err)
	assert.Equal(t, int64(12), args.BookingID)
	assert.Equal(t, 5, args.Rating)
	assert.Equal(t, "Отличная   стрижка!", args.Comment)

	args, err = ParseFeedbackArgs("/feedback@salon_bot 3 4")
	require.NoError(t, err)
	assert.Equal(t, "", args.Comment)

	// диапазон оценки проверяет сервис
	args, err = ParseFeedbackArgs("/feedback 3 9")
	require.NoError(t, err)
	assert.Equal(t, 9, args.Rating)

	for _, text := range []string{"/feedback", "/feedback 3", "/feedback x 5", "/feedback 3 five"} {
		_, err := ParseFeedbackArgs(text)
		assert.ErrorIs(t, err, ErrUsage, text)
	}
}

func TestParseBarberArgs(t *testing.T) {
	args, err := ParseBarberArgs("/addbarber +998901234567 Rustam Karimov")
	require.NoError(t, err)
	assert.Equal(t, "+998901234567", args.Phone)
	assert.Equal(t, "Rustam Karimov", args.Name)

	for _, text := range []string{"/addbarber", "/addbarber +998901234567", "/addbarber phone Rustam", "/addbarber +9989012345678901 Rustam"} {
		_, err := ParseBarberArgs(text)
		assert.ErrorIs(t, err, ErrUsage, text)
	}
}

func TestParseHoursArgs(t *testing.T) {
	args, err := ParseHoursArgs("/sethours 4 1 10:00-19:00 13:00-14:00")
	require.NoError(t, err)
	assert.Equal(t, int64(4), args.BarberID)
	assert.Equal(t, 1, args.DayOfWeek)
	assert.Equal(t, "10:00", args.Start)
	assert.Equal(t, "19:00", args.End)
	require.NotNil(t, args.BreakStart)
	assert.Equal(t, "13:00", *args.BreakStart)
	assert.Equal(t, "14:00", *args.BreakEnd)

	args, err = ParseHoursArgs("/sethours 4 0 09:00-12:00")
	require.NoError(t, err)
	assert.Nil(t, args.BreakStart)
	assert.Nil(t, args.BreakEnd)

	for _, text := range []string{
		"/sethours 4 1",
		"/sethours 4 7 10:00-19:00",
		"/sethours 4 1 10:00",
		"/sethours 4 1 10:00- ",
		"/sethours x 1 10:00-19:00",
		"/sethours 4 1 10:00-19:00 13:00",
	} {
		_, err := ParseHoursArgs(text)
		assert.ErrorIs(t, err, ErrUsage, text)
	}
}

func TestParseServiceArgs(t *testing.T) {
	args, err := ParseServiceArgs("/addservice 150000 45 Мужская стрижка")
	require.NoError(t, err)
	assert.Equal(t, int64(15000000), args.Price)
	assert.Equal(t, 45, args.DurationMinutes)
	assert.Equal(t, "Мужская стрижка", args.Name)

	for _, text := range []string{"/addservice 150000 45", "/addservice -1 45 X", "/addservice 100 0 X", "/addservice abc 45 X"} {
		_, err := ParseServiceArgs(text)
		assert.ErrorIs(t, err, ErrUsage, text)
	}
}

func TestParseIDs(t *testing.T) {
	a, b, err := ParseIDPair("/linkservice 2 9")
	require.NoError(t, err)
	assert.Equal(t, int64(2), a)
	assert.Equal(t, int64(9), b)

	_, _, err = ParseIDPair("/linkservice 2")
	assert.ErrorIs(t, err, ErrUsage)

	id, err := ParseSingleID("/confirm 17")
	require.NoError(t, err)
	assert.Equal(t, int64(17), id)

	_, err = ParseSingleID("/confirm 0")
	assert.ErrorIs(t, err, ErrUsage)

	day, err := ParseDayOffArgs("/dayoff 2 6")
	require.NoError(t, err)
	assert.Equal(t, DayOffArgs{BarberID: 2, DayOfWeek: 6}, day)

	admin, err := ParseAdminArgs("/addadmin 123456 Main manager")
	require.NoError(t, err)
	assert.Equal(t, AdminArgs{TelegramID: 123456, Name: "Main manager"}, admin)
}

func TestParseScheduleArgs(t *testing.T) {
	args, err := ParseScheduleArgs(`/setschedule 4 {"note": "closed on holidays"}`)
	require.NoError(t, err)
	assert.Equal(t, int64(4), args.BarberID)
	assert.Equal(t, `{"note": "closed on holidays"}`, args.Schedule)

	for _, text := range []string{"/setschedule", "/setschedule 4", "/setschedule x {}", "/setschedule -1 {}"} {
		_, err := ParseScheduleArgs(text)
		assert.ErrorIs(t, err, ErrUsage, text)
	}
}

func TestStatusFromCommand(t *testing.T) {
	assert.Equal(t, model.BookingStatusCompleted, statusFromCommand("/complete"))
	assert.Equal(t, model.BookingStatusConfirmed, statusFromCommand("/confirm"))
}
