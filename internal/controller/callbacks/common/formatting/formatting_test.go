package formatting

import (
	"testing"
	"time"

	"github.com/Freeeeeet/salon_bot/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	cases := map[int64]string{
		0:          "0 сум",
		5000:       "50 сум",
		15000000:   "150 000 сум",
		123456789:  "1 234 567.89 сум",
		100000000:  "1 000 000 сум",
		-250000:    "-2 500 сум",
		1000000050: "10 000 000.50 сум",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatPrice(in), "price %d", in)
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45 мин", FormatDuration(45))
	assert.Equal(t, "1 ч", FormatDuration(60))
	assert.Equal(t, "1 ч 30 мин", FormatDuration(90))
}

func TestPluralizeBookings(t *testing.T) {
	assert.Equal(t, "запись", PluralizeBookings(1))
	assert.Equal(t, "записи", PluralizeBookings(3))
	assert.Equal(t, "записей", PluralizeBookings(5))
	assert.Equal(t, "записей", PluralizeBookings(11))
	assert.Equal(t, "запись", PluralizeBookings(21))
	assert.Equal(t, "записи", PluralizeBookings(22))
}

func TestFormatBooking(t *testing.T) {
	booking := &model.Booking{
		ID:     12,
		Date:   time.Date(2030, 5, 13, 0, 0, 0, 0, time.Local),
		Time:   "10:30",
		Status: model.BookingStatusConfirmed,
		Barber: &model.Barber{FullName: "Rustam <Pro>"},
	}

	text := FormatBooking(booking)
	assert.Contains(t, text, "Запись #12")
	assert.Contains(t, text, "Rustam &lt;Pro&gt;")
	assert.Contains(t, text, "Понедельник, 13.05.2030 в 10:30")
	assert.Contains(t, text, "Подтверждена")
}

func TestFormatDayButton(t *testing.T) {
	assert.Equal(t, "Пн 13.05", FormatDayButton(time.Date(2030, 5, 13, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, "?", GetWeekdayShortName(7))
	assert.Equal(t, "❓", GetBookingStatusDisplay("lost").Emoji)
}
