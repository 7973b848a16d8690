package formatting

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/salon_bot/internal/model"
)

// FormatBooking карточка записи для списка /mybookings (HTML)
func FormatBooking(booking *model.Booking) string {
	display := GetBookingStatusDisplay(booking.Status)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s <b>Запись #%d</b>\n", display.Emoji, booking.ID)
	if booking.Barber != nil {
		fmt.Fprintf(&sb, "💈 Мастер: %s\n", html.EscapeString(booking.Barber.FullName))
	}
	fmt.Fprintf(&sb, "📅 %s, %s в %s\n",
		GetWeekdayName(int(booking.Date.Weekday())),
		FormatDate(booking.Date),
		booking.Time,
	)
	fmt.Fprintf(&sb, "📊 Статус: %s", display.Text)

	return sb.String()
}

// FormatService строка услуги: "Стрижка - 150 000 сум, 45 мин"
func FormatService(svc *model.Service) string {
	return fmt.Sprintf("%s - %s, %s", svc.Name, FormatPrice(svc.Price), FormatDuration(svc.DurationMinutes))
}
