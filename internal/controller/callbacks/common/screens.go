package common

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/salon_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/salon_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/salon_bot/internal/model"
	"github.com/go-telegram/bot/models"
)

// Экраны бота: чистые функции, которые собирают текст и клавиатуру

// BarbersScreen список мастеров с пагинацией
func BarbersScreen(barbers []*model.Barber, page int) (string, *models.InlineKeyboardMarkup) {
	if len(barbers) == 0 {
		return "💈 Мастера пока не добавлены. Загляните позже.", nil
	}

	start, end, pages, current := keyboard.Page(len(barbers), page)

	kb := keyboard.NewBuilder()
	for _, barber := range barbers[start:end] {
		kb.Row(keyboard.Button("💈 "+barber.FullName, BarberData(barber.ID)))
	}
	kb.AddPagination(PrefixBarbers, current, pages)

	return "💈 <b>Выберите мастера:</b>", kb.Build()
}

// ServicesScreen услуги мастера; услугу можно не выбирать
func ServicesScreen(barber *model.Barber, services []*model.Service) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder()
	for _, svc := range services {
		kb.Row(keyboard.Button("✂️ "+formatting.FormatService(svc), ServiceData(barber.ID, svc.ID)))
	}
	kb.Row(keyboard.Button("Без выбора услуги", ServiceData(barber.ID, 0)))
	kb.Row(keyboard.Button("⬅️ К мастерам", BarbersPageData(0)))

	return fmt.Sprintf("💈 <b>%s</b>\n\n✂️ Выберите услугу:", html.EscapeString(barber.FullName)), kb.Build()
}

// DaysScreen дни, на которые у мастера есть график.
// service nil - запись без услуги; backToServices возвращает к выбору услуги вместо списка мастеров.
func DaysScreen(barber *model.Barber, service *model.Service, days []time.Time, backToServices bool) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "💈 <b>%s</b>\n", html.EscapeString(barber.FullName))

	var serviceID int64
	if service != nil {
		serviceID = service.ID
		fmt.Fprintf(&sb, "✂️ %s\n", html.EscapeString(formatting.FormatService(service)))
	}

	kb := keyboard.NewBuilder()
	if len(days) == 0 {
		sb.WriteString("\n😔 В ближайшие дни мастер не принимает.")
	} else {
		sb.WriteString("\n📅 Выберите день:")
		buttons := make([]models.InlineKeyboardButton, 0, len(days))
		for _, day := range days {
			buttons = append(buttons, keyboard.Button(formatting.FormatDayButton(day), DayData(barber.ID, serviceID, day)))
		}
		kb.Grid(buttons, 3)
	}

	if backToServices {
		kb.Row(keyboard.Button("⬅️ К услугам", BarberData(barber.ID)))
	} else {
		kb.Row(keyboard.Button("⬅️ К мастерам", BarbersPageData(0)))
	}

	return sb.String(), kb.Build()
}

// TimesScreen свободное время мастера на дату
func TimesScreen(barber *model.Barber, serviceID int64, date time.Time, times []string) (string, *models.InlineKeyboardMarkup) {
	header := fmt.Sprintf("💈 <b>%s</b>\n📅 %s, %s\n\n",
		html.EscapeString(barber.FullName),
		formatting.GetWeekdayName(int(date.Weekday())),
		formatting.FormatDate(date),
	)

	kb := keyboard.NewBuilder()
	text := header + "🕐 Выберите время:"
	if len(times) == 0 {
		text = header + "😔 На этот день свободного времени нет."
	} else {
		buttons := make([]models.InlineKeyboardButton, 0, len(times))
		for _, clock := range times {
			buttons = append(buttons, keyboard.Button(clock, BookingData(barber.ID, serviceID, date, clock)))
		}
		kb.Grid(buttons, 4)
	}
	kb.Row(keyboard.Button("⬅️ К дням", ServiceData(barber.ID, serviceID)))

	return text, kb.Build()
}

// BookedScreen подтверждение созданной записи
func BookedScreen(booking *model.Booking) (string, *models.InlineKeyboardMarkup) {
	barberName := ""
	if booking.Barber != nil {
		barberName = html.EscapeString(booking.Barber.FullName)
	}

	text := fmt.Sprintf(
		"✅ <b>Вы записаны!</b>\n\n"+
			"📝 Запись #%d\n"+
			"💈 Мастер: %s\n"+
			"📅 %s в %s\n\n"+
			"Все записи: /mybookings",
		booking.ID,
		barberName,
		formatting.FormatDate(booking.Date),
		booking.Time,
	)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("❌ Отменить запись", CancelData(booking.ID))).
		Build()

	return text, kb
}

// MyBookingsScreen записи клиента; активные можно отменить
func MyBookingsScreen(bookings []*model.Booking) (string, *models.InlineKeyboardMarkup) {
	if len(bookings) == 0 {
		return "📅 У вас пока нет записей.\n\nЗаписаться: /barbers", nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 <b>Ваши записи</b> (%d %s):\n", len(bookings), formatting.PluralizeBookings(len(bookings)))

	kb := keyboard.NewBuilder()
	for _, booking := range bookings {
		sb.WriteString("\n")
		sb.WriteString(formatting.FormatBooking(booking))
		sb.WriteString("\n")

		if booking.IsActive() {
			kb.Row(keyboard.Button(
				fmt.Sprintf("❌ Отменить #%d (%s %s)", booking.ID, booking.Date.Format("02.01"), booking.Time),
				CancelData(booking.ID),
			))
		}
	}

	if kb.Len() == 0 {
		return sb.String(), nil
	}
	return sb.String(), kb.Build()
}

// CancelReasonScreen просит причину отмены
func CancelReasonScreen(booking *model.Booking) (string, *models.InlineKeyboardMarkup) {
	text := fmt.Sprintf(
		"❓ Отмена записи #%d на %s в %s\n\n"+
			"Напишите причину отмены одним сообщением или нажмите кнопку ниже.",
		booking.ID,
		formatting.FormatDate(booking.Date),
		booking.Time,
	)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("Отменить без причины", CancelSkipData(booking.ID))).
		Build()

	return text, kb
}
