package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/salon_bot/internal/controller/callbacks/common/formatting"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleAdmin /admin - мастера и услуги с идентификаторами для остальных команд
func (h *Handlers) HandleAdmin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	barbers, err := h.barberService.ListBarbers(ctx)
	if err != nil {
		h.fail(ctx, b, chatID, "list_barbers", err)
		return
	}
	services, err := h.barberService.ListServices(ctx)
	if err != nil {
		h.fail(ctx, b, chatID, "list_services", err)
		return
	}

	var sb strings.Builder
	sb.WriteString("💈 <b>Мастера</b>\n")
	if len(barbers) == 0 {
		sb.WriteString("пока нет\n")
	}
	for _, barber := range barbers {
		phone := ""
		if barber.PhoneNumber != nil {
			phone = " " + *barber.PhoneNumber
		}
		fmt.Fprintf(&sb, "<code>%d</code> %s%s\n", barber.ID, html.EscapeString(barber.FullName), html.EscapeString(phone))
	}

	sb.WriteString("\n✂️ <b>Услуги</b>\n")
	if len(services) == 0 {
		sb.WriteString("пока нет\n")
	}
	for _, svc := range services {
		fmt.Fprintf(&sb, "<code>%d</code> %s\n", svc.ID, html.EscapeString(formatting.FormatService(svc)))
	}

	h.sendMessage(ctx, b, chatID, sb.String())
}

// HandleAddBarber /addbarber <phone> <name>
func (h *Handlers) HandleAddBarber(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	args, err := ParseBarberArgs(update.Message.Text)
	if err != nil {
		h.sendMessage(ctx, b, chatID, html.EscapeString(usageAddBarber))
		return
	}

	barber, err := h.barberService.CreateBarber(ctx, args.Name, args.Phone)
	if err != nil {
		h.fail(ctx, b, chatID, "create_barber", err)
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf(
		"✅ Мастер добавлен: <code>%d</code> %s\n\nЗадайте график: /sethours %d &lt;день&gt; 10:00-19:00",
		barber.ID, html.EscapeString(barber.FullName), barber.ID,
	))
}

// HandleSetHours /sethours <barber_id> <day> <start-end> [break]
func (h *Handlers) HandleSetHours(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	args, err := ParseHoursArgs(update.Message.Text)
	if err != nil {
		h.sendMessage(ctx, b, chatID, html.EscapeString(usageSetHours))
		return
	}

	wh, err := h.barberService.SetWorkingHours(ctx, args.BarberID, args.DayOfWeek, args.Start, args.End, args.BreakStart, args.BreakEnd)
	if err != nil {
		h.fail(ctx, b, chatID, "set_working_hours", err)
		return
	}

	text := fmt.Sprintf("✅ %s: %s-%s", formatting.GetWeekdayName(wh.DayOfWeek), wh.StartTime, wh.EndTime)
	if wh.HasBreak() {
		text += fmt.Sprintf(", перерыв %s-%s", *wh.BreakStart, *wh.BreakEnd)
	}
	h.sendMessage(ctx, b, chatID, text)
}

// HandleDayOff /dayoff <barber_id> <day>
func (h *Handlers) HandleDayOff(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	args, err := ParseDayOffArgs(update.Message.Text)
	if err != nil {
		h.sendMessage(ctx, b, chatID, html.EscapeString(usageDayOff))
		return
	}

	if err := h.barberService.RemoveWorkingDay(ctx, args.BarberID, args.DayOfWeek); err != nil {
		h.fail(ctx, b, chatID, "remove_working_day", err)
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ %s теперь выходной", formatting.GetWeekdayName(args.DayOfWeek)))
}

// HandleAddService /addservice <price> <minutes> <name>
func (h *Handlers) HandleAddService(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	args, err := ParseServiceArgs(update.Message.Text)
	if err != nil {
		h.sendMessage(ctx, b, chatID, html.EscapeString(usageAddService))
		return
	}

	svc, err := h.barberService.CreateService(ctx, args.Name, "", args.Price, args.DurationMinutes)
	if err != nil {
		h.fail(ctx, b, chatID, "create_service", err)
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf(
		"✅ Услуга добавлена: <code>%d</code> %s",
		svc.ID, html.EscapeString(formatting.FormatService(svc)),
	))
}

// HandleLinkService /linkservice <barber_id> <service_id>
func (h *Handlers) HandleLinkService(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	barberID, serviceID, err := ParseIDPair(update.Message.Text)
	if err != nil {
		h.sendMessage(ctx, b, chatID, html.EscapeString(usageLinkService))
		return
	}

	if err := h.barberService.LinkService(ctx, barberID, serviceID); err != nil {
		h.fail(ctx, b, chatID, "link_service", err)
		return
	}

	h.sendMessage(ctx, b, chatID, "✅ Услуга привязана к мастеру")
}

// HandleBarberBookings /bookings <barber_id>
func (h *Handlers) HandleBarberBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	barberID, err := ParseSingleID(update.Message.Text)
	if err != nil {
		h.sendMessage(ctx, b, chatID, html.EscapeString(usageBookings))
		return
	}

	bookings, err := h.bookingService.BarberBookings(ctx, barberID)
	if err != nil {
		h.fail(ctx, b, chatID, "barber_bookings", err)
		return
	}
	if len(bookings) == 0 {
		h.sendMessage(ctx, b, chatID, "📅 У мастера нет записей.")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 %d %s:\n", len(bookings), formatting.PluralizeBookings(len(bookings)))
	for _, booking := range bookings {
		sb.WriteString("\n")
		sb.WriteString(formatting.FormatBooking(booking))
		sb.WriteString("\n")
	}
	h.sendMessage(ctx, b, chatID, sb.String())
}

// HandleSetStatus /confirm <booking_id> и /complete <booking_id>
func (h *Handlers) HandleSetStatus(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	bookingID, err := ParseSingleID(update.Message.Text)
	if err != nil {
		h.sendMessage(ctx, b, chatID, html.EscapeString(usageConfirm))
		return
	}

	command, _, _ := strings.Cut(strings.Fields(update.Message.Text)[0], "@")
	status := statusFromCommand(command)

	if err := h.bookingService.UpdateStatus(ctx, bookingID, status); err != nil {
		h.fail(ctx, b, chatID, "update_status", err)
		return
	}

	display := formatting.GetBookingStatusDisplay(status)
	h.sendMessage(ctx, b, chatID, fmt.Sprintf("%s Запись #%d: %s", display.Emoji, bookingID, display.Text))

	booking, err := h.bookingService.GetByID(ctx, bookingID)
	if err != nil || booking == nil {
		return
	}
	h.notifyClient(ctx, b, booking.UserID, fmt.Sprintf(
		"%s Ваша запись #%d на %s в %s: %s",
		display.Emoji, booking.ID, formatting.FormatDate(booking.Date), booking.Time, strings.ToLower(display.Text),
	))
}

// HandleSetSchedule /setschedule <barber_id> <json> - свободное описание графика мастера
func (h *Handlers) HandleSetSchedule(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	args, err := ParseScheduleArgs(update.Message.Text)
	if err != nil {
		h.sendMessage(ctx, b, chatID, html.EscapeString(usageSchedule))
		return
	}

	if err := h.barberService.SetWorkSchedule(ctx, args.BarberID, args.Schedule); err != nil {
		h.fail(ctx, b, chatID, "set_work_schedule", err)
		return
	}

	h.sendMessage(ctx, b, chatID, "✅ Описание графика сохранено")
}

// HandleUsers /users - сколько клиентов и последние зарегистрированные
func (h *Handlers) HandleUsers(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	users, err := h.userService.ListUsers(ctx)
	if err != nil {
		h.fail(ctx, b, chatID, "list_users", err)
		return
	}

	h.sendMessage(ctx, b, chatID, formatUsers(users, usersShown))
}

// HandleAdmins /admins
func (h *Handlers) HandleAdmins(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	admins, err := h.adminService.ListAdmins(ctx)
	if err != nil {
		h.fail(ctx, b, chatID, "list_admins", err)
		return
	}
	if len(admins) == 0 {
		h.sendMessage(ctx, b, chatID, "🛠 Назначенных администраторов нет. Добавить: /addadmin")
		return
	}

	var sb strings.Builder
	sb.WriteString("🛠 <b>Администраторы</b>\n")
	for _, admin := range admins {
		telegramID := "?"
		if user, err := h.userService.GetByID(ctx, admin.UserID); err == nil && user != nil {
			telegramID = fmt.Sprintf("%d", user.TelegramID)
		}
		fmt.Fprintf(&sb, "<code>%d</code> %s (telegram %s)\n", admin.ID, html.EscapeString(admin.Name), telegramID)
	}
	sb.WriteString("\nСнять права: /removeadmin &lt;id&gt;")

	h.sendMessage(ctx, b, chatID, sb.String())
}

// HandleRemoveAdmin /removeadmin <admin_id>
func (h *Handlers) HandleRemoveAdmin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	adminID, err := ParseSingleID(update.Message.Text)
	if err != nil {
		h.sendMessage(ctx, b, chatID, html.EscapeString(usageRemoveAdmin))
		return
	}

	if err := h.adminService.RemoveAdmin(ctx, adminID); err != nil {
		h.fail(ctx, b, chatID, "remove_admin", err)
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ Администратор <code>%d</code> снят", adminID))
}

// HandleAddAdmin /addadmin <telegram_id> [name]
func (h *Handlers) HandleAddAdmin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	args, err := ParseAdminArgs(update.Message.Text)
	if err != nil {
		h.sendMessage(ctx, b, chatID, html.EscapeString(usageAddAdmin))
		return
	}

	if _, err := h.adminService.AddAdmin(ctx, args.TelegramID, args.Name, false); err != nil {
		h.fail(ctx, b, chatID, "add_admin", err)
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ Пользователь <code>%d</code> назначен администратором", args.TelegramID))
}
