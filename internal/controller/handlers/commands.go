package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/salon_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/salon_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/salon_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const contactButtonText = "📱 Отправить номер"

const helpText = "📚 <b>Справка по командам</b>\n\n" +
	"/start - Начать работу с ботом\n" +
	"/barbers - Выбрать мастера и записаться\n" +
	"/mybookings - Мои записи и отмена\n" +
	"/feedback &lt;номер записи&gt; &lt;1-5&gt; [комментарий] - Оставить отзыв\n" +
	"/phone - Оставить номер телефона\n" +
	"/stop - Не присылать уведомления о записях\n" +
	"/help - Показать эту справку"

const adminHelpText = "\n\n🛠 <b>Администратору</b>\n" +
	"/admin - Мастера и услуги с ID\n" +
	"/addbarber &lt;телефон&gt; &lt;имя&gt;\n" +
	"/sethours &lt;id мастера&gt; &lt;день 0-6&gt; &lt;ЧЧ:ММ-ЧЧ:ММ&gt; [перерыв]\n" +
	"/dayoff &lt;id мастера&gt; &lt;день 0-6&gt;\n" +
	"/addservice &lt;цена&gt; &lt;минуты&gt; &lt;название&gt;\n" +
	"/linkservice &lt;id мастера&gt; &lt;id услуги&gt;\n" +
	"/bookings &lt;id мастера&gt;\n" +
	"/confirm &lt;номер записи&gt;, /complete &lt;номер записи&gt;\n" +
	"/setschedule &lt;id мастера&gt; &lt;JSON&gt; - описание графика\n" +
	"/users - Клиенты\n" +
	"/admins, /addadmin &lt;telegram id&gt; [имя], /removeadmin &lt;id&gt;"

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	from := update.Message.From
	fullName := strings.TrimSpace(from.FirstName + " " + from.LastName)

	user, created, err := h.userService.RegisterUser(ctx, from.ID, from.Username, fullName, from.LanguageCode)
	if err != nil {
		h.fail(ctx, b, update.Message.Chat.ID, "register_user", err)
		return
	}

	if !created && !user.Reachable() {
		// вернулся после /stop или после блокировки бота
		if err := h.userService.Activate(ctx, user.ID); err != nil {
			h.log(ctx).Warn("Failed to reactivate user", zap.Int64("user_id", user.ID), zap.Error(err))
		}
	}

	if created {
		username := "-"
		if from.Username != "" {
			username = "@" + from.Username
		}
		h.notifyAdmin(ctx, b, fmt.Sprintf(
			"🆕 <b>Новый пользователь</b>\n\n👤 %s\n🔗 %s\n🆔 <code>%d</code>",
			html.EscapeString(fullName),
			html.EscapeString(username),
			from.ID,
		))
	}

	greeting := "👋 С возвращением"
	if created {
		greeting = "👋 Добро пожаловать"
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, fmt.Sprintf(
		"%s, %s!\n\n"+
			"Здесь можно записаться к мастеру салона.\n\n"+
			"/barbers - Выбрать мастера\n"+
			"/mybookings - Мои записи\n"+
			"/help - Справка",
		greeting,
		html.EscapeString(user.FullName),
	))
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	text := helpText
	if isAdmin, err := h.adminService.IsAdmin(ctx, update.Message.From.ID); err == nil && isAdmin {
		text += adminHelpText
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, text)
}

// HandleBarbers показывает список мастеров
func (h *Handlers) HandleBarbers(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	barbers, err := h.barberService.ListBarbers(ctx)
	if err != nil {
		h.fail(ctx, b, update.Message.Chat.ID, "list_barbers", err)
		return
	}

	text, kb := common.BarbersScreen(barbers, 0)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleMyBookings показывает записи клиента
func (h *Handlers) HandleMyBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	bookings, err := h.bookingService.UserBookings(ctx, user.ID)
	if err != nil {
		h.fail(ctx, b, update.Message.Chat.ID, "user_bookings", err)
		return
	}

	text, kb := common.MyBookingsScreen(bookings)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleFeedback обрабатывает /feedback <booking_id> <rating> [comment]
func (h *Handlers) HandleFeedback(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	args, err := ParseFeedbackArgs(update.Message.Text)
	if err != nil {
		h.sendMessage(ctx, b, chatID, html.EscapeString(usageFeedback))
		return
	}

	if _, err := h.feedbackService.LeaveFeedback(ctx, user.ID, args.BookingID, args.Rating, args.Comment); err != nil {
		h.fail(ctx, b, chatID, "leave_feedback", err)
		return
	}

	h.sendMessage(ctx, b, chatID, "🙏 Спасибо за отзыв!")
	h.notifyAdmin(ctx, b, fmt.Sprintf(
		"⭐️ Отзыв к записи #%d: %d/5\n%s",
		args.BookingID,
		args.Rating,
		html.EscapeString(args.Comment),
	))
}

// HandleStop /stop отключает уведомления клиенту; /start включает их обратно
func (h *Handlers) HandleStop(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	if err := h.userService.Deactivate(ctx, user.ID); err != nil {
		h.fail(ctx, b, update.Message.Chat.ID, "deactivate_user", err)
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"🔕 Уведомления о записях отключены. Записи сохранены.\n\nВключить снова: /start")
}

// HandlePhone /phone просит поделиться номером телефона
func (h *Handlers) HandlePhone(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireUser(ctx, b, update); !ok {
		return
	}

	h.send(ctx, b, update.Message.Chat.ID,
		"📱 Нажмите кнопку ниже, чтобы отправить номер. Мастер сможет связаться с вами, если визит перенесётся.",
		keyboard.ContactRequest(contactButtonText))
}

// handleContact сохраняет номер из присланного контакта
func (h *Handlers) handleContact(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	contact := update.Message.Contact

	if contact.UserID != update.Message.From.ID {
		h.send(ctx, b, chatID, "❌ Отправьте свой номер кнопкой ниже.", keyboard.ContactRequest(contactButtonText))
		return
	}

	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	phone, err := h.userService.UpdatePhone(ctx, user.ID, contact.PhoneNumber)
	if err != nil {
		h.fail(ctx, b, chatID, "update_phone", err)
		return
	}

	h.send(ctx, b, chatID, fmt.Sprintf("✅ Номер сохранён: %s", html.EscapeString(phone)), keyboard.Remove())
}

// HandleCancel /cancel прерывает текущий диалог
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Нет активных операций для отмены.")
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Операция отменена.")
}

// HandleTextMessage обрабатывает сообщения, не попавшие ни в одну команду
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	if update.Message.Contact != nil {
		h.handleContact(ctx, b, update)
		return
	}
	if update.Message.Text == "" {
		return
	}

	if strings.HasPrefix(update.Message.Text, "/") {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "🤔 Неизвестная команда. Список команд: /help")
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	switch currentState {
	case state.StateCancelReason:
		h.handleCancelReason(ctx, b, update)
	case state.StateNone:
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Чтобы записаться, выберите мастера: /barbers")
	default:
		h.log(ctx).Warn("Unknown state", zap.String("state", string(currentState)))
		h.stateManager.ClearState(telegramID)
	}
}

// handleCancelReason текст сообщения - причина отмены записи
func (h *Handlers) handleCancelReason(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	raw, ok := h.stateManager.GetData(telegramID, state.KeyBookingID)
	h.stateManager.ClearState(telegramID)
	bookingID, isID := raw.(int64)
	if !ok || !isID {
		h.sendMessage(ctx, b, chatID, "❌ Не удалось найти запись. Откройте /mybookings ещё раз.")
		return
	}

	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	reason := strings.TrimSpace(update.Message.Text)
	if err := h.bookingService.CancelByUser(ctx, bookingID, user.ID, reason); err != nil {
		h.fail(ctx, b, chatID, "cancel_booking", err)
		return
	}

	h.sendMessage(ctx, b, chatID, "✅ Запись отменена.\n\nЗаписаться снова: /barbers")
	h.notifyAdmin(ctx, b, fmt.Sprintf(
		"❌ Клиент отменил запись #%d\nПричина: %s",
		bookingID,
		html.EscapeString(reason),
	))
}
