package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Freeeeeet/salon_bot/internal/model"
)

// ErrUsage аргументы команды не разобраны; в ответ показывается подсказка
var ErrUsage = errors.New("invalid command arguments")

// Подсказки по аргументам команд
const (
	usageFeedback    = "Использование: /feedback <номер записи> <оценка 1-5> [комментарий]"
	usageAddBarber   = "Использование: /addbarber <телефон> <имя>"
	usageSetHours    = "Использование: /sethours <id мастера> <день 0-6, 0 - воскресенье> <ЧЧ:ММ-ЧЧ:ММ> [перерыв ЧЧ:ММ-ЧЧ:ММ]"
	usageDayOff      = "Использование: /dayoff <id мастера> <день 0-6>"
	usageAddService  = "Использование: /addservice <цена в сумах> <минуты> <название>"
	usageLinkService = "Использование: /linkservice <id мастера> <id услуги>"
	usageAddAdmin    = "Использование: /addadmin <telegram id> [имя]"
	usageConfirm     = "Использование: /confirm <номер записи>"
	usageBookings    = "Использование: /bookings <id мастера>"
	usageSchedule    = "Использование: /setschedule <id мастера> <JSON>"
	usageRemoveAdmin = "Использование: /removeadmin <id администратора из /admins>"
)

// splitCommand отделяет команду (вместе с @botname) от аргументов
func splitCommand(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	return fields[1:]
}

// restOf возвращает исходный текст начиная с аргумента n, с сохранением пробелов внутри
func restOf(text string, n int) string {
	rest := strings.TrimSpace(text)
	for i := 0; i <= n; i++ {
		idx := strings.IndexAny(rest, " \t\n")
		if idx < 0 {
			return ""
		}
		rest = strings.TrimSpace(rest[idx:])
	}
	return rest
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrUsage
	}
	return id, nil
}

// FeedbackArgs /feedback <booking_id> <rating> [comment]
type FeedbackArgs struct {
	BookingID int64
	Rating    int
	Comment   string
}

func ParseFeedbackArgs(text string) (FeedbackArgs, error) {
	args := splitCommand(text)
	if len(args) < 2 {
		return FeedbackArgs{}, ErrUsage
	}

	bookingID, err := parseID(args[0])
	if err != nil {
		return FeedbackArgs{}, err
	}
	rating, err := strconv.Atoi(args[1])
	if err != nil {
		return FeedbackArgs{}, ErrUsage
	}

	return FeedbackArgs{
		BookingID: bookingID,
		Rating:    rating,
		Comment:   restOf(text, 2),
	}, nil
}

// BarberArgs /addbarber <phone> <name>
type BarberArgs struct {
	Phone string
	Name  string
}

func ParseBarberArgs(text string) (BarberArgs, error) {
	args := splitCommand(text)
	if len(args) < 2 {
		return BarberArgs{}, ErrUsage
	}

	phone := args[0]
	if len(phone) > 15 || strings.Trim(phone, "+0123456789") != "" {
		return BarberArgs{}, ErrUsage
	}

	return BarberArgs{Phone: phone, Name: restOf(text, 1)}, nil
}

// HoursArgs /sethours <barber_id> <day> <start-end> [break_start-break_end]
type HoursArgs struct {
	BarberID   int64
	DayOfWeek  int
	Start      string
	End        string
	BreakStart *string
	BreakEnd   *string
}

func ParseHoursArgs(text string) (HoursArgs, error) {
	args := splitCommand(text)
	if len(args) != 3 && len(args) != 4 {
		return HoursArgs{}, ErrUsage
	}

	barberID, err := parseID(args[0])
	if err != nil {
		return HoursArgs{}, err
	}
	day, err := parseWeekday(args[1])
	if err != nil {
		return HoursArgs{}, err
	}
	start, end, ok := splitRange(args[2])
	if !ok {
		return HoursArgs{}, ErrUsage
	}

	res := HoursArgs{
		BarberID:  barberID,
		DayOfWeek: day,
		Start:     start,
		End:       end,
	}

	if len(args) == 4 {
		bs, be, ok := splitRange(args[3])
		if !ok {
			return HoursArgs{}, ErrUsage
		}
		res.BreakStart, res.BreakEnd = &bs, &be
	}

	return res, nil
}

// DayOffArgs /dayoff <barber_id> <day>
type DayOffArgs struct {
	BarberID  int64
	DayOfWeek int
}

func ParseDayOffArgs(text string) (DayOffArgs, error) {
	args := splitCommand(text)
	if len(args) != 2 {
		return DayOffArgs{}, ErrUsage
	}

	barberID, err := parseID(args[0])
	if err != nil {
		return DayOffArgs{}, err
	}
	day, err := parseWeekday(args[1])
	if err != nil {
		return DayOffArgs{}, err
	}

	return DayOffArgs{BarberID: barberID, DayOfWeek: day}, nil
}

// ServiceArgs /addservice <price> <minutes> <name>; цена вводится в сумах, хранится в тийинах
type ServiceArgs struct {
	Price           int64
	DurationMinutes int
	Name            string
}

func ParseServiceArgs(text string) (ServiceArgs, error) {
	args := splitCommand(text)
	if len(args) < 3 {
		return ServiceArgs{}, ErrUsage
	}

	price, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || price < 0 {
		return ServiceArgs{}, ErrUsage
	}
	minutes, err := strconv.Atoi(args[1])
	if err != nil || minutes <= 0 {
		return ServiceArgs{}, ErrUsage
	}

	return ServiceArgs{
		Price:           price * 100,
		DurationMinutes: minutes,
		Name:            restOf(text, 2),
	}, nil
}

// ParseIDPair разбирает два идентификатора: /linkservice <barber_id> <service_id>
func ParseIDPair(text string) (int64, int64, error) {
	args := splitCommand(text)
	if len(args) != 2 {
		return 0, 0, ErrUsage
	}

	first, err := parseID(args[0])
	if err != nil {
		return 0, 0, err
	}
	second, err := parseID(args[1])
	if err != nil {
		return 0, 0, err
	}
	return first, second, nil
}

// ParseSingleID разбирает один идентификатор: /confirm <booking_id>
func ParseSingleID(text string) (int64, error) {
	args := splitCommand(text)
	if len(args) != 1 {
		return 0, ErrUsage
	}
	return parseID(args[0])
}

// AdminArgs /addadmin <telegram_id> [name]
type AdminArgs struct {
	TelegramID int64
	Name       string
}

func ParseAdminArgs(text string) (AdminArgs, error) {
	args := splitCommand(text)
	if len(args) < 1 {
		return AdminArgs{}, ErrUsage
	}

	telegramID, err := parseID(args[0])
	if err != nil {
		return AdminArgs{}, err
	}

	return AdminArgs{TelegramID: telegramID, Name: restOf(text, 1)}, nil
}

// ScheduleArgs /setschedule <barber_id> <json>; JSON проверяет сервис
type ScheduleArgs struct {
	BarberID int64
	Schedule string
}

func ParseScheduleArgs(text string) (ScheduleArgs, error) {
	args := splitCommand(text)
	if len(args) < 2 {
		return ScheduleArgs{}, ErrUsage
	}

	barberID, err := parseID(args[0])
	if err != nil {
		return ScheduleArgs{}, err
	}

	return ScheduleArgs{BarberID: barberID, Schedule: restOf(text, 1)}, nil
}

func parseWeekday(s string) (int, error) {
	day, err := strconv.Atoi(s)
	if err != nil || day < 0 || day > 6 {
		return 0, ErrUsage
	}
	return day, nil
}

// splitRange "10:00-18:00" -> "10:00", "18:00"; формат времени проверяет сервис
func splitRange(s string) (string, string, bool) {
	start, end, ok := strings.Cut(s, "-")
	if !ok || start == "" || end == "" {
		return "", "", false
	}
	return start, end, true
}

// statusFromCommand статус, который ставит админская команда
func statusFromCommand(command string) model.BookingStatus {
	switch command {
	case "/complete":
		return model.BookingStatusCompleted
	default:
		return model.BookingStatusConfirmed
	}
}
