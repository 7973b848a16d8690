package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/salon_bot/internal/model"
)

// Форматы callback data. service_id = 0 - запись без выбранной услуги.
const (
	PrefixBarber     = "barber:"      // barber:<barber_id>
	PrefixService    = "svc:"         // svc:<barber_id>:<service_id>
	PrefixDay        = "day:"         // day:<barber_id>:<service_id>:<YYYY-MM-DD>
	PrefixBook       = "book:"        // book:<barber_id>:<service_id>:<YYYY-MM-DD>:<HHMM>
	PrefixCancel     = "cancel:"      // cancel:<booking_id>
	PrefixCancelSkip = "cancel_skip:" // cancel_skip:<booking_id>
	PrefixBarbers    = "barbers:"     // barbers:<page>

	Noop = "noop"
)

// DayRef разобранная кнопка выбора дня
type DayRef struct {
	BarberID  int64
	ServiceID int64
	Date      time.Time
}

// BookData разобранная кнопка выбора времени
type BookData struct {
	DayRef
	Time string // "HH:MM"
}

// ServicePtr ID услуги для записи; nil, если услуга не выбрана
func (d DayRef) ServicePtr() *int64 {
	if d.ServiceID == 0 {
		return nil
	}
	id := d.ServiceID
	return &id
}

func BarbersPageData(page int) string {
	return fmt.Sprintf("%s%d", PrefixBarbers, page)
}

func BarberData(barberID int64) string {
	return fmt.Sprintf("%s%d", PrefixBarber, barberID)
}

func ServiceData(barberID, serviceID int64) string {
	return fmt.Sprintf("%s%d:%d", PrefixService, barberID, serviceID)
}

func DayData(barberID, serviceID int64, date time.Time) string {
	return fmt.Sprintf("%s%d:%d:%s", PrefixDay, barberID, serviceID, date.Format(model.DateLayout))
}

// BookingData кодирует время без двоеточия, чтобы оно не мешало разбору
func BookingData(barberID, serviceID int64, date time.Time, clock string) string {
	return fmt.Sprintf("%s%d:%d:%s:%s", PrefixBook, barberID, serviceID, date.Format(model.DateLayout), strings.ReplaceAll(clock, ":", ""))
}

func CancelData(bookingID int64) string {
	return fmt.Sprintf("%s%d", PrefixCancel, bookingID)
}

func CancelSkipData(bookingID int64) string {
	return fmt.Sprintf("%s%d", PrefixCancelSkip, bookingID)
}

// ParseIDFromCallback извлекает ID из callback data вида "prefix:123"
func ParseIDFromCallback(data string) (int64, error) {
	parts := strings.Split(data, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	return id, nil
}

// ParsePage разбирает barbers:<page>; неверная страница - первая
func ParsePage(data string) int {
	page, err := strconv.Atoi(strings.TrimPrefix(data, PrefixBarbers))
	if err != nil || page < 0 {
		return 0
	}
	return page
}

// ParseServiceData разбирает svc:<barber_id>:<service_id>
func ParseServiceData(data string) (int64, int64, error) {
	parts := strings.Split(strings.TrimPrefix(data, PrefixService), ":")
	if !strings.HasPrefix(data, PrefixService) || len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	return parseBarberAndService(data, parts[0], parts[1])
}

// ParseDayData разбирает day:<barber_id>:<service_id>:<YYYY-MM-DD>
func ParseDayData(data string) (DayRef, error) {
	parts := strings.Split(strings.TrimPrefix(data, PrefixDay), ":")
	if !strings.HasPrefix(data, PrefixDay) || len(parts) != 3 {
		return DayRef{}, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	return parseDayRef(data, parts)
}

// ParseBookData разбирает book:<barber_id>:<service_id>:<YYYY-MM-DD>:<HHMM>
func ParseBookData(data string) (BookData, error) {
	parts := strings.Split(strings.TrimPrefix(data, PrefixBook), ":")
	if !strings.HasPrefix(data, PrefixBook) || len(parts) != 4 || len(parts[3]) != 4 {
		return BookData{}, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}

	ref, err := parseDayRef(data, parts[:3])
	if err != nil {
		return BookData{}, err
	}
	clock, err := time.Parse("1504", parts[3])
	if err != nil {
		return BookData{}, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}

	return BookData{DayRef: ref, Time: clock.Format("15:04")}, nil
}

func parseDayRef(data string, parts []string) (DayRef, error) {
	barberID, serviceID, err := parseBarberAndService(data, parts[0], parts[1])
	if err != nil {
		return DayRef{}, err
	}
	date, err := time.ParseInLocation(model.DateLayout, parts[2], time.Local)
	if err != nil {
		return DayRef{}, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	return DayRef{BarberID: barberID, ServiceID: serviceID, Date: date}, nil
}

func parseBarberAndService(data, barber, service string) (int64, int64, error) {
	barberID, err := strconv.ParseInt(barber, 10, 64)
	if err != nil || barberID <= 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	serviceID, err := strconv.ParseInt(service, 10, 64)
	if err != nil || serviceID < 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	return barberID, serviceID, nil
}
