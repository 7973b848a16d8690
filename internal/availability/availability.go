// Package availability вычисляет свободное время мастера по его графику и уже существующим записям.
package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/Freeeeeet/salon_bot/internal/model"
)

// ClockLayout формат времени суток в графике и записях
const ClockLayout = "15:04"

// Window рабочее окно мастера на конкретную дату
type Window struct {
	Start      string  `json:"start"`
	End        string  `json:"end"`
	BreakStart *string `json:"break_start,omitempty"`
	BreakEnd   *string `json:"break_end,omitempty"`
}

// ParseClock разбирает "HH:MM" в смещение от полуночи
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// FormatClock форматирует смещение от полуночи как "HH:MM"
func FormatClock(d time.Duration) string {
	minutes := int(d / time.Minute)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Windows возвращает настроенные окна для дня недели даты. Пустой график - пустой результат.
func Windows(hours []*model.WorkingHours, date time.Time) []Window {
	day := int(date.Weekday())

	windows := make([]Window, 0, len(hours))
	for _, wh := range hours {
		if wh.DayOfWeek != day {
			continue
		}
		w := Window{Start: wh.StartTime, End: wh.EndTime}
		if wh.HasBreak() {
			w.BreakStart = wh.BreakStart
			w.BreakEnd = wh.BreakEnd
		}
		windows = append(windows, w)
	}

	sort.Slice(windows, func(i, j int) bool { return windows[i].Start < windows[j].Start })
	return windows
}

// FreeSlots возвращает свободные времена начала на дату:
// окна графика нарезаются с шагом step, слоты пересекающие перерыв выкидываются,
// так же как и времена, занятые активными записями на эту дату.
func FreeSlots(hours []*model.WorkingHours, bookings []*model.Booking, date time.Time, step time.Duration) ([]string, error) {
	if step <= 0 {
		return nil, fmt.Errorf("slot step must be positive, got %s", step)
	}

	taken := takenTimes(bookings, date)

	seen := make(map[string]struct{})
	var slots []string

	for _, w := range Windows(hours, date) {
		start, err := ParseClock(w.Start)
		if err != nil {
			return nil, err
		}
		end, err := ParseClock(w.End)
		if err != nil {
			return nil, err
		}

		var breakStart, breakEnd time.Duration
		hasBreak := w.BreakStart != nil && w.BreakEnd != nil
		if hasBreak {
			if breakStart, err = ParseClock(*w.BreakStart); err != nil {
				return nil, err
			}
			if breakEnd, err = ParseClock(*w.BreakEnd); err != nil {
				return nil, err
			}
		}

		for cur := start; cur+step <= end; cur += step {
			if hasBreak && cur < breakEnd && cur+step > breakStart {
				continue
			}

			slot := FormatClock(cur)
			if _, ok := taken[slot]; ok {
				continue
			}
			if _, ok := seen[slot]; ok {
				continue
			}
			seen[slot] = struct{}{}
			slots = append(slots, slot)
		}
	}

	sort.Strings(slots)
	return slots, nil
}

// takenTimes времена активных записей на дату
func takenTimes(bookings []*model.Booking, date time.Time) map[string]struct{} {
	day := date.Format(model.DateLayout)

	taken := make(map[string]struct{}, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() || b.DateString() != day {
			continue
		}
		taken[b.Time] = struct{}{}
	}
	return taken
}

// Contains проверяет, есть ли время среди свободных слотов
func Contains(slots []string, clock string) bool {
	i := sort.SearchStrings(slots, clock)
	return i < len(slots) && slots[i] == clock
}
