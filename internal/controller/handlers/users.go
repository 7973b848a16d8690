package handlers

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/salon_bot/internal/model"
)

// usersShown сколько последних клиентов показывает /users
const usersShown = 20

// formatUsers сводка по клиентам и последние limit регистраций, новые сверху.
// users ожидаются в порядке регистрации.
func formatUsers(users []*model.User, limit int) string {
	var active, blocked int
	for _, u := range users {
		if u.IsBlocked {
			blocked++
		} else if u.IsActive {
			active++
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "👥 <b>Клиентов: %d</b>\nактивных %d, заблокировали бота %d\n", len(users), active, blocked)

	shown := 0
	for i := len(users) - 1; i >= 0 && shown < limit; i-- {
		u := users[i]
		if shown == 0 {
			sb.WriteString("\nПоследние:\n")
		}
		shown++

		fmt.Fprintf(&sb, "<code>%d</code> %s", u.TelegramID, html.EscapeString(u.FullName))
		if u.Username != "" {
			sb.WriteString(" @" + html.EscapeString(u.Username))
		}
		if u.PhoneNumber != nil {
			sb.WriteString(" 📞 " + html.EscapeString(*u.PhoneNumber))
		}
		if !u.Reachable() {
			sb.WriteString(" 🔕")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
