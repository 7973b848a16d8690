package formatting

import (
	"fmt"
	"strconv"
	"strings"
)

// Currency валюта цен салона
const Currency = "сум"

// FormatPrice форматирует цену из тийинов: 15000000 -> "150 000 сум".
// Дробная часть показывается только если она не нулевая.
func FormatPrice(price int64) string {
	sign := ""
	if price < 0 {
		sign = "-"
		price = -price
	}

	whole := groupThousands(strconv.FormatInt(price/100, 10))
	if fraction := price % 100; fraction != 0 {
		return fmt.Sprintf("%s%s.%02d %s", sign, whole, fraction, Currency)
	}
	return fmt.Sprintf("%s%s %s", sign, whole, Currency)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var sb strings.Builder
	head := len(digits) % 3
	if head > 0 {
		sb.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}
