package formatting

// PluralizeBookings возвращает правильное склонение слова "запись"
func PluralizeBookings(count int) string {
	if count%10 == 1 && count%100 != 11 {
		return "запись"
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return "записи"
	}
	return "записей"
}
