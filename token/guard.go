package token

import "strings"

// Authorize проверяет, что хвостовой сегмент носителя (customId контрола или
// значение пункта меню) совпадает с id действующего пользователя. Это
// единственный механизм владения сессией: не подпись, а сверка принципала на
// каждом шаге. Токены эфемерны, и проверка повторяется при каждом событии.
func Authorize(principalID, carrier string) bool {
	if principalID == "" || carrier == "" {
		return false
	}
	i := strings.LastIndex(carrier, Delimiter)
	if i < 0 {
		return false
	}
	return carrier[i+1:] == principalID
}
