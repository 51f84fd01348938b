// Package views — чистые функции рендеринга: состояние документа плюс курсор
// пагинации превращаются в поверхность UI. Рендер никогда не мутирует
// документ; каждый контрол несёт свежий токен, адресованный принципалу.
package views

import (
	"fmt"

	"github.com/AmanLovesCats/RCC-Bot/token"
)

// PageSize — фиксированный размер страницы списков и историй.
const PageSize = 5

// detailTopCount — сколько участников показывает карточка турнира.
const detailTopCount = 10

// Цвета embed'ов, как в исходной панели.
const (
	colorPortal = 0x5865F2
	colorList   = 0xFAA61A
	colorDetail = 0x57F287
	colorPlayer = 0x00AEFF
	colorAdmin  = 0xED4245
)

// TotalPages возвращает число страниц для n элементов; никогда не ноль —
// пустой список занимает одну пустую страницу.
func TotalPages(n int) int {
	pages := (n + PageSize - 1) / PageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage зажимает страницу в [0, total-1].
func ClampPage(page, total int) int {
	if page < 0 {
		return 0
	}
	if page >= total {
		return total - 1
	}
	return page
}

// pageSlice возвращает границы страницы в пределах длины списка.
func pageSlice(length, page int) (int, int) {
	start := page * PageSize
	if start > length {
		start = length
	}
	end := start + PageSize
	if end > length {
		end = length
	}
	return start, end
}

// truncateLabel укорачивает текст до лимита меток платформы (100 символов).
func truncateLabel(s string) string {
	if len(s) <= 100 {
		return s
	}
	return s[:97] + "..."
}

func mustPageFooter(page, total int) string {
	return fmt.Sprintf("Page %d/%d", page+1, total)
}

// mint — сокращение для выпуска токена внутри рендереров.
func mint(action token.Action, page int, subject, principal string) (string, error) {
	return token.Encode(token.Token{Action: action, Page: page, Subject: subject, Principal: principal})
}
