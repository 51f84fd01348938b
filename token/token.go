// Package token реализует протокол continuation-токенов: состояние навигации
// и владелец вида кодируются в ограниченную непрозрачную строку, которая
// прикрепляется к контролам UI. Процесс между событиями ничего не хранит —
// токен и есть вся сессия.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Delimiter разделяет сегменты токена. Имена турниров легально содержат
// подчёркивания, поэтому старый позиционный формат на "_" был хрупким;
// вертикальная черта в идентификаторах и названиях не встречается, а попытка
// закодировать subject с ней отклоняется явно.
const Delimiter = "|"

// MaxLen — жёсткий потолок длины токена (лимит custom id у платформы).
const MaxLen = 100

var (
	ErrMalformed  = errors.New("malformed token")
	ErrTooLong    = fmt.Errorf("token exceeds %d bytes", MaxLen)
	ErrBadSubject = errors.New("subject contains the token delimiter")
)

// Action — закрытое множество действий. Роутер делает исчерпывающий switch
// по этим константам; незнакомое действие означает протухший токен.
type Action string

const (
	ActionPortal        Action = "portal"         // назад на входную панель
	ActionPortalMenu    Action = "portal_menu"    // customId меню быстрого выбора
	ActionList          Action = "list"           // страница списка турниров
	ActionDetails       Action = "details"        // карточка турнира
	ActionPlayer        Action = "player"         // профиль игрока
	ActionPlayerHistory Action = "player_history" // история игрока, страница
	ActionClan          Action = "clan"           // профиль клана
	ActionClanHistory   Action = "clan_history"   // история клана, страница
	ActionSearchPlayer  Action = "search_player"  // открыть форму поиска игрока
	ActionSearchClan    Action = "search_clan"    // открыть форму поиска клана
	ActionPlayerForm    Action = "player_form"    // сабмит формы поиска игрока
	ActionClanForm      Action = "clan_form"      // сабмит формы поиска клана
	ActionAdmin         Action = "admin"          // админ-панель
	ActionAdminMenu     Action = "admin_menu"     // customId меню админ-панели
	ActionDeleteMenu    Action = "delete_menu"    // customId меню удаления
	ActionUpload        Action = "upload"         // открыть сессию загрузки
	ActionDeletePrompt  Action = "delete_prompt"  // подсказка "выбери турнир ниже"
	ActionDelete        Action = "delete"         // удалить турнир (subject = имя)
	ActionEditStats     Action = "edit_stats"     // открыть форму правки статов
	ActionStatsForm     Action = "stats_form"     // сабмит формы правки статов
	ActionNone          Action = "none"           // заглушка пустого меню
)

// schema описывает аргументы действия: наличие номера страницы и свободного
// текстового subject'а. Принципал замыкает токен всегда.
type schema struct {
	page    bool
	subject bool
}

var registry = map[Action]schema{
	ActionPortal:        {},
	ActionPortalMenu:    {},
	ActionList:          {page: true},
	ActionDetails:       {subject: true},
	ActionPlayer:        {subject: true},
	ActionPlayerHistory: {page: true, subject: true},
	ActionClan:          {subject: true},
	ActionClanHistory:   {page: true, subject: true},
	ActionSearchPlayer:  {},
	ActionSearchClan:    {},
	ActionPlayerForm:    {},
	ActionClanForm:      {},
	ActionAdmin:         {},
	ActionAdminMenu:     {},
	ActionDeleteMenu:    {},
	ActionUpload:        {},
	ActionDeletePrompt:  {},
	ActionDelete:        {subject: true},
	ActionEditStats:     {},
	ActionStatsForm:     {},
	ActionNone:          {},
}

// Token — расшифрованное содержимое continuation-токена.
type Token struct {
	Action    Action
	Page      int    // только для действий с пагинацией
	Subject   string // имя турнира, id игрока или имя клана
	Principal string // id пользователя, для которого отрендерен вид
}

// Encode собирает проволочную форму токена:
//
//	action|[page|][subject|]principal
//
// Возвращает ошибку, если subject содержит разделитель или итог длиннее
// MaxLen — вызывающий рендерер решает, пропустить контрол или укоротить текст.
func Encode(t Token) (string, error) {
	sc, ok := registry[t.Action]
	if !ok {
		return "", fmt.Errorf("%w: unknown action %q", ErrMalformed, t.Action)
	}
	if t.Principal == "" || strings.Contains(t.Principal, Delimiter) {
		return "", fmt.Errorf("%w: bad principal", ErrMalformed)
	}

	segments := []string{string(t.Action)}
	if sc.page {
		segments = append(segments, strconv.Itoa(t.Page))
	}
	if sc.subject {
		if strings.Contains(t.Subject, Delimiter) {
			return "", ErrBadSubject
		}
		segments = append(segments, t.Subject)
	}
	segments = append(segments, t.Principal)

	encoded := strings.Join(segments, Delimiter)
	if len(encoded) > MaxLen {
		return "", ErrTooLong
	}
	return encoded, nil
}

// Decode разбирает токен обратно. Позиции фиксированы регистром действий:
// принципал всегда последний сегмент, страница сразу после действия, всё
// между ними — subject. Любое расхождение с регистром означает протухшее или
// подделанное взаимодействие и возвращает ErrMalformed.
func Decode(s string) (Token, error) {
	if s == "" || len(s) > MaxLen {
		return Token{}, ErrMalformed
	}
	segments := strings.Split(s, Delimiter)
	if len(segments) < 2 {
		return Token{}, ErrMalformed
	}

	action := Action(segments[0])
	sc, ok := registry[action]
	if !ok {
		return Token{}, fmt.Errorf("%w: unknown action %q", ErrMalformed, action)
	}

	t := Token{Action: action, Principal: segments[len(segments)-1]}
	if t.Principal == "" {
		return Token{}, ErrMalformed
	}
	middle := segments[1 : len(segments)-1]

	if sc.page {
		if len(middle) == 0 {
			return Token{}, ErrMalformed
		}
		page, err := strconv.Atoi(middle[0])
		if err != nil {
			return Token{}, fmt.Errorf("%w: bad page %q", ErrMalformed, middle[0])
		}
		t.Page = page
		middle = middle[1:]
	}

	if sc.subject {
		if len(middle) == 0 {
			return Token{}, ErrMalformed
		}
		// Encode не выпускает subject с разделителем, но чужой или старый
		// токен может его содержать — склеиваем обратно, не падаем.
		t.Subject = strings.Join(middle, Delimiter)
	} else if len(middle) != 0 {
		return Token{}, ErrMalformed
	}

	return t, nil
}
