// Package ingest превращает табличную выгрузку (xlsx или csv) в записи
// турниров и вливает их в документ базы. Перезапись существующих турниров
// отслеживается и попадает в отчёт — разрушительная операция никогда не
// проходит молча.
package ingest

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AmanLovesCats/RCC-Bot/models"
)

var (
	ErrEmptySheet     = errors.New("sheet contains no data rows")
	ErrMissingColumns = errors.New("missing required columns")
)

// Report — итог обработки одной таблицы.
type Report struct {
	BatchID            string   `json:"batchId"`
	TournamentsUpdated int      `json:"tournamentsUpdated"`
	TotalParticipants  int      `json:"totalParticipants"`
	Overwritten        []string `json:"overwritten,omitempty"`
}

type Pipeline struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{logger: logger}
}

// columns — разрешённые индексы семантических колонок. -1 = колонки нет.
type columns struct {
	name, part, id, stat           int
	typ, subType, currency         int
	year, start, end, prize        int
}

// resolveColumns ищет колонки по ключевым словам: регистр не важен, работает
// вхождение подстроки, первая подошедшая колонка побеждает. Если колонки
// kills нет, единственной статовой колонкой становится points.
func resolveColumns(headers []string) (columns, error) {
	lowered := make([]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}
	find := func(keyword string) int {
		for i, h := range lowered {
			if strings.Contains(h, keyword) {
				return i
			}
		}
		return -1
	}

	cols := columns{
		name:     find("tournament"),
		part:     find("participant"),
		id:       find("id"),
		typ:      find("event"),
		subType:  find("subtype"),
		currency: find("currency"),
		year:     find("year"),
		start:    find("start"),
		end:      find("end"),
		prize:    find("prize"),
	}
	if cols.typ == -1 {
		// "type" как запасной вариант, не путая с колонкой subtype.
		for i, h := range lowered {
			if strings.Contains(h, "type") && i != cols.subType {
				cols.typ = i
				break
			}
		}
	}
	cols.stat = find("kills")
	if cols.stat == -1 {
		cols.stat = find("points")
	}

	var missing []string
	if cols.name == -1 {
		missing = append(missing, "tournament")
	}
	if cols.part == -1 {
		missing = append(missing, "participant")
	}
	if cols.stat == -1 {
		missing = append(missing, "kills/points")
	}
	if len(missing) > 0 {
		return columns{}, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return cols, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Ingest разбирает таблицу (строка 0 — заголовки) и вливает готовые группы в
// документ. Документ мутируется на месте; сохранение — забота вызывающего.
//
// Политика победителя: encounter-order — первая обработанная строка группы
// становится победителем турнира (таблицы приходят уже отранжированными).
func (p *Pipeline) Ingest(table [][]string, doc *models.Document) (*Report, error) {
	if len(table) < 2 {
		return nil, ErrEmptySheet
	}
	cols, err := resolveColumns(table[0])
	if err != nil {
		return nil, err
	}

	report := &Report{BatchID: uuid.NewString()}
	groups := make(map[string]*models.Tournament)
	seeded := make(map[string]bool) // у группы уже есть победитель
	var order []string              // порядок открытия групп
	var current string              // последняя открытая группа

	for i := 1; i < len(table); i++ {
		row := table[i]

		name := cell(row, cols.name)
		if name == "" {
			// Пустая ячейка имени — продолжение последней открытой группы
			// (таблицы часто подписывают только первую строку блока).
			name = current
		}
		if name == "" {
			continue
		}

		group, ok := groups[name]
		if !ok {
			group = &models.Tournament{
				Name:         name,
				Type:         defaultStr(cell(row, cols.typ), "Unknown"),
				SubType:      defaultStr(cell(row, cols.subType), "Unknown"),
				Currency:     defaultStr(cell(row, cols.currency), "Points"),
				Year:         parseYear(cell(row, cols.year)),
				StartDate:    FormatDate(cell(row, cols.start)),
				EndDate:      FormatDate(cell(row, cols.end)),
				Prize:        defaultStr(cell(row, cols.prize), "TBD"),
				Participants: []models.Participant{},
			}
			groups[name] = group
			order = append(order, name)
			if doc.Get(name) != nil {
				report.Overwritten = append(report.Overwritten, name)
			}
		}
		current = name

		partName := cell(row, cols.part)
		if partName == "" {
			continue
		}
		discordID := cell(row, cols.id)
		statValue := parseInt(cell(row, cols.stat))

		entry := models.Participant{Name: partName, DiscordID: discordID}

		// Классификация стата: валюта строки важнее валюты турнира и
		// перекрывает её для последующих строк.
		rowCurrency := cell(row, cols.currency)
		if rowCurrency != "" {
			group.Currency = rowCurrency
		}
		if strings.Contains(strings.ToLower(group.Currency), "kill") {
			entry.Kills = statValue
		} else {
			entry.Points = statValue
		}

		if !seeded[name] {
			group.WinnerName = partName
			group.WinnerID = discordID
			seeded[name] = true
		}

		group.UpsertParticipant(entry)
	}

	if len(groups) == 0 {
		return nil, ErrEmptySheet
	}

	for _, name := range order {
		doc.Put(groups[name])
		report.TournamentsUpdated++
		report.TotalParticipants += len(groups[name].Participants)
	}

	p.logger.Info("sheet ingested",
		slog.String("batch_id", report.BatchID),
		slog.Int("tournaments", report.TournamentsUpdated),
		slog.Int("participants", report.TotalParticipants),
		slog.Int("overwritten", len(report.Overwritten)))

	return report, nil
}

func defaultStr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func parseInt(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 {
		return int(f)
	}
	return 0
}

func parseYear(s string) int {
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return time.Now().Year()
}

// FormatDate делает отображаемую строку из ячейки даты. Числа, похожие на
// сериальные даты Excel (> 20000 дней от эпохи 1899-12-30), конвертируются,
// всё остальное остаётся как есть.
func FormatDate(s string) string {
	if s == "" {
		return "Unknown"
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 20000 {
		unix := int64((serial - 25569) * 86400)
		return time.Unix(unix, 0).UTC().Format("2006-01-02 15:04")
	}
	return s
}
