package views

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/AmanLovesCats/RCC-Bot/models"
	"github.com/AmanLovesCats/RCC-Bot/token"
)

// Detail — карточка турнира: метаданные и топ-10 участников. Сортировка
// детерминированная: очки по убыванию, при равенстве — киллы по убыванию.
func Detail(t *models.Tournament, principalID string) (*models.View, error) {
	ranked := make([]models.Participant, len(t.Participants))
	copy(ranked, t.Participants)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		return ranked[i].Kills > ranked[j].Kills
	})

	killsBased := t.KillsBased()
	var top strings.Builder
	for i, p := range ranked {
		if i == detailTopCount {
			break
		}
		if killsBased {
			fmt.Fprintf(&top, "**%d.** %s - %d Kills\n", i+1, p.Name, p.Kills)
		} else {
			fmt.Fprintf(&top, "**%d.** %s - %d Pts\n", i+1, p.Name, p.Points)
		}
	}
	topList := strings.TrimRight(top.String(), "\n")
	if topList == "" {
		topList = "No participants recorded."
	}

	othersCount := len(ranked) - detailTopCount
	participantsField := "Participants (Top 10)"
	if othersCount > 0 {
		participantsField = fmt.Sprintf("Participants (Top 10 +%d)", othersCount)
	}

	winner := t.WinnerName
	if winner == "" {
		winner = "Unknown"
	}
	prize := t.Prize
	if prize == "" {
		prize = "N/A"
	}

	backID, err := mint(token.ActionPortal, 0, "", principalID)
	if err != nil {
		return nil, err
	}

	return &models.View{
		Title: t.Name,
		Color: colorDetail,
		Fields: []models.Field{
			{Name: "Winner", Value: winner, Inline: true},
			{Name: "Year", Value: strconv.Itoa(t.Year), Inline: true},
			{Name: "Type", Value: fmt.Sprintf("%s - %s", t.Type, t.SubType), Inline: true},
			{Name: "Start Time", Value: defaultField(t.StartDate), Inline: true},
			{Name: "End Time", Value: defaultField(t.EndDate), Inline: true},
			{Name: "Prize", Value: prize, Inline: true},
			{Name: participantsField, Value: topList},
		},
		Footer: fmt.Sprintf("Total Participants: %d", len(t.Participants)),
		Controls: []models.Control{
			{Kind: models.ControlButton, ID: backID, Label: "Back to Portal", Style: models.StyleSecondary},
		},
	}, nil
}

func defaultField(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
