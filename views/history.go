package views

import (
	"fmt"
	"strings"

	"github.com/AmanLovesCats/RCC-Bot/models"
	"github.com/AmanLovesCats/RCC-Bot/token"
)

// PlayerHistory — постраничная история участий игрока. Порядок — как в
// агрегате, без дополнительной сортировки.
func PlayerHistory(userID, username string, stats models.PlayerStats, page int, principalID string) (*models.View, error) {
	return history(historyParams{
		title:         "History: " + username,
		color:         colorPlayer,
		action:        token.ActionPlayerHistory,
		profileAction: token.ActionPlayer,
		subject:       userID,
		icon:          "[P]",
		results:       stats.History,
		totalKills:    stats.TotalKills,
		totalPoints:   stats.TotalPoints,
		page:          page,
		principalID:   principalID,
	})
}

// ClanHistory — то же для клана.
func ClanHistory(clan string, stats models.ClanStats, page int, principalID string) (*models.View, error) {
	return history(historyParams{
		title:         "History: " + clan,
		color:         colorDetail,
		action:        token.ActionClanHistory,
		profileAction: token.ActionClan,
		subject:       clan,
		icon:          "[C]",
		results:       stats.History,
		totalKills:    stats.TotalKills,
		totalPoints:   stats.TotalPoints,
		page:          page,
		principalID:   principalID,
	})
}

type historyParams struct {
	title         string
	color         int
	action        token.Action
	profileAction token.Action // куда ведёт кнопка Back to Profile
	subject       string
	icon          string
	results       []models.TournamentResult
	totalKills    int
	totalPoints   int
	page          int
	principalID   string
}

func history(p historyParams) (*models.View, error) {
	totalPages := TotalPages(len(p.results))
	page := ClampPage(p.page, totalPages)
	start, end := pageSlice(len(p.results), page)

	var body strings.Builder
	for _, r := range p.results[start:end] {
		icon := p.icon
		if r.Won {
			icon = "[W]"
		}
		fmt.Fprintf(&body, "%s **%s** (%d)\nKills: %d | Points: %d\n", icon, r.Name, r.Year, r.Kills, r.Points)
	}
	desc := body.String()
	if desc == "" {
		desc = "No history found."
	}

	prevID, err := mint(p.action, page-1, p.subject, p.principalID)
	if err != nil {
		return nil, err
	}
	nextID, err := mint(p.action, page+1, p.subject, p.principalID)
	if err != nil {
		return nil, err
	}
	backID, err := mint(p.profileAction, 0, p.subject, p.principalID)
	if err != nil {
		return nil, err
	}

	return &models.View{
		Title: p.title,
		Body:  desc,
		Color: p.color,
		Footer: fmt.Sprintf("%s | Total: %d Kills / %d Points",
			mustPageFooter(page, totalPages), p.totalKills, p.totalPoints),
		Controls: []models.Control{
			{Kind: models.ControlButton, ID: prevID, Label: "Prev", Style: models.StyleSecondary, Disabled: page == 0},
			{Kind: models.ControlButton, ID: nextID, Label: "Next", Style: models.StyleSecondary, Disabled: page == totalPages-1},
			{Kind: models.ControlButton, ID: backID, Label: "Back to Profile", Style: models.StyleDanger},
		},
	}, nil
}
