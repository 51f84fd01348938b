package views

import (
	"strconv"
	"strings"

	"github.com/AmanLovesCats/RCC-Bot/models"
	"github.com/AmanLovesCats/RCC-Bot/token"
)

// PlayerProfile — профиль игрока: суммарные статы, клан, число побед.
func PlayerProfile(userID, username, clan string, stats models.PlayerStats, principalID string) (*models.View, error) {
	historyID, err := mint(token.ActionPlayerHistory, 0, userID, principalID)
	if err != nil {
		return nil, err
	}
	backID, err := mint(token.ActionPortal, 0, "", principalID)
	if err != nil {
		return nil, err
	}

	if clan == "" {
		clan = "No Clan"
	}

	return &models.View{
		Title: "Player Profile: " + username,
		Color: colorPlayer,
		Fields: []models.Field{
			{Name: "Clan", Value: clan, Inline: true},
			{Name: "Total Kills", Value: strconv.Itoa(stats.TotalKills), Inline: true},
			{Name: "Total Points", Value: strconv.Itoa(stats.TotalPoints), Inline: true},
			{Name: "Tournaments Won", Value: strconv.Itoa(len(stats.Won)), Inline: true},
		},
		Footer: "ID: " + userID,
		Controls: []models.Control{
			{Kind: models.ControlButton, ID: historyID, Label: "View Tournament History", Style: models.StyleSecondary},
			{Kind: models.ControlButton, ID: backID, Label: "Back to Portal", Style: models.StyleDanger},
		},
	}, nil
}

// ClanProfile — профиль клана со списком участников с платформы.
func ClanProfile(clan string, stats models.ClanStats, members []models.Member, principalID string) (*models.View, error) {
	historyID, err := mint(token.ActionClanHistory, 0, clan, principalID)
	if err != nil {
		return nil, err
	}
	backID, err := mint(token.ActionPortal, 0, "", principalID)
	if err != nil {
		return nil, err
	}

	memberNames := make([]string, 0, len(members))
	for _, m := range members {
		memberNames = append(memberNames, m.Username)
	}
	memberList := strings.Join(memberNames, ", ")
	if memberList == "" {
		memberList = "No members found (Role might not exist)"
	}
	if len(memberList) > 1000 {
		memberList = memberList[:997] + "..."
	}

	return &models.View{
		Title: "Clan Profile: " + clan,
		Color: colorDetail,
		Fields: []models.Field{
			{Name: "Total Kills (Members + Entity)", Value: strconv.Itoa(stats.TotalKills), Inline: true},
			{Name: "Total Points (Clan Tourneys Only)", Value: strconv.Itoa(stats.TotalPoints), Inline: true},
			{Name: "Tournaments Won", Value: strconv.Itoa(len(stats.Won)), Inline: true},
			{Name: "Member Count", Value: strconv.Itoa(len(members)), Inline: true},
			{Name: "Members", Value: memberList},
		},
		Footer: "Database Stats",
		Controls: []models.Control{
			{Kind: models.ControlButton, ID: historyID, Label: "View Tournament History", Style: models.StyleSecondary},
			{Kind: models.ControlButton, ID: backID, Label: "Back to Portal", Style: models.StyleDanger},
		},
	}, nil
}

// SearchPlayerForm / SearchClanForm / EditStatsForm — модальные формы. ID
// формы несёт токен, по нему авторизуется сабмит.

func SearchPlayerForm(principalID string) (*models.Form, error) {
	id, err := mint(token.ActionPlayerForm, 0, "", principalID)
	if err != nil {
		return nil, err
	}
	return &models.Form{
		ID:    id,
		Title: "Search Player",
		Inputs: []models.FormInput{
			{ID: "player_query", Label: "Enter Username or ID", Required: true},
		},
	}, nil
}

func SearchClanForm(principalID string) (*models.Form, error) {
	id, err := mint(token.ActionClanForm, 0, "", principalID)
	if err != nil {
		return nil, err
	}
	return &models.Form{
		ID:    id,
		Title: "Search Clan",
		Inputs: []models.FormInput{
			{ID: "clan_query", Label: "Enter Clan Name", Required: true},
		},
	}, nil
}

func EditStatsForm(principalID string) (*models.Form, error) {
	id, err := mint(token.ActionStatsForm, 0, "", principalID)
	if err != nil {
		return nil, err
	}
	return &models.Form{
		ID:    id,
		Title: "Edit User Stats",
		Inputs: []models.FormInput{
			{ID: "user_id", Label: "User ID", Required: true},
			{ID: "tournament", Label: "Tournament Name", Required: true},
			{ID: "kills", Label: "New Kills Amount", Value: "0"},
			{ID: "points", Label: "New Points Amount", Value: "0"},
		},
	}, nil
}
