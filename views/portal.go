package views

import (
	"fmt"

	"github.com/AmanLovesCats/RCC-Bot/models"
	"github.com/AmanLovesCats/RCC-Bot/token"
)

// portalMenuLimit — платформа показывает максимум 25 пунктов меню.
const portalMenuLimit = 25

// Portal — входная панель: меню быстрого выбора турнира и кнопки навигации.
func Portal(doc *models.Document, principalID string) (*models.View, error) {
	names := doc.NamesDescending()
	if len(names) > portalMenuLimit {
		names = names[:portalMenuLimit]
	}

	var options []models.Option
	for _, name := range names {
		value, err := mint(token.ActionDetails, 0, name, principalID)
		if err != nil {
			// Имя не влезает в токен — пункт просто не попадает в меню.
			continue
		}
		options = append(options, models.Option{
			Label:       truncateLabel(name),
			Value:       value,
			Description: truncateLabel("View " + name),
		})
	}
	if len(options) == 0 {
		value, err := mint(token.ActionNone, 0, "", principalID)
		if err != nil {
			return nil, err
		}
		options = append(options, models.Option{
			Label:       "No tournaments found",
			Value:       value,
			Description: "The database is empty",
		})
	}

	menuID, err := mint(token.ActionPortalMenu, 0, "", principalID)
	if err != nil {
		return nil, err
	}
	listID, err := mint(token.ActionList, 0, "", principalID)
	if err != nil {
		return nil, err
	}
	searchPlayerID, err := mint(token.ActionSearchPlayer, 0, "", principalID)
	if err != nil {
		return nil, err
	}
	searchClanID, err := mint(token.ActionSearchClan, 0, "", principalID)
	if err != nil {
		return nil, err
	}

	return &models.View{
		Title: "Esports Database Portal",
		Body:  "Select a tournament or use buttons below.",
		Color: colorPortal,
		Controls: []models.Control{
			{
				Kind:        models.ControlSelect,
				ID:          menuID,
				Placeholder: "View Detailed Tourney Details",
				Options:     options,
			},
			{Kind: models.ControlButton, ID: listID, Label: "All Tournaments", Style: models.StylePrimary},
			{Kind: models.ControlButton, ID: searchPlayerID, Label: "Search Player", Style: models.StyleSecondary},
			{Kind: models.ControlButton, ID: searchClanID, Label: "Search Clan", Style: models.StyleSecondary},
		},
	}, nil
}

// AdminPanel — панель управления: меню действий и меню удаления турниров.
func AdminPanel(doc *models.Document, principalID string) (*models.View, error) {
	menuID, err := mint(token.ActionAdminMenu, 0, "", principalID)
	if err != nil {
		return nil, err
	}

	menuActions := []struct {
		action token.Action
		label  string
	}{
		{token.ActionUpload, "Upload Excel File"},
		{token.ActionDeletePrompt, "Delete Tournament"},
		{token.ActionList, "View All Tournaments"},
		{token.ActionEditStats, "Edit User Stats"},
	}
	var menuOptions []models.Option
	for _, a := range menuActions {
		value, err := mint(a.action, 0, "", principalID)
		if err != nil {
			return nil, err
		}
		menuOptions = append(menuOptions, models.Option{Label: a.label, Value: value})
	}

	view := &models.View{
		Title: "Admin Control Panel",
		Body:  "Manage tournament databases.",
		Color: colorAdmin,
		Fields: []models.Field{
			{Name: "Actions", Value: "• Upload Excel\n• Delete Tournament\n• Edit User Stats"},
		},
		Controls: []models.Control{
			{Kind: models.ControlSelect, ID: menuID, Placeholder: "Choose action...", Options: menuOptions},
		},
	}

	names := doc.Names()
	if len(names) > portalMenuLimit {
		names = names[:portalMenuLimit]
	}
	var deleteOptions []models.Option
	for _, name := range names {
		value, err := mint(token.ActionDelete, 0, name, principalID)
		if err != nil {
			continue
		}
		deleteOptions = append(deleteOptions, models.Option{
			Label:       truncateLabel(name),
			Value:       value,
			Description: fmt.Sprintf("%d participants", len(doc.Get(name).Participants)),
		})
	}
	if len(deleteOptions) > 0 {
		deleteMenuID, err := mint(token.ActionDeleteMenu, 0, "", principalID)
		if err != nil {
			return nil, err
		}
		view.Controls = append(view.Controls, models.Control{
			Kind:        models.ControlSelect,
			ID:          deleteMenuID,
			Placeholder: "Select tournament to delete...",
			Options:     deleteOptions,
		})
	}

	return view, nil
}
