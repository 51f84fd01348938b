package views

import (
	"fmt"
	"strings"

	"github.com/AmanLovesCats/RCC-Bot/models"
	"github.com/AmanLovesCats/RCC-Bot/token"
)

// List — постраничный список турниров. Страница за пределами диапазона
// зажимается, пустой документ отображается одной пустой страницей.
func List(doc *models.Document, page int, principalID string) (*models.View, error) {
	names := doc.Names()
	totalPages := TotalPages(len(names))
	page = ClampPage(page, totalPages)

	start, end := pageSlice(len(names), page)

	var body strings.Builder
	for _, name := range names[start:end] {
		t := doc.Get(name)
		winner := t.WinnerName
		if winner == "" {
			winner = "TBD"
		}
		fmt.Fprintf(&body, "**%s** (%d)\nType: %s | %s\nWinner: %s\n\n", name, t.Year, t.Type, t.SubType, winner)
	}
	desc := body.String()
	if desc == "" {
		desc = "No tournaments found."
	}

	prevID, err := mint(token.ActionList, page-1, "", principalID)
	if err != nil {
		return nil, err
	}
	nextID, err := mint(token.ActionList, page+1, "", principalID)
	if err != nil {
		return nil, err
	}
	backID, err := mint(token.ActionPortal, 0, "", principalID)
	if err != nil {
		return nil, err
	}

	return &models.View{
		Title:  "Tournaments Database",
		Body:   desc,
		Color:  colorList,
		Footer: mustPageFooter(page, totalPages),
		Controls: []models.Control{
			{Kind: models.ControlButton, ID: prevID, Label: "Previous", Style: models.StyleSecondary, Disabled: page == 0},
			{Kind: models.ControlButton, ID: nextID, Label: "Next", Style: models.StyleSecondary, Disabled: page == totalPages-1},
			{Kind: models.ControlButton, ID: backID, Label: "Back to Portal", Style: models.StyleDanger},
		},
	}, nil
}
