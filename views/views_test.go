package views

import (
	"fmt"
	"strings"
	"testing"

	"github.com/AmanLovesCats/RCC-Bot/models"
	"github.com/AmanLovesCats/RCC-Bot/token"
)

const viewer = "555000111"

func docWith(t *testing.T, count int) *models.Document {
	t.Helper()
	doc := models.NewDocument()
	for i := 0; i < count; i++ {
		doc.Put(&models.Tournament{
			Name:       fmt.Sprintf("Cup %02d", i),
			Type:       "Solo",
			SubType:    "FFA",
			Currency:   "Points",
			Year:       2020 + i,
			WinnerName: "alpha",
		})
	}
	return doc
}

func TestTotalPagesFloorsAtOne(t *testing.T) {
	cases := []struct{ n, want int }{
		{0, 1}, {1, 1}, {5, 1}, {6, 2}, {10, 2}, {11, 3},
	}
	for _, tc := range cases {
		if got := TotalPages(tc.n); got != tc.want {
			t.Errorf("TotalPages(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}

func TestClampPage(t *testing.T) {
	cases := []struct{ page, total, want int }{
		{-1, 3, 0}, {0, 3, 0}, {2, 3, 2}, {3, 3, 2}, {99, 3, 2}, {-5, 1, 0},
	}
	for _, tc := range cases {
		if got := ClampPage(tc.page, tc.total); got != tc.want {
			t.Errorf("ClampPage(%d, %d) = %d, want %d", tc.page, tc.total, got, tc.want)
		}
	}
}

func TestListPaginationClamp(t *testing.T) {
	doc := docWith(t, 12) // 3 pages

	first, err := List(doc, -1, viewer)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if first.Footer != "Page 1/3" {
		t.Errorf("page -1 must clamp to first page, footer %q", first.Footer)
	}

	last, err := List(doc, 99, viewer)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if last.Footer != "Page 3/3" {
		t.Errorf("page 99 must clamp to last page, footer %q", last.Footer)
	}
	if !last.Controls[1].Disabled {
		t.Error("Next must be disabled on the last page")
	}
}

func TestListEmptyDocument(t *testing.T) {
	view, err := List(models.NewDocument(), 0, viewer)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if view.Footer != "Page 1/1" {
		t.Errorf("empty list still has one page, footer %q", view.Footer)
	}
	if view.Body != "No tournaments found." {
		t.Errorf("body = %q", view.Body)
	}
}

func TestListTokensBelongToPrincipal(t *testing.T) {
	view, err := List(docWith(t, 3), 0, viewer)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, c := range view.Controls {
		if !token.Authorize(viewer, c.ID) {
			t.Errorf("control %q is not addressed to the viewer", c.ID)
		}
	}
}

func TestDetailOrdering(t *testing.T) {
	tourney := &models.Tournament{
		Name:     "Order Cup",
		Currency: "Points",
		Participants: []models.Participant{
			{Name: "mid", Points: 5, Kills: 9},
			{Name: "low", Points: 5, Kills: 2},
			{Name: "top", Points: 9, Kills: 0},
		},
	}

	view, err := Detail(tourney, viewer)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	top := view.Fields[len(view.Fields)-1].Value
	lines := strings.Split(top, "\n")
	wantOrder := []string{"top", "mid", "low"}
	for i, want := range wantOrder {
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %q, want participant %q", i, lines[i], want)
		}
	}
	// Rendering must not reorder the stored slice.
	if tourney.Participants[0].Name != "mid" {
		t.Error("render mutated the document")
	}
}

func TestDetailCurrencyLabelAndOverflow(t *testing.T) {
	tourney := &models.Tournament{Name: "Kill Fest", Currency: "Kills"}
	for i := 0; i < 14; i++ {
		tourney.Participants = append(tourney.Participants, models.Participant{
			Name: fmt.Sprintf("p%02d", i), Kills: 20 - i,
		})
	}

	view, err := Detail(tourney, viewer)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	field := view.Fields[len(view.Fields)-1]
	if !strings.Contains(field.Name, "+4") {
		t.Errorf("overflow count missing from %q", field.Name)
	}
	if !strings.Contains(field.Value, "Kills") || strings.Contains(field.Value, "Pts") {
		t.Errorf("kills-flavored currency must label kills: %q", field.Value)
	}
	if got := strings.Count(field.Value, "\n") + 1; got != 10 {
		t.Errorf("expected 10 listed participants, got %d", got)
	}
}

func TestPortalSkipsOversizedNames(t *testing.T) {
	doc := docWith(t, 2)
	doc.Put(&models.Tournament{Name: strings.Repeat("x", 150)})

	view, err := Portal(doc, viewer)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	menu := view.Controls[0]
	if menu.Kind != models.ControlSelect {
		t.Fatal("first control must be the quick-select menu")
	}
	if len(menu.Options) != 2 {
		t.Errorf("oversized name must be skipped, got %d options", len(menu.Options))
	}
	for _, opt := range menu.Options {
		if !token.Authorize(viewer, opt.Value) {
			t.Errorf("option %q is not addressed to the viewer", opt.Value)
		}
	}
}

func TestPortalEmptyDocumentPlaceholder(t *testing.T) {
	view, err := Portal(models.NewDocument(), viewer)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	menu := view.Controls[0]
	if len(menu.Options) != 1 || menu.Options[0].Label != "No tournaments found" {
		t.Errorf("options = %+v", menu.Options)
	}
}

func TestAdminPanelDeleteMenu(t *testing.T) {
	doc := docWith(t, 2)
	view, err := AdminPanel(doc, viewer)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(view.Controls) != 2 {
		t.Fatalf("expected action menu and delete menu, got %d controls", len(view.Controls))
	}
	deleteMenu := view.Controls[1]
	if len(deleteMenu.Options) != 2 {
		t.Fatalf("delete options = %d", len(deleteMenu.Options))
	}
	tok, err := token.Decode(deleteMenu.Options[0].Value)
	if err != nil {
		t.Fatalf("decode delete option: %v", err)
	}
	if tok.Action != token.ActionDelete || tok.Subject != "Cup 00" {
		t.Errorf("delete token = %+v", tok)
	}

	empty, err := AdminPanel(models.NewDocument(), viewer)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(empty.Controls) != 1 {
		t.Error("empty database must not render a delete menu")
	}
}

func TestHistoryPagination(t *testing.T) {
	stats := models.PlayerStats{TotalKills: 7, TotalPoints: 30}
	for i := 0; i < 8; i++ {
		stats.History = append(stats.History, models.TournamentResult{
			Name: fmt.Sprintf("T%d", i), Year: 2024, Won: i == 0,
		})
	}

	view, err := PlayerHistory("42", "sniper", stats, 1, viewer)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(view.Footer, "Page 2/2") {
		t.Errorf("footer = %q", view.Footer)
	}
	if got := strings.Count(view.Body, "**"); got != 6 { // 3 entries * bold pair
		t.Errorf("second page must hold 3 entries, body %q", view.Body)
	}
	tok, err := token.Decode(view.Controls[0].ID)
	if err != nil {
		t.Fatalf("decode prev: %v", err)
	}
	if tok.Action != token.ActionPlayerHistory || tok.Page != 0 || tok.Subject != "42" {
		t.Errorf("prev token = %+v", tok)
	}
}

// Кнопка Back to Profile ведёт на профиль своего субъекта, не на портал.
func TestHistoryBackToProfile(t *testing.T) {
	player, err := PlayerHistory("42", "sniper", models.PlayerStats{}, 0, viewer)
	if err != nil {
		t.Fatalf("render player history: %v", err)
	}
	back := player.Controls[len(player.Controls)-1]
	if back.Label != "Back to Profile" {
		t.Fatalf("last control = %+v", back)
	}
	tok, err := token.Decode(back.ID)
	if err != nil {
		t.Fatalf("decode back: %v", err)
	}
	if tok.Action != token.ActionPlayer || tok.Subject != "42" {
		t.Errorf("player back token = %+v", tok)
	}

	clan, err := ClanHistory("Night Raid", models.ClanStats{}, 0, viewer)
	if err != nil {
		t.Fatalf("render clan history: %v", err)
	}
	tok, err = token.Decode(clan.Controls[len(clan.Controls)-1].ID)
	if err != nil {
		t.Fatalf("decode clan back: %v", err)
	}
	if tok.Action != token.ActionClan || tok.Subject != "Night Raid" {
		t.Errorf("clan back token = %+v", tok)
	}
}
