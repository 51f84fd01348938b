package ingest

import (
	"errors"
	"testing"

	"github.com/AmanLovesCats/RCC-Bot/models"
)

func ingestTable(t *testing.T, table [][]string, doc *models.Document) *Report {
	t.Helper()
	report, err := New(nil).Ingest(table, doc)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	return report
}

func TestIngestSingleTournament(t *testing.T) {
	doc := models.NewDocument()
	table := [][]string{
		{"Tournament", "Participant", "ID", "Kills"},
		{"Summer Cup", "alpha", "100", "9"},
		{"", "beta", "200", "5"},
		{"", "gamma", "", "2"},
	}

	report := ingestTable(t, table, doc)

	if report.TournamentsUpdated != 1 || report.TotalParticipants != 3 {
		t.Fatalf("report = %+v", report)
	}
	tourney := doc.Get("Summer Cup")
	if tourney == nil {
		t.Fatal("tournament not stored")
	}
	if len(tourney.Participants) != 3 {
		t.Fatalf("expected 3 participants, got %d", len(tourney.Participants))
	}
	// Колонка называется Kills, значит валюта по умолчанию Points не мешает:
	// стат пишется туда, куда указывает валюта турнира, а она не задана.
	if tourney.Participants[0].Points != 9 {
		t.Errorf("default currency is points, got %+v", tourney.Participants[0])
	}
	// Encounter-order winner policy: первая строка группы — победитель.
	if tourney.WinnerName != "alpha" || tourney.WinnerID != "100" {
		t.Errorf("winner = %q/%q, want alpha/100", tourney.WinnerName, tourney.WinnerID)
	}
}

func TestIngestKillsCurrency(t *testing.T) {
	doc := models.NewDocument()
	table := [][]string{
		{"Tournament", "Participant", "ID", "Kills", "Currency"},
		{"Raid Night", "alpha", "100", "9", "Kills"},
		{"", "beta", "200", "5", ""},
	}

	ingestTable(t, table, doc)

	tourney := doc.Get("Raid Night")
	if tourney.Participants[0].Kills != 9 || tourney.Participants[0].Points != 0 {
		t.Errorf("kills currency must fill kills: %+v", tourney.Participants[0])
	}
	// Пустая валюта строки наследует валюту турнира.
	if tourney.Participants[1].Kills != 5 {
		t.Errorf("inherited currency must fill kills: %+v", tourney.Participants[1])
	}
	if !tourney.KillsBased() {
		t.Error("tournament currency must be kills-flavored")
	}
}

func TestIngestPerRowCurrencySwitch(t *testing.T) {
	doc := models.NewDocument()
	table := [][]string{
		{"Tournament", "Participant", "Points", "Currency"},
		{"Mixed Cup", "alpha", "9", "Kills"},
		{"", "beta", "5", "Points"},
	}

	ingestTable(t, table, doc)

	tourney := doc.Get("Mixed Cup")
	if tourney.Participants[0].Kills != 9 {
		t.Errorf("row currency kills: %+v", tourney.Participants[0])
	}
	if tourney.Participants[1].Points != 5 {
		t.Errorf("row currency points: %+v", tourney.Participants[1])
	}
}

func TestIngestIdempotentOnIdentity(t *testing.T) {
	doc := models.NewDocument()
	table := [][]string{
		{"Tournament", "Participant", "ID", "Points"},
		{"Cup", "alpha", "100", "3"},
		{"", "alpha the great", "100", "8"},
		{"", "Owls", "", "1"},
		{"", "owls", "", "4"},
	}

	report := ingestTable(t, table, doc)

	tourney := doc.Get("Cup")
	if len(tourney.Participants) != 2 {
		t.Fatalf("expected 2 unique participants, got %d", len(tourney.Participants))
	}
	if tourney.Participants[0].Points != 8 {
		t.Errorf("second occurrence must win: %+v", tourney.Participants[0])
	}
	if tourney.Participants[1].Points != 4 {
		t.Errorf("case-insensitive name identity must merge: %+v", tourney.Participants[1])
	}
	if report.TotalParticipants != 2 {
		t.Errorf("report counts merged participants, got %d", report.TotalParticipants)
	}
}

func TestIngestReportsOverwrites(t *testing.T) {
	doc := models.NewDocument()
	doc.Put(&models.Tournament{Name: "Cup", Participants: []models.Participant{{Name: "old"}}})

	table := [][]string{
		{"Tournament", "Participant", "Points"},
		{"Cup", "alpha", "3"},
		{"Fresh Cup", "beta", "1"},
	}
	report := ingestTable(t, table, doc)

	if len(report.Overwritten) != 1 || report.Overwritten[0] != "Cup" {
		t.Errorf("overwritten = %v, want [Cup]", report.Overwritten)
	}
	if got := doc.Get("Cup"); len(got.Participants) != 1 || got.Participants[0].Name != "alpha" {
		t.Errorf("overwrite must replace the whole tournament: %+v", got)
	}
}

func TestIngestMetadataFromGroupHeaderRow(t *testing.T) {
	doc := models.NewDocument()
	table := [][]string{
		{"Tournament", "Participant", "Points", "Event Type", "Subtype", "Year", "Start Date", "End Date", "Prize"},
		{"Clan Wars", "Owls", "10", "Clan", "Battle Royale", "2024", "45200", "45201", "$500"},
		{"", "Hawks", "7", "ignored", "ignored", "1999", "", "", "ignored"},
	}

	ingestTable(t, table, doc)

	tourney := doc.Get("Clan Wars")
	if tourney.Type != "Clan" || tourney.SubType != "Battle Royale" {
		t.Errorf("type/subType = %q/%q", tourney.Type, tourney.SubType)
	}
	if tourney.Year != 2024 || tourney.Prize != "$500" {
		t.Errorf("year/prize = %d/%q", tourney.Year, tourney.Prize)
	}
	if tourney.StartDate == "45200" || tourney.StartDate == "Unknown" {
		t.Errorf("excel serial date not converted: %q", tourney.StartDate)
	}
	if !tourney.ClanTournament() {
		t.Error("type containing clan must flag a clan tournament")
	}
}

func TestIngestFailures(t *testing.T) {
	p := New(nil)
	doc := models.NewDocument()

	if _, err := p.Ingest([][]string{{"Tournament", "Participant", "Points"}}, doc); !errors.Is(err, ErrEmptySheet) {
		t.Errorf("header-only sheet: got %v, want ErrEmptySheet", err)
	}
	if _, err := p.Ingest(nil, doc); !errors.Is(err, ErrEmptySheet) {
		t.Errorf("nil sheet: got %v, want ErrEmptySheet", err)
	}

	table := [][]string{
		{"Team", "Member", "Score"},
		{"x", "y", "1"},
	}
	if _, err := p.Ingest(table, doc); !errors.Is(err, ErrMissingColumns) {
		t.Errorf("got %v, want ErrMissingColumns", err)
	}
	if len(doc.Tournaments) != 0 {
		t.Error("failed ingest must leave the document untouched")
	}
}

func TestDecodeTableCSV(t *testing.T) {
	data := []byte("Tournament,Participant,Points\nCup,alpha,3\n")
	rows, err := DecodeTable("results.csv", data)
	if err != nil {
		t.Fatalf("decode csv: %v", err)
	}
	if len(rows) != 2 || rows[1][1] != "alpha" {
		t.Errorf("rows = %v", rows)
	}

	if _, err := DecodeTable("notes.txt", data); !errors.Is(err, ErrUnsupportedFile) {
		t.Errorf("got %v, want ErrUnsupportedFile", err)
	}
}

func TestFormatDate(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", "Unknown"},
		{"2024-06-01", "2024-06-01"},
		{"100", "100"}, // маленькое число — не сериальная дата
	}
	for _, tc := range cases {
		if got := FormatDate(tc.in); got != tc.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if got := FormatDate("45200"); got == "45200" || got == "Unknown" {
		t.Errorf("serial date must convert, got %q", got)
	}
}
