package services

import (
	"context"
	"testing"

	"github.com/AmanLovesCats/RCC-Bot/models"
)

type stubRoster struct {
	members map[string][]models.Member
}

func (s *stubRoster) ClanOf(context.Context, string) (string, error) { return "", nil }

func (s *stubRoster) ClanMembers(_ context.Context, clan string) ([]models.Member, error) {
	return s.members[clan], nil
}

func (s *stubRoster) Resolve(context.Context, string) (models.Member, bool, error) {
	return models.Member{}, false, nil
}

func (s *stubRoster) Username(context.Context, string) (string, error) { return "", nil }

func statsDoc() *models.Document {
	doc := models.NewDocument()

	solo := &models.Tournament{Name: "Summer Cup", Year: 2024}
	solo.UpsertParticipant(models.Participant{Name: "alpha", DiscordID: "100", Kills: 3, Points: 9})
	solo.UpsertParticipant(models.Participant{Name: "beta", DiscordID: "200", Kills: 7, Points: 4})
	doc.Put(solo)

	// Победитель записан, но в списке участников его нет.
	won := &models.Tournament{Name: "Raid Night", Year: 2025, WinnerID: "100", WinnerName: "alpha"}
	doc.Put(won)

	clan := &models.Tournament{Name: "Clan Wars", Type: "Clan", Year: 2025, WinnerName: "Night Raid", Prize: "5000"}
	clan.UpsertParticipant(models.Participant{Name: "Night Raid", Kills: 11, Points: 30})
	doc.Put(clan)

	return doc
}

func TestPlayerStats(t *testing.T) {
	s := NewStatsService(&stubRoster{})
	stats := s.PlayerStats(statsDoc(), "100")

	if stats.TotalKills != 3 || stats.TotalPoints != 9 {
		t.Errorf("totals = %d kills / %d points", stats.TotalKills, stats.TotalPoints)
	}
	if len(stats.History) != 2 {
		t.Fatalf("history = %+v", stats.History)
	}
	if len(stats.Won) != 1 || stats.Won[0].Name != "Raid Night" {
		t.Fatalf("won = %+v", stats.Won)
	}
	// Приз не записан — в профиле N/A.
	if stats.Won[0].Prize != "N/A" {
		t.Errorf("prize = %q", stats.Won[0].Prize)
	}
}

func TestPlayerStatsUnknownPlayer(t *testing.T) {
	s := NewStatsService(&stubRoster{})
	stats := s.PlayerStats(statsDoc(), "999")

	if stats.TotalKills != 0 || len(stats.History) != 0 || len(stats.Won) != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestClanStats(t *testing.T) {
	roster := &stubRoster{members: map[string][]models.Member{
		"Night Raid": {{ID: "100", Username: "alpha"}},
	}}
	s := NewStatsService(roster)

	stats, members, err := s.ClanStats(context.Background(), statsDoc(), "Night Raid")
	if err != nil {
		t.Fatalf("clan stats: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("members = %+v", members)
	}

	// Киллы: 3 от атрибутированного участника клана + 11 от записи с именем
	// клана без id. Очки и история — только по клановому турниру.
	if stats.TotalKills != 14 {
		t.Errorf("total kills = %d, want 14", stats.TotalKills)
	}
	if stats.TotalPoints != 30 {
		t.Errorf("total points = %d, want 30", stats.TotalPoints)
	}
	if len(stats.History) != 1 || stats.History[0].Name != "Clan Wars" || !stats.History[0].Won {
		t.Fatalf("history = %+v", stats.History)
	}
	if len(stats.Won) != 1 || stats.Won[0].Prize != "5000" {
		t.Fatalf("won = %+v", stats.Won)
	}
}

func TestClanExists(t *testing.T) {
	s := NewStatsService(&stubRoster{})
	doc := statsDoc()

	if !s.ClanExists(doc, "night raid") {
		t.Error("lookup must be case-insensitive")
	}
	if s.ClanExists(doc, "Ghost Clan") {
		t.Error("unknown clan must not exist")
	}
}
