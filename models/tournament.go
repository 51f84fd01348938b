package models

import "strings"

// Tournament представляет один завершённый турнир в базе киберспорта.
// Name одновременно является ключом документа, дубликатов быть не может.
type Tournament struct {
	Name         string        `json:"name"`
	Type         string        `json:"type"`
	SubType      string        `json:"subType"`
	Currency     string        `json:"currency"`
	Year         int           `json:"year"`
	StartDate    string        `json:"startDate"`
	EndDate      string        `json:"endDate"`
	Prize        string        `json:"prize"`
	WinnerID     string        `json:"winnerId"`
	WinnerName   string        `json:"winnerName"`
	Participants []Participant `json:"participants"`
}

// KillsBased reports whether the tournament's dominant stat is kills.
// Driven by the free-text currency field, same rule per-row during ingestion.
func (t *Tournament) KillsBased() bool {
	return strings.Contains(strings.ToLower(t.Currency), "kill")
}

// ClanTournament — турнир клановый, если type или subType содержит "clan".
func (t *Tournament) ClanTournament() bool {
	return strings.Contains(strings.ToLower(t.Type), "clan") ||
		strings.Contains(strings.ToLower(t.SubType), "clan")
}

// UpsertParticipant replaces the participant matching the same identity, or
// appends a new one. Identity: non-empty DiscordID, otherwise case-insensitive
// name among unattributed entries. Last write wins.
func (t *Tournament) UpsertParticipant(p Participant) {
	for i := range t.Participants {
		if t.Participants[i].SameIdentity(p) {
			t.Participants[i] = p
			return
		}
	}
	t.Participants = append(t.Participants, p)
}

// FindParticipantByID returns the participant attributed to the given
// principal id, or nil.
func (t *Tournament) FindParticipantByID(discordID string) *Participant {
	if discordID == "" {
		return nil
	}
	for i := range t.Participants {
		if t.Participants[i].DiscordID == discordID {
			return &t.Participants[i]
		}
	}
	return nil
}

// FindParticipantByName returns the participant with the given display name
// (case-insensitive), or nil.
func (t *Tournament) FindParticipantByName(name string) *Participant {
	for i := range t.Participants {
		if strings.EqualFold(t.Participants[i].Name, name) {
			return &t.Participants[i]
		}
	}
	return nil
}
