package models

import "strings"

// Participant — одна строка результатов внутри турнира. Пустой DiscordID
// означает неатрибутированную запись (например, клан целиком).
type Participant struct {
	Name      string `json:"name"`
	DiscordID string `json:"discordId"`
	Kills     int    `json:"kills"`
	Points    int    `json:"points"`
}

// SameIdentity reports whether two rows describe the same entry within one
// tournament: matching non-empty discord ids, or both unattributed with the
// same case-insensitive name.
func (p Participant) SameIdentity(other Participant) bool {
	if p.DiscordID != "" || other.DiscordID != "" {
		return p.DiscordID == other.DiscordID
	}
	return strings.EqualFold(p.Name, other.Name)
}
