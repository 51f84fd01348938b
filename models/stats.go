package models

// TournamentResult — участие в одном турнире, строка истории.
type TournamentResult struct {
	Name   string `json:"name"`
	Kills  int    `json:"kills"`
	Points int    `json:"points"`
	Year   int    `json:"year"`
	Won    bool   `json:"won"`
}

// WinRecord — выигранный турнир с призом.
type WinRecord struct {
	Name  string `json:"name"`
	Prize string `json:"prize"`
}

// PlayerStats — агрегат по игроку через все турниры документа.
type PlayerStats struct {
	TotalKills  int                `json:"totalKills"`
	TotalPoints int                `json:"totalPoints"`
	Won         []WinRecord        `json:"won"`
	History     []TournamentResult `json:"history"`
}

// ClanStats — агрегат по клану: киллы суммируются по участникам клана и
// неатрибутированным записям с именем клана, очки — только по клановым
// турнирам.
type ClanStats struct {
	TotalKills  int                `json:"totalKills"`
	TotalPoints int                `json:"totalPoints"`
	Won         []WinRecord        `json:"won"`
	History     []TournamentResult `json:"history"`
}
