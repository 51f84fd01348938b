package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/AmanLovesCats/RCC-Bot/models"
)

// StatsService агрегирует статистику игроков и кланов по документу базы.
// Сами вычисления чистые; платформа нужна только за списком членов клана.
type StatsService struct {
	roster models.RosterProvider
}

func NewStatsService(roster models.RosterProvider) *StatsService {
	return &StatsService{roster: roster}
}

// PlayerStats собирает агрегат игрока через все турниры. "Выиграл" — только
// когда записанный winnerId турнира равен принципалу.
func (s *StatsService) PlayerStats(doc *models.Document, userID string) models.PlayerStats {
	var stats models.PlayerStats

	for _, name := range doc.Names() {
		tourney := doc.Get(name)
		participant := tourney.FindParticipantByID(userID)
		isWinner := tourney.WinnerID != "" && tourney.WinnerID == userID

		if participant == nil && !isWinner {
			continue
		}

		result := models.TournamentResult{
			Name: tourney.Name,
			Year: tourney.Year,
			Won:  isWinner,
		}
		if participant != nil {
			result.Kills = participant.Kills
			result.Points = participant.Points
			stats.TotalKills += participant.Kills
			stats.TotalPoints += participant.Points
		}
		stats.History = append(stats.History, result)

		if isWinner {
			stats.Won = append(stats.Won, models.WinRecord{
				Name:  tourney.Name,
				Prize: defaultPrize(tourney.Prize),
			})
		}
	}
	return stats
}

// ClanExists проверяет, встречается ли клан хоть в одном турнире как запись
// участника.
func (s *StatsService) ClanExists(doc *models.Document, clan string) bool {
	for _, tourney := range doc.Tournaments {
		if tourney.FindParticipantByName(clan) != nil {
			return true
		}
	}
	return false
}

// ClanStats собирает агрегат клана. Киллы суммируются по атрибутированным
// участникам клана и по неатрибутированным записям с именем клана; очки и
// история — только по клановым турнирам; победы — по совпадению winnerName.
func (s *StatsService) ClanStats(ctx context.Context, doc *models.Document, clan string) (models.ClanStats, []models.Member, error) {
	members, err := s.roster.ClanMembers(ctx, clan)
	if err != nil {
		return models.ClanStats{}, nil, fmt.Errorf("failed to fetch clan members: %w", err)
	}
	memberIDs := make(map[string]bool, len(members))
	for _, m := range members {
		memberIDs[m.ID] = true
	}

	var stats models.ClanStats
	for _, name := range doc.Names() {
		tourney := doc.Get(name)

		for _, p := range tourney.Participants {
			if p.DiscordID != "" && memberIDs[p.DiscordID] {
				stats.TotalKills += p.Kills
			}
			if p.DiscordID == "" && strings.EqualFold(p.Name, clan) {
				stats.TotalKills += p.Kills
			}
		}

		wonByClan := tourney.WinnerName != "" && strings.EqualFold(tourney.WinnerName, clan)

		if tourney.ClanTournament() {
			if entry := tourney.FindParticipantByName(clan); entry != nil {
				stats.TotalPoints += entry.Points
				stats.History = append(stats.History, models.TournamentResult{
					Name:   tourney.Name,
					Kills:  entry.Kills,
					Points: entry.Points,
					Year:   tourney.Year,
					Won:    wonByClan,
				})
			}
		}

		if wonByClan {
			stats.Won = append(stats.Won, models.WinRecord{
				Name:  tourney.Name,
				Prize: defaultPrize(tourney.Prize),
			})
		}
	}
	return stats, members, nil
}

func defaultPrize(prize string) string {
	if prize == "" {
		return "N/A"
	}
	return prize
}
