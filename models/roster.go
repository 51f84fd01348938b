package models

import "context"

// Member — пользователь чат-платформы, как его видит RosterProvider.
type Member struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// RosterProvider отдаёт членство в кланах и имена пользователей. Реализация
// живёт на стороне платформенного моста (клановые роли гильдии); здесь только
// порт. Реализации возвращают пустые значения, а не ошибку, когда клан или
// пользователь не найдены на платформе.
type RosterProvider interface {
	// ClanOf returns the clan name of a user, or "" when the user has none.
	ClanOf(ctx context.Context, userID string) (string, error)
	// ClanMembers lists the members carrying the clan's role.
	ClanMembers(ctx context.Context, clan string) ([]Member, error)
	// Resolve finds a member by username or id within the home guild.
	Resolve(ctx context.Context, query string) (Member, bool, error)
	// Username returns the display name for an id, or "" when unknown.
	Username(ctx context.Context, userID string) (string, error)
}
