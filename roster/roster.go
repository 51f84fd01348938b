package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/AmanLovesCats/RCC-Bot/models"
)

// New собирает провайдера по конфигурации. Без базового URL моста бот живёт
// дальше: профили просто показывают "No Clan" и "User <id>".
func New(baseURL, guildID string) models.RosterProvider {
	if baseURL == "" {
		return Null{}
	}
	return NewHTTPRoster(baseURL, guildID)
}

// HTTPRoster спрашивает платформенный мост о членстве в кланах и именах
// пользователей домашней гильдии.
type HTTPRoster struct {
	base    string
	guildID string
	client  *http.Client
}

func NewHTTPRoster(baseURL, guildID string) *HTTPRoster {
	return &HTTPRoster{
		base:    baseURL,
		guildID: guildID,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type memberPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Clan     string `json:"clan,omitempty"`
}

// get делает запрос к мосту. 404 — не ошибка, а "нет такого".
func (r *HTTPRoster) get(ctx context.Context, path string, dst any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.base+path, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build roster request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("roster request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			return false, fmt.Errorf("failed to decode roster response: %w", err)
		}
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("roster request returned status %d", resp.StatusCode)
	}
}

func (r *HTTPRoster) ClanOf(ctx context.Context, userID string) (string, error) {
	var m memberPayload
	ok, err := r.get(ctx, fmt.Sprintf("/guilds/%s/members/%s", r.guildID, url.PathEscape(userID)), &m)
	if err != nil || !ok {
		return "", err
	}
	return m.Clan, nil
}

func (r *HTTPRoster) ClanMembers(ctx context.Context, clan string) ([]models.Member, error) {
	var payload []memberPayload
	ok, err := r.get(ctx, fmt.Sprintf("/guilds/%s/clans/%s/members", r.guildID, url.PathEscape(clan)), &payload)
	if err != nil || !ok {
		return nil, err
	}
	members := make([]models.Member, 0, len(payload))
	for _, m := range payload {
		members = append(members, models.Member{ID: m.ID, Username: m.Username})
	}
	return members, nil
}

func (r *HTTPRoster) Resolve(ctx context.Context, query string) (models.Member, bool, error) {
	var m memberPayload
	ok, err := r.get(ctx, fmt.Sprintf("/guilds/%s/resolve?query=%s", r.guildID, url.QueryEscape(query)), &m)
	if err != nil || !ok {
		return models.Member{}, false, err
	}
	return models.Member{ID: m.ID, Username: m.Username}, true, nil
}

func (r *HTTPRoster) Username(ctx context.Context, userID string) (string, error) {
	var m memberPayload
	ok, err := r.get(ctx, fmt.Sprintf("/guilds/%s/members/%s", r.guildID, url.PathEscape(userID)), &m)
	if err != nil || !ok {
		return "", err
	}
	return m.Username, nil
}

// Null — провайдер для запуска без моста.
type Null struct{}

func (Null) ClanOf(context.Context, string) (string, error) { return "", nil }

func (Null) ClanMembers(context.Context, string) ([]models.Member, error) { return nil, nil }

func (Null) Resolve(context.Context, string) (models.Member, bool, error) {
	return models.Member{}, false, nil
}

func (Null) Username(context.Context, string) (string, error) { return "", nil }
