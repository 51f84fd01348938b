package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AmanLovesCats/RCC-Bot/live"
	"github.com/AmanLovesCats/RCC-Bot/middleware"
	"github.com/AmanLovesCats/RCC-Bot/models"
	"github.com/AmanLovesCats/RCC-Bot/services"
	"github.com/AmanLovesCats/RCC-Bot/store"
	"github.com/AmanLovesCats/RCC-Bot/token"
	"github.com/AmanLovesCats/RCC-Bot/views"
)

// GatewayHandler принимает события платформенного моста: вызовы команды,
// нажатия контролов, сабмиты форм и сообщения с вложениями. Между событиями
// процесс ничего не помнит, всё нужное едет в continuation-токене контрола.
type GatewayHandler struct {
	st         *store.FileStore
	stats      *services.StatsService
	uploads    *services.UploadService
	roster     models.RosterProvider
	cooldown   *middleware.CooldownGuard
	hub        *live.Hub
	uploadWait time.Duration
	logger     *slog.Logger
}

func NewGatewayHandler(
	st *store.FileStore,
	stats *services.StatsService,
	uploads *services.UploadService,
	roster models.RosterProvider,
	cooldown *middleware.CooldownGuard,
	hub *live.Hub,
	uploadWait time.Duration,
	logger *slog.Logger,
) *GatewayHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GatewayHandler{
		st:         st,
		stats:      stats,
		uploads:    uploads,
		roster:     roster,
		cooldown:   cooldown,
		hub:        hub,
		uploadWait: uploadWait,
		logger:     logger,
	}
}

// HandleSlash обрабатывает вызов /esports с опциями.
func (h *GatewayHandler) HandleSlash(ctx context.Context, inv models.SlashInvocation) *models.Response {
	if !h.cooldown.Allow(inv.PrincipalID) {
		return ephemeral(msgCooldown)
	}

	doc := h.st.Load()
	switch {
	case inv.AdminPanel:
		if !inv.IsAdmin {
			return ephemeral(msgAdminOnly)
		}
		return h.ephemeralView(views.AdminPanel(doc, inv.PrincipalID))
	case inv.TargetUserID != "" && !inv.Portal:
		return h.playerProfile(ctx, doc, inv.TargetUserID, inv.PrincipalID)
	default:
		// Явно запрошенный portal перекрывает остальные опции.
		return h.view(views.Portal(doc, inv.PrincipalID))
	}
}

// HandleControl обрабатывает нажатие кнопки или выбор пункта меню. Сначала
// проверка владения сессией, только потом всё остальное.
func (h *GatewayHandler) HandleControl(ctx context.Context, act models.ControlActivation) *models.Response {
	if !token.Authorize(act.PrincipalID, act.ControlID) {
		return ephemeral(msgForeignSession)
	}
	tok, err := token.Decode(act.ControlID)
	if err != nil {
		return ephemeral(msgStale)
	}
	if !h.cooldown.Allow(act.PrincipalID) {
		return ephemeral(msgCooldown)
	}

	// У меню настоящее действие лежит в выбранном пункте, и пункт несёт
	// собственный токен с тем же принципалом.
	switch tok.Action {
	case token.ActionPortalMenu, token.ActionAdminMenu, token.ActionDeleteMenu:
		if !token.Authorize(act.PrincipalID, act.SelectedValue) {
			return ephemeral(msgForeignSession)
		}
		tok, err = token.Decode(act.SelectedValue)
		if err != nil {
			return ephemeral(msgStale)
		}
	}

	return h.dispatch(ctx, tok, act.IsAdmin)
}

// dispatch выполняет действие токена. Набор действий закрытый: всё, что не
// попало в перечисленные ветки, считается протухшим взаимодействием.
func (h *GatewayHandler) dispatch(ctx context.Context, tok token.Token, isAdmin bool) *models.Response {
	doc := h.st.Load()

	switch tok.Action {
	case token.ActionPortal:
		return h.view(views.Portal(doc, tok.Principal))

	case token.ActionList:
		return h.view(views.List(doc, tok.Page, tok.Principal))

	case token.ActionDetails:
		t := doc.Get(tok.Subject)
		if t == nil {
			return ephemeral("Tournament not found. It may have been deleted.")
		}
		return h.view(views.Detail(t, tok.Principal))

	case token.ActionPlayer:
		return h.playerProfile(ctx, doc, tok.Subject, tok.Principal)

	case token.ActionPlayerHistory:
		username := h.username(ctx, tok.Subject)
		stats := h.stats.PlayerStats(doc, tok.Subject)
		return h.view(views.PlayerHistory(tok.Subject, username, stats, tok.Page, tok.Principal))

	case token.ActionClan:
		return h.clanProfile(ctx, doc, tok.Subject, tok.Principal)

	case token.ActionClanHistory:
		stats, _, err := h.stats.ClanStats(ctx, doc, tok.Subject)
		if err != nil {
			h.logger.Error("clan history lookup failed", "clan", tok.Subject, "error", err)
			return ephemeral("Clan lookup failed, try again later.")
		}
		return h.view(views.ClanHistory(tok.Subject, stats, tok.Page, tok.Principal))

	case token.ActionSearchPlayer:
		return h.form(views.SearchPlayerForm(tok.Principal))

	case token.ActionSearchClan:
		return h.form(views.SearchClanForm(tok.Principal))

	case token.ActionAdmin:
		if !isAdmin {
			return ephemeral(msgAdminOnly)
		}
		return h.ephemeralView(views.AdminPanel(doc, tok.Principal))

	case token.ActionUpload:
		if !isAdmin {
			return ephemeral(msgAdminOnly)
		}
		if _, err := h.uploads.Open(tok.Principal); err != nil {
			if errors.Is(err, services.ErrUploadSessionOpen) {
				return ephemeral("You already have an open upload session. Send the files or wait it out.")
			}
			h.logger.Error("failed to open upload session", "principal", tok.Principal, "error", err)
			return ephemeral("Could not open an upload session, try again later.")
		}
		return ephemeral(fmt.Sprintf(
			"Upload session open. Send a message with .xlsx, .xls or .csv attachments within %s.",
			h.uploadWait))

	case token.ActionDeletePrompt:
		if !isAdmin {
			return ephemeral(msgAdminOnly)
		}
		return ephemeral("Pick a tournament in the delete menu on the admin panel.")

	case token.ActionDelete:
		if !isAdmin {
			return ephemeral(msgAdminOnly)
		}
		if !doc.Delete(tok.Subject) {
			return ephemeral("Tournament not found. It may have been deleted already.")
		}
		if err := h.st.Save(doc); err != nil {
			h.logger.Error("failed to persist deletion", "tournament", tok.Subject, "error", err)
			return ephemeral("Failed to delete the tournament, try again later.")
		}
		h.publish(live.Event{Type: "TOURNAMENT_DELETED", Payload: tok.Subject})
		return ephemeral(fmt.Sprintf("Tournament **%s** deleted.", tok.Subject))

	case token.ActionEditStats:
		if !isAdmin {
			return ephemeral(msgAdminOnly)
		}
		return h.form(views.EditStatsForm(tok.Principal))

	case token.ActionNone:
		return ephemeral(msgNothingHere)

	case token.ActionPortalMenu, token.ActionAdminMenu, token.ActionDeleteMenu,
		token.ActionPlayerForm, token.ActionClanForm, token.ActionStatsForm:
		// Токены меню разворачиваются до диспетчеризации, токены форм
		// приходят сабмитом, не нажатием.
		return ephemeral(msgStale)
	}

	return ephemeral(msgStale)
}

// HandleForm обрабатывает сабмит модальной формы. ID формы несёт тот же
// continuation-токен, что и контролы.
func (h *GatewayHandler) HandleForm(ctx context.Context, sub models.FormSubmission) *models.Response {
	if !token.Authorize(sub.PrincipalID, sub.FormID) {
		return ephemeral(msgForeignSession)
	}
	tok, err := token.Decode(sub.FormID)
	if err != nil {
		return ephemeral(msgStale)
	}
	if !h.cooldown.Allow(sub.PrincipalID) {
		return ephemeral(msgCooldown)
	}

	doc := h.st.Load()
	switch tok.Action {
	case token.ActionPlayerForm:
		query := strings.TrimSpace(sub.Fields["player_query"])
		if query == "" {
			return ephemeral("Enter a username or ID to search.")
		}
		member, found, err := h.roster.Resolve(ctx, query)
		if err != nil {
			h.logger.Error("player search failed", "query", query, "error", err)
			return ephemeral("Search failed, try again later.")
		}
		if found {
			return h.playerProfile(ctx, doc, member.ID, tok.Principal)
		}
		// Игрока нет на платформе, но он мог остаться в базе с записанным id.
		for _, name := range doc.Names() {
			if p := doc.Get(name).FindParticipantByName(query); p != nil && p.DiscordID != "" {
				return h.playerProfile(ctx, doc, p.DiscordID, tok.Principal)
			}
		}
		return ephemeral(fmt.Sprintf("Player %q not found.", query))

	case token.ActionClanForm:
		clan := strings.TrimSpace(sub.Fields["clan_query"])
		if clan == "" {
			return ephemeral("Enter a clan name to search.")
		}
		return h.clanProfile(ctx, doc, clan, tok.Principal)

	case token.ActionStatsForm:
		if !sub.IsAdmin {
			return ephemeral(msgAdminOnly)
		}
		return h.editStats(ctx, doc, sub.Fields)
	}

	return ephemeral(msgStale)
}

// editStats применяет форму правки статов: находит или создаёт запись
// участника в турнире и перезаписывает её числа.
func (h *GatewayHandler) editStats(ctx context.Context, doc *models.Document, fields map[string]string) *models.Response {
	userID := strings.TrimSpace(fields["user_id"])
	name := strings.TrimSpace(fields["tournament"])
	if userID == "" || name == "" {
		return ephemeral("User ID and tournament name are required.")
	}
	t := doc.Get(name)
	if t == nil {
		return ephemeral(fmt.Sprintf("Tournament %q not found.", name))
	}

	kills, err := strconv.Atoi(strings.TrimSpace(fields["kills"]))
	if err != nil {
		return ephemeral("Kills must be a number.")
	}
	points, err := strconv.Atoi(strings.TrimSpace(fields["points"]))
	if err != nil {
		return ephemeral("Points must be a number.")
	}

	username := h.username(ctx, userID)
	t.UpsertParticipant(models.Participant{
		Name:      username,
		DiscordID: userID,
		Kills:     kills,
		Points:    points,
	})
	if err := h.st.Save(doc); err != nil {
		h.logger.Error("failed to persist stats edit", "tournament", name, "error", err)
		return ephemeral("Failed to save the stats, try again later.")
	}
	h.publish(live.Event{Type: "TOURNAMENT_UPDATED", Payload: t})
	return ephemeral(fmt.Sprintf("Stats updated for **%s** in **%s**: %d kills, %d points.", username, name, kills, points))
}

// HandleAttachments обрабатывает сообщение с файлами. Без открытой сессии
// загрузки сообщение молча игнорируется и ответа нет.
func (h *GatewayHandler) HandleAttachments(ctx context.Context, msg models.AttachmentMessage) *models.Response {
	summary, err := h.uploads.HandleAttachments(ctx, msg)
	switch {
	case errors.Is(err, services.ErrNoUploadSession):
		return nil
	case errors.Is(err, services.ErrNoValidFiles):
		return ephemeral("No spreadsheet files attached. Expected .xlsx, .xls or .csv.")
	case err != nil:
		h.logger.Error("attachment batch failed", "principal", msg.PrincipalID, "error", err)
		return ephemeral("Upload failed, try again later.")
	}

	if summary.Updated > 0 {
		h.publish(live.Event{Type: "BATCH_INGESTED", Payload: summary})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Processed %d file(s): %d ingested, %d failed.", summary.Files, summary.Updated, summary.Errors)
	for _, failure := range summary.Failures {
		fmt.Fprintf(&b, "\n%s", failure)
	}
	var overwritten []string
	for _, report := range summary.Reports {
		overwritten = append(overwritten, report.Overwritten...)
	}
	if len(overwritten) > 0 {
		fmt.Fprintf(&b, "\nOverwrote existing data for: %s.", strings.Join(overwritten, ", "))
	}
	return &models.Response{Message: b.String()}
}

// Slash — HTTP-обёртка для платформенного моста.
func (h *GatewayHandler) Slash(w http.ResponseWriter, r *http.Request) {
	var inv models.SlashInvocation
	if err := readJSON(w, r, &inv); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, h.HandleSlash(r.Context(), inv), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GatewayHandler) Control(w http.ResponseWriter, r *http.Request) {
	var act models.ControlActivation
	if err := readJSON(w, r, &act); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, h.HandleControl(r.Context(), act), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GatewayHandler) Form(w http.ResponseWriter, r *http.Request) {
	var sub models.FormSubmission
	if err := readJSON(w, r, &sub); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, h.HandleForm(r.Context(), sub), nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GatewayHandler) Attachments(w http.ResponseWriter, r *http.Request) {
	var msg models.AttachmentMessage
	if err := readJSON(w, r, &msg); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	resp := h.HandleAttachments(r.Context(), msg)
	if resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err := writeJSON(w, http.StatusOK, resp, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GatewayHandler) playerProfile(ctx context.Context, doc *models.Document, userID, principalID string) *models.Response {
	username := h.username(ctx, userID)
	clan, err := h.roster.ClanOf(ctx, userID)
	if err != nil {
		h.logger.Warn("clan lookup failed", "user", userID, "error", err)
	}
	stats := h.stats.PlayerStats(doc, userID)
	return h.view(views.PlayerProfile(userID, username, clan, stats, principalID))
}

func (h *GatewayHandler) clanProfile(ctx context.Context, doc *models.Document, clan, principalID string) *models.Response {
	stats, members, err := h.stats.ClanStats(ctx, doc, clan)
	if err != nil {
		h.logger.Error("clan lookup failed", "clan", clan, "error", err)
		return ephemeral("Clan lookup failed, try again later.")
	}
	if len(members) == 0 && !h.stats.ClanExists(doc, clan) {
		return ephemeral(fmt.Sprintf("Clan %q not found.", clan))
	}
	return h.view(views.ClanProfile(clan, stats, members, principalID))
}

// username спрашивает платформу; для давно ушедших остаётся "User <id>".
func (h *GatewayHandler) username(ctx context.Context, userID string) string {
	username, err := h.roster.Username(ctx, userID)
	if err != nil {
		h.logger.Warn("username lookup failed", "user", userID, "error", err)
	}
	if username == "" {
		return "User " + userID
	}
	return username
}

func (h *GatewayHandler) publish(event live.Event) {
	if h.hub != nil {
		h.hub.Publish(event)
	}
}

func (h *GatewayHandler) view(v *models.View, err error) *models.Response {
	if err != nil {
		h.logger.Error("failed to render view", "error", err)
		return ephemeral(msgStale)
	}
	return &models.Response{View: v}
}

func (h *GatewayHandler) ephemeralView(v *models.View, err error) *models.Response {
	resp := h.view(v, err)
	resp.Ephemeral = true
	return resp
}

func (h *GatewayHandler) form(f *models.Form, err error) *models.Response {
	if err != nil {
		h.logger.Error("failed to render form", "error", err)
		return ephemeral(msgStale)
	}
	return &models.Response{Form: f}
}

func ephemeral(message string) *models.Response {
	return &models.Response{Message: message, Ephemeral: true}
}
