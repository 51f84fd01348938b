package handlers

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/AmanLovesCats/RCC-Bot/live"
	"github.com/AmanLovesCats/RCC-Bot/services"
	"github.com/AmanLovesCats/RCC-Bot/store"
	"github.com/go-chi/chi/v5"
)

// tournamentParam достаёт имя турнира из пути. Имена содержат пробелы,
// поэтому сегмент приходит закодированным.
func tournamentParam(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		return decoded
	}
	return name
}

// DashboardHandler — REST-срез базы для админского дашборда. Читает всегда
// свежий документ, как и шлюз.
type DashboardHandler struct {
	st     *store.FileStore
	hub    *live.Hub
	logger *slog.Logger
}

func NewDashboardHandler(st *store.FileStore, hub *live.Hub, logger *slog.Logger) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{st: st, hub: hub, logger: logger}
}

// ListTournaments отдаёт весь документ: имена в map-е и есть, а дашборду
// нужны полные записи.
func (h *DashboardHandler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	doc := h.st.Load()
	if err := writeJSON(w, http.StatusOK, doc, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DashboardHandler) GetTournament(w http.ResponseWriter, r *http.Request) {
	name := tournamentParam(r)
	doc := h.st.Load()
	t := doc.Get(name)
	if t == nil {
		mapServiceErrorToHTTP(w, r, services.ErrTournamentNotFound)
		return
	}
	if err := writeJSON(w, http.StatusOK, t, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DashboardHandler) DeleteTournament(w http.ResponseWriter, r *http.Request) {
	name := tournamentParam(r)
	doc := h.st.Load()
	if !doc.Delete(name) {
		mapServiceErrorToHTTP(w, r, services.ErrTournamentNotFound)
		return
	}
	if err := h.st.Save(doc); err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	if h.hub != nil {
		h.hub.Publish(live.Event{Type: "TOURNAMENT_DELETED", Payload: name})
	}
	h.logger.Info("tournament deleted via dashboard", "tournament", name)
	w.WriteHeader(http.StatusNoContent)
}
