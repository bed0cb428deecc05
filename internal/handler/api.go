package handler

import (
	"log/slog"
	"net/http"
	"time"

	"choreboard/internal/auth"
	"choreboard/internal/model"
	"choreboard/internal/store"
)

// APIHandler serves the read-only JSON routes used by kiosks and scripts.
type APIHandler struct {
	chores   *store.ChoreStore
	statuses *store.StatusStore
	logger   *slog.Logger
}

func NewAPIHandler(cs *store.ChoreStore, ss *store.StatusStore, logger *slog.Logger) *APIHandler {
	return &APIHandler{chores: cs, statuses: ss, logger: logger}
}

func (h *APIHandler) ListChores(w http.ResponseWriter, r *http.Request) {
	chores, err := h.chores.List()
	if err != nil {
		h.logger.Error("list chores", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list chores"})
		return
	}
	if chores == nil {
		chores = []model.Chore{}
	}
	writeJSON(w, http.StatusOK, chores)
}

// ListStatuses returns the current user's statuses for the requested date
// (default today), including synthesized all-false rows for chores that have
// no entry yet.
func (h *APIHandler) ListStatuses(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	chores, err := h.chores.List()
	if err != nil {
		h.logger.Error("list chores", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list chores"})
		return
	}

	listed, err := h.statuses.ListForUserOnDate(ac.UserID, date)
	if err != nil {
		h.logger.Error("list statuses", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list statuses"})
		return
	}

	byChore := make(map[int64]model.ChoreStatus, len(listed))
	for _, st := range listed {
		byChore[st.ChoreID] = st
	}

	statuses := make([]model.ChoreStatus, 0, len(chores))
	for _, c := range chores {
		st, ok := byChore[c.ID]
		if !ok {
			st = model.ChoreStatus{UserID: ac.UserID, ChoreID: c.ID, Date: date}
		}
		statuses = append(statuses, st)
	}

	writeJSON(w, http.StatusOK, statuses)
}

func (h *APIHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	chores, err := h.chores.List()
	if err != nil {
		h.logger.Error("list chores", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list chores"})
		return
	}

	points, completed, err := h.statuses.DaySummary(ac.UserID, date)
	if err != nil {
		h.logger.Error("day summary", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to summarize"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":      date,
		"points":    points,
		"completed": completed,
		"total":     len(chores),
	})
}

// dateParam validates the optional ?date= query parameter, defaulting to
// today. On failure it writes a 400 and returns ok=false.
func dateParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	date := r.URL.Query().Get("date")
	if date == "" {
		return model.Day(time.Now()), true
	}
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date, expected YYYY-MM-DD"})
		return "", false
	}
	return date, true
}
