package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"choreboard/internal/auth"
	"choreboard/internal/model"
	"choreboard/internal/store"
	"choreboard/internal/websocket"
)

type DashboardHandler struct {
	chores   *store.ChoreStore
	statuses *store.StatusStore
	hub      *websocket.Hub
	logger   *slog.Logger
}

func NewDashboardHandler(cs *store.ChoreStore, ss *store.StatusStore, hub *websocket.Hub, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{chores: cs, statuses: ss, hub: hub, logger: logger}
}

func (h *DashboardHandler) broadcast(ev websocket.Event) {
	if h.hub != nil {
		h.hub.Broadcast(ev)
	}
}

// Page renders today's checkbox grid. Chores without a status row yet get a
// synthesized all-false entry that is not persisted until the first save.
func (h *DashboardHandler) Page(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/dashboard" {
		http.NotFound(w, r)
		return
	}

	ac, ok := auth.FromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	today := model.Day(time.Now())

	chores, err := h.chores.List()
	if err != nil {
		h.logger.Error("list chores", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	statuses, err := h.statusesForDay(ac.UserID, today, chores)
	if err != nil {
		h.logger.Error("load statuses", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	points, completed, err := h.statuses.DaySummary(ac.UserID, today)
	if err != nil {
		h.logger.Error("day summary", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	render(w, "dashboard.html", map[string]any{
		"Title":     "Dashboard — Choreboard",
		"Username":  ac.Username,
		"Today":     today,
		"Chores":    chores,
		"Statuses":  statuses,
		"Points":    points,
		"Completed": completed,
		"Flash":     popFlash(w, r),
	})
}

// Submit reads the three checkbox flags per chore from the form and upserts
// the current user's rows for today in one transaction.
func (h *DashboardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/dashboard" {
		http.NotFound(w, r)
		return
	}

	ac, ok := auth.FromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	chores, err := h.chores.List()
	if err != nil {
		h.logger.Error("list chores", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	updates := make([]store.StatusUpdate, 0, len(chores))
	for _, c := range chores {
		updates = append(updates, store.StatusUpdate{
			ChoreID:   c.ID,
			Prepared:  r.Form.Get(fmt.Sprintf("prepared_%d", c.ID)) != "",
			Verified:  r.Form.Get(fmt.Sprintf("verified_%d", c.ID)) != "",
			Completed: r.Form.Get(fmt.Sprintf("completed_%d", c.ID)) != "",
		})
	}

	today := model.Day(time.Now())
	if err := h.statuses.UpsertDay(ac.UserID, today, updates); err != nil {
		h.logger.Error("upsert statuses", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.broadcast(websocket.NewEvent("status", "updated", ac.UserID))

	setFlash(w, "Chore statuses updated.")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// statusesForDay returns a map keyed by chore ID covering every chore,
// synthesizing unsaved rows for chores with no entry yet.
func (h *DashboardHandler) statusesForDay(userID int64, date string, chores []model.Chore) (map[int64]model.ChoreStatus, error) {
	listed, err := h.statuses.ListForUserOnDate(userID, date)
	if err != nil {
		return nil, err
	}

	statuses := make(map[int64]model.ChoreStatus, len(chores))
	for _, st := range listed {
		statuses[st.ChoreID] = st
	}
	for _, c := range chores {
		if _, ok := statuses[c.ID]; !ok {
			statuses[c.ID] = model.ChoreStatus{UserID: userID, ChoreID: c.ID, Date: date}
		}
	}
	return statuses, nil
}
