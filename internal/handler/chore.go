package handler

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"choreboard/internal/auth"
	"choreboard/internal/store"
	"choreboard/internal/websocket"
)

type ChoreHandler struct {
	chores *store.ChoreStore
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewChoreHandler(cs *store.ChoreStore, hub *websocket.Hub, logger *slog.Logger) *ChoreHandler {
	return &ChoreHandler{chores: cs, hub: hub, logger: logger}
}

func (h *ChoreHandler) broadcast(ev websocket.Event) {
	if h.hub != nil {
		h.hub.Broadcast(ev)
	}
}

// ManagePage shows the add-chore form plus the list of existing chores with
// delete controls.
func (h *ChoreHandler) ManagePage(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	chores, err := h.chores.List()
	if err != nil {
		h.logger.Error("list chores", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	render(w, "add_chore.html", map[string]any{
		"Title":    "Chores — Choreboard",
		"Username": ac.Username,
		"Chores":   chores,
		"Flash":    popFlash(w, r),
	})
}

func (h *ChoreHandler) Add(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	valueStr := strings.TrimSpace(r.FormValue("value"))

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		setFlash(w, "Please enter a valid value for the chore.")
		http.Redirect(w, r, "/add_chore", http.StatusSeeOther)
		return
	}

	if name == "" {
		setFlash(w, "Chore name is required.")
		http.Redirect(w, r, "/add_chore", http.StatusSeeOther)
		return
	}

	chore, err := h.chores.Create(name, value)
	if err != nil {
		h.logger.Error("create chore", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.broadcast(websocket.NewEvent("chore", "created", chore.ID))

	setFlash(w, "Chore added successfully.")
	http.Redirect(w, r, "/add_chore", http.StatusSeeOther)
}

// Delete removes a chore and, via the FK cascade, all of its status rows.
func (h *ChoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	chore, err := h.chores.GetByID(id)
	if err != nil {
		h.logger.Error("get chore", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if chore == nil {
		http.NotFound(w, r)
		return
	}

	if err := h.chores.Delete(id); err != nil {
		h.logger.Error("delete chore", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.broadcast(websocket.NewEvent("chore", "deleted", id))

	setFlash(w, fmt.Sprintf("Deleted chore %q.", chore.Name))
	http.Redirect(w, r, "/add_chore", http.StatusSeeOther)
}
