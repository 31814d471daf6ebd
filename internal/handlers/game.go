package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pokertown/holdem/internal/game"
	"github.com/pokertown/holdem/internal/services"
	"github.com/pokertown/holdem/internal/table"
	"github.com/pokertown/holdem/internal/validation"
)

type GameHandler struct {
	service  *services.LobbyService
	registry *table.Registry
	newTable TableFactory
}

func NewGameHandler(service *services.LobbyService, registry *table.Registry, newTable TableFactory) *GameHandler {
	return &GameHandler{
		service:  service,
		registry: registry,
		newTable: newTable,
	}
}

func (h *GameHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/action", h.PlayerAction)
	r.Get("/{lobbyID}/state", h.GetState)

	return r
}

type PlayerActionRequest struct {
	LobbyID  string `json:"lobbyId" validate:"required"`
	PlayerID string `json:"playerId" validate:"required"`
	Action   string `json:"action" validate:"required,oneof=FOLD CHECK CALL BET RAISE"`
	Amount   int    `json:"amount" validate:"gte=0"`
}

// PlayerAction applies one betting action for a seated player. The
// table broadcasts resulting state over the websocket, so the response
// only acknowledges the action.
func (h *GameHandler) PlayerAction(w http.ResponseWriter, r *http.Request) {
	var req PlayerActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.Validate(req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := ResolveTable(r.Context(), h.service, h.registry, h.newTable, req.LobbyID)
	if err != nil {
		writeResolveError(w, err)
		return
	}

	if err := t.HandleAction(req.PlayerID, game.ActionType(req.Action), req.Amount); err != nil {
		writeActionError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetState returns the game as seen by the requesting player, or the
// redacted public view when no playerId query parameter is given.
func (h *GameHandler) GetState(w http.ResponseWriter, r *http.Request) {
	lobbyID := chi.URLParam(r, "lobbyID")
	playerID := r.URL.Query().Get("playerId")

	t, err := ResolveTable(r.Context(), h.service, h.registry, h.newTable, lobbyID)
	if err != nil {
		writeResolveError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, t.SnapshotFor(playerID))
}

func writeActionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrPlayerNotFound):
		writeErrorResponse(w, http.StatusNotFound, "Player is not seated at this table")
	case errors.Is(err, game.ErrOutOfTurn):
		writeErrorResponse(w, http.StatusBadRequest, "It is not your turn")
	case errors.Is(err, game.ErrIllegalAction):
		writeErrorResponse(w, http.StatusBadRequest, "That action is not legal right now")
	case errors.Is(err, game.ErrInvalidAmount):
		writeErrorResponse(w, http.StatusBadRequest, "Invalid bet amount")
	case errors.Is(err, game.ErrNoHandInProgress):
		writeErrorResponse(w, http.StatusConflict, "No hand is in progress")
	default:
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to apply action")
	}
}
