package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pokertown/holdem/internal/database"
	"github.com/pokertown/holdem/internal/game"
	"github.com/pokertown/holdem/internal/services"
	"github.com/pokertown/holdem/internal/table"
	"github.com/pokertown/holdem/internal/validation"
)

// TableFactory builds a table actor for a freshly loaded game. The
// server injects one that wires the gateway, broadcast hub and store.
type TableFactory func(*game.Game) *table.Table

type LobbyHandler struct {
	service  *services.LobbyService
	registry *table.Registry
	newTable TableFactory
}

func NewLobbyHandler(service *services.LobbyService, registry *table.Registry, newTable TableFactory) *LobbyHandler {
	return &LobbyHandler{
		service:  service,
		registry: registry,
		newTable: newTable,
	}
}

func (h *LobbyHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/create", h.CreateLobby)
	r.Post("/join", h.JoinLobby)
	r.Post("/{lobbyID}/start", h.StartGame)
	r.Get("/{lobbyID}", h.GetLobby)

	return r
}

type PlayerConfig struct {
	ID    string `json:"id,omitempty" validate:"omitempty,max=64"`
	Name  string `json:"name" validate:"required,min=1,max=32,playername"`
	Chips int    `json:"chips" validate:"gte=0"`
}

type CreateLobbyRequest struct {
	HostConfig PlayerConfig `json:"hostConfig"`
	SmallBlind int          `json:"smallBlind" validate:"required,gt=0"`
	BigBlind   int          `json:"bigBlind" validate:"required,gtfield=SmallBlind"`
}

type JoinLobbyRequest struct {
	LobbyID      string       `json:"lobbyId" validate:"required"`
	PlayerConfig PlayerConfig `json:"playerConfig"`
}

type LobbyResponse struct {
	Lobby table.LobbySummary `json:"lobby"`
}

// CreateLobby creates a lobby with the host seated, seeds the AI
// opponents and registers the live table actor.
func (h *LobbyHandler) CreateLobby(w http.ResponseWriter, r *http.Request) {
	var req CreateLobbyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.Validate(req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	spec := playerSpec(req.HostConfig)

	lobby, err := h.service.CreateLobby(r.Context(), spec, req.SmallBlind, req.BigBlind)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, database.FriendlyMessage(err))
		return
	}

	g, err := services.BuildGame(lobby)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "Failed to build game")
		return
	}
	t := h.newTable(g)
	h.registry.Put(t)

	writeJSONResponse(w, http.StatusCreated, LobbyResponse{Lobby: t.Lobby()})
}

// JoinLobby seats an additional player in an existing lobby.
func (h *LobbyHandler) JoinLobby(w http.ResponseWriter, r *http.Request) {
	var req JoinLobbyRequest
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

	spec := playerSpec(req.PlayerConfig)
	if err := h.service.JoinLobby(r.Context(), req.LobbyID, spec); err != nil {
		switch {
		case errors.Is(err, game.ErrTableFull):
			writeErrorResponse(w, http.StatusConflict, "Lobby is full")
		case errors.Is(err, game.ErrSeatTaken):
			writeErrorResponse(w, http.StatusConflict, "Player is already seated")
		case errors.Is(err, gorm.ErrRecordNotFound):
			writeErrorResponse(w, http.StatusNotFound, "Lobby not found")
		default:
			writeErrorResponse(w, http.StatusInternalServerError, database.FriendlyMessage(err))
		}
		return
	}
	if err := t.Join(spec.ID, spec.Name, spec.Chips, spec.IsAI, false); err != nil {
		writeErrorResponse(w, http.StatusConflict, "Lobby is full")
		return
	}

	writeJSONResponse(w, http.StatusOK, LobbyResponse{Lobby: t.Lobby()})
}

// StartGame deals the first hand of a lobby.
func (h *LobbyHandler) StartGame(w http.ResponseWriter, r *http.Request) {
	lobbyID := chi.URLParam(r, "lobbyID")

	t, err := ResolveTable(r.Context(), h.service, h.registry, h.newTable, lobbyID)
	if err != nil {
		writeResolveError(w, err)
		return
	}

	if err := t.StartGame(); err != nil {
		switch {
		case errors.Is(err, game.ErrHandInProgress):
			writeErrorResponse(w, http.StatusConflict, "Game already started")
		case errors.Is(err, game.ErrInsufficientPlayers):
			writeErrorResponse(w, http.StatusBadRequest, "At least two players are required")
		default:
			writeErrorResponse(w, http.StatusInternalServerError, "Failed to start game")
		}
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]string{"status": "started"})
}

// GetLobby returns the roster and blinds for a lobby.
func (h *LobbyHandler) GetLobby(w http.ResponseWriter, r *http.Request) {
	lobbyID := chi.URLParam(r, "lobbyID")

	t, err := ResolveTable(r.Context(), h.service, h.registry, h.newTable, lobbyID)
	if err != nil {
		writeResolveError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, LobbyResponse{Lobby: t.Lobby()})
}

func playerSpec(cfg PlayerConfig) services.PlayerSpec {
	spec := services.PlayerSpec{
		ID:    cfg.ID,
		Name:  cfg.Name,
		Chips: cfg.Chips,
	}
	if spec.ID == "" {
		spec.ID = uuid.New().String()
	}
	if spec.Chips <= 0 {
		spec.Chips = 1000
	}
	return spec
}

// ResolveTable returns the live table actor for a lobby, rebuilding it
// from the database after a restart.
func ResolveTable(ctx context.Context, svc *services.LobbyService, reg *table.Registry, factory TableFactory, lobbyID string) (*table.Table, error) {
	if t := reg.Get(lobbyID); t != nil {
		return t, nil
	}
	lobby, err := svc.GetLobby(ctx, lobbyID)
	if err != nil {
		return nil, err
	}
	g, err := services.BuildGame(lobby)
	if err != nil {
		return nil, err
	}
	t := factory(g)
	reg.Put(t)
	return t, nil
}

func writeResolveError(w http.ResponseWriter, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeErrorResponse(w, http.StatusNotFound, "Lobby not found")
		return
	}
	writeErrorResponse(w, http.StatusInternalServerError, "Failed to load lobby")
}
