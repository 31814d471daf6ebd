package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokertown/holdem/internal/agent"
	"github.com/pokertown/holdem/internal/game"
	"github.com/pokertown/holdem/internal/table"
)

type nullSink struct{}

func (nullSink) BroadcastToTable(lobbyID string, event any)       {}
func (nullSink) SendToPlayer(lobbyID, playerID string, event any) {}

// testRouter mounts the lobby and game handlers over a registry that
// already holds one live three-player table.
func testRouter(t *testing.T) (chi.Router, *table.Table) {
	t.Helper()

	g := game.NewGame("lobby1", 10, 20)
	require.NoError(t, g.AddSeat("p0", "Ann", 1000, false, true))
	require.NoError(t, g.AddSeat("p1", "Bob", 1000, false, false))
	require.NoError(t, g.AddSeat("p2", "Cid", 1000, false, false))

	gateway := agent.NewGateway(agent.GatewayConfig{RequestsPerMinute: 60000, Burst: 100})
	tbl := table.New(g, gateway, nullSink{}, nil)
	t.Cleanup(tbl.Close)

	registry := table.NewRegistry()
	registry.Put(tbl)

	factory := func(g *game.Game) *table.Table {
		return table.New(g, gateway, nullSink{}, nil)
	}

	r := chi.NewRouter()
	r.Mount("/api/lobby", NewLobbyHandler(nil, registry, factory).Routes())
	r.Mount("/api/game", NewGameHandler(nil, registry, factory).Routes())
	return r, tbl
}

func postJSON(t *testing.T, router chi.Router, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPlayerAction_AppliesAction(t *testing.T) {
	router, tbl := testRouter(t)
	require.NoError(t, tbl.StartGame())

	w := postJSON(t, router, "/api/game/action", PlayerActionRequest{
		LobbyID:  "lobby1",
		PlayerID: "p0",
		Action:   "CALL",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 50, tbl.Snapshot().Pot)
}

func TestPlayerAction_DomainErrorsMapToStatusCodes(t *testing.T) {
	router, tbl := testRouter(t)
	require.NoError(t, tbl.StartGame())

	cases := []struct {
		name string
		req  PlayerActionRequest
		code int
	}{
		{"out of turn", PlayerActionRequest{LobbyID: "lobby1", PlayerID: "p1", Action: "FOLD"}, http.StatusBadRequest},
		{"illegal action", PlayerActionRequest{LobbyID: "lobby1", PlayerID: "p0", Action: "CHECK"}, http.StatusBadRequest},
		{"invalid amount", PlayerActionRequest{LobbyID: "lobby1", PlayerID: "p0", Action: "RAISE", Amount: 25}, http.StatusBadRequest},
		{"unknown player", PlayerActionRequest{LobbyID: "lobby1", PlayerID: "ghost", Action: "FOLD"}, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(t, router, "/api/game/action", tc.req)
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestPlayerAction_RejectsMalformedRequests(t *testing.T) {
	router, _ := testRouter(t)

	// Unknown action name never reaches the table.
	w := postJSON(t, router, "/api/game/action", PlayerActionRequest{
		LobbyID:  "lobby1",
		PlayerID: "p0",
		Action:   "SHOVE",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing fields are rejected.
	w = postJSON(t, router, "/api/game/action", PlayerActionRequest{Action: "FOLD"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Broken JSON is rejected.
	req := httptest.NewRequest(http.MethodPost, "/api/game/action", bytes.NewReader([]byte("{nope")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetState_RedactsByViewer(t *testing.T) {
	router, tbl := testRouter(t)
	require.NoError(t, tbl.StartGame())

	req := httptest.NewRequest(http.MethodGet, "/api/game/lobby1/state?playerId=p0", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var view game.GameView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Len(t, view.Players[0].Hand, 2)
	assert.Empty(t, view.Players[1].Hand)
}

func TestStartGame_Conflicts(t *testing.T) {
	router, tbl := testRouter(t)

	w := postJSON(t, router, "/api/lobby/lobby1/start", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, game.PreFlop, tbl.Snapshot().GamePhase)

	w = postJSON(t, router, "/api/lobby/lobby1/start", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetLobby_ReturnsRoster(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/lobby/lobby1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp LobbyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "lobby1", resp.Lobby.ID)
	assert.Len(t, resp.Lobby.Players, 3)
	assert.Equal(t, 10, resp.Lobby.SmallBlind)
	assert.Equal(t, 20, resp.Lobby.BigBlind)
}
