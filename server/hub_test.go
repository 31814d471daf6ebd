package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokertown/holdem/internal/game"
	"github.com/pokertown/holdem/internal/table"
)

func newWsFixture(t *testing.T) (*httptest.Server, *table.Table, *Hub) {
	t.Helper()

	g := game.NewGame("lobby1", 10, 20)
	require.NoError(t, g.AddSeat("p0", "Ann", 1000, false, true))
	require.NoError(t, g.AddSeat("p1", "Bob", 1000, false, false))
	require.NoError(t, g.AddSeat("p2", "Cid", 1000, false, false))

	var tbl *table.Table
	hub := NewHub(nil, func(ctx context.Context, lobbyID string) (*table.Table, error) {
		return tbl, nil
	})
	tbl = table.New(g, nil, hub, nil)
	t.Cleanup(tbl.Close)

	router := chi.NewRouter()
	router.Get("/ws/{lobbyID}/{playerID}", func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, w, r, chi.URLParam(r, "lobbyID"), chi.URLParam(r, "playerID"))
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv, tbl, hub
}

func dialWs(t *testing.T, srv *httptest.Server, lobbyID, playerID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/" + lobbyID + "/" + playerID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]json.RawMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	var event map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &event))
	return event
}

func eventType(t *testing.T, event map[string]json.RawMessage) string {
	t.Helper()
	var typ string
	require.NoError(t, json.Unmarshal(event["type"], &typ))
	return typ
}

func TestServeWs_SendsPrivateStateOnConnect(t *testing.T) {
	srv, tbl, _ := newWsFixture(t)
	require.NoError(t, tbl.StartGame())

	conn := dialWs(t, srv, "lobby1", "p0")
	event := readEvent(t, conn)
	assert.Equal(t, "game_state", eventType(t, event))

	var state game.GameView
	require.NoError(t, json.Unmarshal(event["gameState"], &state))
	require.Len(t, state.Players, 3)
	assert.Len(t, state.Players[0].Hand, 2, "own hand visible")
	assert.Empty(t, state.Players[1].Hand, "other hands hidden")
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	srv, _, hub := newWsFixture(t)

	conn0 := dialWs(t, srv, "lobby1", "p0")
	conn1 := dialWs(t, srv, "lobby1", "p1")
	readEvent(t, conn0) // initial game_state
	readEvent(t, conn1)

	hub.BroadcastToTable("lobby1", table.ErrorEvent{Type: table.EventError, Message: "hello"})

	for _, conn := range []*websocket.Conn{conn0, conn1} {
		event := readEvent(t, conn)
		assert.Equal(t, "error", eventType(t, event))
	}
}

func TestHub_SendToPlayerIsTargeted(t *testing.T) {
	srv, _, hub := newWsFixture(t)

	conn0 := dialWs(t, srv, "lobby1", "p0")
	conn1 := dialWs(t, srv, "lobby1", "p1")
	readEvent(t, conn0)
	readEvent(t, conn1)

	hub.SendToPlayer("lobby1", "p0", table.ErrorEvent{Type: table.EventError, Message: "only p0"})
	event := readEvent(t, conn0)
	assert.Equal(t, "error", eventType(t, event))

	// p1 must not receive the targeted event.
	require.NoError(t, conn1.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := conn1.ReadMessage()
	assert.Error(t, err)
}

func TestServeWs_PlayerActionRoutedToTable(t *testing.T) {
	srv, tbl, _ := newWsFixture(t)
	require.NoError(t, tbl.StartGame())

	conn := dialWs(t, srv, "lobby1", "p0")
	readEvent(t, conn) // initial game_state

	require.NoError(t, conn.WriteJSON(map[string]any{
		"action":     "player_action",
		"gameAction": "CALL",
		"amount":     0,
	}))

	// The applied action comes back as a public update with the turn
	// handed to the next seat.
	for {
		event := readEvent(t, conn)
		if eventType(t, event) != "game_update" {
			continue
		}
		var state game.GameView
		require.NoError(t, json.Unmarshal(event["gameState"], &state))
		assert.Equal(t, 1, state.CurrentPlayerIndex)
		assert.Equal(t, 50, state.Pot)
		return
	}
}

func TestServeWs_IllegalActionReturnsError(t *testing.T) {
	srv, tbl, _ := newWsFixture(t)
	require.NoError(t, tbl.StartGame())

	// p1 is not the acting seat.
	conn := dialWs(t, srv, "lobby1", "p1")
	readEvent(t, conn)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"action":     "player_action",
		"gameAction": "FOLD",
	}))

	event := readEvent(t, conn)
	assert.Equal(t, "error", eventType(t, event))
}

func TestServeWs_UnknownLobbyRejected(t *testing.T) {
	hub := NewHub(nil, func(ctx context.Context, lobbyID string) (*table.Table, error) {
		return nil, context.DeadlineExceeded
	})
	router := chi.NewRouter()
	router.Get("/ws/{lobbyID}/{playerID}", func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, w, r, chi.URLParam(r, "lobbyID"), chi.URLParam(r, "playerID"))
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/nope/p0"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
