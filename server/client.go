package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pokertown/holdem/internal/game"
	"github.com/pokertown/holdem/internal/table"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Client is a middleman between one websocket connection and its
// lobby's room.
type Client struct {
	room     *room
	conn     *websocket.Conn
	send     chan []byte
	table    *table.Table
	playerID string
}

func newClient(room *room, conn *websocket.Conn, t *table.Table, playerID string) *Client {
	return &Client{
		room:     room,
		conn:     conn,
		send:     make(chan []byte, 64),
		table:    t,
		playerID: playerID,
	}
}

// readPump pumps inbound messages from the websocket connection to the
// table actor.
//
// The application runs readPump in a per-connection goroutine. The
// application ensures that there is at most one reader on a connection
// by executing all reads from this goroutine.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.room.unregister <- c:
		case <-c.room.stop:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		slog.Warn("set read deadline", "error", err)
	}
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("websocket unexpected close", "error", err)
			}
			break
		}
		if err := c.processMessage(message); err != nil {
			c.sendError(err.Error())
		}
	}
}

// writePump pumps messages from the room to the websocket connection.
//
// A goroutine running writePump is started for each connection. The
// application ensures that there is at most one writer to a connection
// by executing all writes from this goroutine.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The room closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				slog.Warn("write websocket message", "error", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) processMessage(rawMessage []byte) error {
	var baseMessage base
	if err := json.Unmarshal(rawMessage, &baseMessage); err != nil {
		return errors.New("malformed message")
	}

	switch baseMessage.Action {

	case actionPlayerAction:
		var action playerAction
		if err := json.Unmarshal(rawMessage, &action); err != nil {
			return errors.New("malformed player action")
		}
		return c.table.HandleAction(c.playerID, game.ActionType(action.GameAction), action.Amount)

	case actionGetState:
		c.sendPrivateState()
		return nil

	default:
		return errors.New("unexpected message action")
	}
}

// sendPrivateState pushes the connected player's own view of the game
// directly to this connection.
func (c *Client) sendPrivateState() {
	event := table.GameStateEvent{
		Type:      table.EventGameState,
		GameState: c.table.SnapshotFor(c.playerID),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("marshal game state", "error", err)
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

func (c *Client) sendError(message string) {
	payload, err := json.Marshal(table.ErrorEvent{Type: table.EventError, Message: message})
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

// ServeWs upgrades a websocket request for /ws/{lobbyID}/{playerID},
// attaches the connection to the lobby's room and sends the player
// their private view of the table.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request, lobbyID, playerID string) {
	t, err := hub.locate(r.Context(), lobbyID)
	if err != nil {
		http.Error(w, "lobby not found", http.StatusNotFound)
		return
	}

	upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade", "error", err)
		return
	}

	// A room can close between lookup and registration when its last
	// client disconnects; retry against a fresh room.
	var client *Client
	for {
		room := hub.room(lobbyID, true)
		client = newClient(room, conn, t, playerID)
		select {
		case room.register <- client:
		case <-room.stop:
			continue
		}
		break
	}

	// Allow collection of memory referenced by the caller by doing all
	// work in new goroutines.
	go client.writePump()
	go client.readPump()

	client.sendPrivateState()
}
