package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/go-redis/redis/v8"

	"github.com/pokertown/holdem/internal/table"
)

// TableLocator returns the live table actor for a lobby, loading it
// from storage when it is not already resident.
type TableLocator func(ctx context.Context, lobbyID string) (*table.Table, error)

// Hub maintains one room per lobby and fans events out to the clients
// connected to it. With a Redis client the fanout goes through a
// per-lobby pub/sub channel so every server instance delivers to its
// own connections; without one, delivery is process-local.
type Hub struct {
	rdb    *redis.Client
	locate TableLocator

	mu    sync.Mutex
	rooms map[string]*room
}

func NewHub(rdb *redis.Client, locate TableLocator) *Hub {
	return &Hub{
		rdb:    rdb,
		locate: locate,
		rooms:  make(map[string]*room),
	}
}

// BroadcastToTable pushes an event to every client in a lobby.
func (h *Hub) BroadcastToTable(lobbyID string, event any) {
	h.publish(lobbyID, "", event)
}

// SendToPlayer pushes an event to one player's connections only.
func (h *Hub) SendToPlayer(lobbyID, playerID string, event any) {
	h.publish(lobbyID, playerID, event)
}

func (h *Hub) publish(lobbyID, playerID string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("marshal event", "lobby_id", lobbyID, "error", err)
		return
	}
	env := envelope{PlayerID: playerID, Payload: payload}

	if h.rdb == nil {
		if r := h.room(lobbyID, false); r != nil {
			select {
			case r.deliver <- env:
			case <-r.stop:
			}
		}
		return
	}

	raw, err := json.Marshal(env)
	if err != nil {
		slog.Error("marshal envelope", "lobby_id", lobbyID, "error", err)
		return
	}
	if err := h.rdb.Publish(context.Background(), channelFor(lobbyID), raw).Err(); err != nil {
		slog.Warn("publish event", "lobby_id", lobbyID, "error", err)
	}
}

// room returns the lobby's room, creating and starting it when create
// is set.
func (h *Hub) room(lobbyID string, create bool) *room {
	h.mu.Lock()
	defer h.mu.Unlock()
	r := h.rooms[lobbyID]
	if r == nil && create {
		r = newRoom(h, lobbyID)
		h.rooms[lobbyID] = r
		go r.run()
		if h.rdb != nil {
			go r.subscribe()
		}
	}
	return r
}

func (h *Hub) removeRoom(lobbyID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms, lobbyID)
}

func channelFor(lobbyID string) string {
	return "lobby:" + lobbyID
}

// room is the set of live connections for one lobby.
type room struct {
	hub     *Hub
	lobbyID string

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	deliver    chan envelope
	stop       chan struct{}

	pubsub *redis.PubSub
}

func newRoom(hub *Hub, lobbyID string) *room {
	return &room{
		hub:        hub,
		lobbyID:    lobbyID,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan envelope, 64),
		stop:       make(chan struct{}),
	}
}

func (r *room) run() {
	for {
		select {
		case client := <-r.register:
			r.clients[client] = true
		case client := <-r.unregister:
			if _, ok := r.clients[client]; ok {
				delete(r.clients, client)
				close(client.send)
			}
			if len(r.clients) == 0 {
				r.close()
				return
			}
		case env := <-r.deliver:
			r.deliverToClients(env)
		case <-r.stop:
			return
		}
	}
}

func (r *room) deliverToClients(env envelope) {
	for client := range r.clients {
		if env.PlayerID != "" && client.playerID != env.PlayerID {
			continue
		}
		select {
		case client.send <- env.Payload:
		default:
			close(client.send)
			delete(r.clients, client)
		}
	}
}

// subscribe pumps the lobby's Redis channel into the room until the
// room closes its subscription.
func (r *room) subscribe() {
	r.pubsub = r.hub.rdb.Subscribe(context.Background(), channelFor(r.lobbyID))
	for msg := range r.pubsub.Channel() {
		var env envelope
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
			slog.Warn("decode envelope", "lobby_id", r.lobbyID, "error", err)
			continue
		}
		select {
		case r.deliver <- env:
		case <-r.stop:
			return
		}
	}
}

func (r *room) close() {
	r.hub.removeRoom(r.lobbyID)
	close(r.stop)
	if r.pubsub != nil {
		r.pubsub.Close()
	}
}
