package server

import "encoding/json"

// Inbound websocket actions.
const (
	actionPlayerAction = "player_action"
	actionGetState     = "get_state"
)

// base is the minimal shape every inbound message must carry; the
// action field selects how the rest of the payload is decoded.
type base struct {
	Action string `json:"action"`
}

// playerAction is a betting action sent over the socket instead of the
// REST endpoint. gameAction is one of FOLD, CHECK, CALL, BET, RAISE.
type playerAction struct {
	Action     string `json:"action"`
	GameAction string `json:"gameAction"`
	Amount     int    `json:"amount"`
}

// envelope is the fanout frame published to Redis. An empty PlayerID
// addresses every client in the lobby; otherwise only the named
// player's connections receive the payload.
type envelope struct {
	PlayerID string          `json:"playerId,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}
