package table

import (
	"github.com/pokertown/holdem/internal/game"
)

// Outbound event types pushed to connected players.
const (
	EventLobbyUpdate = "lobby_update"
	EventGameUpdate  = "game_update"
	EventGameState   = "game_state"
	EventWinner      = "winner"
	EventGameOver    = "game_over"
	EventError       = "error"
)

// LobbyPlayer is one roster entry in a lobby_update.
type LobbyPlayer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Chips  int    `json:"chips"`
	IsAI   bool   `json:"isAI"`
	IsHost bool   `json:"isHost"`
}

// LobbySummary is the lobby roster plus blinds and the started flag.
type LobbySummary struct {
	ID          string        `json:"id"`
	Players     []LobbyPlayer `json:"players"`
	SmallBlind  int           `json:"smallBlind"`
	BigBlind    int           `json:"bigBlind"`
	GameStarted bool          `json:"gameStarted"`
}

// LobbyUpdateEvent announces roster or config changes.
type LobbyUpdateEvent struct {
	Type  string       `json:"type"`
	Lobby LobbySummary `json:"lobby"`
}

// GameStateEvent carries a full table view. Sent as "game_update"
// (public, redacted) to the table and as "game_state" (private) to a
// single player.
type GameStateEvent struct {
	Type      string         `json:"type"`
	GameState *game.GameView `json:"gameState"`
}

// WinnerEvent announces a resolved showdown.
type WinnerEvent struct {
	Type        string             `json:"type"`
	Winners     []game.WinnerShare `json:"winners"`
	Uncontested bool               `json:"uncontested"`
}

// GameOverEvent terminates a table: one player holds all the chips.
type GameOverEvent struct {
	Type   string       `json:"type"`
	Winner *LobbyPlayer `json:"winner"`
}

// ErrorEvent reports a table-level failure to connected players.
type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Sink receives events after every committed state mutation. Delivery
// is fire-and-forget: a failing or slow receiver must never block or
// roll back game progress.
type Sink interface {
	BroadcastToTable(lobbyID string, event any)
	SendToPlayer(lobbyID, playerID string, event any)
}

// Store persists the table's rows after committed mutations. A nil
// Store on the table skips persistence entirely.
type Store interface {
	SaveState(g *game.Game) error
	SetGameStarted(lobbyID string, started bool) error
}
