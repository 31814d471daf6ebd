// Package table owns the per-lobby actor: one mutex-guarded game
// state mutated by at most one action at a time. Different tables are
// fully independent.
package table

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pokertown/holdem/internal/agent"
	"github.com/pokertown/holdem/internal/game"
)

const defaultCooldown = 5 * time.Second

// Table serializes all mutations of one lobby's game. External calls
// (REST, websocket, AI completions, the showdown cooldown) all funnel
// through the same lock.
type Table struct {
	mu      sync.Mutex
	game    *game.Game
	gateway *agent.Gateway
	sink    Sink
	store   Store

	started  bool
	closed   bool
	cooldown time.Duration

	// seq increments on every committed mutation. AI decisions carry
	// the seq they were prompted under and are discarded when stale.
	seq uint64

	nextHand *time.Timer
}

// Option tunes a new table.
type Option func(*Table)

// WithCooldown sets the pause between a showdown and the next hand.
func WithCooldown(d time.Duration) Option {
	return func(t *Table) { t.cooldown = d }
}

// New creates a table actor around a game. Sink must be non-nil;
// store and gateway may be nil (no persistence, fallback-only AI).
func New(g *game.Game, gateway *agent.Gateway, sink Sink, store Store, opts ...Option) *Table {
	t := &Table{
		game:     g,
		gateway:  gateway,
		sink:     sink,
		store:    store,
		cooldown: defaultCooldown,
	}
	if t.gateway == nil {
		t.gateway = agent.NewGateway(agent.GatewayConfig{})
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// LobbyID returns the lobby this table plays for.
func (t *Table) LobbyID() string {
	return t.game.LobbyID
}

// Join seats a new player and announces the updated roster.
func (t *Table) Join(playerID, name string, chips int, isAI, isHost bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.game.AddSeat(playerID, name, chips, isAI, isHost); err != nil {
		return err
	}
	t.sink.BroadcastToTable(t.game.LobbyID, LobbyUpdateEvent{Type: EventLobbyUpdate, Lobby: t.lobbySummary()})
	return nil
}

// StartGame marks the lobby started and deals the first hand.
func (t *Table) StartGame() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started {
		return game.ErrHandInProgress
	}
	t.started = true
	if t.store != nil {
		if err := t.store.SetGameStarted(t.game.LobbyID, true); err != nil {
			slog.Warn("persist game started flag", "lobby_id", t.game.LobbyID, "error", err)
		}
	}
	return t.startHandLocked()
}

// HandleAction applies one player action. Validation errors are
// returned to the caller with the state unchanged.
func (t *Table) HandleAction(playerID string, action game.ActionType, amount int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return game.ErrNoHandInProgress
	}
	seat, idx := t.game.Seat(playerID)
	if seat == nil {
		return game.ErrPlayerNotFound
	}
	if idx != t.game.CurrentActorIndex {
		return game.ErrOutOfTurn
	}
	return t.applyLocked(idx, action, amount)
}

// Snapshot returns the redacted public view of the game.
func (t *Table) Snapshot() *game.GameView {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.View("")
}

// SnapshotFor returns the game as seen by one player.
func (t *Table) SnapshotFor(playerID string) *game.GameView {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.View(playerID)
}

// Lobby returns the current roster summary.
func (t *Table) Lobby() LobbySummary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lobbySummary()
}

// Close tears the table down and cancels any pending next-hand timer.
func (t *Table) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	if t.nextHand != nil {
		t.nextHand.Stop()
		t.nextHand = nil
	}
}

// applyLocked validates, applies and advances one action, then
// persists, broadcasts and, when the next actor is automated, kicks
// off its decision. Caller holds the lock.
func (t *Table) applyLocked(seatIndex int, action game.ActionType, amount int) error {
	if err := t.game.ApplyAction(seatIndex, action, amount); err != nil {
		return err
	}

	progress, err := t.game.AdvanceTurn()
	if err != nil {
		t.failHandLocked(err)
		return nil
	}
	t.seq++
	t.persistLocked()
	t.broadcastStateLocked()

	if progress == game.ProgressShowdown {
		t.finishHandLocked()
	} else {
		t.maybeTriggerAILocked()
	}
	return nil
}

// startHandLocked deals a new hand or ends the game when fewer than
// two seats still hold chips. Caller holds the lock.
func (t *Table) startHandLocked() error {
	err := t.game.StartHand()
	if err == game.ErrInsufficientPlayers {
		t.gameOverLocked()
		return nil
	}
	if err != nil {
		t.failHandLocked(err)
		return err
	}
	t.seq++
	t.persistLocked()
	t.broadcastStateLocked()
	if t.game.Phase == game.Showdown {
		// Blinds put everyone all-in and the board already ran out.
		t.finishHandLocked()
		return nil
	}
	t.maybeTriggerAILocked()
	return nil
}

// finishHandLocked announces the showdown result and schedules the
// next hand after the cooldown. The timer is a one-shot and is
// cancelled by Close.
func (t *Table) finishHandLocked() {
	if result := t.game.LastResult; result != nil {
		t.sink.BroadcastToTable(t.game.LobbyID, WinnerEvent{
			Type:        EventWinner,
			Winners:     result.Winners,
			Uncontested: result.Uncontested,
		})
	}
	t.persistLocked()
	t.scheduleNextHandLocked()
}

// scheduleNextHandLocked arms the one-shot cooldown timer for the
// next deal. Cancelled by Close.
func (t *Table) scheduleNextHandLocked() {
	t.nextHand = time.AfterFunc(t.cooldown, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.closed {
			return
		}
		t.nextHand = nil
		if err := t.startHandLocked(); err != nil {
			slog.Error("start next hand", "lobby_id", t.game.LobbyID, "error", err)
		}
	})
}

// gameOverLocked ends the table: at most one seat still has chips.
func (t *Table) gameOverLocked() {
	event := GameOverEvent{Type: EventGameOver}
	for _, seat := range t.game.Seats {
		if seat.Chips > 0 {
			event.Winner = &LobbyPlayer{
				ID: seat.PlayerID, Name: seat.Name, Chips: seat.Chips,
				IsAI: seat.IsAI, IsHost: seat.IsHost,
			}
			break
		}
	}
	t.sink.BroadcastToTable(t.game.LobbyID, event)
	t.closed = true
}

// failHandLocked abandons a hand after an unrecoverable dealing error.
// This should not happen with correct burn and deal accounting; it is
// guarded so a corrupted deck cannot wedge the table. Contributions go
// back to the seats and the cooldown timer deals the next hand.
func (t *Table) failHandLocked(err error) {
	slog.Error("hand failed", "lobby_id", t.game.LobbyID, "hand", t.game.HandNumber, "error", err)
	for _, seat := range t.game.Seats {
		seat.Chips += seat.TotalContributed
		seat.TotalContributed = 0
		seat.CurrentBet = 0
	}
	t.game.Pot = 0
	t.game.Phase = game.Setup
	t.game.CurrentActorIndex = -1
	t.seq++
	t.persistLocked()
	t.sink.BroadcastToTable(t.game.LobbyID, ErrorEvent{Type: EventError, Message: "hand abandoned due to an internal dealing error"})
	t.broadcastStateLocked()
	t.scheduleNextHandLocked()
}

// maybeTriggerAILocked starts an automated decision for the current
// actor, if it is an AI seat. The gateway call happens off the lock;
// the decision is re-validated against seq before it is applied.
func (t *Table) maybeTriggerAILocked() {
	idx := t.game.CurrentActorIndex
	if idx < 0 || idx >= len(t.game.Seats) {
		return
	}
	seat := t.game.Seats[idx]
	if !seat.IsAI || !seat.CanAct() {
		return
	}

	prompt := agent.Prompt{
		Game:         t.game.View(seat.PlayerID),
		SeatIndex:    idx,
		PlayerID:     seat.PlayerID,
		HoleCards:    append([]game.Card(nil), seat.HoleCards...),
		LegalActions: t.game.LegalActionsFor(idx),
		BigBlind:     t.game.BigBlind,
	}
	seq := t.seq

	go func() {
		decision := t.gateway.Decide(context.Background(), prompt)

		t.mu.Lock()
		defer t.mu.Unlock()
		if t.closed || t.seq != seq || t.game.CurrentActorIndex != idx {
			// The game moved on while the agent was thinking.
			return
		}
		if err := t.applyLocked(idx, decision.Action, decision.Amount); err != nil {
			// The gateway guarantees legality, so this is unexpected;
			// fold the seat rather than stall the table.
			slog.Warn("ai decision rejected", "lobby_id", t.game.LobbyID,
				"player_id", seat.PlayerID, "action", decision.Action, "error", err)
			if err := t.applyLocked(idx, game.ActionFold, 0); err != nil {
				slog.Error("ai forced fold failed", "lobby_id", t.game.LobbyID, "error", err)
			}
		}
	}()
}

// persistLocked writes the game rows. Failures are logged, never
// propagated: persistence must not roll back or block play.
func (t *Table) persistLocked() {
	if t.store == nil {
		return
	}
	if err := t.store.SaveState(t.game); err != nil {
		slog.Warn("persist hand state", "lobby_id", t.game.LobbyID, "error", err)
	}
}

// broadcastStateLocked pushes the redacted view to the table and each
// seated player's private view to that player.
func (t *Table) broadcastStateLocked() {
	t.sink.BroadcastToTable(t.game.LobbyID, GameStateEvent{Type: EventGameUpdate, GameState: t.game.View("")})
	for _, seat := range t.game.Seats {
		if seat.IsAI {
			continue
		}
		t.sink.SendToPlayer(t.game.LobbyID, seat.PlayerID, GameStateEvent{
			Type:      EventGameState,
			GameState: t.game.View(seat.PlayerID),
		})
	}
}

func (t *Table) lobbySummary() LobbySummary {
	summary := LobbySummary{
		ID:          t.game.LobbyID,
		SmallBlind:  t.game.SmallBlind,
		BigBlind:    t.game.BigBlind,
		GameStarted: t.started,
		Players:     make([]LobbyPlayer, 0, len(t.game.Seats)),
	}
	for _, seat := range t.game.Seats {
		summary.Players = append(summary.Players, LobbyPlayer{
			ID: seat.PlayerID, Name: seat.Name, Chips: seat.Chips,
			IsAI: seat.IsAI, IsHost: seat.IsHost,
		})
	}
	return summary
}
