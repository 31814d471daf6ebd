// Package agent gates the table's automated seats behind an external
// decision source. The gateway never blocks a hand on the remote side:
// timeouts, malformed replies and illegal decisions all degrade to a
// built-in fallback policy.
package agent

import (
	"context"

	"github.com/pokertown/holdem/internal/game"
)

// Prompt is the acting seat's private view of the hand, handed to a
// decision source.
type Prompt struct {
	Game         *game.GameView     `json:"gameState"`
	SeatIndex    int                `json:"seatIndex"`
	PlayerID     string             `json:"playerId"`
	HoleCards    []game.Card        `json:"holeCards"`
	LegalActions game.LegalActions  `json:"legal"`
	BigBlind     int                `json:"bigBlind"`
}

// Decision is what a decision source wants the seat to do. Rationale
// is advisory free text and is never validated.
type Decision struct {
	Action    game.ActionType `json:"action"`
	Amount    int             `json:"amount"`
	Rationale string          `json:"reasoning,omitempty"`
}

// Provider produces exactly one decision for a prompt within the
// context deadline.
type Provider interface {
	NextAction(ctx context.Context, prompt Prompt) (Decision, error)
}
