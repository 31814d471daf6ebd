package agent

import (
	"context"
	"math/rand"

	"github.com/pokertown/holdem/internal/game"
)

// FallbackPolicy is the conservative built-in decision source used
// when the remote provider is unavailable or misbehaves. It plays a
// simple pot-odds strategy and always returns a legal decision.
type FallbackPolicy struct{}

// NextAction never fails.
func (FallbackPolicy) NextAction(_ context.Context, prompt Prompt) (Decision, error) {
	legal := prompt.LegalActions
	view := prompt.Game

	if legal.ToCall == 0 {
		if rand.Float64() < 0.3 || !hasAction(legal, game.ActionBet) {
			return Decision{Action: game.ActionCheck}, nil
		}
		// Half-pot bet, clamped to the legal bounds.
		amount := clamp(view.Pot/2, legal.MinRaiseTo, legal.MaxRaiseTo)
		return Decision{Action: game.ActionBet, Amount: amount}, nil
	}

	// Fold when the price is bad and the stack is shallow.
	potOdds := float64(legal.ToCall) / float64(view.Pot+legal.ToCall)
	stack := 0
	if prompt.SeatIndex >= 0 && prompt.SeatIndex < len(view.Players) {
		stack = view.Players[prompt.SeatIndex].Chips
	}
	stackToPot := float64(stack) / float64(max(1, view.Pot))
	if potOdds > 0.5 && stackToPot < 2 {
		return Decision{Action: game.ActionFold}, nil
	}

	if rand.Float64() < 0.7 || !hasAction(legal, game.ActionRaise) {
		return Decision{Action: game.ActionCall}, nil
	}
	amount := clamp(view.CurrentBet+view.MinRaise*2, legal.MinRaiseTo, legal.MaxRaiseTo)
	return Decision{Action: game.ActionRaise, Amount: amount}, nil
}

func hasAction(legal game.LegalActions, action game.ActionType) bool {
	for _, a := range legal.Actions {
		if a == action {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
