package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceTurn_StreetProgression(t *testing.T) {
	g := newTestGame(t, 1000, 1000, 1000)
	require.NoError(t, g.StartHand())

	// Pre-flop: everyone calls, the big blind checks its option.
	mustAct(t, g, 0, ActionCall, 0)
	mustAct(t, g, 1, ActionCall, 0)
	progress := mustAct(t, g, 2, ActionCheck, 0)

	assert.Equal(t, ProgressStreet, progress)
	assert.Equal(t, Flop, g.Phase)
	assert.Len(t, g.CommunityCards, 3)
	assert.Equal(t, 0, g.CurrentBet)
	assert.Equal(t, 20, g.MinRaise)
	assert.Equal(t, 60, g.Pot)

	// Post-flop action starts at the first live seat after the dealer.
	assert.Equal(t, 1, g.CurrentActorIndex)
	for _, seat := range g.Seats {
		assert.Equal(t, 0, seat.CurrentBet)
		assert.False(t, seat.HasActed)
	}

	// Flop checks through to the turn.
	mustAct(t, g, 1, ActionCheck, 0)
	mustAct(t, g, 2, ActionCheck, 0)
	progress = mustAct(t, g, 0, ActionCheck, 0)
	assert.Equal(t, ProgressStreet, progress)
	assert.Equal(t, Turn, g.Phase)
	assert.Len(t, g.CommunityCards, 4)

	// Turn checks through to the river.
	mustAct(t, g, 1, ActionCheck, 0)
	mustAct(t, g, 2, ActionCheck, 0)
	progress = mustAct(t, g, 0, ActionCheck, 0)
	assert.Equal(t, ProgressStreet, progress)
	assert.Equal(t, River, g.Phase)
	assert.Len(t, g.CommunityCards, 5)

	// River checks through to showdown.
	mustAct(t, g, 1, ActionCheck, 0)
	mustAct(t, g, 2, ActionCheck, 0)
	progress = mustAct(t, g, 0, ActionCheck, 0)
	assert.Equal(t, ProgressShowdown, progress)
	assert.Equal(t, Showdown, g.Phase)
	require.NotNil(t, g.LastResult)

	// The pot went somewhere: stacks total what the players brought.
	total := 0
	for _, seat := range g.Seats {
		total += seat.Chips
	}
	assert.Equal(t, 3000, total)
	assert.Equal(t, 0, g.Pot)
}

func TestAdvanceTurn_FoldToOneEndsHand(t *testing.T) {
	g := newTestGame(t, 1000, 1000, 1000)
	require.NoError(t, g.StartHand())

	mustAct(t, g, 0, ActionFold, 0)
	progress := mustAct(t, g, 1, ActionFold, 0)

	assert.Equal(t, ProgressShowdown, progress)
	require.NotNil(t, g.LastResult)
	assert.True(t, g.LastResult.Uncontested)
	require.Len(t, g.LastResult.Winners, 1)
	assert.Equal(t, 2, g.LastResult.Winners[0].SeatIndex)
	assert.Equal(t, 30, g.LastResult.Winners[0].Amount)

	// Big blind won the blinds without showing a hand.
	assert.Equal(t, 1010, g.Seats[2].Chips)
	assert.Empty(t, g.LastResult.Winners[0].BestFive)
}

func TestAdvanceTurn_AllInRunout(t *testing.T) {
	g := newTestGame(t, 1000, 1000)
	require.NoError(t, g.StartHand())

	// Heads-up: dealer shoves, big blind calls.
	require.NoError(t, g.ApplyAction(0, ActionRaise, 1000))
	_, err := g.AdvanceTurn()
	require.NoError(t, err)
	progress := mustAct(t, g, 1, ActionCall, 0)

	// No betting remains: the board runs out to a full showdown.
	assert.Equal(t, ProgressShowdown, progress)
	assert.Equal(t, Showdown, g.Phase)
	assert.Len(t, g.CommunityCards, 5)
	require.NotNil(t, g.LastResult)
	assert.False(t, g.LastResult.Uncontested)

	total := 0
	for _, seat := range g.Seats {
		total += seat.Chips
	}
	assert.Equal(t, 2000, total)
}

func TestAdvanceTurn_PartialAllInLeavesBetting(t *testing.T) {
	g := newTestGame(t, 1000, 300, 1000)
	require.NoError(t, g.StartHand())

	// Seat 1 is all-in but seats 0 and 2 still have chips behind, so
	// betting continues between them on later streets.
	require.NoError(t, g.ApplyAction(0, ActionRaise, 300))
	_, err := g.AdvanceTurn()
	require.NoError(t, err)
	mustAct(t, g, 1, ActionCall, 0)
	progress := mustAct(t, g, 2, ActionCall, 0)

	assert.Equal(t, ProgressStreet, progress)
	assert.Equal(t, Flop, g.Phase)
	assert.True(t, g.Seats[1].AllIn())

	// Only the funded seats act on the flop.
	assert.Equal(t, 2, g.CurrentActorIndex)
	mustAct(t, g, 2, ActionCheck, 0)
	progress = mustAct(t, g, 0, ActionCheck, 0)
	assert.Equal(t, ProgressStreet, progress)
	assert.Equal(t, Turn, g.Phase)
}

func TestAdvanceTurn_DeckExhaustionFailsHand(t *testing.T) {
	g := newTestGame(t, 1000, 1000)
	require.NoError(t, g.StartHand())

	// Corrupt the deck so the flop cannot be dealt.
	g.Deck = RestoreDeck([]Card{{Suit: Spades, Rank: Two}})

	require.NoError(t, g.ApplyAction(0, ActionCall, 0))
	_, err := g.AdvanceTurn()
	require.NoError(t, err)
	require.NoError(t, g.ApplyAction(1, ActionCheck, 0))
	_, err = g.AdvanceTurn()
	assert.ErrorIs(t, err, ErrEmptyDeck)
}
