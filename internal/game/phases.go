package game

// advancePhase moves the hand to the next street: resets per-street
// betting state, burns a card and deals the community cards for the
// new street, then hands the action to the first live seat after the
// dealer.
func (g *Game) advancePhase() error {
	for _, seat := range g.Seats {
		seat.CurrentBet = 0
		seat.LastAction = ""
		// Folded and all-in seats have nothing left to do this street.
		seat.HasActed = !seat.CanAct()
	}

	switch g.Phase {
	case PreFlop:
		if err := g.dealCommunity(3); err != nil {
			return err
		}
		g.Phase = Flop
	case Flop:
		if err := g.dealCommunity(1); err != nil {
			return err
		}
		g.Phase = Turn
	case Turn:
		if err := g.dealCommunity(1); err != nil {
			return err
		}
		g.Phase = River
	default:
		return ErrIllegalAction
	}

	g.CurrentBet = 0
	g.MinRaise = g.BigBlind
	g.CurrentActorIndex = g.nextToAct(g.DealerIndex)
	g.LastRaiserIndex = g.CurrentActorIndex
	return nil
}

// dealCommunity burns one card, then appends n cards to the board.
func (g *Game) dealCommunity(n int) error {
	if err := g.Deck.Burn(); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		card, err := g.Deck.Deal()
		if err != nil {
			return err
		}
		g.CommunityCards = append(g.CommunityCards, card)
	}
	return nil
}
