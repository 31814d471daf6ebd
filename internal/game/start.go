package game

// StartHand begins a new hand: rotates the button over the seats that
// still have chips, posts blinds, deals hole cards and hands the
// action to the first seat after the big blind.
func (g *Game) StartHand() error {
	if g.InHand() {
		return ErrHandInProgress
	}

	eligible := g.EligibleSeats()
	if len(eligible) < 2 {
		return ErrInsufficientPlayers
	}

	for _, seat := range g.Seats {
		seat.resetForHand(seat.Chips > 0)
	}

	g.HandNumber++
	g.LastResult = nil
	g.Deck = NewDeck()
	g.CommunityCards = make([]Card, 0, 5)
	g.Pot = 0

	// Rotate the button over the eligible subset so a busted seat does
	// not cost everyone a turn on the button.
	g.DealerIndex = g.nextEligible(g.DealerIndex)

	if len(eligible) == 2 {
		// Heads-up: the dealer posts the small blind.
		g.SmallBlindIndex = g.DealerIndex
		g.BigBlindIndex = g.nextEligible(g.DealerIndex)
	} else {
		g.SmallBlindIndex = g.nextEligible(g.DealerIndex)
		g.BigBlindIndex = g.nextEligible(g.SmallBlindIndex)
	}

	g.postBlind(g.SmallBlindIndex, g.SmallBlind)
	g.postBlind(g.BigBlindIndex, g.BigBlind)

	// The table owes the full big blind even if it was posted short.
	g.CurrentBet = g.BigBlind
	g.MinRaise = g.BigBlind

	if err := g.dealHoleCards(); err != nil {
		return err
	}

	g.CurrentActorIndex = g.nextToAct(g.BigBlindIndex)
	g.LastRaiserIndex = g.BigBlindIndex
	g.Phase = PreFlop

	// Blinds alone can put every funded seat all-in. No betting is
	// possible, so run the board out to showdown right away.
	if g.CurrentActorIndex == -1 {
		if _, err := g.runOut(); err != nil {
			return err
		}
	}
	return nil
}

// postBlind moves up to `amount` chips from the seat into the pot. A
// short-stacked seat posts what it has and is all-in immediately.
func (g *Game) postBlind(seatIndex, amount int) {
	seat := g.Seats[seatIndex]
	if amount > seat.Chips {
		amount = seat.Chips
	}
	seat.Chips -= amount
	seat.CurrentBet = amount
	seat.TotalContributed = amount
	g.Pot += amount
}

// dealHoleCards gives every seat in the hand two cards, one card per
// pass in seat order.
func (g *Game) dealHoleCards() error {
	for pass := 0; pass < 2; pass++ {
		for _, seat := range g.Seats {
			if !seat.InHand {
				continue
			}
			card, err := g.Deck.Deal()
			if err != nil {
				return err
			}
			seat.HoleCards = append(seat.HoleCards, card)
		}
	}
	return nil
}
