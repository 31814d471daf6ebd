package game

// ApplyAction validates and applies one player action to the hand.
// The call is atomic: on error nothing has changed. Advancing the
// turn afterward is the caller's job via AdvanceTurn.
func (g *Game) ApplyAction(seatIndex int, action ActionType, amount int) error {
	if !g.InHand() {
		return ErrNoHandInProgress
	}
	if seatIndex != g.CurrentActorIndex {
		return ErrOutOfTurn
	}
	seat := g.Seats[seatIndex]
	if !seat.CanAct() {
		return ErrIllegalAction
	}

	switch action {
	case ActionFold:
		seat.Folded = true

	case ActionCheck:
		if seat.CurrentBet != g.CurrentBet {
			return ErrIllegalAction
		}

	case ActionCall:
		toCall := g.CurrentBet - seat.CurrentBet
		if toCall <= 0 {
			return ErrIllegalAction
		}
		// A short call goes all-in and does not raise the table bet.
		if toCall > seat.Chips {
			toCall = seat.Chips
		}
		seat.Chips -= toCall
		seat.CurrentBet += toCall
		seat.TotalContributed += toCall
		g.Pot += toCall

	case ActionBet, ActionRaise:
		if action == ActionBet && g.CurrentBet > 0 {
			return ErrIllegalAction
		}
		if action == ActionRaise && g.CurrentBet == 0 {
			return ErrIllegalAction
		}
		if err := g.applyRaise(seatIndex, amount); err != nil {
			return err
		}

	default:
		return ErrIllegalAction
	}

	seat.HasActed = true
	seat.LastAction = string(action)
	return nil
}

// applyRaise moves the seat's street total to `amount`. The amount is
// the target total for the street, not the increment.
func (g *Game) applyRaise(seatIndex, amount int) error {
	seat := g.Seats[seatIndex]
	allInTarget := seat.Chips + seat.CurrentBet
	minTarget := g.CurrentBet + g.MinRaise

	if amount > allInTarget {
		return ErrInvalidAmount
	}
	if amount <= g.CurrentBet {
		return ErrInvalidAmount
	}
	// Below the minimum is only legal as an exact all-in.
	if amount < minTarget && amount != allInTarget {
		return ErrInvalidAmount
	}

	increment := amount - seat.CurrentBet
	raiseSize := amount - g.CurrentBet

	seat.Chips -= increment
	seat.CurrentBet = amount
	seat.TotalContributed += increment
	g.Pot += increment
	g.CurrentBet = amount

	// A full raise reopens the action. An all-in below the minimum
	// raise size does not: seats that already closed stay closed.
	if raiseSize >= g.MinRaise && seat.Chips > 0 {
		g.MinRaise = raiseSize
		g.LastRaiserIndex = seatIndex
		for i, other := range g.Seats {
			if i != seatIndex && other.CanAct() {
				other.HasActed = false
			}
		}
	}
	return nil
}
