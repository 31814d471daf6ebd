package game

// Progress tells the caller what happened after an action was applied.
type Progress string

const (
	// ProgressNextToAct means the betting round continues and
	// CurrentActorIndex now points at the next seat.
	ProgressNextToAct Progress = "next_to_act"
	// ProgressStreet means the round closed and a new street was dealt.
	ProgressStreet Progress = "street_dealt"
	// ProgressShowdown means the hand resolved and LastResult is set.
	ProgressShowdown Progress = "showdown"
)

// AdvanceTurn decides what follows the last applied action: hand the
// turn to the next seat, close the betting round and deal the next
// street, or resolve the hand.
func (g *Game) AdvanceTurn() (Progress, error) {
	if !g.InHand() {
		return "", ErrNoHandInProgress
	}

	// Down to one contender, the hand is over no matter the street.
	if len(g.ActiveSeats()) <= 1 {
		return ProgressShowdown, g.resolveShowdown()
	}

	if g.roundClosed() {
		if g.Phase == River {
			return ProgressShowdown, g.resolveShowdown()
		}
		if err := g.advancePhase(); err != nil {
			return "", err
		}
		if g.CurrentActorIndex == -1 {
			// Everyone left is all-in. Run the board out.
			return g.runOut()
		}
		return ProgressStreet, nil
	}

	next := g.nextToAct(g.CurrentActorIndex)
	if next == -1 {
		return g.runOut()
	}
	g.CurrentActorIndex = next
	return ProgressNextToAct, nil
}

// roundClosed reports whether the betting round is settled: every seat
// that can still bet has acted and matches the highest bet. All-in
// seats are exempt from the equality check since they cannot add more.
func (g *Game) roundClosed() bool {
	highest := g.HighestBet()
	for _, seat := range g.Seats {
		if !seat.CanAct() {
			continue
		}
		if !seat.HasActed || seat.CurrentBet != highest {
			return false
		}
	}
	return true
}

// runOut burns and deals the remaining streets without further betting
// and resolves the showdown.
func (g *Game) runOut() (Progress, error) {
	for g.Phase != River {
		if err := g.advancePhase(); err != nil {
			return "", err
		}
	}
	return ProgressShowdown, g.resolveShowdown()
}
