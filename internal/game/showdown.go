package game

// WinnerShare is one winning seat's slice of the pot.
type WinnerShare struct {
	SeatIndex int    `json:"seatIndex"`
	PlayerID  string `json:"id"`
	Name      string `json:"name"`
	Amount    int    `json:"amount"`
	HandRank  string `json:"handRank,omitempty"`
	BestFive  []Card `json:"bestFive,omitempty"`
}

// ShowdownResult is the terminal outcome of a hand.
type ShowdownResult struct {
	Winners []WinnerShare `json:"winners"`
	// Uncontested is true when everyone else folded and the pot was
	// awarded without comparing hands (cards stay hidden).
	Uncontested bool `json:"uncontested"`
}

// resolveShowdown awards the pot and ends the hand. With one seat left
// the pot goes to it without evaluation. Otherwise the non-folded
// hands are compared over a full board; ties split the pot evenly,
// with any remainder going to the tied seat earliest after the dealer.
func (g *Game) resolveShowdown() error {
	active := g.ActiveSeats()

	result := &ShowdownResult{}
	switch {
	case len(active) == 0:
		// Nothing to award. Should not happen with correct turn order.
	case len(active) == 1:
		idx := active[0]
		seat := g.Seats[idx]
		seat.Chips += g.Pot
		result.Uncontested = true
		result.Winners = []WinnerShare{{
			SeatIndex: idx,
			PlayerID:  seat.PlayerID,
			Name:      seat.Name,
			Amount:    g.Pot,
		}}
	default:
		// The board must be complete to compare hands. All-in runouts
		// normally guarantee this; deal the rest defensively if not.
		for len(g.CommunityCards) < 5 && g.Phase != River {
			if err := g.advancePhase(); err != nil {
				return err
			}
		}
		winners, _ := g.bestSeats(active)
		g.splitPot(winners, result)
	}

	g.Pot = 0
	g.Phase = Showdown
	g.CurrentActorIndex = -1
	g.LastResult = result
	return nil
}

// bestSeats evaluates every contender and returns the seat indices
// holding the strongest hand, plus its score.
func (g *Game) bestSeats(active []int) ([]int, int) {
	bestScore := int(^uint(0) >> 1)
	var winners []int
	for _, idx := range active {
		seat := g.Seats[idx]
		if len(seat.HoleCards) != 2 {
			continue
		}
		_, score, _ := EvaluateHand(seat.HoleCards, g.CommunityCards)
		if score < bestScore {
			bestScore = score
			winners = []int{idx}
		} else if score == bestScore {
			winners = append(winners, idx)
		}
	}
	return winners, bestScore
}

// splitPot divides the pot evenly among the winning seats. The
// remainder chips go to the winner earliest in seat order after the
// dealer so chip accounting stays deterministic.
func (g *Game) splitPot(winners []int, result *ShowdownResult) {
	if len(winners) == 0 {
		return
	}
	share := g.Pot / len(winners)
	remainder := g.Pot - share*len(winners)

	ordered := g.orderAfterDealer(winners)
	for i, idx := range ordered {
		amount := share
		if i == 0 {
			amount += remainder
		}
		seat := g.Seats[idx]
		seat.Chips += amount
		bestFive, _, rank := EvaluateHand(seat.HoleCards, g.CommunityCards)
		result.Winners = append(result.Winners, WinnerShare{
			SeatIndex: idx,
			PlayerID:  seat.PlayerID,
			Name:      seat.Name,
			Amount:    amount,
			HandRank:  rank,
			BestFive:  bestFive,
		})
	}
}

// orderAfterDealer sorts seat indices by distance clockwise from the
// dealer.
func (g *Game) orderAfterDealer(indices []int) []int {
	n := len(g.Seats)
	distance := func(idx int) int {
		return ((idx - g.DealerIndex - 1) % n + n) % n
	}
	ordered := append([]int(nil), indices...)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && distance(ordered[j]) < distance(ordered[j-1]); j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}
	return ordered
}
