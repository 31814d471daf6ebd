package game

// LegalActions describes what the acting seat may do and the bounds
// for a bet or raise. Amounts are street totals, not increments.
type LegalActions struct {
	Actions    []ActionType `json:"actions"`
	ToCall     int          `json:"toCall"`
	MinRaiseTo int          `json:"minRaiseTo"`
	MaxRaiseTo int          `json:"maxRaiseTo"`
}

// LegalActionsFor computes the legal action set for a seat. The
// result is empty if the seat cannot act.
func (g *Game) LegalActionsFor(seatIndex int) LegalActions {
	var legal LegalActions
	if !g.InHand() || seatIndex < 0 || seatIndex >= len(g.Seats) {
		return legal
	}
	seat := g.Seats[seatIndex]
	if !seat.CanAct() {
		return legal
	}

	legal.ToCall = g.CurrentBet - seat.CurrentBet
	if legal.ToCall < 0 {
		legal.ToCall = 0
	}
	allInTarget := seat.Chips + seat.CurrentBet
	legal.MaxRaiseTo = allInTarget
	legal.MinRaiseTo = g.CurrentBet + g.MinRaise
	if legal.MinRaiseTo > allInTarget {
		// The only raise left is an all-in below the full minimum.
		legal.MinRaiseTo = allInTarget
	}

	legal.Actions = append(legal.Actions, ActionFold)
	if legal.ToCall == 0 {
		legal.Actions = append(legal.Actions, ActionCheck)
		if g.CurrentBet == 0 {
			legal.Actions = append(legal.Actions, ActionBet)
		} else {
			// The big blind closing its own option may still raise.
			legal.Actions = append(legal.Actions, ActionRaise)
		}
	} else {
		legal.Actions = append(legal.Actions, ActionCall)
		if allInTarget > g.CurrentBet {
			legal.Actions = append(legal.Actions, ActionRaise)
		}
	}
	return legal
}
