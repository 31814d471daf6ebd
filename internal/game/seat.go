package game

// Seat holds one player's chip stack and per-hand transient state at
// an ordered table position. Seat order is fixed for the duration of
// a hand.
type Seat struct {
	PlayerID string `json:"id"`
	Name     string `json:"name"`
	Chips    int    `json:"chips"`
	IsAI     bool   `json:"isAI"`
	IsHost   bool   `json:"isHost"`

	// Per-hand transient state, reset by StartHand.
	HoleCards        []Card `json:"hand"`
	CurrentBet       int    `json:"bet"`
	TotalContributed int    `json:"totalBet"`
	Folded           bool   `json:"isFolded"`
	HasActed         bool   `json:"hasActed"`
	LastAction       string `json:"action,omitempty"`

	// InHand is true for seats dealt into the current hand. Seats with
	// no chips at hand start keep their row but sit the hand out.
	InHand bool `json:"inHand"`
}

// AllIn reports whether the seat has committed its whole stack.
func (s *Seat) AllIn() bool {
	return s.InHand && !s.Folded && s.Chips == 0
}

// InPlay reports whether the seat is still contesting the pot.
func (s *Seat) InPlay() bool {
	return s.InHand && !s.Folded
}

// CanAct reports whether the seat can take a betting action.
func (s *Seat) CanAct() bool {
	return s.InPlay() && s.Chips > 0
}

// resetForHand clears the seat's transient state at the start of a hand.
func (s *Seat) resetForHand(inHand bool) {
	s.HoleCards = nil
	s.CurrentBet = 0
	s.TotalContributed = 0
	s.Folded = false
	s.HasActed = false
	s.LastAction = ""
	s.InHand = inHand
}
