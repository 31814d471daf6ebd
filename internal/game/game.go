package game

// Phase represents the current street of a poker hand. The wire values
// match what table clients expect.
type Phase string

const (
	Setup    Phase = "SETUP"
	PreFlop  Phase = "PRE_FLOP"
	Flop     Phase = "FLOP"
	Turn     Phase = "TURN"
	River    Phase = "RIVER"
	Showdown Phase = "SHOWDOWN"
)

// ActionType is one of the five player actions.
type ActionType string

const (
	ActionFold  ActionType = "FOLD"
	ActionCheck ActionType = "CHECK"
	ActionCall  ActionType = "CALL"
	ActionBet   ActionType = "BET"
	ActionRaise ActionType = "RAISE"
)

// Game owns one table's hand state: the seat roster, the current
// street, pot, bet sizing and the rotation indices. All indices are
// positions in Seats; -1 means unset.
type Game struct {
	LobbyID string
	Seats   []*Seat

	SmallBlind int
	BigBlind   int

	Phase             Phase
	CommunityCards    []Card
	Pot               int
	CurrentBet        int
	MinRaise          int
	DealerIndex       int
	SmallBlindIndex   int
	BigBlindIndex     int
	CurrentActorIndex int
	LastRaiserIndex   int
	HandNumber        int

	Deck *Deck

	// LastResult holds the most recent showdown outcome, set by
	// resolveShowdown and cleared by StartHand.
	LastResult *ShowdownResult
}

// NewGame creates a game for a lobby with the given blind sizes.
func NewGame(lobbyID string, smallBlind, bigBlind int) *Game {
	return &Game{
		LobbyID:           lobbyID,
		SmallBlind:        smallBlind,
		BigBlind:          bigBlind,
		Phase:             Setup,
		DealerIndex:       -1,
		SmallBlindIndex:   -1,
		BigBlindIndex:     -1,
		CurrentActorIndex: -1,
		LastRaiserIndex:   -1,
	}
}

// AddSeat appends a player to the roster. Fails once the table holds
// MaxSeats players or if the player is already seated.
func (g *Game) AddSeat(playerID, name string, chips int, isAI, isHost bool) error {
	if len(g.Seats) >= MaxSeats {
		return ErrTableFull
	}
	for _, seat := range g.Seats {
		if seat.PlayerID == playerID {
			return ErrSeatTaken
		}
	}
	g.Seats = append(g.Seats, &Seat{
		PlayerID: playerID,
		Name:     name,
		Chips:    chips,
		IsAI:     isAI,
		IsHost:   isHost,
	})
	return nil
}

// MaxSeats is the roster cap per table.
const MaxSeats = 8

// Seat returns the seat holding the given player, or nil.
func (g *Game) Seat(playerID string) (*Seat, int) {
	for i, seat := range g.Seats {
		if seat.PlayerID == playerID {
			return seat, i
		}
	}
	return nil, -1
}

// EligibleSeats returns the indices of seats with chips to play a new
// hand.
func (g *Game) EligibleSeats() []int {
	eligible := make([]int, 0, len(g.Seats))
	for i, seat := range g.Seats {
		if seat.Chips > 0 {
			eligible = append(eligible, i)
		}
	}
	return eligible
}

// ActiveSeats returns the indices of seats still contesting the pot.
func (g *Game) ActiveSeats() []int {
	active := make([]int, 0, len(g.Seats))
	for i, seat := range g.Seats {
		if seat.InPlay() {
			active = append(active, i)
		}
	}
	return active
}

// HighestBet returns the maximum per-street contribution among seats
// still in the hand.
func (g *Game) HighestBet() int {
	highest := 0
	for _, seat := range g.Seats {
		if seat.InPlay() && seat.CurrentBet > highest {
			highest = seat.CurrentBet
		}
	}
	return highest
}

// InHand reports whether a hand is being played.
func (g *Game) InHand() bool {
	return g.Phase != Setup && g.Phase != Showdown
}

// nextEligible walks the roster from the seat after `from`, wrapping
// around, and returns the first seat with chips. Returns -1 if none.
func (g *Game) nextEligible(from int) int {
	n := len(g.Seats)
	for i := 1; i <= n; i++ {
		idx := ((from + i) % n + n) % n
		if g.Seats[idx].Chips > 0 {
			return idx
		}
	}
	return -1
}

// nextToAct walks the roster from the seat after `from`, wrapping
// around, and returns the first seat that can still bet. Returns -1
// if every remaining seat is folded or all-in.
func (g *Game) nextToAct(from int) int {
	n := len(g.Seats)
	for i := 1; i <= n; i++ {
		idx := ((from + i) % n + n) % n
		if g.Seats[idx].CanAct() {
			return idx
		}
	}
	return -1
}
