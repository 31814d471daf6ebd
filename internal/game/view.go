package game

// SeatView is the client-facing projection of one seat. Hole cards
// are filled in only when the viewer is entitled to see them.
type SeatView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Chips    int    `json:"chips"`
	Hand     []Card `json:"hand"`
	IsAI     bool   `json:"isAI"`
	IsFolded bool   `json:"isFolded"`
	Bet      int    `json:"bet"`
	TotalBet int    `json:"totalBet"`
	Action   string `json:"action,omitempty"`
	HasActed bool   `json:"hasActed"`
}

// GameView is the client-facing projection of the table state.
type GameView struct {
	Players            []SeatView `json:"players"`
	CommunityCards     []Card     `json:"communityCards"`
	Pot                int        `json:"pot"`
	CurrentPlayerIndex int        `json:"currentPlayerIndex"`
	DealerIndex        int        `json:"dealerIndex"`
	SmallBlindIndex    int        `json:"smallBlindIndex"`
	BigBlindIndex      int        `json:"bigBlindIndex"`
	GamePhase          Phase      `json:"gamePhase"`
	CurrentBet         int        `json:"currentBet"`
	MinRaise           int        `json:"minRaise"`
}

// View builds the table state as seen by viewerID: the viewer's own
// hole cards are visible, everyone else's stay hidden until showdown.
// An empty viewerID yields the fully redacted public view.
func (g *Game) View(viewerID string) *GameView {
	view := &GameView{
		Players:            make([]SeatView, 0, len(g.Seats)),
		CommunityCards:     append([]Card(nil), g.CommunityCards...),
		Pot:                g.Pot,
		CurrentPlayerIndex: g.CurrentActorIndex,
		DealerIndex:        g.DealerIndex,
		SmallBlindIndex:    g.SmallBlindIndex,
		BigBlindIndex:      g.BigBlindIndex,
		GamePhase:          g.Phase,
		CurrentBet:         g.CurrentBet,
		MinRaise:           g.MinRaise,
	}
	for _, seat := range g.Seats {
		sv := SeatView{
			ID:       seat.PlayerID,
			Name:     seat.Name,
			Chips:    seat.Chips,
			Hand:     []Card{},
			IsAI:     seat.IsAI,
			IsFolded: seat.Folded,
			Bet:      seat.CurrentBet,
			TotalBet: seat.TotalContributed,
			Action:   seat.LastAction,
			HasActed: seat.HasActed,
		}
		if g.revealTo(viewerID, seat) {
			sv.Hand = append([]Card(nil), seat.HoleCards...)
		}
		view.Players = append(view.Players, sv)
	}
	return view
}

// revealTo decides whether a seat's hole cards are visible to the
// viewer: always to the owner, to everyone at a contested showdown.
func (g *Game) revealTo(viewerID string, seat *Seat) bool {
	if seat.PlayerID == viewerID {
		return true
	}
	if g.Phase != Showdown || !seat.InPlay() {
		return false
	}
	// Uncontested wins keep all cards hidden.
	return g.LastResult == nil || !g.LastResult.Uncontested
}
