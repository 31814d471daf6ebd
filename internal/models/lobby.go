package models

import (
	"time"
)

// Lobby is one game room: a roster of players, the blind sizes and
// whether the game has started.
type Lobby struct {
	ID          string    `json:"id" gorm:"primaryKey;size:16"`
	SmallBlind  int       `json:"small_blind" gorm:"not null;default:10"`
	BigBlind    int       `json:"big_blind" gorm:"not null;default:20"`
	GameStarted bool      `json:"game_started" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Players []Player `json:"players,omitempty" gorm:"foreignKey:LobbyID;constraint:OnDelete:CASCADE"`
}

// Player is one seat row: identity, stack, and the per-hand transient
// fields. Card lists persist as JSON text of ordered {rank, suit}
// pairs.
type Player struct {
	ID      string `json:"id" gorm:"primaryKey;size:16"`
	LobbyID string `json:"lobby_id" gorm:"not null;index;size:16"`
	Name    string `json:"name" gorm:"not null;size:50"`
	Chips   int    `json:"chips" gorm:"not null;default:1000"`
	IsAI    bool   `json:"is_ai" gorm:"default:false"`
	IsHost  bool   `json:"is_host" gorm:"default:false"`

	Hand     string  `json:"hand" gorm:"type:text;default:'[]'"`
	IsFolded bool    `json:"is_folded" gorm:"default:false"`
	Bet      int     `json:"bet" gorm:"default:0"`
	TotalBet int     `json:"total_bet" gorm:"default:0"`
	Action   *string `json:"action,omitempty" gorm:"size:10"`
	HasActed bool    `json:"has_acted" gorm:"default:false"`
}

// HandState is the persisted hand row for a lobby, one per lobby.
type HandState struct {
	ID              uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	LobbyID         string `json:"lobby_id" gorm:"uniqueIndex;not null;size:16"`
	Deck            string `json:"deck" gorm:"type:text;default:'[]'"`
	CommunityCards  string `json:"community_cards" gorm:"type:text;default:'[]'"`
	Pot             int    `json:"pot" gorm:"default:0"`
	CurrentActor    int    `json:"current_actor" gorm:"default:-1"`
	DealerIndex     int    `json:"dealer_index" gorm:"default:-1"`
	SmallBlindIndex int    `json:"small_blind_index" gorm:"default:-1"`
	BigBlindIndex   int    `json:"big_blind_index" gorm:"default:-1"`
	GamePhase       string `json:"game_phase" gorm:"size:12;default:SETUP"`
	CurrentBet      int    `json:"current_bet" gorm:"default:0"`
	MinRaise        int    `json:"min_raise" gorm:"default:0"`
	LastRaiserIndex int    `json:"last_raiser_index" gorm:"default:-1"`
	HandNumber      int    `json:"hand_number" gorm:"default:0"`
}
