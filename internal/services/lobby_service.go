package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pokertown/holdem/internal/database"
	"github.com/pokertown/holdem/internal/game"
	"github.com/pokertown/holdem/internal/models"
)

const (
	lobbyIDLength   = 7
	seededAIPlayers = 2
	defaultAIChips  = 1000
	maxLobbyPlayers = game.MaxSeats
)

// LobbyService provides GORM-based lobby, player and hand-state
// persistence. It also implements the table actor's Store.
type LobbyService struct {
	db *database.DB
}

// NewLobbyService creates a new lobby service.
func NewLobbyService(db *database.DB) *LobbyService {
	return &LobbyService{db: db}
}

// PlayerSpec describes a player joining a lobby.
type PlayerSpec struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Chips int    `json:"chips"`
	IsAI  bool   `json:"isAI"`
}

// CreateLobby creates a lobby with the host seated plus two seeded AI
// players, matching the room setup players expect.
func (s *LobbyService) CreateLobby(ctx context.Context, host PlayerSpec, smallBlind, bigBlind int) (*models.Lobby, error) {
	lobby := &models.Lobby{
		ID:         randomID(lobbyIDLength),
		SmallBlind: smallBlind,
		BigBlind:   bigBlind,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(lobby).Error; err != nil {
			return fmt.Errorf("create lobby: %w", err)
		}
		players := []models.Player{{
			ID:      host.ID,
			LobbyID: lobby.ID,
			Name:    host.Name,
			Chips:   host.Chips,
			IsAI:    host.IsAI,
			IsHost:  true,
			Hand:    "[]",
		}}
		for i := 1; i <= seededAIPlayers; i++ {
			players = append(players, models.Player{
				ID:      randomID(lobbyIDLength),
				LobbyID: lobby.ID,
				Name:    fmt.Sprintf("Agent %d", i),
				Chips:   defaultAIChips,
				IsAI:    true,
				Hand:    "[]",
			})
		}
		if err := tx.Create(&players).Error; err != nil {
			return fmt.Errorf("create players: %w", err)
		}
		lobby.Players = players
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("lobby created", "lobby_id", lobby.ID, "host", host.Name)
	return lobby, nil
}

// JoinLobby seats an additional player in an existing lobby.
func (s *LobbyService) JoinLobby(ctx context.Context, lobbyID string, spec PlayerSpec) error {
	lobby, err := s.GetLobby(ctx, lobbyID)
	if err != nil {
		return err
	}
	if len(lobby.Players) >= maxLobbyPlayers {
		return game.ErrTableFull
	}
	player := &models.Player{
		ID:      spec.ID,
		LobbyID: lobbyID,
		Name:    spec.Name,
		Chips:   spec.Chips,
		IsAI:    spec.IsAI,
		Hand:    "[]",
	}
	if err := s.db.WithContext(ctx).Create(player).Error; err != nil {
		if database.IsUniqueConstraintError(err) {
			return game.ErrSeatTaken
		}
		return fmt.Errorf("create player: %w", err)
	}
	return nil
}

// GetLobby loads a lobby row with its players.
func (s *LobbyService) GetLobby(ctx context.Context, lobbyID string) (*models.Lobby, error) {
	var lobby models.Lobby
	err := s.db.WithContext(ctx).Preload("Players").First(&lobby, "id = ?", lobbyID).Error
	if err != nil {
		if database.IsNotFoundError(err) {
			return nil, fmt.Errorf("lobby %s: %w", lobbyID, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("load lobby: %w", err)
	}
	return &lobby, nil
}

// DeleteLobby removes a lobby and, by cascade, its players.
func (s *LobbyService) DeleteLobby(ctx context.Context, lobbyID string) error {
	if err := s.db.WithContext(ctx).Delete(&models.Lobby{}, "id = ?", lobbyID).Error; err != nil {
		return fmt.Errorf("delete lobby: %w", err)
	}
	return nil
}

// SetGameStarted flips the lobby's started flag.
func (s *LobbyService) SetGameStarted(lobbyID string, started bool) error {
	err := s.db.Model(&models.Lobby{}).Where("id = ?", lobbyID).
		Update("game_started", started).Error
	if err != nil {
		return fmt.Errorf("update started flag: %w", err)
	}
	return nil
}

// SaveState persists the in-memory game: one hand-state row per lobby
// plus the per-seat transient fields.
func (s *LobbyService) SaveState(g *game.Game) error {
	var undealt []game.Card
	if g.Deck != nil {
		undealt = g.Deck.Cards()
	}
	deckJSON, err := marshalCards(undealt)
	if err != nil {
		return err
	}
	communityJSON, err := marshalCards(g.CommunityCards)
	if err != nil {
		return err
	}

	state := models.HandState{
		LobbyID:         g.LobbyID,
		Deck:            deckJSON,
		CommunityCards:  communityJSON,
		Pot:             g.Pot,
		CurrentActor:    g.CurrentActorIndex,
		DealerIndex:     g.DealerIndex,
		SmallBlindIndex: g.SmallBlindIndex,
		BigBlindIndex:   g.BigBlindIndex,
		GamePhase:       string(g.Phase),
		CurrentBet:      g.CurrentBet,
		MinRaise:        g.MinRaise,
		LastRaiserIndex: g.LastRaiserIndex,
		HandNumber:      g.HandNumber,
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "lobby_id"}},
			UpdateAll: true,
		}).Create(&state).Error
		if err != nil {
			return fmt.Errorf("save hand state: %w", err)
		}
		for _, seat := range g.Seats {
			handJSON, err := marshalCards(seat.HoleCards)
			if err != nil {
				return err
			}
			var action *string
			if seat.LastAction != "" {
				action = &seat.LastAction
			}
			updates := map[string]any{
				"chips":     seat.Chips,
				"hand":      handJSON,
				"is_folded": seat.Folded,
				"bet":       seat.CurrentBet,
				"total_bet": seat.TotalContributed,
				"action":    action,
				"has_acted": seat.HasActed,
			}
			err = tx.Model(&models.Player{}).Where("id = ?", seat.PlayerID).
				Updates(updates).Error
			if err != nil {
				return fmt.Errorf("save player %s: %w", seat.PlayerID, err)
			}
		}
		return nil
	})
}

// BuildGame constructs the in-memory game for a lobby's roster.
func BuildGame(lobby *models.Lobby) (*game.Game, error) {
	g := game.NewGame(lobby.ID, lobby.SmallBlind, lobby.BigBlind)
	for _, p := range lobby.Players {
		if err := g.AddSeat(p.ID, p.Name, p.Chips, p.IsAI, p.IsHost); err != nil {
			return nil, fmt.Errorf("seat player %s: %w", p.ID, err)
		}
	}
	return g, nil
}

func marshalCards(cards []game.Card) (string, error) {
	if cards == nil {
		cards = []game.Card{}
	}
	raw, err := json.Marshal(cards)
	if err != nil {
		return "", fmt.Errorf("marshal cards: %w", err)
	}
	return string(raw), nil
}

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomID(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return string(b)
}
