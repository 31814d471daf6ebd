package game

import "errors"

var (
	ErrOutOfTurn           = errors.New("not player's turn")
	ErrIllegalAction       = errors.New("illegal action")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrEmptyDeck           = errors.New("deck is empty")
	ErrInsufficientPlayers = errors.New("need at least 2 players with chips")
	ErrHandInProgress      = errors.New("hand already in progress")
	ErrNoHandInProgress    = errors.New("no hand in progress")
	ErrSeatTaken           = errors.New("seat already taken")
	ErrTableFull           = errors.New("table is full")
	ErrPlayerNotFound      = errors.New("player not found")
)
