package game

import (
	"math/rand"
)

// Deck represents a shuffled 52-card deck. Cards are dealt without
// replacement and the deck is never replenished within a hand.
type Deck struct {
	cards []Card
	index int
}

// NewDeck creates a new standard 52-card deck in Fisher-Yates shuffled order.
func NewDeck() *Deck {
	deck := &Deck{
		cards: make([]Card, 0, 52),
	}
	for _, suit := range suits {
		for _, rank := range ranks {
			deck.cards = append(deck.cards, Card{Suit: suit, Rank: rank})
		}
	}
	deck.Shuffle()
	return deck
}

// Shuffle reshuffles all 52 cards and rewinds the deal position.
func (d *Deck) Shuffle() {
	d.index = 0
	rand.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal removes and returns the next card from the deck.
func (d *Deck) Deal() (Card, error) {
	if d.index >= len(d.cards) {
		return Card{}, ErrEmptyDeck
	}
	card := d.cards[d.index]
	d.index++
	return card, nil
}

// Burn discards the next card face-down, as done before each
// post-flop street.
func (d *Deck) Burn() error {
	if d.index >= len(d.cards) {
		return ErrEmptyDeck
	}
	d.index++
	return nil
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.index
}

// Cards returns the undealt cards in order, used when persisting
// hand state between actions.
func (d *Deck) Cards() []Card {
	remaining := make([]Card, len(d.cards)-d.index)
	copy(remaining, d.cards[d.index:])
	return remaining
}

// RestoreDeck rebuilds a deck from a persisted list of undealt cards.
func RestoreDeck(cards []Card) *Deck {
	restored := make([]Card, len(cards))
	copy(restored, cards)
	return &Deck{cards: restored}
}
