package game

import (
	"github.com/alexclewontin/riverboat/eval"
)

// toEvalCard converts a domain card to riverboat's card encoding.
func toEvalCard(card Card) eval.Card {
	var suit int
	switch card.Suit {
	case Spades:
		suit = 0
	case Hearts:
		suit = 1
	case Diamonds:
		suit = 2
	case Clubs:
		suit = 3
	}
	rank := card.Rank.Value() - 2
	return eval.Card(rank + suit*13)
}

// fromEvalCard converts a riverboat card back to the domain card.
func fromEvalCard(c eval.Card) Card {
	rank := int(c) % 13
	suit := int(c) / 13
	return Card{Suit: suits[suit], Rank: ranks[rank]}
}

// EvaluateHand scores the best 5-card hand from 2 hole cards and 5
// community cards. Lower scores are stronger. Returns the best five
// cards, the score, and the hand class name.
func EvaluateHand(holeCards, communityCards []Card) ([]Card, int, string) {
	if len(holeCards) != 2 || len(communityCards) != 5 {
		return nil, 0, "invalid"
	}

	best, score := eval.BestFiveOfSeven(
		toEvalCard(holeCards[0]),
		toEvalCard(holeCards[1]),
		toEvalCard(communityCards[0]),
		toEvalCard(communityCards[1]),
		toEvalCard(communityCards[2]),
		toEvalCard(communityCards[3]),
		toEvalCard(communityCards[4]),
	)

	bestCards := make([]Card, 0, 5)
	for _, c := range best {
		bestCards = append(bestCards, fromEvalCard(c))
	}
	return bestCards, score, handRankName(score)
}

// handRankName maps a riverboat score to its hand class.
func handRankName(score int) string {
	switch {
	case score <= 10:
		return "Royal Flush"
	case score <= 166:
		return "Straight Flush"
	case score <= 322:
		return "Four of a Kind"
	case score <= 1599:
		return "Full House"
	case score <= 1609:
		return "Flush"
	case score <= 1619:
		return "Straight"
	case score <= 2467:
		return "Three of a Kind"
	case score <= 3325:
		return "Two Pair"
	case score <= 6185:
		return "One Pair"
	default:
		return "High Card"
	}
}
