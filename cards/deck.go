package cards

import (
	"math/rand"
	"time"
)

// Suits lists the four suits in a fixed order.
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Ranks lists the thirteen ranks in a fixed order.
var Ranks = []Rank{Ace, King, Queen, Jack, Ten, Nine, Eight, Seven, Six, Five, Four, Three, Two}

// DeckSize is the number of cards in a single deck.
const DeckSize = 52

// NewDeck creates a standard deck of 52 cards
func NewDeck() Stack {
	var deck Stack
	for _, suit := range Suits {
		for _, rank := range Ranks {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}
	return deck
}

// ShuffleCards returns a uniformly shuffled copy of the given cards
func ShuffleCards(deck []Card) []Card {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	shuffled := make([]Card, len(deck))
	copy(shuffled, deck)

	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled
}
