package cards

import (
	"testing"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck()

	if len(deck) != DeckSize {
		t.Errorf("Expected deck to have %d cards, got %d", DeckSize, len(deck))
	}

	// Every rank/suit combination appears exactly once
	seen := make(map[Card]int)
	for _, card := range deck {
		seen[card]++
	}
	for card, count := range seen {
		if count != 1 {
			t.Errorf("Expected card %s to appear once, got %d", card, count)
		}
	}
}

func TestShuffleCards(t *testing.T) {
	originalDeck := NewDeck()
	shuffledDeck := ShuffleCards(originalDeck)

	// Check same length
	if len(shuffledDeck) != len(originalDeck) {
		t.Errorf("Shuffled deck length %d does not match original deck length %d",
			len(shuffledDeck), len(originalDeck))
	}

	// Check that cards are shuffled (this is probabilistic but very likely)
	differences := 0
	for i := 0; i < len(originalDeck); i++ {
		if shuffledDeck[i] != originalDeck[i] {
			differences++
		}
	}

	if differences == 0 {
		t.Error("Shuffled deck is identical to original deck")
	}

	// Shuffling must not mutate the original
	for i, card := range NewDeck() {
		if originalDeck[i] != card {
			t.Error("ShuffleCards mutated its input")
			break
		}
	}
}
