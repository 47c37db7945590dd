package cards

import "fmt"

// CardFromString creates a card from its two-character wire representation
// e.g., "AH" or "ah" -> Card{Rank: Ace, Suit: Hearts}
func CardFromString(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card shorthand: %s", s)
	}

	var rank Rank
	switch s[:1] {
	case "A", "a":
		rank = Ace
	case "K", "k":
		rank = King
	case "Q", "q":
		rank = Queen
	case "J", "j":
		rank = Jack
	case "T", "t":
		rank = Ten
	case "9":
		rank = Nine
	case "8":
		rank = Eight
	case "7":
		rank = Seven
	case "6":
		rank = Six
	case "5":
		rank = Five
	case "4":
		rank = Four
	case "3":
		rank = Three
	case "2":
		rank = Two
	default:
		return Card{}, fmt.Errorf("invalid card rank: %s", s[:1])
	}

	var suit Suit
	switch s[1:] {
	case "H", "h":
		suit = Hearts
	case "D", "d":
		suit = Diamonds
	case "C", "c":
		suit = Clubs
	case "S", "s":
		suit = Spades
	default:
		return Card{}, fmt.Errorf("invalid card suit: %s", s[1:])
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// Suit represents a card suit
type Suit string

const (
	Hearts   Suit = "H"
	Diamonds Suit = "D"
	Clubs    Suit = "C"
	Spades   Suit = "S"
)

// Rank represents a card rank
type Rank string

const (
	Ace   Rank = "A"
	King  Rank = "K"
	Queen Rank = "Q"
	Jack  Rank = "J"
	Ten   Rank = "T"
	Nine  Rank = "9"
	Eight Rank = "8"
	Seven Rank = "7"
	Six   Rank = "6"
	Five  Rank = "5"
	Four  Rank = "4"
	Three Rank = "3"
	Two   Rank = "2"
)

// Points returns the blackjack point value of a rank. Aces count as 11
// here; demoting them to 1 is the hand's job, not the card's.
func (r Rank) Points() int {
	switch r {
	case Ace:
		return 11
	case King, Queen, Jack, Ten:
		return 10
	case Nine:
		return 9
	case Eight:
		return 8
	case Seven:
		return 7
	case Six:
		return 6
	case Five:
		return 5
	case Four:
		return 4
	case Three:
		return 3
	case Two:
		return 2
	}
	return 0
}

// Card represents a playing card
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// String returns the two-character wire representation of a card, e.g. "AH"
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Equals checks if two cards are equal
func (c Card) Equals(other Card) bool {
	return c.Rank == other.Rank && c.Suit == other.Suit
}
