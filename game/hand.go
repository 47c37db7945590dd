package game

import "github.com/cardroom/blackjack/cards"

// HandStatus represents where a single hand stands in the round
type HandStatus string

const (
	HandPending   HandStatus = "pending"
	HandPlaying   HandStatus = "playing"
	HandStood     HandStatus = "stood"
	HandBust      HandStatus = "bust"
	HandBlackjack HandStatus = "blackjack"
	HandWin       HandStatus = "win"
	HandLose      HandStatus = "lose"
	HandTie       HandStatus = "tie"
)

// Hand represents one player hand and its bet. A round starts with a single
// hand; splits insert more.
type Hand struct {
	Cards  cards.Stack `json:"cards"`
	Value  int         `json:"value"`
	Status HandStatus  `json:"status"`
	Bet    int         `json:"bet"`
}

// addCard appends a card and recomputes the hand value, so Value is never
// stale.
func (h *Hand) addCard(card cards.Card) {
	h.Cards = append(h.Cards, card)
	h.Value = HandValue(h.Cards)
}

// isFreshTwentyOne reports whether the hand is a two-card 21.
func (h *Hand) isFreshTwentyOne() bool {
	return h.Value == 21 && len(h.Cards) == 2
}

// HandValue calculates the blackjack value of a hand. Aces count as 11 and
// are demoted to 1, one at a time, while the total busts.
func HandValue(hand cards.Stack) int {
	value := 0
	aces := 0

	for _, card := range hand {
		value += card.Rank.Points()
		if card.Rank == cards.Ace {
			aces++
		}
	}

	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}

	return value
}
