package game

import "github.com/cardroom/blackjack/cards"

// GameStatus represents the current phase of a round
type GameStatus string

const (
	StatusWaiting    GameStatus = "waiting"
	StatusPlaying    GameStatus = "playing"
	StatusDealerTurn GameStatus = "dealer_turn"
	StatusComplete   GameStatus = "complete"
)

// State is the full snapshot of a table's round, returned after every
// mutating operation and serialized as-is to clients. The dealer's hole card
// is present in DealerHand even while DealerHidden is true; concealing it is
// the display's job. DealerValue, however, only ever counts visible cards.
type State struct {
	PlayerHands     []Hand      `json:"player_hands"`
	ActiveHandIndex int         `json:"active_hand_index"`
	DealerHand      cards.Stack `json:"dealer_hand"`
	DealerValue     int         `json:"dealer_value"`
	DealerHidden    bool        `json:"dealer_hidden"`
	GameStatus      GameStatus  `json:"game_status"`
	Message         string      `json:"message"`
	CanSplit        bool        `json:"can_split"`
	CanDouble       bool        `json:"can_double"`
	CurrentBet      int         `json:"current_bet"`
	Bank            int         `json:"bank"`
	CardsRemaining  int         `json:"cards_remaining"`
}

// clone returns a deep copy of the state so callers can never reach back
// into the table's own slices.
func (s State) clone() State {
	out := s
	out.PlayerHands = make([]Hand, len(s.PlayerHands))
	for i, hand := range s.PlayerHands {
		out.PlayerHands[i] = hand
		out.PlayerHands[i].Cards = append(cards.Stack(nil), hand.Cards...)
	}
	out.DealerHand = append(cards.Stack(nil), s.DealerHand...)
	return out
}

// activeHand returns a pointer to the active hand, or nil when no hand is
// active.
func (s *State) activeHand() *Hand {
	if s.ActiveHandIndex < 0 || s.ActiveHandIndex >= len(s.PlayerHands) {
		return nil
	}
	return &s.PlayerHands[s.ActiveHandIndex]
}
