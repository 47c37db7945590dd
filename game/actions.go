package game

import (
	"fmt"

	"github.com/cardroom/blackjack/cards"
	"github.com/cardroom/blackjack/events"
)

// Hit draws one card for the active hand. On 21 the hand auto-stands; past
// 21 it busts. Either way play advances to the next hand.
func (t *Table) Hit() (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.GameStatus != StatusPlaying {
		return t.state.clone(), fmt.Errorf("cannot hit: %w", ErrInvalidState)
	}

	idx := t.state.ActiveHandIndex
	card := t.dealToHand(idx)
	t.emit(events.PlayerActed{TableID: t.id, Action: "hit", HandIndex: idx})

	// Doubling and splitting are only open on a fresh two-card hand.
	t.state.CanDouble = false
	t.state.CanSplit = false

	hand := &t.state.PlayerHands[idx]
	switch {
	case hand.Value > 21:
		hand.Status = HandBust
		t.state.Message = fmt.Sprintf("Hand %d busts!", idx+1)
		t.moveToNextHand()
	case hand.Value == 21:
		hand.Status = HandStood
		t.state.Message = fmt.Sprintf("Hand %d has 21", idx+1)
		t.moveToNextHand()
	default:
		t.state.Message = fmt.Sprintf("Hand %d draws %s", idx+1, card)
	}

	return t.state.clone(), nil
}

// Stand ends the active hand's turn and advances to the next hand.
func (t *Table) Stand() (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.GameStatus != StatusPlaying {
		return t.state.clone(), fmt.Errorf("cannot stand: %w", ErrInvalidState)
	}

	idx := t.state.ActiveHandIndex
	t.state.PlayerHands[idx].Status = HandStood
	t.emit(events.PlayerActed{TableID: t.id, Action: "stand", HandIndex: idx})
	t.moveToNextHand()

	return t.state.clone(), nil
}

// DoubleDown doubles the active hand's bet, draws exactly one card and ends
// the hand's turn.
func (t *Table) DoubleDown() (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.GameStatus != StatusPlaying {
		return t.state.clone(), fmt.Errorf("cannot double down: %w", ErrInvalidState)
	}
	if !t.state.CanDouble {
		return t.state.clone(), fmt.Errorf("double down not available: %w", ErrInvalidAction)
	}

	idx := t.state.ActiveHandIndex
	t.state.Bank -= t.state.PlayerHands[idx].Bet
	t.state.PlayerHands[idx].Bet *= 2
	t.state.CanDouble = false
	t.state.CanSplit = false

	t.dealToHand(idx)
	t.emit(events.PlayerActed{TableID: t.id, Action: "double", HandIndex: idx})

	hand := &t.state.PlayerHands[idx]
	if hand.Value > 21 {
		hand.Status = HandBust
		t.state.Message = fmt.Sprintf("Hand %d doubles and busts!", idx+1)
	} else {
		hand.Status = HandStood
		t.state.Message = fmt.Sprintf("Hand %d doubles down", idx+1)
	}
	t.moveToNextHand()

	return t.state.clone(), nil
}

// Split turns the active two-card pair into two hands, each completed with a
// fresh card from the shoe. The new hand slots in right after the active one
// so the left-to-right walk picks it up next. Split aces receive one card
// each and are forced to stand.
func (t *Table) Split() (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.GameStatus != StatusPlaying {
		return t.state.clone(), fmt.Errorf("cannot split: %w", ErrInvalidState)
	}
	if !t.state.CanSplit {
		return t.state.clone(), fmt.Errorf("split not available: %w", ErrInvalidAction)
	}

	idx := t.state.ActiveHandIndex
	old := t.state.PlayerHands[idx]
	first, second := old.Cards[0], old.Cards[1]

	// The new hand costs another bet.
	t.state.Bank -= t.state.CurrentBet

	orig := Hand{Cards: cards.Stack{first}, Bet: old.Bet, Status: HandPlaying}
	orig.Value = HandValue(orig.Cards)
	split := Hand{Cards: cards.Stack{second}, Bet: t.state.CurrentBet, Status: HandPending}
	split.Value = HandValue(split.Cards)

	hands := make([]Hand, 0, len(t.state.PlayerHands)+1)
	hands = append(hands, t.state.PlayerHands[:idx]...)
	hands = append(hands, orig, split)
	hands = append(hands, t.state.PlayerHands[idx+1:]...)
	t.state.PlayerHands = hands

	t.emit(events.PlayerActed{TableID: t.id, Action: "split", HandIndex: idx})

	// One card for each half, staggered so the display sees them in order.
	t.dealToHand(idx)
	t.pause(t.rules.SplitDelay)
	t.dealToHand(idx + 1)

	if first.Rank == cards.Ace {
		// Split aces get exactly one card each; no further action.
		t.state.PlayerHands[idx].Status = HandStood
		t.state.PlayerHands[idx+1].Status = HandStood
		t.state.Message = "Aces split: one card each"
		t.state.ActiveHandIndex = idx + 1
		t.moveToNextHand()
		return t.state.clone(), nil
	}

	active := &t.state.PlayerHands[idx]
	if active.Value == 21 {
		active.Status = HandStood
		t.state.Message = fmt.Sprintf("Hand %d has 21", idx+1)
		t.moveToNextHand()
		return t.state.clone(), nil
	}

	t.state.Message = fmt.Sprintf("Your turn for Hand %d", idx+1)
	t.updateHandOptions()
	return t.state.clone(), nil
}

// updateHandOptions recomputes double and split eligibility for the active
// hand. Both require a fresh two-card hand and a bank that covers the extra
// bet; splitting additionally requires a matching pair by point value.
func (t *Table) updateHandOptions() {
	hand := t.state.activeHand()
	if t.state.GameStatus != StatusPlaying || hand == nil || len(hand.Cards) != 2 {
		t.state.CanSplit = false
		t.state.CanDouble = false
		return
	}

	t.state.CanDouble = t.state.Bank >= hand.Bet
	t.state.CanSplit = hand.Cards[0].Rank.Points() == hand.Cards[1].Rank.Points() &&
		t.state.Bank >= t.state.CurrentBet
}

// moveToNextHand walks the cursor to the next hand needing input. Post-split
// two-card 21s are marked blackjack and skipped without player input. Once
// the cursor runs past the last hand: if every hand busted the dealer's hole
// card is revealed and the round settles immediately with no dealer draws;
// otherwise the dealer's turn begins.
func (t *Table) moveToNextHand() {
	for {
		t.state.ActiveHandIndex++
		idx := t.state.ActiveHandIndex

		if idx < len(t.state.PlayerHands) {
			hand := &t.state.PlayerHands[idx]
			if hand.isFreshTwentyOne() {
				hand.Status = HandBlackjack
				t.state.Message = fmt.Sprintf("Hand %d has Blackjack!", idx+1)
				continue
			}
			hand.Status = HandPlaying
			t.state.Message = fmt.Sprintf("Your turn for Hand %d", idx+1)
			t.updateHandOptions()
			return
		}

		t.state.CanSplit = false
		t.state.CanDouble = false

		allBusted := true
		for i := range t.state.PlayerHands {
			if t.state.PlayerHands[i].Status != HandBust {
				allBusted = false
				break
			}
		}

		if allBusted {
			// No dealer play needed; every bet is already forfeited.
			t.state.GameStatus = StatusComplete
			t.state.DealerHidden = false

			messages := make([]string, len(t.state.PlayerHands))
			for i := range t.state.PlayerHands {
				hand := &t.state.PlayerHands[i]
				hand.Status = HandLose
				messages[i] = fmt.Sprintf("Hand %d busts (-$%d)", i+1, hand.Bet)
			}
			t.finishRound(messages)
			return
		}

		t.state.GameStatus = StatusDealerTurn
		t.state.Message = "Dealer's turn..."
		if !t.rules.ManualDealer {
			t.playDealerOut()
		}
		return
	}
}
