package game

import (
	"fmt"
	"strings"

	"github.com/sanity-io/litter"

	"github.com/cardroom/blackjack/events"
)

// StepDealer advances the dealer's turn by one step: first the hole-card
// reveal, then one draw per call while the dealer is under 17, and finally
// settlement. Valid only while game_status is dealer_turn.
func (t *Table) StepDealer() (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.GameStatus != StatusDealerTurn {
		return t.state.clone(), fmt.Errorf("dealer is not playing: %w", ErrInvalidState)
	}

	t.stepDealer()
	return t.state.clone(), nil
}

// PlayDealerToCompletion loops StepDealer until the round settles. Valid
// only while game_status is dealer_turn.
func (t *Table) PlayDealerToCompletion() (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.GameStatus != StatusDealerTurn {
		return t.state.clone(), fmt.Errorf("dealer is not playing: %w", ErrInvalidState)
	}

	t.playDealerOut()
	return t.state.clone(), nil
}

// playDealerOut runs the dealer's turn to completion. Callers must hold the
// mutex with game_status == dealer_turn.
func (t *Table) playDealerOut() {
	for t.state.GameStatus == StatusDealerTurn {
		t.stepDealer()
	}
}

// stepDealer performs one unit of dealer work. The reveal comes first so the
// display receives the hole card before any new draws; the dealer value
// counts both cards from that point on.
func (t *Table) stepDealer() {
	if t.state.DealerHidden {
		t.state.DealerHidden = false
		t.state.DealerValue = HandValue(t.state.DealerHand)
		hole := t.state.DealerHand[0]
		t.emit(events.HoleCardRevealed{TableID: t.id, Card: hole.String()})
		t.notify(hole.String())
		return
	}

	if t.state.DealerValue < 17 {
		t.pause(t.rules.DealerDelay)
		t.dealToDealer(false)
		t.state.DealerValue = HandValue(t.state.DealerHand)
		return
	}

	t.determineWinners()
}

// determineWinners settles every player hand against the dealer and credits
// the bank. Bets were debited when placed, so settlement only ever credits:
// a win returns the bet plus even money, a blackjack pays 3:2, a push
// returns the bet, a loss pays nothing.
func (t *Table) determineWinners() {
	dealerValue := t.state.DealerValue
	dealerBust := dealerValue > 21
	dealerBlackjack := dealerValue == 21 && len(t.state.DealerHand) == 2

	messages := make([]string, 0, len(t.state.PlayerHands))
	for i := range t.state.PlayerHands {
		hand := &t.state.PlayerHands[i]
		handNum := i + 1
		bet := hand.Bet

		switch hand.Status {
		case HandBust:
			hand.Status = HandLose
			messages = append(messages, fmt.Sprintf("Hand %d busts (-$%d)", handNum, bet))

		case HandBlackjack:
			if dealerBlackjack {
				hand.Status = HandTie
				t.state.Bank += bet
				messages = append(messages, fmt.Sprintf("Hand %d pushes ($%d)", handNum, bet))
			} else {
				hand.Status = HandWin
				winnings := bet * 5 / 2 // 3:2 payout
				t.state.Bank += winnings
				messages = append(messages, fmt.Sprintf("Hand %d BLACKJACK! (+$%d)", handNum, winnings-bet))
			}

		case HandStood:
			switch {
			case dealerBust, hand.Value > dealerValue:
				hand.Status = HandWin
				t.state.Bank += bet * 2
				messages = append(messages, fmt.Sprintf("Hand %d wins (+$%d)", handNum, bet))
			case hand.Value < dealerValue:
				hand.Status = HandLose
				messages = append(messages, fmt.Sprintf("Hand %d loses (-$%d)", handNum, bet))
			default:
				hand.Status = HandTie
				t.state.Bank += bet
				messages = append(messages, fmt.Sprintf("Hand %d pushes ($%d)", handNum, bet))
			}
		}
	}

	t.state.GameStatus = StatusComplete
	t.finishRound(messages)
}

// finishRound composes the settlement message and emits the round-settled
// event.
func (t *Table) finishRound(messages []string) {
	t.state.Message = strings.Join(messages, ". ") + fmt.Sprintf(". Bank: $%d", t.state.Bank)
	t.emit(events.RoundSettled{TableID: t.id, RoundID: t.roundID, Message: t.state.Message, Bank: t.state.Bank})
	t.logger.Info("round settled", "round", t.roundID, "bank", t.state.Bank)
	t.logger.Debug("final state", "state", litter.Sdump(t.state))
}
