package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/cardroom/blackjack/cards"
	"github.com/cardroom/blackjack/events"
)

// ResetSignal is the distinguished display payload that tells card-counting
// displays to clear their state, e.g. after a shuffle.
const ResetSignal = "0"

// CardSource is where the table draws its cards from. *cards.Shoe implements
// it; tests inject fixed sequences.
type CardSource interface {
	DealOne() cards.Card
	Remaining() int
	Shuffle()
}

// Notifier pushes one revealed card code (e.g. "AH") or a reset signal to an
// external display. Calls are best-effort: the table logs failures and moves
// on, it never blocks the round on the display.
type Notifier interface {
	Notify(code string) error
}

// TableRules holds the configuration constants the table consumes.
type TableRules struct {
	Decks        int
	MinBet       int
	StartingBank int

	// DealerDelay paces the dealer's draws; SplitDelay staggers the two
	// post-split draw notifications. Cosmetic only. Zero disables pacing.
	DealerDelay time.Duration
	SplitDelay  time.Duration

	// ManualDealer leaves the table in dealer_turn once the last player hand
	// resolves, for callers that want to advance the dealer step by step via
	// StepDealer. When false the dealer plays out synchronously.
	ManualDealer bool
}

// DefaultRules returns the standard table configuration.
func DefaultRules() TableRules {
	return TableRules{
		Decks:        6,
		MinBet:       10,
		StartingBank: 1000,
		DealerDelay:  time.Second,
		SplitDelay:   500 * time.Millisecond,
	}
}

// Table runs a single blackjack round at a time: betting, dealing, player
// actions, dealer play and settlement. One mutex serializes every mutating
// operation, so concurrent requests against the same table cannot interleave
// mid-round. Rejected calls leave the state untouched.
type Table struct {
	mu       sync.Mutex
	id       string
	roundID  string
	rules    TableRules
	shoe     CardSource
	notifier Notifier
	store    events.EventStore
	handlers []events.EventHandler
	logger   *log.Logger
	clock    quartz.Clock
	state    State
}

// NewTable creates a table drawing from the given card source. The notifier
// and event store may be nil; the logger and clock default to the package
// logger and the real clock.
func NewTable(rules TableRules, shoe CardSource, notifier Notifier, store events.EventStore, logger *log.Logger, clock quartz.Clock) *Table {
	if rules.Decks < 1 {
		rules.Decks = 1
	}
	if rules.MinBet < 1 {
		rules.MinBet = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	if clock == nil {
		clock = quartz.NewReal()
	}

	t := &Table{
		id:       uuid.NewString(),
		rules:    rules,
		shoe:     shoe,
		notifier: notifier,
		store:    store,
		logger:   logger.WithPrefix("table"),
		clock:    clock,
	}
	t.state = State{
		ActiveHandIndex: -1,
		DealerHidden:    true,
		GameStatus:      StatusWaiting,
		Message:         "Place your bet to start",
		CurrentBet:      rules.MinBet,
		Bank:            rules.StartingBank,
		CardsRemaining:  shoe.Remaining(),
	}
	return t
}

// ID returns the table's unique identifier.
func (t *Table) ID() string {
	return t.id
}

// Rules returns the table's configuration.
func (t *Table) Rules() TableRules {
	return t.rules
}

// AddEventHandler registers a handler invoked for every domain event the
// table emits.
func (t *Table) AddEventHandler(handler events.EventHandler) {
	t.handlers = append(t.handlers, handler)
}

// State returns a consistent deep-copied snapshot of the round.
func (t *Table) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.clone()
}

// PlaceBet sets the bet for the next round. Valid only between rounds.
func (t *Table) PlaceBet(amount int) (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.GameStatus == StatusPlaying || t.state.GameStatus == StatusDealerTurn {
		return t.state.clone(), fmt.Errorf("cannot change bet during a round: %w", ErrInvalidState)
	}
	if amount < t.rules.MinBet {
		return t.state.clone(), fmt.Errorf("bet must be at least $%d: %w", t.rules.MinBet, ErrInvalidAction)
	}
	if amount > t.state.Bank {
		return t.state.clone(), fmt.Errorf("bet exceeds bank: %w", ErrInvalidAction)
	}

	t.state.CurrentBet = amount
	t.state.Message = fmt.Sprintf("Bet set to $%d", amount)
	t.emit(events.BetPlaced{TableID: t.id, Amount: amount})
	return t.state.clone(), nil
}

// Deal starts a new round: debits the bet, resets all transient round state
// (bank and bet survive) and deals two cards each to the player and the
// dealer. The dealer's first card stays hidden and is never sent to the
// display until reveal.
func (t *Table) Deal() (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.Bank < t.rules.MinBet {
		return t.state.clone(), fmt.Errorf("not enough money to play: %w", ErrInvalidAction)
	}

	if t.state.CurrentBet > t.state.Bank {
		t.state.CurrentBet = t.state.Bank
	}
	bet := t.state.CurrentBet
	t.state.Bank -= bet

	t.roundID = uuid.NewString()
	t.state.PlayerHands = []Hand{{Bet: bet, Status: HandPending}}
	t.state.ActiveHandIndex = 0
	t.state.DealerHand = nil
	t.state.DealerValue = 0
	t.state.DealerHidden = true
	t.state.GameStatus = StatusPlaying
	t.state.CanSplit = false
	t.state.CanDouble = false

	t.emit(events.RoundStarted{TableID: t.id, RoundID: t.roundID, Bet: bet, Bank: t.state.Bank})
	t.logger.Info("round started", "round", t.roundID, "bet", bet, "bank", t.state.Bank)

	// Fixed dealing order: player, dealer (hole), player, dealer (upcard).
	t.dealToHand(0)
	t.dealToDealer(true)
	t.dealToHand(0)
	upcard := t.dealToDealer(false)

	// Only the visible card counts toward the dealer value until reveal.
	t.state.DealerValue = upcard.Rank.Points()

	player := &t.state.PlayerHands[0]
	if player.isFreshTwentyOne() {
		player.Status = HandBlackjack
		t.state.ActiveHandIndex = -1
		t.state.Message = "Blackjack!"
		t.state.GameStatus = StatusDealerTurn
		if !t.rules.ManualDealer {
			t.playDealerOut()
		}
		return t.state.clone(), nil
	}

	player.Status = HandPlaying
	t.state.Message = "Your turn for Hand 1"
	t.updateHandOptions()
	return t.state.clone(), nil
}

// ShuffleShoe rebuilds and reshuffles the shoe between rounds, and sends the
// reset signal to the display.
func (t *Table) ShuffleShoe() (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.GameStatus == StatusPlaying || t.state.GameStatus == StatusDealerTurn {
		return t.state.clone(), fmt.Errorf("cannot shuffle mid-round: %w", ErrInvalidState)
	}

	t.shoe.Shuffle()
	t.state.CardsRemaining = t.shoe.Remaining()
	t.state.Message = "Shoe shuffled"
	t.notify(ResetSignal)
	t.emit(events.ShoeShuffled{TableID: t.id, CardsRemaining: t.state.CardsRemaining})
	t.logger.Info("shoe shuffled", "remaining", t.state.CardsRemaining)
	return t.state.clone(), nil
}

// dealToHand draws a card for the given player hand, notifying the display.
func (t *Table) dealToHand(idx int) cards.Card {
	card := t.drawCard()
	t.state.PlayerHands[idx].addCard(card)
	t.emit(events.CardDealt{TableID: t.id, Card: card.String(), To: "player", HandIndex: idx})
	t.notify(card.String())
	return card
}

// dealToDealer draws a card for the dealer. Hidden cards never reach the
// display.
func (t *Table) dealToDealer(hidden bool) cards.Card {
	card := t.drawCard()
	t.state.DealerHand = append(t.state.DealerHand, card)
	t.emit(events.CardDealt{TableID: t.id, Card: card.String(), To: "dealer", HandIndex: -1, Hidden: hidden})
	if !hidden {
		t.notify(card.String())
	}
	return card
}

// drawCard pulls one card from the shoe and tracks the remaining count. The
// shoe rebuilds itself at low penetration; a count that grew across a deal
// is how we observe that.
func (t *Table) drawCard() cards.Card {
	before := t.shoe.Remaining()
	card := t.shoe.DealOne()
	after := t.shoe.Remaining()
	if after >= before {
		t.logger.Info("shoe penetration low, rebuilt", "remaining", after)
		t.emit(events.ShoeShuffled{TableID: t.id, CardsRemaining: after})
	}
	t.state.CardsRemaining = after
	return card
}

// notify pushes a card code or reset signal to the display. Best-effort:
// failures are logged and swallowed.
func (t *Table) notify(code string) {
	if t.notifier == nil {
		return
	}
	if err := t.notifier.Notify(code); err != nil {
		t.logger.Warn("display notify failed", "code", code, "err", err)
	}
}

// emit appends the event to the store and fans it out to registered
// handlers. Event delivery never fails the round.
func (t *Table) emit(event events.Event) {
	if t.store != nil {
		if err := t.store.Append(event); err != nil {
			t.logger.Warn("failed to append event", "event", event.EventName(), "err", err)
		}
	}
	for _, handler := range t.handlers {
		handler(event)
	}
}

// pause blocks for the given pacing delay on the table's clock.
func (t *Table) pause(d time.Duration) {
	if d <= 0 {
		return
	}
	timer := t.clock.NewTimer(d)
	<-timer.C
}
