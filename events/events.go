package events

// RoundStarted is emitted when a new round is dealt.
type RoundStarted struct {
	TableID string
	RoundID string
	Bet     int
	Bank    int
}

func (e RoundStarted) EventName() string { return "round-started" }

// BetPlaced is emitted when the player changes the table bet.
type BetPlaced struct {
	TableID string
	Amount  int
}

func (e BetPlaced) EventName() string { return "bet-placed" }

// CardDealt is emitted for every card that leaves the shoe. Hidden marks the
// dealer's hole card, which must not reach the display until reveal.
type CardDealt struct {
	TableID   string
	Card      string
	To        string // "player" or "dealer"
	HandIndex int    // player hand index, -1 for dealer cards
	Hidden    bool
}

func (e CardDealt) EventName() string { return "card-dealt" }

// PlayerActed is emitted after each player decision.
type PlayerActed struct {
	TableID   string
	Action    string // "hit", "stand", "double", "split"
	HandIndex int
}

func (e PlayerActed) EventName() string { return "player-acted" }

// HoleCardRevealed is emitted when the dealer turns over the hole card.
type HoleCardRevealed struct {
	TableID string
	Card    string
}

func (e HoleCardRevealed) EventName() string { return "hole-card-revealed" }

// ShoeShuffled is emitted whenever the shoe is rebuilt, either explicitly or
// by the low-penetration check.
type ShoeShuffled struct {
	TableID        string
	CardsRemaining int
}

func (e ShoeShuffled) EventName() string { return "shoe-shuffled" }

// RoundSettled is emitted once all hands are resolved against the dealer.
type RoundSettled struct {
	TableID string
	RoundID string
	Message string
	Bank    int
}

func (e RoundSettled) EventName() string { return "round-settled" }
