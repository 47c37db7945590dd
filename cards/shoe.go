package cards

import "sync"

// PenetrationThreshold is the fraction of the shoe that must remain before
// a deal; below it the shoe is rebuilt and reshuffled.
const PenetrationThreshold = 0.25

// Shoe represents the working supply of cards for a table, built from
// multiple shuffled decks. It rebuilds itself once penetration gets low.
// All methods are safe for concurrent use.
type Shoe struct {
	mu          sync.Mutex
	cards       Stack
	numDecks    int
	penetration float64
}

// NewShoe creates a new shuffled shoe with a given number of decks and the
// standard 25% penetration threshold. A deck count below one is treated as one.
func NewShoe(numDecks int) *Shoe {
	return NewShoeWithPenetration(numDecks, PenetrationThreshold)
}

// NewShoeWithPenetration creates a shoe with a custom penetration threshold.
// A threshold of zero means the shoe only rebuilds once it is empty.
func NewShoeWithPenetration(numDecks int, penetration float64) *Shoe {
	if numDecks < 1 {
		numDecks = 1
	}
	shoe := &Shoe{numDecks: numDecks, penetration: penetration}
	shoe.mu.Lock()
	defer shoe.mu.Unlock()
	shoe.rebuild()
	return shoe
}

// rebuild replaces the shoe contents with freshly shuffled decks.
// Callers must hold the mutex.
func (s *Shoe) rebuild() {
	var stack Stack
	for i := 0; i < s.numDecks; i++ {
		stack = append(stack, NewDeck()...)
	}
	s.cards = ShuffleCards(stack)
}

// Shuffle discards whatever remains and rebuilds the shoe from full decks.
func (s *Shoe) Shuffle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rebuild()
}

// DealOne removes and returns the next card. When fewer than 25% of the
// shoe's cards remain, it rebuilds and reshuffles first — inside the same
// critical section, so two low-penetration callers can never double-rebuild
// and no deal ever reads a shoe that skipped its rebuild.
func (s *Shoe) DealOne() Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cards) == 0 || float64(len(s.cards)) < s.penetration*float64(DeckSize*s.numDecks) {
		s.rebuild()
	}

	card := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]
	return card
}

// Remaining returns the number of cards left in the shoe.
func (s *Shoe) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cards)
}

// NumDecks returns the number of decks the shoe is built from.
func (s *Shoe) NumDecks() int {
	return s.numDecks
}
