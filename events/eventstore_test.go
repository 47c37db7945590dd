package events

import (
	"testing"
)

func TestInMemoryEventStore(t *testing.T) {
	store := NewInMemoryEventStore()

	tableID := "table-123"

	t.Run("Append and load events", func(t *testing.T) {
		roundStarted := RoundStarted{
			TableID: tableID,
			RoundID: "round-1",
			Bet:     10,
			Bank:    990,
		}

		cardDealt := CardDealt{
			TableID:   tableID,
			Card:      "AH",
			To:        "player",
			HandIndex: 0,
		}

		roundSettled := RoundSettled{
			TableID: tableID,
			RoundID: "round-1",
			Message: "Hand 1 BLACKJACK! (+$15). Bank: $1015",
			Bank:    1015,
		}

		if err := store.Append(roundStarted); err != nil {
			t.Errorf("Failed to append RoundStarted event: %v", err)
		}
		if err := store.Append(cardDealt); err != nil {
			t.Errorf("Failed to append CardDealt event: %v", err)
		}
		if err := store.Append(roundSettled); err != nil {
			t.Errorf("Failed to append RoundSettled event: %v", err)
		}

		events, err := store.LoadEvents(tableID)
		if err != nil {
			t.Errorf("Failed to load events: %v", err)
		}

		if len(events) != 3 {
			t.Errorf("Expected 3 events, got %d", len(events))
		}

		// Check event types and ordering
		if events[0].EventName() != "round-started" {
			t.Errorf("Expected first event to be round-started, got %s", events[0].EventName())
		}
		if events[1].EventName() != "card-dealt" {
			t.Errorf("Expected second event to be card-dealt, got %s", events[1].EventName())
		}
		if events[2].EventName() != "round-settled" {
			t.Errorf("Expected third event to be round-settled, got %s", events[2].EventName())
		}
	})

	t.Run("Load events for non-existent table", func(t *testing.T) {
		events, err := store.LoadEvents("non-existent-table")
		if err != nil {
			t.Errorf("Expected no error for non-existent table, got %v", err)
		}
		if len(events) != 0 {
			t.Errorf("Expected 0 events for non-existent table, got %d", len(events))
		}
	})

	t.Run("Append event without table ID", func(t *testing.T) {
		err := store.Append(RoundStarted{})
		if err == nil {
			t.Error("Expected error for event with no tableID")
		}
	})
}

func TestGetTableID(t *testing.T) {
	if got := GetTableID(CardDealt{TableID: "t-1", Card: "KS"}); got != "t-1" {
		t.Errorf("Expected table ID t-1, got %q", got)
	}
	if got := GetTableID(&ShoeShuffled{TableID: "t-2"}); got != "t-2" {
		t.Errorf("Expected table ID t-2 from pointer event, got %q", got)
	}
}
