package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroom/blackjack/events"
	"github.com/cardroom/blackjack/server/connection"
)

func TestHandleEventBroadcastsEnvelope(t *testing.T) {
	connMgr := connection.NewManager()
	go connMgr.Start()

	client := &connection.Client{ID: "display", Send: make(chan []byte, 4)}
	connMgr.Register <- client
	require.Eventually(t, func() bool { return connMgr.Count() == 1 }, time.Second, 10*time.Millisecond)

	dispatcher := NewDispatcher(connMgr, nil)
	dispatcher.HandleEvent(events.CardDealt{TableID: "t1", Card: "AH", To: "player", HandIndex: 0})

	var envelope EventEnvelope
	require.NoError(t, json.Unmarshal(<-client.Send, &envelope))
	assert.Equal(t, "card-dealt", envelope.Name)

	var payload events.CardDealt
	require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
	assert.Equal(t, "AH", payload.Card)
	assert.Equal(t, "player", payload.To)
}
