package events

import (
	"encoding/json"

	"github.com/charmbracelet/log"

	"github.com/cardroom/blackjack/events"
	"github.com/cardroom/blackjack/server/connection"
)

// EventEnvelope wraps an event with its name for client consumption
type EventEnvelope struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher handles routing game events to connected clients
type Dispatcher struct {
	connMgr *connection.Manager
	logger  *log.Logger
}

// NewDispatcher creates a new event dispatcher
func NewDispatcher(connMgr *connection.Manager, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Dispatcher{
		connMgr: connMgr,
		logger:  logger.WithPrefix("dispatch"),
	}
}

// HandleEvent serializes a game event and broadcasts it to every client.
// The table is single-seat so there is no per-player routing to do.
func (d *Dispatcher) HandleEvent(event events.Event) {
	eventPayload, err := json.Marshal(event)
	if err != nil {
		d.logger.Error("marshal event payload", "event", event.EventName(), "err", err)
		return
	}

	envelope := EventEnvelope{
		Name:    event.EventName(),
		Payload: eventPayload,
	}

	envelopeData, err := json.Marshal(envelope)
	if err != nil {
		d.logger.Error("marshal event envelope", "event", event.EventName(), "err", err)
		return
	}

	d.logger.Debug("dispatching event", "event", event.EventName())
	d.connMgr.Broadcast(envelopeData)
}
