// Package mq decouples event producers (the services) from the push gateway.
// Two interchangeable brokers exist: an in-process channel for single-node
// deployments and Kafka for multi-node ones, selected by messageMode in the
// configuration.
package mq

import (
	"encoding/json"
	"time"
)

// Event kinds pushed to connected clients.
const (
	EventMessage      = "message"      // new chat message
	EventNotification = "notification" // new feed entry
	EventAppointment  = "appointment"  // request submitted/confirmed/declined
	EventSession      = "session"      // session booked or updated
)

// Event is one push payload addressed to a single user.
type Event struct {
	// Kind is one of the Event* constants.
	Kind string `json:"kind"`

	// UserId is the recipient account uuid.
	UserId string `json:"userId"`

	// Payload is the kind-specific body, already JSON-encoded.
	Payload json.RawMessage `json:"payload"`

	OccurredAt time.Time `json:"occurredAt"`
}

// NewEvent marshals payload and stamps the event. Marshal failures return a
// zero event and the error; callers log and drop.
func NewEvent(kind, userId string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		Kind:       kind,
		UserId:     userId,
		Payload:    raw,
		OccurredAt: time.Now(),
	}, nil
}

// Broker moves events from the services to the gateway.
type Broker interface {
	// Publish hands one event to the broker. Must not block the request
	// path; delivery is best effort.
	Publish(event Event)
	// Subscribe returns the channel the gateway consumes. Call once.
	Subscribe() <-chan Event
	// Close stops the broker and releases its resources.
	Close() error
}
