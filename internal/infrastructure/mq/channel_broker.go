package mq

import (
	"sync"

	"go.uber.org/zap"

	"theracare_server/pkg/constants"
)

// ChannelBroker is the in-process broker for single-node deployments.
// Publish never blocks: when the buffer is full the event is dropped with a
// warning, since push delivery is best effort and the feed endpoints remain
// the source of truth.
type ChannelBroker struct {
	// mu guards events against a Publish racing Close during shutdown: the
	// channel is only closed and only written under the lock.
	mu     sync.Mutex
	closed bool
	events chan Event
}

// NewChannelBroker creates a broker with the standard buffer size.
func NewChannelBroker() *ChannelBroker {
	return &ChannelBroker{
		events: make(chan Event, constants.CHANNEL_SIZE),
	}
}

func (b *ChannelBroker) Publish(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	select {
	case b.events <- event:
	default:
		zap.L().Warn("event channel full, dropping push event",
			zap.String("kind", event.Kind),
			zap.String("userId", event.UserId))
	}
}

func (b *ChannelBroker) Subscribe() <-chan Event {
	return b.events
}

func (b *ChannelBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.events)
	}
	return nil
}
