package mq

import "testing"

func TestChannelBrokerDelivers(t *testing.T) {
	b := NewChannelBroker()
	defer b.Close()

	event, err := NewEvent(EventMessage, "Upatient00001", map[string]string{"text": "hi"})
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	b.Publish(event)

	got := <-b.Subscribe()
	if got.Kind != EventMessage || got.UserId != "Upatient00001" {
		t.Errorf("event = %s for %s", got.Kind, got.UserId)
	}
}

func TestChannelBrokerPublishAfterClose(t *testing.T) {
	b := NewChannelBroker()
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// dropped silently, must not panic
	b.Publish(Event{Kind: EventNotification, UserId: "Upatient00001"})

	if _, ok := <-b.Subscribe(); ok {
		t.Error("subscribe channel should be closed")
	}
}

func TestChannelBrokerCloseIsIdempotent(t *testing.T) {
	b := NewChannelBroker()
	if err := b.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
