package websocket

import (
	"testing"
	"time"

	"theracare_server/internal/infrastructure/mq"
)

func newTestClient(userId string) *client {
	return &client{
		userId: userId,
		send:   make(chan mq.Event, 4),
	}
}

func TestTrySendAfterCloseDoesNotPanic(t *testing.T) {
	cl := newTestClient("Upatient00001")
	cl.closeSend()

	if cl.trySend(mq.Event{Kind: mq.EventMessage, UserId: cl.userId}) {
		t.Error("trySend to a closed client should report false")
	}
}

func TestCloseSendIsIdempotent(t *testing.T) {
	cl := newTestClient("Upatient00001")
	cl.closeSend()
	cl.closeSend()
}

func TestDispatchSurvivesClientTeardown(t *testing.T) {
	broker := mq.NewChannelBroker()
	defer broker.Close()
	g := NewGateway(broker)
	defer g.Close()

	// a client torn down between the dispatch loop's Load and its send
	gone := newTestClient("Ugone00000001")
	g.clients.Store(gone.userId, gone)
	gone.closeSend()

	event, err := mq.NewEvent(mq.EventMessage, gone.userId, map[string]string{"text": "hi"})
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	broker.Publish(event)

	// the loop must still dispatch to connected clients afterwards
	alive := newTestClient("Ualive0000001")
	g.clients.Store(alive.userId, alive)

	event, err = mq.NewEvent(mq.EventNotification, alive.userId, map[string]string{"title": "t"})
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	broker.Publish(event)

	select {
	case got := <-alive.send:
		if got.Kind != mq.EventNotification || got.UserId != alive.userId {
			t.Errorf("event = %s for %s", got.Kind, got.UserId)
		}
	case <-time.After(time.Second):
		t.Fatal("dispatch loop stopped delivering after a torn-down client")
	}
}

func TestTrySendDropsWhenBufferFull(t *testing.T) {
	cl := &client{userId: "Ufull00000001", send: make(chan mq.Event)}

	if cl.trySend(mq.Event{Kind: mq.EventMessage, UserId: cl.userId}) {
		t.Error("trySend with a full buffer should report false")
	}
}
