// Package websocket pushes broker events to connected dashboard clients.
//
// The gateway is push-only: clients connect with their user id and receive
// the events addressed to them. No state flows upstream; every mutation goes
// through the HTTP API.
package websocket

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"theracare_server/internal/infrastructure/mq"
	"theracare_server/pkg/constants"
	"theracare_server/pkg/util/jwt"
)

// the dashboards run on a different origin during development
var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// client is one connected dashboard.
type client struct {
	conn   *websocket.Conn
	userId string

	// mu guards send against the dispatch loop racing a teardown: the
	// channel is only closed and only written under the lock.
	mu     sync.Mutex
	closed bool
	send   chan mq.Event
}

// trySend queues one event, reporting false when the client is gone or its
// buffer is full.
func (cl *client) trySend(event mq.Event) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if cl.closed {
		return false
	}
	select {
	case cl.send <- event:
		return true
	default:
		return false
	}
}

// closeSend closes the send channel exactly once, stopping writeLoop.
func (cl *client) closeSend() {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if !cl.closed {
		cl.closed = true
		close(cl.send)
	}
}

// shutdown tears the client down: no more sends, connection dropped.
func (cl *client) shutdown() {
	cl.closeSend()
	if cl.conn != nil {
		_ = cl.conn.Close()
	}
}

// Gateway fans broker events out to the connected clients of each user.
type Gateway struct {
	broker mq.Broker

	// clients maps userId -> *client. One connection per user; a second
	// connection for the same user replaces the first.
	clients sync.Map

	done chan struct{}
	once sync.Once
}

// NewGateway creates the gateway and starts the dispatch loop.
func NewGateway(broker mq.Broker) *Gateway {
	g := &Gateway{
		broker: broker,
		done:   make(chan struct{}),
	}
	go g.dispatchLoop()
	return g
}

// Handle upgrades one HTTP request to a push connection. Browsers cannot set
// an Authorization header on websocket handshakes, so the access token rides
// in the query string instead.
func (g *Gateway) Handle(c *gin.Context) {
	claims, err := jwt.ParseToken(c.Query("token"))
	if err != nil || claims.Subject != "access_token" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	userId := claims.UserID

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error("websocket upgrade failed", zap.Error(err))
		return
	}

	cl := &client{
		conn:   conn,
		userId: userId,
		send:   make(chan mq.Event, constants.CHANNEL_SIZE),
	}

	if old, loaded := g.clients.Swap(userId, cl); loaded {
		old.(*client).shutdown()
	}
	zap.L().Info("push client connected", zap.String("userId", userId))

	go cl.writeLoop()
	go g.readLoop(cl)
}

// dispatchLoop routes broker events to the recipient's connection. Events
// for offline users are dropped; the feed endpoints remain authoritative.
func (g *Gateway) dispatchLoop() {
	events := g.broker.Subscribe()
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			value, ok := g.clients.Load(event.UserId)
			if !ok {
				continue
			}
			if !value.(*client).trySend(event) {
				zap.L().Warn("push client gone or buffer full, dropping event",
					zap.String("userId", event.UserId), zap.String("kind", event.Kind))
			}
		case <-g.done:
			return
		}
	}
}

// readLoop consumes control frames until the peer goes away, then cleans up.
func (g *Gateway) readLoop(cl *client) {
	defer g.disconnect(cl)
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writeLoop serializes events onto the connection.
func (cl *client) writeLoop() {
	for event := range cl.send {
		_ = cl.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := cl.conn.WriteJSON(event); err != nil {
			zap.L().Warn("push write failed",
				zap.String("userId", cl.userId), zap.Error(err))
			return
		}
	}
}

// disconnect removes the client unless it was already replaced by a newer
// connection for the same user.
func (g *Gateway) disconnect(cl *client) {
	if current, ok := g.clients.Load(cl.userId); ok && current.(*client) == cl {
		g.clients.Delete(cl.userId)
	}
	cl.shutdown()
	zap.L().Info("push client disconnected", zap.String("userId", cl.userId))
}

// Close stops the dispatch loop and drops all connections.
func (g *Gateway) Close() {
	g.once.Do(func() {
		close(g.done)
	})
	g.clients.Range(func(key, value any) bool {
		g.clients.Delete(key)
		value.(*client).shutdown()
		return true
	})
}
