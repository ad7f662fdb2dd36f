package ws

import (
	"encoding/json"
	"time"

	"swiftserve/internal/core/domain/model/kernel"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	// sendBufferSize is the per-client outbound queue. A client that falls
	// this many frames behind is dropped rather than allowed to stall the
	// fan-out.
	sendBufferSize = 32
)

// client is one websocket subscription. The hub run loop owns membership;
// the two pumps own the connection.
type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func newClient(h *Hub, conn *websocket.Conn) *client {
	return &client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

// inboundMessage is the only frame clients are expected to send.
type inboundMessage struct {
	Type    string `json:"type"`
	OrderID string `json:"order_id"`
}

// readPump consumes client frames until the connection closes, forwarding
// room-join requests to the hub. It runs on the connection's serving
// goroutine.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.stop:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("websocket read failed", zap.Error(err))
			}
			return
		}

		var message inboundMessage
		if err = json.Unmarshal(payload, &message); err != nil {
			c.hub.logger.Debug("ignoring malformed websocket frame", zap.Error(err))
			continue
		}

		if message.Type != "join_order_room" {
			continue
		}

		orderID, err := kernel.UUIDFromString(message.OrderID)
		if err != nil {
			c.hub.logger.Debug("ignoring join with invalid order id",
				zap.String("order_id", message.OrderID))
			continue
		}

		select {
		case c.hub.join <- joinRequest{client: c, room: RoomName(orderID)}:
		case <-c.hub.stop:
			return
		}
	}
}

// writePump drains the outbound queue onto the connection and keeps the
// connection alive with pings. It exits when the hub closes the queue or a
// write fails.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
