// Package ws implements the real-time notification transport over
// websockets. A single Hub owns the subscriber set and the per-order rooms;
// it fans each committed status change out to all connected clients on the
// global channel and, independently, to clients that joined the matching
// order room. Delivery is best-effort with no backlog or replay: a client
// connecting or joining after an event was published never sees it.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"swiftserve/internal/core/domain/model/kernel"
	"swiftserve/internal/core/ports"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// eventBacklog bounds the publish queue. Publish never blocks the
// committing operation; when the queue is full the event is dropped and
// logged, which the best-effort contract allows.
const eventBacklog = 256

// Hub is the notification broadcaster. It implements ports.Notifier and
// serves the client-facing websocket protocol:
//
//	server -> client on connect:  {"type": "server_ack", "msg": "connected"}
//	client -> server:             {"type": "join_order_room", "order_id": "<uuid>"}
//	server -> client on join:     {"type": "joined", "room": "order_<uuid>"}
//	server -> client on change:   {"type": "order_update", "order_id": "...", "status": "...", ...extra}
//
// All subscriber-set and room mutations happen on the run loop goroutine,
// so connect, disconnect and join never contend with publish on a lock.
type Hub struct {
	logger   *zap.Logger
	upgrader websocket.Upgrader

	clients map[*client]struct{}
	rooms   map[string]map[*client]struct{}

	register   chan *client
	unregister chan *client
	join       chan joinRequest
	events     chan ports.StatusChangedEvent
	announce   chan map[string]any

	stopOnce sync.Once
	stop     chan struct{}
	stopped  chan struct{}
}

type joinRequest struct {
	client *client
	room   string
}

// NewHub creates a notification hub. Call Run in a goroutine before serving
// connections.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The session gate has already authenticated the request.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients:    make(map[*client]struct{}),
		rooms:      make(map[string]map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		join:       make(chan joinRequest),
		events:     make(chan ports.StatusChangedEvent, eventBacklog),
		announce:   make(chan map[string]any, eventBacklog),
		stop:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

// RoomName returns the scoped channel name for an order.
func RoomName(orderID kernel.UUID) string {
	return "order_" + orderID.String()
}

// Publish queues a status-change event for fan-out. It never blocks and
// never fails the committing operation; if the hub is stopped or the queue
// is full the event is dropped.
func (h *Hub) Publish(event ports.StatusChangedEvent) {
	select {
	case h.events <- event:
	case <-h.stop:
		h.logger.Debug("notification dropped, hub stopped",
			zap.String("order_id", event.OrderID.String()))
	default:
		h.logger.Warn("notification dropped, event queue full",
			zap.String("order_id", event.OrderID.String()),
			zap.String("status", event.Status.String()))
	}
}

// Announce queues a message for the global channel only; order rooms never
// see it. Background jobs use this for snapshot frames such as the claimable
// order digest. Same best-effort contract as Publish.
func (h *Hub) Announce(message map[string]any) {
	select {
	case h.announce <- message:
	case <-h.stop:
	default:
		h.logger.Warn("announcement dropped, queue full")
	}
}

// Run owns the subscriber set. It processes connection lifecycle and
// publish events until Shutdown is called.
func (h *Hub) Run() {
	defer close(h.stopped)

	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.deliver(c, ackMessage())

		case c := <-h.unregister:
			h.remove(c)

		case req := <-h.join:
			if _, ok := h.clients[req.client]; !ok {
				continue
			}
			members, ok := h.rooms[req.room]
			if !ok {
				members = make(map[*client]struct{})
				h.rooms[req.room] = members
			}
			members[req.client] = struct{}{}
			h.deliver(req.client, joinedMessage(req.room))

		case event := <-h.events:
			h.fanOut(event)

		case message := <-h.announce:
			h.broadcast(message)

		case <-h.stop:
			for c := range h.clients {
				h.remove(c)
			}
			return
		}
	}
}

// Shutdown drains the hub: no further events are accepted, every connected
// client is closed, and the run loop exits. Returns once the loop has
// stopped or the context expires.
func (h *Hub) Shutdown(ctx context.Context) error {
	h.stopOnce.Do(func() {
		close(h.stop)
	})

	select {
	case <-h.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ServeConnection upgrades an HTTP request to a websocket subscription and
// blocks until the connection closes. The transport adapter routes its
// live-updates endpoint here.
func (h *Hub) ServeConnection(w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := newClient(h, conn)

	select {
	case h.register <- c:
	case <-h.stop:
		_ = conn.Close()
		return nil
	}

	go c.writePump()
	c.readPump()
	return nil
}

// fanOut delivers one event on the global channel and on the matching
// order room. The two channels are independent: a client that joined the
// room receives the frame on both.
func (h *Hub) fanOut(event ports.StatusChangedEvent) {
	payload, err := json.Marshal(updateMessage(event))
	if err != nil {
		h.logger.Error("failed to encode order update", zap.Error(err))
		return
	}

	for c := range h.clients {
		h.deliverRaw(c, payload)
	}
	for c := range h.rooms[RoomName(event.OrderID)] {
		h.deliverRaw(c, payload)
	}
}

// broadcast delivers one frame to every connected client on the global
// channel.
func (h *Hub) broadcast(message map[string]any) {
	payload, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to encode announcement", zap.Error(err))
		return
	}

	for c := range h.clients {
		h.deliverRaw(c, payload)
	}
}

func (h *Hub) deliver(c *client, message map[string]any) {
	payload, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to encode message", zap.Error(err))
		return
	}
	h.deliverRaw(c, payload)
}

// deliverRaw hands a frame to the client's writer without blocking the run
// loop. A client whose buffer is full is too slow to keep up and is dropped.
func (h *Hub) deliverRaw(c *client, payload []byte) {
	select {
	case c.send <- payload:
	default:
		h.logger.Warn("dropping slow websocket client",
			zap.String("remote", c.conn.RemoteAddr().String()))
		h.remove(c)
	}
}

func (h *Hub) remove(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	for room, members := range h.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	close(c.send)
}

func ackMessage() map[string]any {
	return map[string]any{
		"type": "server_ack",
		"msg":  "connected",
	}
}

func joinedMessage(room string) map[string]any {
	return map[string]any{
		"type": "joined",
		"room": room,
	}
}

func updateMessage(event ports.StatusChangedEvent) map[string]any {
	message := map[string]any{
		"type":     "order_update",
		"order_id": event.OrderID.String(),
		"status":   event.Status.String(),
	}
	for key, value := range event.Extra {
		message[key] = value
	}
	return message
}
