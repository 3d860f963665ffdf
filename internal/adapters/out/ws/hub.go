// Package ws keeps the in-memory registry of live websocket subscribers and
// fans order status events out to them. Subscriptions exist only for the
// lifetime of their connection; nothing here touches the database.
package ws

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tracking/internal/core/domain/model/account"
	"tracking/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Conn is the subset of *websocket.Conn the hub needs. Tests substitute
// their own implementations.
type Conn interface {
	WriteJSON(v any) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	Close() error
}

// Subscription ties one live connection to the principal that opened it.
// Writes to the connection are serialized through the subscription's own
// mutex, so publishes and pings never interleave a frame.
type Subscription struct {
	id        uuid.UUID
	conn      Conn
	principal account.Principal

	writeMu sync.Mutex
}

// Principal returns the identity and role the subscription was opened with.
func (s *Subscription) Principal() account.Principal {
	return s.principal
}

// statusPayload is the wire form of a status change notification.
type statusPayload struct {
	OrderID   string          `json:"order_id"`
	Status    string          `json:"status"`
	Timestamp string          `json:"timestamp"`
	Metadata  payloadMetadata `json:"metadata"`
}

type payloadMetadata struct {
	UpdatedBy string `json:"updated_by"`
	Source    string `json:"source"`
}

// Hub is the subscription registry and notifier. It is safe for concurrent
// Register, Unregister and Publish calls. Delivery is best-effort: a failed
// write evicts the subscriber and is never reported to the publisher's
// caller.
type Hub struct {
	log *slog.Logger

	mu   sync.RWMutex
	subs map[uuid.UUID]*Subscription
}

// NewHub creates an empty subscription registry.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		log:  log.With("component", "ws.hub"),
		subs: make(map[uuid.UUID]*Subscription),
	}
}

// Register adds a connection to the registry on behalf of a principal and
// returns its subscription handle.
func (h *Hub) Register(conn Conn, principal account.Principal) *Subscription {
	sub := &Subscription{
		id:        uuid.New(),
		conn:      conn,
		principal: principal,
	}

	h.mu.Lock()
	h.subs[sub.id] = sub
	h.mu.Unlock()

	h.log.Info("subscriber registered",
		"identity", principal.Identity,
		"role", principal.Role.String(),
		"subscribers", h.Count(),
	)
	return sub
}

// Unregister removes a subscription and closes its connection. Safe to call
// more than once for the same subscription.
func (h *Hub) Unregister(sub *Subscription) {
	h.mu.Lock()
	_, present := h.subs[sub.id]
	delete(h.subs, sub.id)
	h.mu.Unlock()

	if present {
		_ = sub.conn.Close()
		h.log.Info("subscriber unregistered", "identity", sub.principal.Identity)
	}
}

// Count returns the number of live subscriptions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Publish delivers a status change event to every eligible subscriber.
// Eligibility is evaluated fresh for each event: the operations team sees
// everything, a merchant only events for its own orders. A write failure
// evicts the subscriber and never propagates.
func (h *Hub) Publish(_ context.Context, event order.StatusChangedEvent) {
	payload := statusPayload{
		OrderID:   event.OrderID,
		Status:    event.Status.String(),
		Timestamp: event.OccurredAt.UTC().Format(time.RFC3339),
		Metadata: payloadMetadata{
			UpdatedBy: event.UpdatedBy,
			Source:    event.Source.String(),
		},
	}

	for _, sub := range h.snapshot() {
		if !sub.principal.CanViewOrdersOf(event.MerchantName) {
			continue
		}

		sub.writeMu.Lock()
		err := sub.conn.WriteJSON(payload)
		sub.writeMu.Unlock()

		if err != nil {
			h.log.Warn("subscriber write failed, evicting",
				"identity", sub.principal.Identity,
				"error", err,
			)
			h.Unregister(sub)
		}
	}
}

// Ping sends a control frame to every subscriber and evicts the ones whose
// connection no longer accepts writes. Returns the number of evicted
// subscriptions.
func (h *Hub) Ping(deadline time.Time) int {
	evicted := 0
	for _, sub := range h.snapshot() {
		sub.writeMu.Lock()
		err := sub.conn.WriteControl(websocket.PingMessage, nil, deadline)
		sub.writeMu.Unlock()

		if err != nil {
			h.Unregister(sub)
			evicted++
		}
	}
	return evicted
}

func (h *Hub) snapshot() []*Subscription {
	h.mu.RLock()
	defer h.mu.RUnlock()

	subs := make([]*Subscription, 0, len(h.subs))
	for _, sub := range h.subs {
		subs = append(subs, sub)
	}
	return subs
}
