// Package broadcaster is the real-time publish/subscribe hub. Delivery is
// best-effort and at most once per connection; there is no replay buffer, clients
// re-fetch authoritative state after reconnecting.
package broadcaster

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"moto-auction/utils"
)

// Config tunes heartbeats and per-connection buffering
type Config struct {
	HeartbeatInterval time.Duration
	MissedHeartbeats  int
	BufferSize        int
}

// DefaultConfig sends a heartbeat every 30s and releases a connection after 3 silent intervals
func DefaultConfig() Config {
	return Config{HeartbeatInterval: 30 * time.Second, MissedHeartbeats: 3, BufferSize: 64}
}

// Subscriber is one connection's view of the hub. Its topic set and closed flag
// are guarded by the hub lock; Messages is closed when the hub releases it.
type Subscriber struct {
	id       string
	userID   int64
	send     chan []byte
	done     chan struct{}
	topics   map[string]struct{}
	closed   bool
	lastSeen atomic.Int64
	now      func() time.Time
}

// ID is the connection id
func (s *Subscriber) ID() string { return s.id }

// UserID is the authenticated user behind the connection, 0 when anonymous
func (s *Subscriber) UserID() int64 { return s.userID }

// Messages yields encoded envelopes until the subscriber is released
func (s *Subscriber) Messages() <-chan []byte { return s.send }

// Done is closed when the hub releases the subscriber
func (s *Subscriber) Done() <-chan struct{} { return s.done }

// Touch records inbound activity from the client
func (s *Subscriber) Touch() { s.lastSeen.Store(s.now().UnixNano()) }

func (s *Subscriber) seenAt() time.Time { return time.Unix(0, s.lastSeen.Load()) }

// Hub keeps the topic → subscriber registry. It never touches auction state and
// takes no auction locks; registry mutations are the only writes it performs.
type Hub struct {
	cfg   Config
	now   func() time.Time
	guard TopicGuard

	mu     sync.RWMutex
	subs   map[string]*Subscriber
	topics map[string]map[string]*Subscriber
}

// NewHub creates a hub; zero config fields fall back to DefaultConfig
func NewHub(cfg Config) *Hub {
	def := DefaultConfig()
	if cfg.HeartbeatInterval <= 0 {
		cfg.HeartbeatInterval = def.HeartbeatInterval
	}
	if cfg.MissedHeartbeats <= 0 {
		cfg.MissedHeartbeats = def.MissedHeartbeats
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = def.BufferSize
	}
	return &Hub{
		cfg:    cfg,
		now:    time.Now,
		subs:   make(map[string]*Subscriber),
		topics: make(map[string]map[string]*Subscriber),
	}
}

// TopicGuard decides whether a user may subscribe to a topic
type TopicGuard func(userID int64, topic string) error

// SetTopicGuard installs a check run for every topic a connection asks for
func (h *Hub) SetTopicGuard(guard TopicGuard) { h.guard = guard }

func (h *Hub) authorize(userID int64, topics []string) error {
	if h.guard == nil {
		return nil
	}
	for _, t := range topics {
		if err := h.guard(userID, t); err != nil {
			return err
		}
	}
	return nil
}

// SetClock replaces the hub's time source; used by tests
func (h *Hub) SetClock(now func() time.Time) { h.now = now }

// LivenessWindow is how long a connection may stay silent before it is released
func (h *Hub) LivenessWindow() time.Duration {
	return h.cfg.HeartbeatInterval * time.Duration(h.cfg.MissedHeartbeats)
}

// Connect registers a new subscriber on the given topics and queues a CONNECTED envelope
func (h *Hub) Connect(userID int64, topics ...string) (*Subscriber, error) {
	parsed, err := ParseTopics(topics)
	if err != nil {
		return nil, err
	}
	if err := h.authorize(userID, parsed); err != nil {
		return nil, err
	}

	sub := &Subscriber{
		id:     utils.GenerateID(),
		userID: userID,
		send:   make(chan []byte, h.cfg.BufferSize),
		done:   make(chan struct{}),
		topics: make(map[string]struct{}),
		now:    h.now,
	}
	sub.Touch()

	h.mu.Lock()
	h.subs[sub.id] = sub
	for _, t := range parsed {
		h.addTopicLocked(sub, t)
	}
	h.mu.Unlock()

	h.sendTo(sub, Envelope{
		Type:      EventConnected,
		Data:      map[string]any{"connection_id": sub.id, "topics": parsed},
		Timestamp: h.now().UTC(),
	})

	utils.Info("broadcaster: connection opened", map[string]any{
		"connection_id": sub.id,
		"user_id":       userID,
		"topics":        parsed,
	})
	return sub, nil
}

// Subscribe adds topics to an existing subscriber
func (h *Hub) Subscribe(sub *Subscriber, topics ...string) error {
	parsed, err := ParseTopics(topics)
	if err != nil {
		return err
	}
	if err := h.authorize(sub.userID, parsed); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if sub.closed {
		return nil
	}
	for _, t := range parsed {
		h.addTopicLocked(sub, t)
	}
	return nil
}

// Unsubscribe removes topics from a subscriber
func (h *Hub) Unsubscribe(sub *Subscriber, topics ...string) error {
	parsed, err := ParseTopics(topics)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, t := range parsed {
		h.removeTopicLocked(sub, t)
	}
	return nil
}

// Topics lists the subscriber's current topics
func (h *Hub) Topics(sub *Subscriber) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, 0, len(sub.topics))
	for t := range sub.topics {
		out = append(out, t)
	}
	return out
}

// Disconnect releases a subscriber from every topic. Safe to call more than once.
func (h *Hub) Disconnect(sub *Subscriber) {
	h.mu.Lock()
	if sub.closed {
		h.mu.Unlock()
		return
	}
	sub.closed = true
	for t := range sub.topics {
		h.removeTopicLocked(sub, t)
	}
	delete(h.subs, sub.id)
	close(sub.send)
	close(sub.done)
	h.mu.Unlock()

	utils.Info("broadcaster: connection released", map[string]any{
		"connection_id": sub.id,
		"user_id":       sub.userID,
	})
}

// Connections returns the number of registered subscribers
func (h *Hub) Connections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Publish fans an auction event out to subscribers of auction:<id> and, unless the
// event is restricted, auctions:all.
// A connection subscribed to both receives it once. Connections whose buffer is full
// are released. It returns how many connections the event was queued for.
func (h *Hub) Publish(evt Event) int {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = h.now()
	}
	payload, err := json.Marshal(Envelope{Type: evt.Type, Data: evt.Data, Timestamp: evt.Timestamp.UTC()})
	if err != nil {
		utils.Error("broadcaster: failed to encode event", map[string]any{
			"type":       evt.Type,
			"auction_id": evt.AuctionID,
			"error":      err.Error(),
		})
		return 0
	}

	var slow []*Subscriber
	delivered := 0

	topics := []string{AuctionTopic(evt.AuctionID)}
	if !evt.Restricted {
		topics = append(topics, TopicAllAuctions)
	}

	h.mu.RLock()
	seen := make(map[string]struct{})
	for _, topic := range topics {
		for id, sub := range h.topics[topic] {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			select {
			case sub.send <- payload:
				delivered++
			default:
				slow = append(slow, sub)
			}
		}
	}
	h.mu.RUnlock()

	for _, sub := range slow {
		utils.Warn("broadcaster: dropping slow connection", map[string]any{
			"connection_id": sub.id,
			"event":         evt.Type,
			"auction_id":    evt.AuctionID,
		})
		h.Disconnect(sub)
	}
	return delivered
}

// Run emits heartbeats and reaps silent connections until ctx is done
func (h *Hub) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.cfg.HeartbeatInterval)
	defer ticker.Stop()

	utils.Info("broadcaster: heartbeat loop started", map[string]any{
		"interval":          h.cfg.HeartbeatInterval.String(),
		"missed_heartbeats": h.cfg.MissedHeartbeats,
	})

	for {
		select {
		case <-ticker.C:
			h.Beat()
		case <-ctx.Done():
			h.closeAll()
			return nil
		}
	}
}

// Beat sends one heartbeat to every live connection and releases the ones that have
// been silent for longer than the liveness window. It returns how many were released.
func (h *Hub) Beat() int {
	now := h.now()
	payload, _ := json.Marshal(Envelope{Type: EventHeartbeat, Data: map[string]any{}, Timestamp: now.UTC()})
	window := h.LivenessWindow()

	var dead []*Subscriber
	h.mu.RLock()
	for _, sub := range h.subs {
		if now.Sub(sub.seenAt()) > window {
			dead = append(dead, sub)
			continue
		}
		select {
		case sub.send <- payload:
		default:
			dead = append(dead, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range dead {
		utils.Warn("broadcaster: releasing unresponsive connection", map[string]any{
			"connection_id": sub.id,
			"last_seen":     sub.seenAt().UTC().Format(time.RFC3339),
		})
		h.Disconnect(sub)
	}
	return len(dead)
}

func (h *Hub) closeAll() {
	h.mu.RLock()
	all := make([]*Subscriber, 0, len(h.subs))
	for _, sub := range h.subs {
		all = append(all, sub)
	}
	h.mu.RUnlock()
	for _, sub := range all {
		h.Disconnect(sub)
	}
}

// sendTo queues a connection-level envelope for one subscriber
func (h *Hub) sendTo(sub *Subscriber, env Envelope) bool {
	payload, err := json.Marshal(env)
	if err != nil {
		return false
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if sub.closed {
		return false
	}
	select {
	case sub.send <- payload:
		return true
	default:
		return false
	}
}

func (h *Hub) addTopicLocked(sub *Subscriber, topic string) {
	sub.topics[topic] = struct{}{}
	set, ok := h.topics[topic]
	if !ok {
		set = make(map[string]*Subscriber)
		h.topics[topic] = set
	}
	set[sub.id] = sub
}

func (h *Hub) removeTopicLocked(sub *Subscriber, topic string) {
	delete(sub.topics, topic)
	if set, ok := h.topics[topic]; ok {
		delete(set, sub.id)
		if len(set) == 0 {
			delete(h.topics, topic)
		}
	}
}
