package broadcaster

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"moto-auction/internal/biddingerrors"
)

// EventType names an envelope pushed to subscribers
type EventType string

// Domain events
const (
	EventAuctionCreated      EventType = "auction_created"
	EventAuctionActivated    EventType = "auction_activated"
	EventNewBid              EventType = "new_bid"
	EventAuctionEnded        EventType = "auction_ended"
	EventBidAccepted         EventType = "bid_accepted"
	EventDealConfirmed       EventType = "deal_confirmed"
	EventCollectionScheduled EventType = "collection_scheduled"
	EventCollectionConfirmed EventType = "collection_confirmed"
	EventAuctionCompleted    EventType = "auction_completed"
	EventAuctionArchived     EventType = "auction_archived"
	EventAuctionDeleted      EventType = "auction_deleted"
)

// Connection-level events
const (
	EventConnected EventType = "CONNECTED"
	EventHeartbeat EventType = "HEARTBEAT"
	EventError     EventType = "ERROR"
)

// Event is a domain event about one auction. Restricted events (invite-only
// auctions) go to auction:<id> subscribers only, never to auctions:all.
type Event struct {
	Type       EventType
	AuctionID  int64
	Data       any
	Timestamp  time.Time
	Restricted bool
}

// Envelope is the JSON frame written to every connection
type Envelope struct {
	Type      EventType `json:"type"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// TopicAllAuctions receives every auction event
const TopicAllAuctions = "auctions:all"

const auctionTopicPrefix = "auction:"

// AuctionTopic returns the topic carrying events for one auction
func AuctionTopic(auctionID int64) string {
	return auctionTopicPrefix + strconv.FormatInt(auctionID, 10)
}

// TopicAuctionID returns the auction a parsed auction:<id> topic refers to
func TopicAuctionID(topic string) (int64, bool) {
	if !strings.HasPrefix(topic, auctionTopicPrefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(topic, auctionTopicPrefix), 10, 64)
	return id, err == nil && id > 0
}

// ParseTopic validates a client-supplied topic name
func ParseTopic(raw string) (string, error) {
	topic := strings.TrimSpace(raw)
	if topic == TopicAllAuctions {
		return topic, nil
	}
	if id, ok := TopicAuctionID(topic); ok {
		return AuctionTopic(id), nil
	}
	return "", fmt.Errorf("%w: unknown topic %q (expected auction:<id> or %s)", biddingerrors.ErrValidation, raw, TopicAllAuctions)
}

// ParseTopics validates a list of topics, dropping empties and duplicates
func ParseTopics(raw []string) ([]string, error) {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r) == "" {
			continue
		}
		topic, err := ParseTopic(r)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[topic]; dup {
			continue
		}
		seen[topic] = struct{}{}
		out = append(out, topic)
	}
	return out, nil
}
