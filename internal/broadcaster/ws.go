package broadcaster

import (
	"encoding/json"
	"net/http"
	"time"

	"moto-auction/utils"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// clientFrame is what a connected client may send
type clientFrame struct {
	Action string   `json:"action"` // 'subscribe', 'unsubscribe', 'ping'
	Topics []string `json:"topics,omitempty"`
}

// ServeWS upgrades the request and pumps envelopes for the subscriber until either
// side goes away. Topics are validated and authorized before the upgrade so a bad
// request gets an HTTP error instead of a websocket.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID int64, topics []string) error {
	parsed, err := ParseTopics(topics)
	if err != nil {
		return err
	}
	if err := h.authorize(userID, parsed); err != nil {
		return err
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error response.
		utils.Warn("broadcaster: websocket upgrade failed", map[string]any{"error": err.Error()})
		return nil
	}

	sub, err := h.Connect(userID, topics...)
	if err != nil {
		conn.Close()
		return nil
	}

	go h.writePump(conn, sub)
	h.readPump(conn, sub)
	return nil
}

// readPump consumes client frames; any inbound frame or pong counts as liveness
func (h *Hub) readPump(conn *websocket.Conn, sub *Subscriber) {
	defer func() {
		h.Disconnect(sub)
		conn.Close()
	}()

	window := h.LivenessWindow()
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(window))
	conn.SetPongHandler(func(string) error {
		sub.Touch()
		return conn.SetReadDeadline(time.Now().Add(window))
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				utils.Warn("broadcaster: read error", map[string]any{"connection_id": sub.id, "error": err.Error()})
			}
			return
		}
		sub.Touch()
		conn.SetReadDeadline(time.Now().Add(window))
		h.handleFrame(sub, message)
	}
}

func (h *Hub) handleFrame(sub *Subscriber, message []byte) {
	var frame clientFrame
	if err := json.Unmarshal(message, &frame); err != nil {
		h.sendTo(sub, Envelope{Type: EventError, Data: map[string]any{"error": "malformed frame"}, Timestamp: h.now().UTC()})
		return
	}

	var err error
	switch frame.Action {
	case "subscribe":
		err = h.Subscribe(sub, frame.Topics...)
	case "unsubscribe":
		err = h.Unsubscribe(sub, frame.Topics...)
	case "ping", "pong":
		return
	default:
		h.sendTo(sub, Envelope{Type: EventError, Data: map[string]any{"error": "unknown action " + frame.Action}, Timestamp: h.now().UTC()})
		return
	}
	if err != nil {
		h.sendTo(sub, Envelope{Type: EventError, Data: map[string]any{"error": err.Error()}, Timestamp: h.now().UTC()})
	}
}

// writePump is the only writer on conn
func (h *Hub) writePump(conn *websocket.Conn, sub *Subscriber) {
	ticker := time.NewTicker(h.cfg.HeartbeatInterval)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case message, ok := <-sub.Messages():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub released the connection.
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				h.Disconnect(sub)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.Disconnect(sub)
				return
			}
		}
	}
}
