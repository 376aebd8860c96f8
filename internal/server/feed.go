package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/lox/holdem-engine/internal/store"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Subscribers only send control frames
	maxMessageSize = 512

	sendBuffer = 64
)

// MessageTypeHandSaved is the type of feed messages
const MessageTypeHandSaved = "hand_saved"

// FeedMessage is what subscribers receive for each saved hand
type FeedMessage struct {
	Type string       `json:"type"`
	Data store.Record `json:"data"`
}

// Hub fans saved hands out to websocket subscribers
type Hub struct {
	mu     sync.RWMutex
	subs   map[*subscriber]struct{}
	closed bool
	logger zerolog.Logger
}

type subscriber struct {
	conn      *websocket.Conn
	send      chan FeedMessage
	done      chan struct{}
	closeOnce sync.Once
}

// NewHub returns a hub with no subscribers
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{subs: make(map[*subscriber]struct{}), logger: logger}
}

// Subscribers returns the number of connected subscribers
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Broadcast queues rec for every subscriber. Subscribers that are too far
// behind are disconnected.
func (h *Hub) Broadcast(rec store.Record) {
	msg := FeedMessage{Type: MessageTypeHandSaved, Data: rec}
	h.mu.RLock()
	var slow []*subscriber
	for sub := range h.subs {
		select {
		case sub.send <- msg:
		default:
			slow = append(slow, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range slow {
		h.logger.Warn().Msg("Feed subscriber send buffer full, closing connection")
		h.remove(sub)
	}
}

// Close disconnects every subscriber and refuses new ones
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	subs := make([]*subscriber, 0, len(h.subs))
	for sub := range h.subs {
		subs = append(subs, sub)
	}
	h.subs = make(map[*subscriber]struct{})
	h.mu.Unlock()

	for _, sub := range subs {
		sub.close()
	}
}

func (h *Hub) add(sub *subscriber) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.subs[sub] = struct{}{}
	h.logger.Info().Int("total", len(h.subs)).Msg("Feed subscriber connected")
	return true
}

func (h *Hub) remove(sub *subscriber) {
	h.mu.Lock()
	_, ok := h.subs[sub]
	delete(h.subs, sub)
	total := len(h.subs)
	h.mu.Unlock()

	sub.close()
	if ok {
		h.logger.Info().Int("total", total).Msg("Feed subscriber disconnected")
	}
}

func (sub *subscriber) close() {
	sub.closeOnce.Do(func() { close(sub.done) })
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to upgrade connection")
		return
	}

	sub := &subscriber{conn: conn, send: make(chan FeedMessage, sendBuffer), done: make(chan struct{})}
	if !s.hub.add(sub) {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		_ = conn.Close()
		return
	}
	go s.hub.writePump(sub)
	go s.hub.readPump(sub)
}

// readPump discards client frames and notices when the peer goes away
func (h *Hub) readPump(sub *subscriber) {
	defer h.remove(sub)

	sub.conn.SetReadLimit(maxMessageSize)
	_ = sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	sub.conn.SetPongHandler(func(string) error {
		_ = sub.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Debug().Err(err).Msg("Feed read error")
			}
			return
		}
	}
}

func (h *Hub) writePump(sub *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = sub.conn.Close()
	}()

	for {
		select {
		case msg := <-sub.send:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteJSON(msg); err != nil {
				h.logger.Debug().Err(err).Msg("Failed to write feed message")
				return
			}

		case <-ticker.C:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-sub.done:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = sub.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
