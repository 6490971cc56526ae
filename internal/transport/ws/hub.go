package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"gayish/internal/model"
)

// MessageType defines the type of WebSocket message
type MessageType string

const MsgAnalysisCompleted MessageType = "analysis_completed"

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// FeedEvent is the payload broadcast after each completed analysis. Only
// the score and tier go out; conversation content never leaves the
// analysis response.
type FeedEvent struct {
	TotalScore int       `json:"totalScore"`
	LevelTitle string    `json:"levelTitle"`
	At         time.Time `json:"at"`
}

// Hub manages live feed subscribers
type Hub struct {
	subscribers map[*Connection]struct{}

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *Message
}

// Connection represents a WebSocket connection
type Connection struct {
	Send chan []byte
	Hub  *Hub
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		subscribers: make(map[*Connection]struct{}),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		broadcast:   make(chan *Message, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.subscribers[conn] = struct{}{}
			n := len(h.subscribers)
			h.mu.Unlock()
			log.Printf("feed subscriber connected (%d total)", n)

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.subscribers[conn]; ok {
				delete(h.subscribers, conn)
				close(conn.Send)
			}
			n := len(h.subscribers)
			h.mu.Unlock()
			log.Printf("feed subscriber disconnected (%d total)", n)

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			h.mu.RLock()
			for conn := range h.subscribers {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastAnalysis implements service.Broadcaster: pushes a completed
// analysis to every feed subscriber.
func (h *Hub) BroadcastAnalysis(result *model.AnalysisResult) {
	payload, err := json.Marshal(FeedEvent{
		TotalScore: result.TotalScore,
		LevelTitle: result.LevelTitle,
		At:         time.Now(),
	})
	if err != nil {
		return
	}
	h.broadcast <- &Message{Type: MsgAnalysisCompleted, Payload: payload}
}
