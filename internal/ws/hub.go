package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/josetomecore/P6-Quiz/internal/models"

	"github.com/gorilla/websocket"
)

type EventType string

const (
	TipCreated  EventType = "tip_created"
	TipUpdated  EventType = "tip_updated"
	TipAccepted EventType = "tip_accepted"
	TipDeleted  EventType = "tip_deleted"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 16
)

// Event is the frame sent to watchers of a quiz.
type Event struct {
	Type EventType  `json:"type"`
	Data models.Tip `json:"data"`
}

// watcher owns the writes to one conn. send is closed by the hub, under
// its write lock, when the watcher is dropped.
type watcher struct {
	conn *websocket.Conn
	send chan []byte
}

func (w *watcher) writePump(quizID uint) {
	defer w.conn.Close()
	for data := range w.send {
		w.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := w.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("ws: write to quiz %d watcher: %v", quizID, err)
			return
		}
	}
}

// Hub fans tip events out to the websocket clients watching a quiz.
type Hub struct {
	mu       sync.RWMutex
	watchers map[uint]map[*websocket.Conn]*watcher
}

func NewHub() *Hub {
	return &Hub{watchers: make(map[uint]map[*websocket.Conn]*watcher)}
}

func (h *Hub) Subscribe(quizID uint, conn *websocket.Conn) {
	w := &watcher{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	conns, ok := h.watchers[quizID]
	if !ok {
		conns = make(map[*websocket.Conn]*watcher)
		h.watchers[quizID] = conns
	}
	conns[conn] = w
	total := len(conns)
	h.mu.Unlock()

	go w.writePump(quizID)
	log.Printf("ws: watcher joined quiz %d (watchers: %d)", quizID, total)
}

// Unsubscribe drops conn; its writer closes it once pending frames are
// flushed. Safe to call for a conn already dropped.
func (h *Hub) Unsubscribe(quizID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drop(quizID, conn)
}

func (h *Hub) Watchers(quizID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.watchers[quizID])
}

// Publish queues the event for every watcher of tip.QuizID without
// waiting on the network. Watchers whose queue is full are dropped.
func (h *Hub) Publish(kind EventType, tip *models.Tip) {
	data, err := json.Marshal(Event{Type: kind, Data: *tip})
	if err != nil {
		log.Printf("ws: marshal %s: %v", kind, err)
		return
	}

	var stuck []*websocket.Conn
	h.mu.RLock()
	for conn, w := range h.watchers[tip.QuizID] {
		select {
		case w.send <- data:
		default:
			stuck = append(stuck, conn)
		}
	}
	h.mu.RUnlock()

	if len(stuck) == 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, conn := range stuck {
		log.Printf("ws: quiz %d watcher is not keeping up", tip.QuizID)
		h.drop(tip.QuizID, conn)
	}
}

func (h *Hub) drop(quizID uint, conn *websocket.Conn) {
	conns, ok := h.watchers[quizID]
	if !ok {
		return
	}
	w, ok := conns[conn]
	if !ok {
		return
	}
	delete(conns, conn)
	close(w.send)
	if len(conns) == 0 {
		delete(h.watchers, quizID)
	}
	log.Printf("ws: watcher left quiz %d", quizID)
}
