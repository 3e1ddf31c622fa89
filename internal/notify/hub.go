package notify

import (
	"sync"

	"github.com/gorilla/websocket"

	"scholarhub/internal/common"
)

// Hub tracks the live websocket connections per user. A user may hold several
// connections at once (multiple tabs); a push goes to all of them.
type Hub struct {
	mu    sync.Mutex
	conns map[common.UUID]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{conns: make(map[common.UUID]map[*websocket.Conn]bool)}
}

func (h *Hub) Register(userID common.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*websocket.Conn]bool)
	}
	h.conns[userID][conn] = true
}

func (h *Hub) Unregister(userID common.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.conns[userID]; ok {
		delete(set, conn)
		if len(set) == 0 {
			delete(h.conns, userID)
		}
	}
}

// Push writes the payload to every live connection of the recipient.
// Connections that fail to accept the write are dropped.
func (h *Hub) Push(userID common.UUID, payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns[userID] {
		if err := conn.WriteJSON(payload); err != nil {
			_ = conn.Close()
			delete(h.conns[userID], conn)
		}
	}
	if len(h.conns[userID]) == 0 {
		delete(h.conns, userID)
	}
}
