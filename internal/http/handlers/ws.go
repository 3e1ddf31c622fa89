package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"scholarhub/internal/http/middleware"
	"scholarhub/internal/http/response"
	"scholarhub/internal/notify"
)

type WSHandler struct {
	hub      *notify.Hub
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(hub *notify.Hub, logger *slog.Logger) *WSHandler {
	return &WSHandler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Serve upgrades the request and keeps the connection registered until the
// client goes away. The connection is read-only from the client side; the
// read loop exists to detect the close.
func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	h.hub.Register(userID, conn)
	defer func() {
		h.hub.Unregister(userID, conn)
		_ = conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
