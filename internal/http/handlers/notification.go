package handlers

import (
	"net/http"

	"scholarhub/internal/app"
	"scholarhub/internal/http/middleware"
	"scholarhub/internal/http/response"
)

type NotificationHandler struct {
	notifications *app.NotificationService
}

func NewNotificationHandler(notifications *app.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	recipientID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	limit, offset := paginationFromQuery(r, 20)
	items, err := h.notifications.List(r.Context(), recipientID, limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	recipientID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	notificationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.notifications.MarkRead(r.Context(), notificationID, recipientID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	recipientID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	if err := h.notifications.MarkAllRead(r.Context(), recipientID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
