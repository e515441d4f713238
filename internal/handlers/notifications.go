package handlers

import "net/http"

// NotificationHandler implements the notification inbox endpoints. Responses
// join actor display data by id at read time.
type NotificationHandler struct {
	Notifications NotificationStore
	Users         UserStore
	Sessions      SessionManager
}

// List handles GET /api/v1/notifications, newest first.
func (h NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	userID, ok := authenticate(r, h.Sessions)
	if !ok {
		respondUnauthorized(ctx, w)
		return
	}

	res := newUserResolver(h.Users)
	respondJSON(ctx, w, http.StatusOK, map[string]any{
		"notifications": res.notificationList(ctx, h.Notifications.NotificationsFor(ctx, userID)),
	})
}

// MarkRead handles POST /api/v1/notifications/read, flipping every unread
// notification addressed to the caller.
func (h NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	userID, ok := authenticate(r, h.Sessions)
	if !ok {
		respondUnauthorized(ctx, w)
		return
	}

	changed, err := h.Notifications.MarkNotificationsRead(ctx, userID)
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, map[string]int{"marked": changed})
}
