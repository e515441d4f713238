package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mzansigossip/backend/internal/logging"
	"github.com/mzansigossip/backend/internal/store"
)

// MessageHandler implements the direct messaging endpoints. Responses join
// sender display data by id at read time.
type MessageHandler struct {
	Messages MessageStore
	Users    UserStore
	Sessions SessionManager
}

// Send handles POST /api/v1/messages requests.
func (h MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	userID, ok := authenticate(r, h.Sessions)
	if !ok {
		respondUnauthorized(ctx, w)
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid message payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	message, err := h.Messages.SendMessage(ctx, userID, store.NewMessageParams{
		ToUserID:    req.ToUserID,
		Message:     req.Message,
		MediaURL:    req.MediaURL,
		MessageType: req.MessageType,
	})
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusCreated, newUserResolver(h.Users).message(ctx, message))
}

// Threads handles GET /api/v1/messages/threads, summarising the caller's
// conversations with unread counts, newest activity first.
func (h MessageHandler) Threads(w http.ResponseWriter, r *http.Request) {
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
	respondJSON(ctx, w, http.StatusOK, map[string]any{"threads": res.threadList(ctx, h.Messages.Threads(ctx, userID))})
}

// Thread handles GET /api/v1/messages/threads/{id}. Opening a thread
// marks messages from that user to the caller as read.
func (h MessageHandler) Thread(w http.ResponseWriter, r *http.Request) {
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

	messages, err := h.Messages.OpenThread(ctx, userID, r.PathValue("id"))
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}
	res := newUserResolver(h.Users)
	respondJSON(ctx, w, http.StatusOK, map[string]any{"messages": res.messageList(ctx, messages)})
}

// Unread handles GET /api/v1/messages/unread, returning per-sender unread
// counts for badge rendering.
func (h MessageHandler) Unread(w http.ResponseWriter, r *http.Request) {
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

	respondJSON(ctx, w, http.StatusOK, map[string]any{"unread": h.Messages.UnreadCounts(ctx, userID)})
}

type sendMessageRequest struct {
	ToUserID    string `json:"toUserId"`
	Message     string `json:"message"`
	MediaURL    string `json:"mediaURL"`
	MessageType string `json:"messageType"`
}
