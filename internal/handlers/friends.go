package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mzansigossip/backend/internal/logging"
)

// FriendHandler provides friend invite, response, and listing endpoints.
// Request listings join the sender's display data by id at read time.
type FriendHandler struct {
	Friends  FriendStore
	Users    UserStore
	Sessions SessionManager
}

// List handles GET /api/v1/friends requests, returning the caller's
// accepted friends.
func (h FriendHandler) List(w http.ResponseWriter, r *http.Request) {
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

	friends, err := h.Friends.FriendsOf(ctx, userID)
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, map[string]any{"friends": friends})
}

// Requests handles GET /api/v1/friends/requests, returning requests the
// caller sent or received, newest first.
func (h FriendHandler) Requests(w http.ResponseWriter, r *http.Request) {
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

	requests := h.Friends.FriendRequestsFor(ctx, userID)
	res := newUserResolver(h.Users)
	respondJSON(ctx, w, http.StatusOK, map[string]any{"requests": res.friendRequestList(ctx, requests)})
}

// Invite handles POST /api/v1/friends/invite.
func (h FriendHandler) Invite(w http.ResponseWriter, r *http.Request) {
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

	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid invite payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	request, err := h.Friends.SendFriendRequest(ctx, userID, strings.TrimSpace(req.ToUserID))
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusCreated, request)
}

// Respond handles POST /api/v1/friends/respond, accepting or declining a
// pending request addressed to the caller.
func (h FriendHandler) Respond(w http.ResponseWriter, r *http.Request) {
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

	var req respondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid respond payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	switch req.Action {
	case "accept":
		request, err := h.Friends.AcceptFriendRequest(ctx, req.RequestID, userID)
		if err != nil {
			respondStoreError(ctx, w, err)
			return
		}
		respondJSON(ctx, w, http.StatusOK, request)
	case "decline":
		request, err := h.Friends.DeclineFriendRequest(ctx, req.RequestID, userID)
		if err != nil {
			respondStoreError(ctx, w, err)
			return
		}
		respondJSON(ctx, w, http.StatusOK, request)
	default:
		logger.Warn("unknown respond action", "action", req.Action)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "action must be accept or decline"})
	}
}

// Mutual handles GET /api/v1/friends/mutual/{id}, returning the live
// mutual friend count between the caller and another user.
func (h FriendHandler) Mutual(w http.ResponseWriter, r *http.Request) {
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

	count, err := h.Friends.MutualFriends(ctx, userID, r.PathValue("id"))
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, map[string]int{"mutualFriends": count})
}

type inviteRequest struct {
	ToUserID string `json:"toUserId"`
}

type respondRequest struct {
	RequestID string `json:"requestId"`
	Action    string `json:"action"`
}
