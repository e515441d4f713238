package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mzansigossip/backend/internal/logging"
	"github.com/mzansigossip/backend/internal/models"
	"github.com/mzansigossip/backend/internal/store"
)

// PostHandler implements the feed endpoints. Responses join author display
// data by id at read time.
type PostHandler struct {
	Posts    PostStore
	Users    UserStore
	Sessions SessionManager

	// ShareBaseURL prefixes generated share links.
	ShareBaseURL string
}

// Create handles POST /api/v1/posts requests.
func (h PostHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid post payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	post, err := h.Posts.CreatePost(ctx, userID, store.NewPostParams{
		Caption:   req.Caption,
		MediaURL:  req.MediaURL,
		MediaType: req.MediaType,
	})
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusCreated, newUserResolver(h.Users).post(ctx, post))
}

// Feed handles GET /api/v1/posts/feed requests.
func (h PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	if _, ok := authenticate(r, h.Sessions); !ok {
		respondUnauthorized(ctx, w)
		return
	}

	res := newUserResolver(h.Users)
	respondJSON(ctx, w, http.StatusOK, map[string]any{"posts": res.postList(ctx, h.Posts.Feed(ctx))})
}

// Detail handles GET, PUT, and DELETE on /api/v1/posts/{id}.
func (h PostHandler) Detail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := authenticate(r, h.Sessions)
	if !ok {
		respondUnauthorized(ctx, w)
		return
	}

	postID := r.PathValue("id")

	switch r.Method {
	case http.MethodGet:
		post, err := h.Posts.PostByID(ctx, postID)
		if err != nil {
			respondStoreError(ctx, w, err)
			return
		}
		respondJSON(ctx, w, http.StatusOK, newUserResolver(h.Users).post(ctx, post))
	case http.MethodPut:
		var req editPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		post, err := h.Posts.EditPost(ctx, postID, userID, req.Caption)
		if err != nil {
			respondStoreError(ctx, w, err)
			return
		}
		respondJSON(ctx, w, http.StatusOK, newUserResolver(h.Users).post(ctx, post))
	case http.MethodDelete:
		if err := h.Posts.DeletePost(ctx, postID, userID); err != nil {
			respondStoreError(ctx, w, err)
			return
		}
		respondJSON(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// React handles POST /api/v1/posts/{id}/reactions, toggling the caller's
// reaction.
func (h PostHandler) React(w http.ResponseWriter, r *http.Request) {
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

	var req reactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid reaction payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	post, err := h.Posts.ToggleReaction(ctx, r.PathValue("id"), userID, models.ReactionType(req.Type))
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, newUserResolver(h.Users).post(ctx, post))
}

// Comment handles POST /api/v1/posts/{id}/comments.
func (h PostHandler) Comment(w http.ResponseWriter, r *http.Request) {
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

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid comment payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	comment, err := h.Posts.AddComment(ctx, r.PathValue("id"), userID, req.Text)
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusCreated, newUserResolver(h.Users).comment(ctx, comment))
}

// View handles POST /api/v1/posts/{id}/views, counting one playback start.
func (h PostHandler) View(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	if _, ok := authenticate(r, h.Sessions); !ok {
		respondUnauthorized(ctx, w)
		return
	}

	count, err := h.Posts.IncrementViewCount(ctx, r.PathValue("id"))
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, map[string]int{"viewCount": count})
}

// Share handles GET /api/v1/posts/{id}/share, returning a copyable link
// for an existing post.
func (h PostHandler) Share(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	if _, ok := authenticate(r, h.Sessions); !ok {
		respondUnauthorized(ctx, w)
		return
	}

	post, err := h.Posts.PostByID(ctx, r.PathValue("id"))
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}

	base := strings.TrimRight(h.ShareBaseURL, "/")
	respondJSON(ctx, w, http.StatusOK, map[string]string{
		"url": fmt.Sprintf("%s/posts/%s", base, post.ID),
	})
}

type createPostRequest struct {
	Caption   string `json:"caption"`
	MediaURL  string `json:"mediaURL"`
	MediaType string `json:"mediaType"`
}

type editPostRequest struct {
	Caption string `json:"caption"`
}

type reactionRequest struct {
	Type string `json:"type"`
}

type commentRequest struct {
	Text string `json:"text"`
}
