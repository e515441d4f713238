package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mzansigossip/backend/internal/logging"
	"github.com/mzansigossip/backend/internal/models"
	"github.com/mzansigossip/backend/internal/news"
)

// NewsHandler implements the celebrity news tab. The catalog comes from a
// provider; reactions, comments, and view counts recorded against the items
// live in the engagement store and are merged into the listing.
type NewsHandler struct {
	Provider NewsProvider
	News     NewsStore
	Users    UserStore
	Sessions SessionManager
}

// newsItemView is one catalog entry joined with its engagement. Commenter
// display data is resolved by id at read time.
type newsItemView struct {
	news.Item
	Reactions []models.Reaction `json:"reactions"`
	Comments  []commentView     `json:"comments"`
	ViewCount int               `json:"viewCount"`
}

// List handles GET /api/v1/news requests.
func (h NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if _, ok := authenticate(r, h.Sessions); !ok {
		respondUnauthorized(ctx, w)
		return
	}

	items, err := h.Provider.List(ctx)
	if err != nil {
		logger.Error("news catalog unavailable", "error", err)
		respondJSON(ctx, w, http.StatusServiceUnavailable, map[string]string{"error": "news catalog unavailable"})
		return
	}

	res := newUserResolver(h.Users)
	views := make([]newsItemView, 0, len(items))
	for _, item := range items {
		engagement := h.News.NewsEngagementFor(ctx, item.ID)
		views = append(views, newsItemView{
			Item:      item,
			Reactions: engagement.Reactions,
			Comments:  res.commentList(ctx, engagement.Comments),
			ViewCount: engagement.ViewCount,
		})
	}
	respondJSON(ctx, w, http.StatusOK, map[string]any{"news": views})
}

// React handles POST /api/v1/news/{id}/reactions.
func (h NewsHandler) React(w http.ResponseWriter, r *http.Request) {
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

	reactions, err := h.News.ToggleNewsReaction(ctx, r.PathValue("id"), userID, models.ReactionType(req.Type))
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, map[string]any{"reactions": reactions})
}

// Comment handles POST /api/v1/news/{id}/comments.
func (h NewsHandler) Comment(w http.ResponseWriter, r *http.Request) {
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

	comment, err := h.News.AddNewsComment(ctx, r.PathValue("id"), userID, req.Text)
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusCreated, newUserResolver(h.Users).comment(ctx, comment))
}

// View handles POST /api/v1/news/{id}/views, counting one playback start.
func (h NewsHandler) View(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	if _, ok := authenticate(r, h.Sessions); !ok {
		respondUnauthorized(ctx, w)
		return
	}

	count, err := h.News.IncrementNewsViews(ctx, r.PathValue("id"))
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, map[string]int{"viewCount": count})
}
