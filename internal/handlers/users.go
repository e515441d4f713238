package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mzansigossip/backend/internal/logging"
	"github.com/mzansigossip/backend/internal/store"
)

// UserHandler implements profile and user directory endpoints.
type UserHandler struct {
	Users    UserStore
	Sessions SessionManager
}

// Search handles GET /api/v1/users/search?q= requests.
func (h UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	if _, ok := authenticate(r, h.Sessions); !ok {
		respondUnauthorized(ctx, w)
		return
	}

	users := h.Users.SearchUsers(ctx, r.URL.Query().Get("q"))
	respondJSON(ctx, w, http.StatusOK, map[string]any{"users": users})
}

// Detail handles GET /api/v1/users/{id} requests.
func (h UserHandler) Detail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	if _, ok := authenticate(r, h.Sessions); !ok {
		respondUnauthorized(ctx, w)
		return
	}

	user, err := h.Users.UserByID(ctx, r.PathValue("id"))
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, user)
}

// Profile handles GET and PUT /api/v1/profile for the authenticated user.
func (h UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := authenticate(r, h.Sessions)
	if !ok {
		respondUnauthorized(ctx, w)
		return
	}

	switch r.Method {
	case http.MethodGet:
		user, err := h.Users.UserByID(ctx, userID)
		if err != nil {
			respondStoreError(ctx, w, err)
			return
		}
		respondJSON(ctx, w, http.StatusOK, user)
	case http.MethodPut:
		h.update(w, r, userID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h UserHandler) update(w http.ResponseWriter, r *http.Request, userID string) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid profile payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	user, err := h.Users.UpdateProfile(ctx, userID, req.toUpdate())
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, user)
}

// profileUpdateRequest distinguishes omitted fields from cleared ones by
// using pointers, so a PUT without a field leaves it untouched.
type profileUpdateRequest struct {
	DisplayName *string   `json:"displayName"`
	ProfilePic  *string   `json:"profilePic"`
	Bio         *string   `json:"bio"`
	Gender      *string   `json:"gender"`
	Interests   *[]string `json:"interests"`
}

func (r profileUpdateRequest) toUpdate() store.ProfileUpdate {
	return store.ProfileUpdate{
		DisplayName: r.DisplayName,
		ProfilePic:  r.ProfilePic,
		Bio:         r.Bio,
		Gender:      r.Gender,
		Interests:   r.Interests,
	}
}
