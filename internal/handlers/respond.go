package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mzansigossip/backend/internal/auth"
	"github.com/mzansigossip/backend/internal/logging"
	"github.com/mzansigossip/backend/internal/store"
)

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.FromContext(ctx).Error("encode response body", "status", status, "error", err)
		return
	}

	logger := logging.FromContext(ctx)
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("request failed", "status", status, "response", payload)
	case status >= http.StatusBadRequest:
		logger.Warn("request returned client error", "status", status, "response", payload)
	}
}

// respondStoreError maps the store sentinels onto HTTP statuses. Client
// errors echo the message; anything unrecognised becomes an opaque 500.
func respondStoreError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logging.FromContext(ctx).Error("unexpected store error", "error", err)
		respondJSON(ctx, w, status, map[string]string{"error": "internal error"})
		return
	}
	respondJSON(ctx, w, status, map[string]string{"error": err.Error()})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, store.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, store.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// authenticate resolves the caller's user id from the bearer token. A
// missing or stale token yields an empty id; the handler responds 401.
func authenticate(r *http.Request, sessions SessionManager) (string, bool) {
	if sessions == nil {
		return "", false
	}

	header := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}

	userID, err := sessions.Validate(r.Context(), strings.TrimSpace(header[len(prefix):]))
	if err != nil {
		if !errors.Is(err, auth.ErrSessionNotFound) && !errors.Is(err, auth.ErrAccessTokenExpired) {
			logging.FromContext(r.Context()).Error("token validation failed", "error", err)
		}
		return "", false
	}
	return userID, true
}

func respondUnauthorized(ctx context.Context, w http.ResponseWriter) {
	respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
}
