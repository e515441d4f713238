package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mzansigossip/backend/internal/auth"
	"github.com/mzansigossip/backend/internal/models"
	"github.com/mzansigossip/backend/internal/music"
	"github.com/mzansigossip/backend/internal/news"
	"github.com/mzansigossip/backend/internal/store"
)

// testEnv bundles a fully wired mux with direct access to the state it
// serves, so tests can arrange fixtures without going through HTTP.
type testEnv struct {
	mux      *http.ServeMux
	store    *store.Store
	sessions *auth.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := store.New(store.Options{MinSongDuration: 60 * time.Second})
	sessions := auth.NewManager(time.Minute, time.Hour, auth.NewInMemorySessionStore())

	mux := http.NewServeMux()
	RegisterRoutes(mux, Dependencies{
		Users:         st,
		Sessions:      sessions,
		Friends:       st,
		Posts:         st,
		Messages:      st,
		Notifications: st,
		Songs:         st,
		News:          st,
		NewsProvider:  news.StaticProvider{},
		Prober:        music.FileProber{},
		Player:        music.NewPlayer(),
		ShareBaseURL:  "http://gossip.example",
		TrendingSize:  10,
	})

	return &testEnv{mux: mux, store: st, sessions: sessions}
}

// login creates an account and returns its user record and access token.
func (env *testEnv) login(t *testing.T, email, name string) (models.User, string) {
	t.Helper()

	user, err := env.store.CreateUser(context.Background(), store.NewUserParams{Email: email, DisplayName: name})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	tokens, err := env.sessions.Issue(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("issue tokens: %v", err)
	}
	return user, tokens.AccessToken
}

func (env *testEnv) do(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}
