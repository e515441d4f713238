package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAuthSignUpAndLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/signup", "", signUpRequest{
		Email:       "thabo@example.com",
		DisplayName: "Thabo M",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	resp := decodeBody[authResponse](t, rec)
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Fatalf("expected tokens to be issued, got %+v", resp.Tokens)
	}
	if resp.User == nil || resp.User.DisplayName != "Thabo M" {
		t.Fatalf("expected created user in response, got %+v", resp.User)
	}

	// duplicate email conflicts
	rec = env.do(t, http.MethodPost, "/api/v1/auth/signup", "", signUpRequest{
		Email:       "thabo@example.com",
		DisplayName: "Imposter",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected conflict, got %d", rec.Code)
	}

	// login with the same email reuses the account
	rec = env.do(t, http.MethodPost, "/api/v1/auth/login", "", loginRequest{Email: "thabo@example.com"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected ok, got %d: %s", rec.Code, rec.Body.String())
	}
	login := decodeBody[authResponse](t, rec)
	if login.User == nil || login.User.ID != resp.User.ID {
		t.Fatalf("expected existing account, got %+v", login.User)
	}
}

func TestAuthLoginFabricatesAccount(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", loginRequest{Email: "lindiwe@example.com"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected ok, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeBody[authResponse](t, rec)
	if resp.User == nil || resp.User.DisplayName != "lindiwe" {
		t.Fatalf("expected fabricated display name, got %+v", resp.User)
	}

	// the issued access token authenticates follow-up requests
	rec = env.do(t, http.MethodGet, "/api/v1/profile", resp.Tokens.AccessToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected profile ok, got %d", rec.Code)
	}
}

func TestAuthRefreshAndLogout(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.login(t, "sipho@example.com", "Sipho")

	tokens, err := env.sessions.Issue(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rec := env.do(t, http.MethodPost, "/api/v1/auth/refresh", "", refreshRequest{RefreshToken: tokens.RefreshToken})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected ok, got %d: %s", rec.Code, rec.Body.String())
	}
	refreshed := decodeBody[authResponse](t, rec)
	if refreshed.Tokens.RefreshToken == tokens.RefreshToken {
		t.Fatal("expected rotated refresh token")
	}

	// the old refresh token is spent
	rec = env.do(t, http.MethodPost, "/api/v1/auth/refresh", "", refreshRequest{RefreshToken: tokens.RefreshToken})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized for spent token, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/v1/auth/logout", "", refreshRequest{RefreshToken: refreshed.Tokens.RefreshToken})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected ok, got %d", rec.Code)
	}

	stored, err := env.store.UserByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if stored.IsOnline {
		t.Fatal("logout must mark the user offline")
	}
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{
		"/api/v1/posts/feed",
		"/api/v1/friends",
		"/api/v1/notifications",
		"/api/v1/news",
	} {
		rec := env.do(t, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected unauthorized for %s without token, got %d", path, rec.Code)
		}
		rec = env.do(t, http.MethodGet, path, "bogus-token", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected unauthorized for %s with stale token, got %d", path, rec.Code)
		}
	}
}

type denyAllLimiter struct{}

func (denyAllLimiter) Allow(string) bool { return false }

func TestAuthRateLimit(t *testing.T) {
	handler := AuthHandler{Limiter: denyAllLimiter{}}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"x@example.com"}`))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected rate limited, got %d", rec.Code)
	}
}
