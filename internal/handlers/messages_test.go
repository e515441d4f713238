package handlers

import (
	"net/http"
	"testing"

	"github.com/mzansigossip/backend/internal/models"
)

func TestMessagingFlow(t *testing.T) {
	env := newTestEnv(t)
	a, aToken := env.login(t, "a@example.com", "A")
	b, bToken := env.login(t, "b@example.com", "B")

	rec := env.do(t, http.MethodPost, "/api/v1/messages", aToken, sendMessageRequest{ToUserID: b.ID, Message: "hey"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected created, got %d: %s", rec.Code, rec.Body.String())
	}
	sent := decodeBody[models.ChatMessage](t, rec)
	if sent.Read {
		t.Fatal("new message must start unread")
	}

	// b sees an unread badge from a
	rec = env.do(t, http.MethodGet, "/api/v1/messages/unread", bToken, nil)
	unread := decodeBody[map[string]map[string]int](t, rec)
	if unread["unread"][a.ID] != 1 {
		t.Fatalf("expected one unread from a, got %+v", unread)
	}

	// opening the thread marks it read
	rec = env.do(t, http.MethodGet, "/api/v1/messages/threads/"+a.ID, bToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected ok, got %d", rec.Code)
	}
	thread := decodeBody[map[string][]messageView](t, rec)
	if len(thread["messages"]) != 1 || !thread["messages"][0].Read {
		t.Fatalf("expected read message in thread, got %+v", thread)
	}
	if thread["messages"][0].From.DisplayName != "A" {
		t.Fatalf("expected resolved sender, got %+v", thread["messages"][0].From)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/messages/unread", bToken, nil)
	unread = decodeBody[map[string]map[string]int](t, rec)
	if len(unread["unread"]) != 0 {
		t.Fatalf("expected no unread after opening, got %+v", unread)
	}

	// thread summaries carry the other side's display data
	rec = env.do(t, http.MethodGet, "/api/v1/messages/threads", aToken, nil)
	threads := decodeBody[map[string][]threadView](t, rec)
	if len(threads["threads"]) != 1 || threads["threads"][0].UserID != b.ID {
		t.Fatalf("expected one thread with b, got %+v", threads)
	}
	if threads["threads"][0].User.DisplayName != "B" {
		t.Fatalf("expected resolved thread partner, got %+v", threads["threads"][0].User)
	}
}

func TestMessagingValidation(t *testing.T) {
	env := newTestEnv(t)
	a, aToken := env.login(t, "a@example.com", "A")

	rec := env.do(t, http.MethodPost, "/api/v1/messages", aToken, sendMessageRequest{ToUserID: a.ID, Message: "hi me"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected bad request for self message, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/v1/messages", aToken, sendMessageRequest{ToUserID: "missing", Message: "hi"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected not found for unknown recipient, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/messages/threads/missing", aToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected not found for unknown thread, got %d", rec.Code)
	}
}
