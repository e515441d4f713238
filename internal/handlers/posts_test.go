package handlers

import (
	"net/http"
	"testing"

	"github.com/mzansigossip/backend/internal/models"
)

func TestPostLifecycle(t *testing.T) {
	env := newTestEnv(t)
	_, ownerToken := env.login(t, "owner@example.com", "Owner")
	_, fanToken := env.login(t, "fan@example.com", "Fan")

	rec := env.do(t, http.MethodPost, "/api/v1/posts", ownerToken, createPostRequest{Caption: "big gossip"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected created, got %d: %s", rec.Code, rec.Body.String())
	}
	post := decodeBody[models.Post](t, rec)

	// the feed lists it
	rec = env.do(t, http.MethodGet, "/api/v1/posts/feed", fanToken, nil)
	feed := decodeBody[map[string][]models.Post](t, rec)
	if len(feed["posts"]) != 1 {
		t.Fatalf("expected one post, got %+v", feed)
	}

	// reaction toggle through the API
	rec = env.do(t, http.MethodPost, "/api/v1/posts/"+post.ID+"/reactions", fanToken, reactionRequest{Type: "love"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected ok, got %d: %s", rec.Code, rec.Body.String())
	}
	reacted := decodeBody[models.Post](t, rec)
	if len(reacted.Reactions) != 1 {
		t.Fatalf("expected one reaction, got %+v", reacted.Reactions)
	}

	rec = env.do(t, http.MethodPost, "/api/v1/posts/"+post.ID+"/reactions", fanToken, reactionRequest{Type: "love"})
	removed := decodeBody[models.Post](t, rec)
	if len(removed.Reactions) != 0 {
		t.Fatalf("expected reaction removed, got %+v", removed.Reactions)
	}

	rec = env.do(t, http.MethodPost, "/api/v1/posts/"+post.ID+"/comments", fanToken, commentRequest{Text: "spill it"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected created, got %d", rec.Code)
	}

	// only the owner may edit or delete
	rec = env.do(t, http.MethodPut, "/api/v1/posts/"+post.ID, fanToken, editPostRequest{Caption: "hijacked"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected forbidden, got %d", rec.Code)
	}
	rec = env.do(t, http.MethodPut, "/api/v1/posts/"+post.ID, ownerToken, editPostRequest{Caption: "bigger gossip"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected ok, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/api/v1/posts/"+post.ID, ownerToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected ok, got %d", rec.Code)
	}
	rec = env.do(t, http.MethodGet, "/api/v1/posts/"+post.ID, ownerToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected not found after delete, got %d", rec.Code)
	}
}

func TestFeedResolvesAuthorDisplayData(t *testing.T) {
	env := newTestEnv(t)
	_, ownerToken := env.login(t, "owner@example.com", "Owner")
	_, fanToken := env.login(t, "fan@example.com", "Fan")

	rec := env.do(t, http.MethodPost, "/api/v1/posts", ownerToken, createPostRequest{Caption: "who did it"})
	post := decodeBody[postView](t, rec)
	if post.Author.DisplayName != "Owner" || post.Author.ProfilePic == "" {
		t.Fatalf("expected resolved author on create, got %+v", post.Author)
	}

	rec = env.do(t, http.MethodPost, "/api/v1/posts/"+post.ID+"/comments", fanToken, commentRequest{Text: "tell us"})
	comment := decodeBody[commentView](t, rec)
	if comment.Author.DisplayName != "Fan" {
		t.Fatalf("expected resolved commenter, got %+v", comment.Author)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/posts/feed", fanToken, nil)
	feed := decodeBody[map[string][]postView](t, rec)
	posts := feed["posts"]
	if len(posts) != 1 || posts[0].Author.DisplayName != "Owner" {
		t.Fatalf("expected resolved feed author, got %+v", posts)
	}
	if len(posts[0].Comments) != 1 || posts[0].Comments[0].Author.DisplayName != "Fan" {
		t.Fatalf("expected resolved comment author in feed, got %+v", posts[0].Comments)
	}

	// a profile rename shows up on old content without any fan-out
	name := "Owner Renamed"
	rec = env.do(t, http.MethodPut, "/api/v1/profile", ownerToken, profileUpdateRequest{DisplayName: &name})
	if rec.Code != http.StatusOK {
		t.Fatalf("rename: %d", rec.Code)
	}
	rec = env.do(t, http.MethodGet, "/api/v1/posts/"+post.ID, fanToken, nil)
	detail := decodeBody[postView](t, rec)
	if detail.Author.DisplayName != name {
		t.Fatalf("expected renamed author at read time, got %+v", detail.Author)
	}
}

func TestPostShareLink(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.login(t, "owner@example.com", "Owner")

	rec := env.do(t, http.MethodPost, "/api/v1/posts", token, createPostRequest{Caption: "shareable"})
	post := decodeBody[models.Post](t, rec)

	rec = env.do(t, http.MethodGet, "/api/v1/posts/"+post.ID+"/share", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected ok, got %d", rec.Code)
	}
	link := decodeBody[map[string]string](t, rec)
	want := "http://gossip.example/posts/" + post.ID
	if link["url"] != want {
		t.Fatalf("expected %q, got %q", want, link["url"])
	}

	rec = env.do(t, http.MethodGet, "/api/v1/posts/missing/share", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected not found for unknown post, got %d", rec.Code)
	}
}

func TestPostViewCount(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.login(t, "owner@example.com", "Owner")

	rec := env.do(t, http.MethodPost, "/api/v1/posts", token, createPostRequest{
		Caption:   "clip",
		MediaURL:  "/clip.mp4",
		MediaType: models.MediaVideo,
	})
	post := decodeBody[models.Post](t, rec)

	for i := 1; i <= 2; i++ {
		rec = env.do(t, http.MethodPost, "/api/v1/posts/"+post.ID+"/views", token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected ok, got %d", rec.Code)
		}
		counts := decodeBody[map[string]int](t, rec)
		if counts["viewCount"] != i {
			t.Fatalf("expected count %d, got %+v", i, counts)
		}
	}
}
