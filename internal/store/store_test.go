package store

import (
	"context"
	"testing"
	"time"

	"github.com/mzansigossip/backend/internal/models"
)

// inlinePersister applies snapshots synchronously so tests can assert on
// the KV contents without a background writer.
type inlinePersister struct {
	kv KV
}

func (p inlinePersister) Persist(key string, data []byte) {
	_ = p.kv.Put(key, data)
}

func TestSnapshotRoundTrip(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	s := New(Options{Persister: inlinePersister{kv: kv}, NowFunc: testClock()})
	u1 := mustCreateUser(t, s, "a@example.com", "A")
	u2 := mustCreateUser(t, s, "b@example.com", "B")

	post, err := s.CreatePost(ctx, u1.ID, NewPostParams{Caption: "hello"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if _, err := s.ToggleReaction(ctx, post.ID, u2.ID, models.ReactionLaugh); err != nil {
		t.Fatalf("react: %v", err)
	}
	if _, err := s.SendMessage(ctx, u1.ID, NewMessageParams{ToUserID: u2.ID, Message: "psst"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := s.SendFriendRequest(ctx, u1.ID, u2.ID); err != nil {
		t.Fatalf("invite: %v", err)
	}
	if _, err := s.AddNewsComment(ctx, "news1", u2.ID, "wild"); err != nil {
		t.Fatalf("news comment: %v", err)
	}
	if _, err := s.IncrementNewsViews(ctx, "news1"); err != nil {
		t.Fatalf("news view: %v", err)
	}

	restored, err := Load(kv, Options{NowFunc: testClock()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := len(restored.Feed(ctx)); got != 1 {
		t.Fatalf("expected one post after reload, got %d", got)
	}
	reloaded, err := restored.PostByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("post lookup: %v", err)
	}
	if reloaded.Reactions[u2.ID].Type != models.ReactionLaugh {
		t.Fatalf("expected laugh reaction to survive, got %+v", reloaded.Reactions)
	}
	if counts := restored.UnreadCounts(ctx, u2.ID); counts[u1.ID] != 1 {
		t.Fatalf("expected unread message to survive, got %+v", counts)
	}
	if got := len(restored.FriendRequestsFor(ctx, u2.ID)); got != 1 {
		t.Fatalf("expected pending request to survive, got %d", got)
	}
	engagement := restored.NewsEngagementFor(ctx, "news1")
	if len(engagement.Comments) != 1 || engagement.ViewCount != 1 {
		t.Fatalf("expected news engagement to survive, got %+v", engagement)
	}
}

func TestLoadToleratesCorruptSnapshot(t *testing.T) {
	kv := NewMemoryKV()
	if err := kv.Put("users", []byte("{not json")); err != nil {
		t.Fatalf("put: %v", err)
	}

	s, err := Load(kv, Options{})
	if err != nil {
		t.Fatalf("load must tolerate corrupt keys: %v", err)
	}
	if got := s.SearchUsers(context.Background(), "example"); got != nil {
		t.Fatalf("expected empty collection, got %+v", got)
	}
}

func TestSeed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := s.Seed(ctx); err != ErrAlreadySeeded {
		t.Fatalf("expected already seeded, got %v", err)
	}

	user, err := s.UserByID(ctx, "user1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !user.HasFriend("user2") || !user.HasFriend("user3") {
		t.Fatalf("expected seeded friend edges, got %+v", user.Friends)
	}

	// edges are symmetric in the fixture
	friend, err := s.UserByID(ctx, "user2")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !friend.HasFriend("user1") {
		t.Fatal("expected symmetric edge user2 -> user1")
	}

	if got := len(s.Songs(ctx)); got != 4 {
		t.Fatalf("expected four seeded songs, got %d", got)
	}
	if got := len(s.FriendRequestsFor(ctx, "user1")); got != 2 {
		t.Fatalf("expected two pending requests for user1, got %d", got)
	}
	if counts := s.UnreadCounts(ctx, "user1"); counts["user2"] != 1 {
		t.Fatalf("expected unread starter message, got %+v", counts)
	}
}

func TestSnapshotWriterFlushAndShutdown(t *testing.T) {
	kv := NewMemoryKV()
	writer := NewSnapshotWriter(kv, 8, nil)

	writer.Persist("users", []byte(`[]`))
	writer.Persist("posts", []byte(`[{"id":"p1"}]`))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := writer.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}

	for _, key := range []string{"users", "posts"} {
		data, err := kv.Get(key)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if len(data) == 0 {
			t.Fatalf("expected %s snapshot written after flush", key)
		}
	}

	if err := writer.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	// writes after shutdown are applied inline
	writer.Persist("songs", []byte(`[]`))
	data, err := kv.Get("songs")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected inline write after shutdown")
	}

	// a late write for an already-drained key wins
	writer.Persist("users", []byte(`[{"id":"u1"}]`))
	data, err = kv.Get("users")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != `[{"id":"u1"}]` {
		t.Fatalf("expected the late snapshot to win, got %s", data)
	}

	if err := writer.Flush(ctx); err != nil {
		t.Fatalf("flush after shutdown: %v", err)
	}
}
