package music

import (
	"testing"

	"github.com/mzansigossip/backend/internal/models"
)

func TestPlayerTransport(t *testing.T) {
	player := NewPlayer()

	if _, ok := player.Now(); ok {
		t.Fatal("idle transport must report nothing loaded")
	}
	if _, ok := player.Pause(); ok {
		t.Fatal("pause on idle transport must fail")
	}
	if _, ok := player.Resume(); ok {
		t.Fatal("resume on idle transport must fail")
	}

	state := player.Play(models.Song{ID: "song1", Title: "Jerusalema"})
	if !state.Playing || state.Song.ID != "song1" {
		t.Fatalf("unexpected state after play: %+v", state)
	}

	state, ok := player.Pause()
	if !ok || state.Playing {
		t.Fatalf("expected paused state, got %+v ok=%v", state, ok)
	}

	state, ok = player.Resume()
	if !ok || !state.Playing {
		t.Fatalf("expected resumed state, got %+v ok=%v", state, ok)
	}

	// playing a new song replaces the loaded one
	state = player.Play(models.Song{ID: "song2"})
	if state.Song.ID != "song2" || !state.Playing {
		t.Fatalf("expected replacement, got %+v", state)
	}
}

func TestTrendingScore(t *testing.T) {
	song := models.Song{
		StreamCount: 3,
		Reactions: map[string]models.Reaction{
			"u1": {Type: models.ReactionLove},
			"u2": {Type: models.ReactionLike},
		},
	}
	if got := TrendingScore(song); got != 7 {
		t.Fatalf("expected score 7, got %d", got)
	}
}
