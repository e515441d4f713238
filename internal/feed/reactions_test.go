package feed

import (
	"testing"
	"time"

	"github.com/mzansigossip/backend/internal/models"
)

func TestToggleAddReplaceRemove(t *testing.T) {
	reactions := make(map[string]models.Reaction)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	if !Toggle(reactions, "u1", models.ReactionLike, now) {
		t.Fatal("expected add to report a present reaction")
	}
	if reactions["u1"].Emoji != "👍" {
		t.Fatalf("expected like emoji, got %q", reactions["u1"].Emoji)
	}

	if !Toggle(reactions, "u1", models.ReactionSad, now) {
		t.Fatal("expected replace to report a present reaction")
	}
	if len(reactions) != 1 || reactions["u1"].Type != models.ReactionSad {
		t.Fatalf("expected single sad reaction, got %+v", reactions)
	}

	if Toggle(reactions, "u1", models.ReactionSad, now) {
		t.Fatal("expected removal to report no reaction")
	}
	if len(reactions) != 0 {
		t.Fatalf("expected empty set, got %+v", reactions)
	}
}

func TestToggleRejectsUnknownType(t *testing.T) {
	reactions := make(map[string]models.Reaction)
	if Toggle(reactions, "u1", "sparkle", time.Now()) {
		t.Fatal("unknown type must not add a reaction")
	}
	if len(reactions) != 0 {
		t.Fatalf("expected empty set, got %+v", reactions)
	}
}

func TestValidReaction(t *testing.T) {
	for _, valid := range []models.ReactionType{
		models.ReactionLike, models.ReactionLove, models.ReactionLaugh,
		models.ReactionWow, models.ReactionSad, models.ReactionAngry,
	} {
		if !ValidReaction(valid) {
			t.Fatalf("expected %s to be valid", valid)
		}
	}
	if ValidReaction("thumbs") {
		t.Fatal("expected unknown type to be invalid")
	}
}

func TestGroupReactionsOrdering(t *testing.T) {
	reactions := make(map[string]models.Reaction)
	now := time.Now()
	Toggle(reactions, "u1", models.ReactionLove, now)
	Toggle(reactions, "u2", models.ReactionLove, now)
	Toggle(reactions, "u3", models.ReactionAngry, now)

	groups := GroupReactions(reactions)
	if len(groups) != 2 {
		t.Fatalf("expected two groups, got %d", len(groups))
	}
	if groups[0].Type != models.ReactionLove || groups[0].Count != 2 {
		t.Fatalf("expected love group first, got %+v", groups[0])
	}
	if got := groups[0].Users; len(got) != 2 || got[0] != "u1" || got[1] != "u2" {
		t.Fatalf("expected sorted users, got %+v", got)
	}
}
