package feed

import (
	"sort"
	"time"

	"github.com/mzansigossip/backend/internal/models"
)

// palette is the fixed six-entry reaction set selectable on posts, songs,
// and news items.
var palette = map[models.ReactionType]string{
	models.ReactionLike:  "👍",
	models.ReactionLove:  "❤️",
	models.ReactionLaugh: "😂",
	models.ReactionWow:   "😮",
	models.ReactionSad:   "😢",
	models.ReactionAngry: "😡",
}

// Emoji resolves a reaction type to its palette emoji.
func Emoji(t models.ReactionType) (string, bool) {
	emoji, ok := palette[t]
	return emoji, ok
}

// ValidReaction reports whether t is part of the palette.
func ValidReaction(t models.ReactionType) bool {
	_, ok := palette[t]
	return ok
}

// Toggle applies a reaction by userID to the keyed reaction set. Re-applying
// the same type removes the reaction; a different type replaces it. The
// returned flag reports whether a reaction is present afterwards, which is
// what decides notification emission. The set must be non-nil.
func Toggle(reactions map[string]models.Reaction, userID string, t models.ReactionType, now time.Time) bool {
	if existing, ok := reactions[userID]; ok && existing.Type == t {
		delete(reactions, userID)
		return false
	}

	emoji, ok := palette[t]
	if !ok {
		return false
	}

	reactions[userID] = models.Reaction{
		Type:      t,
		UserID:    userID,
		Emoji:     emoji,
		CreatedAt: now,
	}
	return true
}

// ReactionGroup is the aggregate view of one emoji on a target: the emoji,
// how many users picked it, and who they are.
type ReactionGroup struct {
	Type  models.ReactionType `json:"type"`
	Emoji string              `json:"emoji"`
	Count int                 `json:"count"`
	Users []string            `json:"users"`
}

// GroupReactions collapses a keyed reaction set into per-emoji groups,
// ordered by count descending then type for a stable rendering.
func GroupReactions(reactions map[string]models.Reaction) []ReactionGroup {
	byType := make(map[models.ReactionType]*ReactionGroup)
	for _, r := range reactions {
		group, ok := byType[r.Type]
		if !ok {
			group = &ReactionGroup{Type: r.Type, Emoji: r.Emoji}
			byType[r.Type] = group
		}
		group.Count++
		group.Users = append(group.Users, r.UserID)
	}

	groups := make([]ReactionGroup, 0, len(byType))
	for _, group := range byType {
		sort.Strings(group.Users)
		groups = append(groups, *group)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Type < groups[j].Type
	})
	return groups
}
