package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/mzansigossip/backend/internal/feed"
	"github.com/mzansigossip/backend/internal/models"
)

// News engagement lives in keyed maps per news item id. News items
// themselves come from the catalog provider and are not stored here, so no
// existence check is applied to the id.

// ToggleNewsReaction applies the palette toggle to a news item.
func (s *Store) ToggleNewsReaction(_ context.Context, newsID, userID string, rtype models.ReactionType) ([]models.Reaction, error) {
	if !feed.ValidReaction(rtype) {
		return nil, fmt.Errorf("unknown reaction %q: %w", rtype, ErrInvalid)
	}
	if newsID == "" {
		return nil, fmt.Errorf("news id is required: %w", ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.userByIDLocked(userID); err != nil {
		return nil, err
	}

	reactions := s.newsReactions[newsID]
	if reactions == nil {
		reactions = make(map[string]models.Reaction)
		s.newsReactions[newsID] = reactions
	}
	feed.Toggle(reactions, userID, rtype, s.now())
	s.saveLocked(keyNewsReactions)

	return reactionValues(reactions), nil
}

// AddNewsComment appends a comment under a news item.
func (s *Store) AddNewsComment(_ context.Context, newsID, userID, text string) (models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Comment{}, fmt.Errorf("comment text is required: %w", ErrInvalid)
	}
	if newsID == "" {
		return models.Comment{}, fmt.Errorf("news id is required: %w", ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.userByIDLocked(userID); err != nil {
		return models.Comment{}, err
	}

	comment := models.Comment{
		ID:        uuid.NewString(),
		Text:      text,
		UserID:    userID,
		CreatedAt: s.now(),
	}
	s.newsComments[newsID] = append(s.newsComments[newsID], comment)
	s.saveLocked(keyNewsComments)

	return comment, nil
}

// IncrementNewsViews counts one playback-start event on a news video.
func (s *Store) IncrementNewsViews(_ context.Context, newsID string) (int, error) {
	if newsID == "" {
		return 0, fmt.Errorf("news id is required: %w", ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.newsViews[newsID]++
	s.saveLocked(keyNewsViewCounts)
	return s.newsViews[newsID], nil
}

// NewsEngagement bundles the stored interactions for one news item.
type NewsEngagement struct {
	Reactions []models.Reaction `json:"reactions"`
	Comments  []models.Comment  `json:"comments"`
	ViewCount int               `json:"viewCount"`
}

// NewsEngagementFor returns the engagement recorded against a news item.
func (s *Store) NewsEngagementFor(_ context.Context, newsID string) NewsEngagement {
	s.mu.Lock()
	defer s.mu.Unlock()

	return NewsEngagement{
		Reactions: reactionValues(s.newsReactions[newsID]),
		Comments:  append([]models.Comment(nil), s.newsComments[newsID]...),
		ViewCount: s.newsViews[newsID],
	}
}

func reactionValues(reactions map[string]models.Reaction) []models.Reaction {
	out := make([]models.Reaction, 0, len(reactions))
	for _, r := range reactions {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}
