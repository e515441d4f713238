package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mzansigossip/backend/internal/feed"
	"github.com/mzansigossip/backend/internal/models"
)

// NewPostParams carries the publish fields. Caption or media is required.
type NewPostParams struct {
	Caption   string
	MediaURL  string
	MediaType string
	SongID    string
}

func validMediaType(t string) bool {
	switch t {
	case models.MediaImage, models.MediaVideo, models.MediaSong, models.MediaNone:
		return true
	}
	return false
}

// CreatePost publishes a post and prepends it to the feed, keeping the
// most-recent-first ordering.
func (s *Store) CreatePost(_ context.Context, userID string, params NewPostParams) (models.Post, error) {
	caption := strings.TrimSpace(params.Caption)
	if caption == "" && params.MediaURL == "" {
		return models.Post{}, fmt.Errorf("caption or media is required: %w", ErrInvalid)
	}
	if !validMediaType(params.MediaType) {
		return models.Post{}, fmt.Errorf("unknown media type %q: %w", params.MediaType, ErrInvalid)
	}
	if params.MediaURL == "" && params.MediaType != models.MediaNone {
		return models.Post{}, fmt.Errorf("media type without media: %w", ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.userByIDLocked(userID); err != nil {
		return models.Post{}, err
	}

	post := models.Post{
		ID:        uuid.NewString(),
		UserID:    userID,
		Caption:   caption,
		MediaURL:  params.MediaURL,
		MediaType: params.MediaType,
		SongID:    params.SongID,
		Reactions: make(map[string]models.Reaction),
		Comments:  []models.Comment{},
		CreatedAt: s.now(),
	}
	s.posts = append([]models.Post{post}, s.posts...)
	s.saveLocked(keyPosts)

	return clonePost(post), nil
}

// Feed returns every post, most recent first.
func (s *Store) Feed(_ context.Context) []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Post, 0, len(s.posts))
	for i := range s.posts {
		out = append(out, clonePost(s.posts[i]))
	}
	return out
}

// PostByID fetches one post for the detail route.
func (s *Store) PostByID(_ context.Context, id string) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.postLocked(id)
	if err != nil {
		return models.Post{}, err
	}
	return clonePost(s.posts[i]), nil
}

// ToggleReaction applies the palette toggle to a post: same type removes,
// different type replaces. Adding or replacing notifies the post owner
// unless the caller owns the post; removal never notifies.
func (s *Store) ToggleReaction(_ context.Context, postID, userID string, rtype models.ReactionType) (models.Post, error) {
	if !feed.ValidReaction(rtype) {
		return models.Post{}, fmt.Errorf("unknown reaction %q: %w", rtype, ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.userByIDLocked(userID); err != nil {
		return models.Post{}, err
	}
	i, err := s.postLocked(postID)
	if err != nil {
		return models.Post{}, err
	}
	post := &s.posts[i]

	if post.Reactions == nil {
		post.Reactions = make(map[string]models.Reaction)
	}
	added := feed.Toggle(post.Reactions, userID, rtype, s.now())

	keys := []string{keyPosts}
	if added && post.UserID != userID {
		s.appendNotificationLocked(models.Notification{
			Type:       models.NotificationLike,
			FromUserID: userID,
			ToUserID:   post.UserID,
			PostID:     post.ID,
			Message:    "reacted to your post",
		})
		keys = append(keys, keyNotifications)
	}
	s.saveLocked(keys...)

	return clonePost(*post), nil
}

// AddComment appends a comment to a post and notifies the owner unless the
// commenter owns the post.
func (s *Store) AddComment(_ context.Context, postID, userID, text string) (models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Comment{}, fmt.Errorf("comment text is required: %w", ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.userByIDLocked(userID); err != nil {
		return models.Comment{}, err
	}
	i, err := s.postLocked(postID)
	if err != nil {
		return models.Comment{}, err
	}
	post := &s.posts[i]

	comment := models.Comment{
		ID:        uuid.NewString(),
		Text:      text,
		UserID:    userID,
		CreatedAt: s.now(),
	}
	post.Comments = append(post.Comments, comment)

	keys := []string{keyPosts}
	if post.UserID != userID {
		s.appendNotificationLocked(models.Notification{
			Type:       models.NotificationComment,
			FromUserID: userID,
			ToUserID:   post.UserID,
			PostID:     post.ID,
			Message:    "commented on your post",
		})
		keys = append(keys, keyNotifications)
	}
	s.saveLocked(keys...)

	return comment, nil
}

// EditPost replaces the caption. Owner only.
func (s *Store) EditPost(_ context.Context, postID, userID, caption string) (models.Post, error) {
	caption = strings.TrimSpace(caption)
	if caption == "" {
		return models.Post{}, fmt.Errorf("caption is required: %w", ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.postLocked(postID)
	if err != nil {
		return models.Post{}, err
	}
	if s.posts[i].UserID != userID {
		return models.Post{}, fmt.Errorf("only the owner may edit: %w", ErrForbidden)
	}

	s.posts[i].Caption = caption
	s.saveLocked(keyPosts)

	return clonePost(s.posts[i]), nil
}

// DeletePost removes the post from the feed. Owner only.
func (s *Store) DeletePost(_ context.Context, postID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.postLocked(postID)
	if err != nil {
		return err
	}
	if s.posts[i].UserID != userID {
		return fmt.Errorf("only the owner may delete: %w", ErrForbidden)
	}

	s.posts = append(s.posts[:i], s.posts[i+1:]...)
	s.saveLocked(keyPosts)
	return nil
}

// IncrementViewCount counts one playback-start event. Every play counts;
// there is no per-viewer dedupe.
func (s *Store) IncrementViewCount(_ context.Context, postID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.postLocked(postID)
	if err != nil {
		return 0, err
	}
	s.posts[i].ViewCount++
	s.saveLocked(keyPosts)
	return s.posts[i].ViewCount, nil
}

func (s *Store) postLocked(id string) (int, error) {
	for i := range s.posts {
		if s.posts[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("post %s: %w", id, ErrNotFound)
}

func clonePost(p models.Post) models.Post {
	out := p
	out.Reactions = make(map[string]models.Reaction, len(p.Reactions))
	for k, v := range p.Reactions {
		out.Reactions[k] = v
	}
	out.Comments = append([]models.Comment(nil), p.Comments...)
	return out
}
