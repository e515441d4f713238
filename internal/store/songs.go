package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mzansigossip/backend/internal/feed"
	"github.com/mzansigossip/backend/internal/models"
	"github.com/mzansigossip/backend/internal/music"
)

// SongUpload carries the metadata accompanying an uploaded track. Duration
// comes from probing the audio bytes, not from the client.
type SongUpload struct {
	Title    string
	Artist   string
	Album    string
	Genre    string
	CoverArt string
	AudioURL string
}

// UploadSong validates and registers an uploaded song. Tracks shorter than
// the configured minimum are rejected with no record created. On success
// the song enters the catalog with a zero stream count and a companion post
// referencing it lands at the top of the feed.
func (s *Store) UploadSong(_ context.Context, ownerID string, upload SongUpload, duration time.Duration) (models.Song, error) {
	title := strings.TrimSpace(upload.Title)
	artist := strings.TrimSpace(upload.Artist)
	if title == "" {
		return models.Song{}, fmt.Errorf("title is required: %w", ErrInvalid)
	}
	if artist == "" {
		return models.Song{}, fmt.Errorf("artist is required: %w", ErrInvalid)
	}
	if s.minSongDuration > 0 && duration < s.minSongDuration {
		return models.Song{}, fmt.Errorf("song is %s, minimum is %s: %w",
			duration.Round(time.Second), s.minSongDuration, ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.userByIDLocked(ownerID); err != nil {
		return models.Song{}, err
	}

	now := s.now()
	song := models.Song{
		ID:          uuid.NewString(),
		Title:       title,
		Artist:      artist,
		Album:       strings.TrimSpace(upload.Album),
		Genre:       strings.TrimSpace(upload.Genre),
		CoverArt:    upload.CoverArt,
		AudioURL:    upload.AudioURL,
		Duration:    int(duration / time.Second),
		UserID:      ownerID,
		StreamCount: 0,
		Reactions:   make(map[string]models.Reaction),
		Comments:    []models.Comment{},
		CreatedAt:   now,
	}
	s.songs = append(s.songs, song)

	post := models.Post{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		Caption:   fmt.Sprintf("%s by %s", title, artist),
		MediaURL:  upload.AudioURL,
		MediaType: models.MediaSong,
		SongID:    song.ID,
		Reactions: make(map[string]models.Reaction),
		Comments:  []models.Comment{},
		CreatedAt: now,
	}
	s.posts = append([]models.Post{post}, s.posts...)

	s.saveLocked(keySongs, keyPosts)
	return cloneSong(song), nil
}

// Songs returns the catalog in upload order.
func (s *Store) Songs(_ context.Context) []models.Song {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Song, 0, len(s.songs))
	for i := range s.songs {
		out = append(out, cloneSong(s.songs[i]))
	}
	return out
}

// SongByID fetches one song.
func (s *Store) SongByID(_ context.Context, id string) (models.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.songLocked(id)
	if err != nil {
		return models.Song{}, err
	}
	return cloneSong(s.songs[i]), nil
}

// PlaySong counts one stream. Every play invocation counts, regardless of
// whether the listen completes.
func (s *Store) PlaySong(_ context.Context, songID string) (models.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.songLocked(songID)
	if err != nil {
		return models.Song{}, err
	}
	s.songs[i].StreamCount++
	s.saveLocked(keySongs)
	return cloneSong(s.songs[i]), nil
}

// ToggleSongReaction applies the palette toggle to a song and notifies the
// uploader on add unless the caller uploaded it.
func (s *Store) ToggleSongReaction(_ context.Context, songID, userID string, rtype models.ReactionType) (models.Song, error) {
	if !feed.ValidReaction(rtype) {
		return models.Song{}, fmt.Errorf("unknown reaction %q: %w", rtype, ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.userByIDLocked(userID); err != nil {
		return models.Song{}, err
	}
	i, err := s.songLocked(songID)
	if err != nil {
		return models.Song{}, err
	}
	song := &s.songs[i]

	if song.Reactions == nil {
		song.Reactions = make(map[string]models.Reaction)
	}
	added := feed.Toggle(song.Reactions, userID, rtype, s.now())

	keys := []string{keySongs}
	if added && song.UserID != userID {
		s.appendNotificationLocked(models.Notification{
			Type:       models.NotificationSongLike,
			FromUserID: userID,
			ToUserID:   song.UserID,
			SongID:     song.ID,
			Message:    "liked your song",
		})
		keys = append(keys, keyNotifications)
	}
	s.saveLocked(keys...)

	return cloneSong(*song), nil
}

// AddSongComment appends a comment to a song and notifies the uploader
// unless the commenter uploaded it.
func (s *Store) AddSongComment(_ context.Context, songID, userID, text string) (models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Comment{}, fmt.Errorf("comment text is required: %w", ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.userByIDLocked(userID); err != nil {
		return models.Comment{}, err
	}
	i, err := s.songLocked(songID)
	if err != nil {
		return models.Comment{}, err
	}
	song := &s.songs[i]

	comment := models.Comment{
		ID:        uuid.NewString(),
		Text:      text,
		UserID:    userID,
		CreatedAt: s.now(),
	}
	song.Comments = append(song.Comments, comment)

	keys := []string{keySongs}
	if song.UserID != userID {
		s.appendNotificationLocked(models.Notification{
			Type:       models.NotificationSongComment,
			FromUserID: userID,
			ToUserID:   song.UserID,
			SongID:     song.ID,
			Message:    "commented on your song",
		})
		keys = append(keys, keyNotifications)
	}
	s.saveLocked(keys...)

	return comment, nil
}

// TrendingSongs ranks the catalog by weighted popularity and returns the
// top entries. The score is recomputed in full on every call; the sort is
// stable so ties keep catalog order.
func (s *Store) TrendingSongs(_ context.Context, limit int) []models.Song {
	s.mu.Lock()
	defer s.mu.Unlock()

	ranked := make([]models.Song, 0, len(s.songs))
	for i := range s.songs {
		ranked = append(ranked, cloneSong(s.songs[i]))
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return music.TrendingScore(ranked[i]) > music.TrendingScore(ranked[j])
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func (s *Store) songLocked(id string) (int, error) {
	for i := range s.songs {
		if s.songs[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("song %s: %w", id, ErrNotFound)
}

func cloneSong(song models.Song) models.Song {
	out := song
	out.Reactions = make(map[string]models.Reaction, len(song.Reactions))
	for k, v := range song.Reactions {
		out.Reactions[k] = v
	}
	out.Comments = append([]models.Comment(nil), song.Comments...)
	return out
}
