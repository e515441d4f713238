package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mzansigossip/backend/internal/models"
)

// ErrAlreadySeeded is returned when the store holds users and the demo
// fixture would clobber real state.
var ErrAlreadySeeded = errors.New("store already holds data")

// Seed loads the demo fixture: five club members with symmetric friend
// edges, a starter song catalog, two pending friend requests, and a couple
// of unread messages. Only valid on an empty store.
func (s *Store) Seed(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.users) > 0 {
		return ErrAlreadySeeded
	}

	now := s.now()
	member := func(id, email, name string, online bool, friends ...string) models.User {
		return models.User{
			ID:          id,
			Email:       email,
			DisplayName: name,
			ProfilePic:  DefaultProfilePic,
			IsOnline:    online,
			Friends:     friends,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	s.users = []models.User{
		member("user1", "thabo@example.com", "Thabo M", true, "user2", "user3"),
		member("user2", "nomsa@example.com", "Nomsa K", false, "user1", "user3", "user4"),
		member("user3", "sipho@example.com", "Sipho D", true, "user1", "user2", "user5"),
		member("user4", "lerato@example.com", "Lerato M", true, "user2"),
		member("user5", "tumi@example.com", "Tumi N", false, "user3"),
	}

	track := func(id, title, artist, album, genre, owner string, duration int) models.Song {
		return models.Song{
			ID:        id,
			Title:     title,
			Artist:    artist,
			Album:     album,
			Genre:     genre,
			CoverArt:  "/placeholder.svg?height=300&width=300",
			AudioURL:  "https://example.com/audio/" + id + ".mp3",
			Duration:  duration,
			UserID:    owner,
			Reactions: make(map[string]models.Reaction),
			Comments:  []models.Comment{},
			CreatedAt: now,
		}
	}

	s.songs = []models.Song{
		track("song1", "Jerusalema", "Master KG ft. Nomcebo", "Jerusalema Album", "Afro House", "user1", 240),
		track("song2", "Osama", "Zakes Bantwini", "Ghetto King", "Afro House", "user2", 320),
		track("song3", "Dali", "Daliwonga", "Daliwonga", "Amapiano", "user3", 280),
		track("song4", "Asibe Happy", "Kabza De Small & DJ Maphorisa", "Scorpion Kings", "Amapiano", "user4", 310),
	}

	s.friendRequests = []models.FriendRequest{
		{
			ID:            uuid.NewString(),
			FromUserID:    "user4",
			ToUserID:      "user1",
			Status:        models.FriendRequestPending,
			MutualFriends: 1, // user2
			CreatedAt:     now,
		},
		{
			ID:            uuid.NewString(),
			FromUserID:    "user5",
			ToUserID:      "user1",
			Status:        models.FriendRequestPending,
			MutualFriends: 1, // user3
			CreatedAt:     now,
		},
	}

	s.messages = []models.ChatMessage{
		{
			ID:          uuid.NewString(),
			FromUserID:  "user1",
			ToUserID:    "user2",
			Message:     "Hey, how are you?",
			MessageType: models.MessageText,
			CreatedAt:   now.Add(-2 * time.Hour),
		},
		{
			ID:          uuid.NewString(),
			FromUserID:  "user2",
			ToUserID:    "user1",
			Message:     "Did you see the latest gossip?",
			MessageType: models.MessageText,
			CreatedAt:   now.Add(-time.Hour),
		},
	}

	s.saveLocked(keyUsers, keySongs, keyFriendRequests, keyChatMessages)
	return nil
}
