package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mzansigossip/backend/internal/models"
)

// Snapshot keys, one per collection. The layout mirrors the browser
// original: each key holds the whole collection as one JSON value, rewritten
// in full on every mutation of that collection.
const (
	keyUsers          = "users"
	keyPosts          = "posts"
	keyFriendRequests = "friendRequests"
	keyChatMessages   = "chatMessages"
	keyNotifications  = "notifications"
	keySongs          = "songs"
	keyNewsReactions  = "newsReactions"
	keyNewsComments   = "newsComments"
	keyNewsViewCounts = "newsViewCounts"
)

// Options configures a Store.
type Options struct {
	// Persister receives collection snapshots after each mutation. Nil
	// disables persistence (tests).
	Persister Persister
	// MinSongDuration is the upload policy floor; zero accepts any length.
	MinSongDuration time.Duration
	// NowFunc overrides the time source for tests.
	NowFunc func() time.Time
	Logger  *slog.Logger
}

// Store is the single in-memory state container for the whole application.
// Every mutation takes the store lock, applies the change together with any
// derived notification, and hands a full snapshot of each touched collection
// to the persister before the lock is released. Multi-record updates such as
// the friend-accept edge write therefore happen in one transaction from any
// observer's point of view.
type Store struct {
	mu sync.Mutex

	users          []models.User
	posts          []models.Post
	friendRequests []models.FriendRequest
	messages       []models.ChatMessage
	notifications  []models.Notification
	songs          []models.Song
	newsReactions  map[string]map[string]models.Reaction
	newsComments   map[string][]models.Comment
	newsViews      map[string]int

	persister       Persister
	minSongDuration time.Duration
	nowFunc         func() time.Time
	logger          *slog.Logger
}

// New constructs an empty Store.
func New(opts Options) *Store {
	if opts.NowFunc == nil {
		opts.NowFunc = func() time.Time { return time.Now().UTC() }
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Store{
		newsReactions:   make(map[string]map[string]models.Reaction),
		newsComments:    make(map[string][]models.Comment),
		newsViews:       make(map[string]int),
		persister:       opts.Persister,
		minSongDuration: opts.MinSongDuration,
		nowFunc:         opts.NowFunc,
		logger:          opts.Logger,
	}
}

// Load builds a Store from the snapshots held in kv. A missing or corrupt
// key degrades to an empty collection rather than failing startup, matching
// the original's tolerance of a cleared or mangled storage area.
func Load(kv KV, opts Options) (*Store, error) {
	s := New(opts)

	loadCollection(kv, keyUsers, s.logger, &s.users)
	loadCollection(kv, keyPosts, s.logger, &s.posts)
	loadCollection(kv, keyFriendRequests, s.logger, &s.friendRequests)
	loadCollection(kv, keyChatMessages, s.logger, &s.messages)
	loadCollection(kv, keyNotifications, s.logger, &s.notifications)
	loadCollection(kv, keySongs, s.logger, &s.songs)
	loadCollection(kv, keyNewsReactions, s.logger, &s.newsReactions)
	loadCollection(kv, keyNewsComments, s.logger, &s.newsComments)
	loadCollection(kv, keyNewsViewCounts, s.logger, &s.newsViews)

	if s.newsReactions == nil {
		s.newsReactions = make(map[string]map[string]models.Reaction)
	}
	if s.newsComments == nil {
		s.newsComments = make(map[string][]models.Comment)
	}
	if s.newsViews == nil {
		s.newsViews = make(map[string]int)
	}

	return s, nil
}

func loadCollection[T any](kv KV, key string, logger *slog.Logger, out *T) {
	data, err := kv.Get(key)
	if err != nil {
		logger.Warn("load snapshot failed", "key", key, "error", err)
		return
	}
	if len(data) == 0 {
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		logger.Warn("discarding corrupt snapshot", "key", key, "error", err)
	}
}

func (s *Store) now() time.Time {
	return s.nowFunc()
}

// saveLocked snapshots the named collections. Callers must hold the store
// lock so the serialized value matches the state the mutation produced.
func (s *Store) saveLocked(keys ...string) {
	if s.persister == nil {
		return
	}

	for _, key := range keys {
		var value any
		switch key {
		case keyUsers:
			value = s.users
		case keyPosts:
			value = s.posts
		case keyFriendRequests:
			value = s.friendRequests
		case keyChatMessages:
			value = s.messages
		case keyNotifications:
			value = s.notifications
		case keySongs:
			value = s.songs
		case keyNewsReactions:
			value = s.newsReactions
		case keyNewsComments:
			value = s.newsComments
		case keyNewsViewCounts:
			value = s.newsViews
		default:
			s.logger.Error("unknown snapshot key", "key", key)
			continue
		}

		data, err := json.Marshal(value)
		if err != nil {
			s.logger.Error("marshal snapshot", "key", key, "error", err)
			continue
		}
		s.persister.Persist(key, data)
	}
}

func (s *Store) userByIDLocked(id string) (int, error) {
	for i := range s.users {
		if s.users[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("user %s: %w", id, ErrNotFound)
}
