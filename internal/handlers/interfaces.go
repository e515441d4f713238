package handlers

import (
	"context"
	"io"
	"time"

	"github.com/mzansigossip/backend/internal/models"
	"github.com/mzansigossip/backend/internal/music"
	"github.com/mzansigossip/backend/internal/news"
	"github.com/mzansigossip/backend/internal/store"
)

// UserStore captures the identity operations required by the auth and
// profile handlers.
type UserStore interface {
	CreateUser(ctx context.Context, params store.NewUserParams) (models.User, error)
	EnsureUser(ctx context.Context, email string) (models.User, error)
	UserByID(ctx context.Context, id string) (models.User, error)
	SearchUsers(ctx context.Context, query string) []models.User
	UpdateProfile(ctx context.Context, id string, update store.ProfileUpdate) (models.User, error)
	SetOnline(ctx context.Context, id string, online bool) error
}

// SessionManager issues, validates, and retires authentication tokens.
type SessionManager interface {
	Issue(ctx context.Context, userID string) (models.SessionTokens, error)
	Refresh(ctx context.Context, refreshToken string) (models.SessionTokens, error)
	Validate(ctx context.Context, accessToken string) (string, error)
	Revoke(ctx context.Context, refreshToken string) (string, bool)
}

// FriendStore captures operations required by the friend handlers.
type FriendStore interface {
	SendFriendRequest(ctx context.Context, fromID, toID string) (models.FriendRequest, error)
	AcceptFriendRequest(ctx context.Context, requestID, actorID string) (models.FriendRequest, error)
	DeclineFriendRequest(ctx context.Context, requestID, actorID string) (models.FriendRequest, error)
	FriendRequestsFor(ctx context.Context, userID string) []models.FriendRequest
	FriendsOf(ctx context.Context, userID string) ([]models.User, error)
	MutualFriends(ctx context.Context, aID, bID string) (int, error)
}

// PostStore captures the feed operations.
type PostStore interface {
	CreatePost(ctx context.Context, userID string, params store.NewPostParams) (models.Post, error)
	Feed(ctx context.Context) []models.Post
	PostByID(ctx context.Context, id string) (models.Post, error)
	ToggleReaction(ctx context.Context, postID, userID string, rtype models.ReactionType) (models.Post, error)
	AddComment(ctx context.Context, postID, userID, text string) (models.Comment, error)
	EditPost(ctx context.Context, postID, userID, caption string) (models.Post, error)
	DeletePost(ctx context.Context, postID, userID string) error
	IncrementViewCount(ctx context.Context, postID string) (int, error)
}

// MessageStore captures the direct messaging operations.
type MessageStore interface {
	SendMessage(ctx context.Context, fromID string, params store.NewMessageParams) (models.ChatMessage, error)
	OpenThread(ctx context.Context, userID, withID string) ([]models.ChatMessage, error)
	Threads(ctx context.Context, userID string) []store.ThreadSummary
	UnreadCounts(ctx context.Context, userID string) map[string]int
}

// NotificationStore captures the notification inbox operations.
type NotificationStore interface {
	NotificationsFor(ctx context.Context, userID string) []models.Notification
	MarkNotificationsRead(ctx context.Context, userID string) (int, error)
}

// SongStore captures the music catalog operations.
type SongStore interface {
	UploadSong(ctx context.Context, ownerID string, upload store.SongUpload, duration time.Duration) (models.Song, error)
	Songs(ctx context.Context) []models.Song
	SongByID(ctx context.Context, id string) (models.Song, error)
	PlaySong(ctx context.Context, songID string) (models.Song, error)
	ToggleSongReaction(ctx context.Context, songID, userID string, rtype models.ReactionType) (models.Song, error)
	AddSongComment(ctx context.Context, songID, userID, text string) (models.Comment, error)
	TrendingSongs(ctx context.Context, limit int) []models.Song
}

// NewsStore captures the engagement operations recorded against news items.
type NewsStore interface {
	ToggleNewsReaction(ctx context.Context, newsID, userID string, rtype models.ReactionType) ([]models.Reaction, error)
	AddNewsComment(ctx context.Context, newsID, userID, text string) (models.Comment, error)
	IncrementNewsViews(ctx context.Context, newsID string) (int, error)
	NewsEngagementFor(ctx context.Context, newsID string) store.NewsEngagement
}

// NewsProvider resolves the news catalog for the news tab.
type NewsProvider interface {
	List(ctx context.Context) ([]news.Item, error)
}

// DurationProber measures the playable duration of an uploaded audio file.
type DurationProber interface {
	Duration(ctx context.Context, name string, r io.Reader) (time.Duration, error)
}

// PlaybackTransport is the shared player the music tab drives.
type PlaybackTransport interface {
	Play(song models.Song) music.NowPlaying
	Pause() (music.NowPlaying, bool)
	Resume() (music.NowPlaying, bool)
	Now() (music.NowPlaying, bool)
}
