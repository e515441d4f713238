package models

import "time"

// User represents a member of the club. Friends holds the ids of accepted
// friends; the store keeps the relation symmetric.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	ProfilePic  string    `json:"profilePic"`
	Bio         string    `json:"bio,omitempty"`
	Interests   []string  `json:"interests,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	IsOnline    bool      `json:"isOnline"`
	Friends     []string  `json:"friends"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HasFriend reports whether the user's friends set contains id.
func (u User) HasFriend(id string) bool {
	for _, f := range u.Friends {
		if f == id {
			return true
		}
	}
	return false
}

// Friend request lifecycle. Transitions run forward only: a request is never
// reopened once answered.
const (
	FriendRequestPending  = "pending"
	FriendRequestAccepted = "accepted"
	FriendRequestDeclined = "declined"
)

// FriendRequest represents the invitation workflow between two users.
// MutualFriends is a snapshot taken when the request was sent, not a live
// count.
type FriendRequest struct {
	ID            string     `json:"id"`
	FromUserID    string     `json:"fromUserId"`
	ToUserID      string     `json:"toUserId"`
	Status        string     `json:"status"`
	MutualFriends int        `json:"mutualFriends"`
	CreatedAt     time.Time  `json:"createdAt"`
	RespondedAt   *time.Time `json:"respondedAt,omitempty"`
}

// ReactionType identifies one entry of the fixed reaction palette.
type ReactionType string

const (
	ReactionLike  ReactionType = "like"
	ReactionLove  ReactionType = "love"
	ReactionLaugh ReactionType = "laugh"
	ReactionWow   ReactionType = "wow"
	ReactionSad   ReactionType = "sad"
	ReactionAngry ReactionType = "angry"
)

// Reaction is a single user's reaction on a post, song, or news item.
// Reaction sets are keyed by user id, so at most one reaction per user per
// target exists by construction.
type Reaction struct {
	Type      ReactionType `json:"type"`
	UserID    string       `json:"userId"`
	Emoji     string       `json:"emoji"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Comment is an append-only comment on a post, song, or news item. Display
// data for the author is resolved from the user id at read time.
type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Media attachment kinds for posts.
const (
	MediaImage = "image"
	MediaVideo = "video"
	MediaSong  = "song"
	MediaNone  = ""
)

// Post is a feed entry owned by a user. Reactions are keyed by user id.
// SongID links the companion post created when a song is uploaded.
type Post struct {
	ID        string              `json:"id"`
	UserID    string              `json:"userId"`
	Caption   string              `json:"caption"`
	MediaURL  string              `json:"mediaURL"`
	MediaType string              `json:"mediaType"`
	SongID    string              `json:"songId,omitempty"`
	Reactions map[string]Reaction `json:"reactions"`
	Comments  []Comment           `json:"comments"`
	ViewCount int                 `json:"viewCount"`
	CreatedAt time.Time           `json:"createdAt"`
}

// Chat message payload kinds.
const (
	MessageText  = "text"
	MessageVoice = "voice"
	MessageImage = "image"
	MessageVideo = "video"
	MessageSong  = "song"
)

// ChatMessage is one direct message between two users. Read flips to true
// when the recipient opens the thread.
type ChatMessage struct {
	ID          string    `json:"id"`
	FromUserID  string    `json:"fromUserId"`
	ToUserID    string    `json:"toUserId"`
	Message     string    `json:"message"`
	MediaURL    string    `json:"mediaURL,omitempty"`
	MessageType string    `json:"messageType"`
	CreatedAt   time.Time `json:"createdAt"`
	Read        bool      `json:"read"`
}

// Notification kinds, created as side effects of other mutations.
const (
	NotificationLike          = "like"
	NotificationComment       = "comment"
	NotificationFriendRequest = "friend_request"
	NotificationFriendAccept  = "friend_accept"
	NotificationSongLike      = "song_like"
	NotificationSongComment   = "song_comment"
)

// Notification is an append-only event addressed to a user.
type Notification struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	FromUserID string    `json:"fromUserId"`
	ToUserID   string    `json:"toUserId"`
	PostID     string    `json:"postId,omitempty"`
	SongID     string    `json:"songId,omitempty"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
	Read       bool      `json:"read"`
}

// Song is an uploaded track. Duration is whole seconds. StreamCount
// increments once per play invocation, not per completed listen.
type Song struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Artist      string              `json:"artist"`
	Album       string              `json:"album"`
	Genre       string              `json:"genre"`
	CoverArt    string              `json:"coverArt"`
	AudioURL    string              `json:"audioUrl"`
	Duration    int                 `json:"duration"`
	UserID      string              `json:"userId"`
	StreamCount int                 `json:"streamCount"`
	Reactions   map[string]Reaction `json:"reactions"`
	Comments    []Comment           `json:"comments"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// SessionTokens groups the bearer credentials issued on login and signup.
type SessionTokens struct {
	AccessToken      string    `json:"accessToken"`
	AccessExpiresAt  time.Time `json:"accessExpiresAt"`
	RefreshToken     string    `json:"refreshToken"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}
