package handlers

import (
	"context"

	"github.com/mzansigossip/backend/internal/models"
	"github.com/mzansigossip/backend/internal/store"
)

// userRef is the author display data joined into a response. Stored entities
// carry user ids only; views resolve the display fields when serialized, so
// a profile edit shows up everywhere without touching old records.
type userRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	ProfilePic  string `json:"profilePic"`
	IsOnline    bool   `json:"isOnline"`
}

// userResolver memoises user lookups for the duration of one response.
type userResolver struct {
	users UserStore
	seen  map[string]userRef
}

func newUserResolver(users UserStore) *userResolver {
	return &userResolver{users: users, seen: make(map[string]userRef)}
}

// resolve joins a user id to display data. An unknown id comes back with the
// id alone so content from removed accounts still renders.
func (res *userResolver) resolve(ctx context.Context, id string) userRef {
	if ref, ok := res.seen[id]; ok {
		return ref
	}
	ref := userRef{ID: id}
	if user, err := res.users.UserByID(ctx, id); err == nil {
		ref.DisplayName = user.DisplayName
		ref.ProfilePic = user.ProfilePic
		ref.IsOnline = user.IsOnline
	}
	res.seen[id] = ref
	return ref
}

type commentView struct {
	models.Comment
	Author userRef `json:"author"`
}

func (res *userResolver) comment(ctx context.Context, c models.Comment) commentView {
	return commentView{Comment: c, Author: res.resolve(ctx, c.UserID)}
}

func (res *userResolver) commentList(ctx context.Context, cs []models.Comment) []commentView {
	out := make([]commentView, 0, len(cs))
	for _, c := range cs {
		out = append(out, res.comment(ctx, c))
	}
	return out
}

type postView struct {
	models.Post
	Author   userRef       `json:"author"`
	Comments []commentView `json:"comments"`
}

func (res *userResolver) post(ctx context.Context, p models.Post) postView {
	return postView{
		Post:     p,
		Author:   res.resolve(ctx, p.UserID),
		Comments: res.commentList(ctx, p.Comments),
	}
}

func (res *userResolver) postList(ctx context.Context, ps []models.Post) []postView {
	out := make([]postView, 0, len(ps))
	for _, p := range ps {
		out = append(out, res.post(ctx, p))
	}
	return out
}

type songView struct {
	models.Song
	Uploader userRef       `json:"uploader"`
	Comments []commentView `json:"comments"`
}

func (res *userResolver) song(ctx context.Context, s models.Song) songView {
	return songView{
		Song:     s,
		Uploader: res.resolve(ctx, s.UserID),
		Comments: res.commentList(ctx, s.Comments),
	}
}

func (res *userResolver) songList(ctx context.Context, ss []models.Song) []songView {
	out := make([]songView, 0, len(ss))
	for _, s := range ss {
		out = append(out, res.song(ctx, s))
	}
	return out
}

type messageView struct {
	models.ChatMessage
	From userRef `json:"from"`
}

func (res *userResolver) message(ctx context.Context, m models.ChatMessage) messageView {
	return messageView{ChatMessage: m, From: res.resolve(ctx, m.FromUserID)}
}

func (res *userResolver) messageList(ctx context.Context, ms []models.ChatMessage) []messageView {
	out := make([]messageView, 0, len(ms))
	for _, m := range ms {
		out = append(out, res.message(ctx, m))
	}
	return out
}

type threadView struct {
	store.ThreadSummary
	User        userRef     `json:"user"`
	LastMessage messageView `json:"lastMessage"`
}

func (res *userResolver) threadList(ctx context.Context, ts []store.ThreadSummary) []threadView {
	out := make([]threadView, 0, len(ts))
	for _, t := range ts {
		out = append(out, threadView{
			ThreadSummary: t,
			User:          res.resolve(ctx, t.UserID),
			LastMessage:   res.message(ctx, t.LastMessage),
		})
	}
	return out
}

type friendRequestView struct {
	models.FriendRequest
	From userRef `json:"from"`
}

func (res *userResolver) friendRequestList(ctx context.Context, rs []models.FriendRequest) []friendRequestView {
	out := make([]friendRequestView, 0, len(rs))
	for _, r := range rs {
		out = append(out, friendRequestView{FriendRequest: r, From: res.resolve(ctx, r.FromUserID)})
	}
	return out
}

type notificationView struct {
	models.Notification
	From userRef `json:"from"`
}

func (res *userResolver) notificationList(ctx context.Context, ns []models.Notification) []notificationView {
	out := make([]notificationView, 0, len(ns))
	for _, n := range ns {
		out = append(out, notificationView{Notification: n, From: res.resolve(ctx, n.FromUserID)})
	}
	return out
}
