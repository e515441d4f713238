package handlers

import "net/http"

// RegisterRoutes wires HTTP handlers into the provided ServeMux.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies) {
	health := HealthHandler{}
	auth := AuthHandler{Users: deps.Users, Sessions: deps.Sessions, Limiter: deps.AuthLimiter}
	users := UserHandler{Users: deps.Users, Sessions: deps.Sessions}
	friends := FriendHandler{Friends: deps.Friends, Users: deps.Users, Sessions: deps.Sessions}
	posts := PostHandler{Posts: deps.Posts, Users: deps.Users, Sessions: deps.Sessions, ShareBaseURL: deps.ShareBaseURL}
	messages := MessageHandler{Messages: deps.Messages, Users: deps.Users, Sessions: deps.Sessions}
	notifications := NotificationHandler{Notifications: deps.Notifications, Users: deps.Users, Sessions: deps.Sessions}
	songs := SongHandler{
		Songs:        deps.Songs,
		Users:        deps.Users,
		Sessions:     deps.Sessions,
		Prober:       deps.Prober,
		Player:       deps.Player,
		TrendingSize: deps.TrendingSize,
	}
	player := PlayerHandler{Player: deps.Player, Sessions: deps.Sessions}
	newsTab := NewsHandler{Provider: deps.NewsProvider, News: deps.News, Users: deps.Users, Sessions: deps.Sessions}

	mux.HandleFunc("/healthz", health.Handle)

	mux.HandleFunc("/api/v1/auth/login", auth.Login)
	mux.HandleFunc("/api/v1/auth/signup", auth.SignUp)
	mux.HandleFunc("/api/v1/auth/refresh", auth.Refresh)
	mux.HandleFunc("/api/v1/auth/logout", auth.Logout)

	mux.HandleFunc("/api/v1/profile", users.Profile)
	mux.HandleFunc("/api/v1/users/search", users.Search)
	mux.HandleFunc("/api/v1/users/{id}", users.Detail)

	mux.HandleFunc("/api/v1/friends", friends.List)
	mux.HandleFunc("/api/v1/friends/requests", friends.Requests)
	mux.HandleFunc("/api/v1/friends/invite", friends.Invite)
	mux.HandleFunc("/api/v1/friends/respond", friends.Respond)
	mux.HandleFunc("/api/v1/friends/mutual/{id}", friends.Mutual)

	mux.HandleFunc("/api/v1/posts", posts.Create)
	mux.HandleFunc("/api/v1/posts/feed", posts.Feed)
	mux.HandleFunc("/api/v1/posts/{id}", posts.Detail)
	mux.HandleFunc("/api/v1/posts/{id}/reactions", posts.React)
	mux.HandleFunc("/api/v1/posts/{id}/comments", posts.Comment)
	mux.HandleFunc("/api/v1/posts/{id}/views", posts.View)
	mux.HandleFunc("/api/v1/posts/{id}/share", posts.Share)

	mux.HandleFunc("/api/v1/messages", messages.Send)
	mux.HandleFunc("/api/v1/messages/unread", messages.Unread)
	mux.HandleFunc("/api/v1/messages/threads", messages.Threads)
	mux.HandleFunc("/api/v1/messages/threads/{id}", messages.Thread)

	mux.HandleFunc("/api/v1/notifications", notifications.List)
	mux.HandleFunc("/api/v1/notifications/read", notifications.MarkRead)

	mux.HandleFunc("/api/v1/songs", songs.Collection)
	mux.HandleFunc("/api/v1/songs/trending", songs.Trending)
	mux.HandleFunc("/api/v1/songs/{id}", songs.Detail)
	mux.HandleFunc("/api/v1/songs/{id}/play", songs.Play)
	mux.HandleFunc("/api/v1/songs/{id}/download", songs.Download)
	mux.HandleFunc("/api/v1/songs/{id}/reactions", songs.React)
	mux.HandleFunc("/api/v1/songs/{id}/comments", songs.Comment)

	mux.HandleFunc("/api/v1/player", player.Now)
	mux.HandleFunc("/api/v1/player/pause", player.Pause)
	mux.HandleFunc("/api/v1/player/resume", player.Resume)

	mux.HandleFunc("/api/v1/news", newsTab.List)
	mux.HandleFunc("/api/v1/news/{id}/reactions", newsTab.React)
	mux.HandleFunc("/api/v1/news/{id}/comments", newsTab.Comment)
	mux.HandleFunc("/api/v1/news/{id}/views", newsTab.View)
}

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Users         UserStore
	Sessions      SessionManager
	Friends       FriendStore
	Posts         PostStore
	Messages      MessageStore
	Notifications NotificationStore
	Songs         SongStore
	News          NewsStore
	NewsProvider  NewsProvider
	Prober        DurationProber
	Player        PlaybackTransport
	AuthLimiter   RateLimiter

	ShareBaseURL string
	TrendingSize int
}
