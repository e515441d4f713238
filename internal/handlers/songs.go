package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"path"

	"github.com/mzansigossip/backend/internal/logging"
	"github.com/mzansigossip/backend/internal/models"
	"github.com/mzansigossip/backend/internal/music"
	"github.com/mzansigossip/backend/internal/store"
)

// maxSongUploadBytes bounds the multipart body parsed in memory.
const maxSongUploadBytes = 64 << 20

// SongHandler implements the music tab endpoints. Responses join uploader
// and commenter display data by id at read time.
type SongHandler struct {
	Songs    SongStore
	Users    UserStore
	Sessions SessionManager
	Prober   DurationProber
	Player   PlaybackTransport

	// TrendingSize caps the trending chart length.
	TrendingSize int
}

// Collection dispatches /api/v1/songs: POST uploads, GET lists.
func (h SongHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.Upload(w, r)
	case http.MethodGet:
		h.List(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// Upload handles POST /api/v1/songs. The body is a multipart form with the
// audio file and metadata fields; the duration is probed from the uploaded
// bytes, never taken from the client.
func (h SongHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	userID, ok := authenticate(r, h.Sessions)
	if !ok {
		respondUnauthorized(ctx, w)
		return
	}

	if h.Prober == nil {
		logger.Error("duration prober unavailable")
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "upload service unavailable"})
		return
	}

	if err := r.ParseMultipartForm(maxSongUploadBytes); err != nil {
		logger.Warn("invalid upload form", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		logger.Warn("upload missing audio file", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "audio file is required"})
		return
	}
	defer file.Close()

	duration, err := h.Prober.Duration(ctx, header.Filename, file)
	if err != nil {
		if errors.Is(err, music.ErrUnsupportedAudio) || errors.Is(err, music.ErrUnreadableAudio) {
			logger.Warn("upload rejected", "file", header.Filename, "error", err)
			respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		logger.Error("duration probe failed", "file", header.Filename, "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to inspect audio file"})
		return
	}

	song, err := h.Songs.UploadSong(ctx, userID, store.SongUpload{
		Title:    r.FormValue("title"),
		Artist:   r.FormValue("artist"),
		Album:    r.FormValue("album"),
		Genre:    r.FormValue("genre"),
		CoverArt: r.FormValue("coverArt"),
		AudioURL: "/uploads/songs/" + path.Base(header.Filename),
	}, duration)
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusCreated, newUserResolver(h.Users).song(ctx, song))
}

// List handles GET /api/v1/songs, returning the catalog in upload order.
func (h SongHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	if _, ok := authenticate(r, h.Sessions); !ok {
		respondUnauthorized(ctx, w)
		return
	}

	res := newUserResolver(h.Users)
	respondJSON(ctx, w, http.StatusOK, map[string]any{"songs": res.songList(ctx, h.Songs.Songs(ctx))})
}

// Detail handles GET /api/v1/songs/{id}.
func (h SongHandler) Detail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	if _, ok := authenticate(r, h.Sessions); !ok {
		respondUnauthorized(ctx, w)
		return
	}

	song, err := h.Songs.SongByID(ctx, r.PathValue("id"))
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, newUserResolver(h.Users).song(ctx, song))
}

// Download handles GET /api/v1/songs/{id}/download. Audio bytes are not
// served here; the response carries the stored reference.
func (h SongHandler) Download(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	if _, ok := authenticate(r, h.Sessions); !ok {
		respondUnauthorized(ctx, w)
		return
	}

	song, err := h.Songs.SongByID(ctx, r.PathValue("id"))
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, map[string]string{
		"title":    song.Title,
		"artist":   song.Artist,
		"audioUrl": song.AudioURL,
	})
}

// Trending handles GET /api/v1/songs/trending.
func (h SongHandler) Trending(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	if _, ok := authenticate(r, h.Sessions); !ok {
		respondUnauthorized(ctx, w)
		return
	}

	res := newUserResolver(h.Users)
	respondJSON(ctx, w, http.StatusOK, map[string]any{
		"songs": res.songList(ctx, h.Songs.TrendingSongs(ctx, h.TrendingSize)),
	})
}

// Play handles POST /api/v1/songs/{id}/play. Every invocation counts one
// stream and loads the song into the shared transport.
func (h SongHandler) Play(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	if _, ok := authenticate(r, h.Sessions); !ok {
		respondUnauthorized(ctx, w)
		return
	}

	song, err := h.Songs.PlaySong(ctx, r.PathValue("id"))
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}

	if h.Player != nil {
		respondJSON(ctx, w, http.StatusOK, h.Player.Play(song))
		return
	}
	respondJSON(ctx, w, http.StatusOK, music.NowPlaying{Song: song, Playing: true})
}

// React handles POST /api/v1/songs/{id}/reactions.
func (h SongHandler) React(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	userID, ok := authenticate(r, h.Sessions)
	if !ok {
		respondUnauthorized(ctx, w)
		return
	}

	var req reactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid reaction payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	song, err := h.Songs.ToggleSongReaction(ctx, r.PathValue("id"), userID, models.ReactionType(req.Type))
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusOK, newUserResolver(h.Users).song(ctx, song))
}

// Comment handles POST /api/v1/songs/{id}/comments.
func (h SongHandler) Comment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	userID, ok := authenticate(r, h.Sessions)
	if !ok {
		respondUnauthorized(ctx, w)
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid comment payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	comment, err := h.Songs.AddSongComment(ctx, r.PathValue("id"), userID, req.Text)
	if err != nil {
		respondStoreError(ctx, w, err)
		return
	}
	respondJSON(ctx, w, http.StatusCreated, newUserResolver(h.Users).comment(ctx, comment))
}

// PlayerHandler exposes the shared playback transport.
type PlayerHandler struct {
	Player   PlaybackTransport
	Sessions SessionManager
}

// Now handles GET /api/v1/player, reporting the transport state.
func (h PlayerHandler) Now(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	if _, ok := authenticate(r, h.Sessions); !ok {
		respondUnauthorized(ctx, w)
		return
	}

	state, ok := h.Player.Now()
	if !ok {
		respondJSON(ctx, w, http.StatusOK, map[string]any{"playing": false})
		return
	}
	respondJSON(ctx, w, http.StatusOK, state)
}

// Pause handles POST /api/v1/player/pause.
func (h PlayerHandler) Pause(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	if _, ok := authenticate(r, h.Sessions); !ok {
		respondUnauthorized(ctx, w)
		return
	}

	state, ok := h.Player.Pause()
	if !ok {
		respondJSON(ctx, w, http.StatusConflict, map[string]string{"error": "nothing is loaded"})
		return
	}
	respondJSON(ctx, w, http.StatusOK, state)
}

// Resume handles POST /api/v1/player/resume.
func (h PlayerHandler) Resume(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	if _, ok := authenticate(r, h.Sessions); !ok {
		respondUnauthorized(ctx, w)
		return
	}

	state, ok := h.Player.Resume()
	if !ok {
		respondJSON(ctx, w, http.StatusConflict, map[string]string{"error": "nothing is loaded"})
		return
	}
	respondJSON(ctx, w, http.StatusOK, state)
}
