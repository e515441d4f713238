package music

import (
	"sync"
	"time"

	"github.com/mzansigossip/backend/internal/models"
)

// NowPlaying describes the state of the global playback transport.
type NowPlaying struct {
	Song      models.Song `json:"song"`
	Playing   bool        `json:"playing"`
	StartedAt time.Time   `json:"startedAt"`
}

// Player is the single global playback transport: only one song may be
// loaded at a time, and playing a new song replaces the current one.
type Player struct {
	mu      sync.Mutex
	current *NowPlaying
	nowFunc func() time.Time
}

// NewPlayer constructs an idle transport.
func NewPlayer() *Player {
	return &Player{nowFunc: func() time.Time { return time.Now().UTC() }}
}

// Play loads the song into the transport and starts playback.
func (p *Player) Play(song models.Song) NowPlaying {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = &NowPlaying{Song: song, Playing: true, StartedAt: p.nowFunc()}
	return *p.current
}

// Pause halts playback, keeping the song loaded.
func (p *Player) Pause() (NowPlaying, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return NowPlaying{}, false
	}
	p.current.Playing = false
	return *p.current, true
}

// Resume restarts playback of the loaded song.
func (p *Player) Resume() (NowPlaying, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return NowPlaying{}, false
	}
	p.current.Playing = true
	return *p.current, true
}

// Now returns the transport state, if any song is loaded.
func (p *Player) Now() (NowPlaying, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return NowPlaying{}, false
	}
	return *p.current, true
}
