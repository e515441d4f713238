package music

import "github.com/mzansigossip/backend/internal/models"

// TrendingScore is the weighted popularity used to rank the trending view:
// one point per stream plus two per reaction.
func TrendingScore(song models.Song) int {
	return song.StreamCount + 2*len(song.Reactions)
}
