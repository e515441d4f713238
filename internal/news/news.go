package news

import (
	"context"
	"errors"
)

// Item is one entry of the celebrity news tab.
type Item struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	VideoURL    string `json:"videoUrl"`
}

// Provider returns the news catalog.
type Provider interface {
	List(ctx context.Context) ([]Item, error)
}

// ErrProviderUnavailable indicates the news provider is not configured.
var ErrProviderUnavailable = errors.New("news provider unavailable")

// StaticProvider serves the built-in catalog. It is both the default source
// and the fallback when the remote feed misbehaves.
type StaticProvider struct{}

// List returns the built-in catalog.
func (StaticProvider) List(context.Context) ([]Item, error) {
	return []Item{
		{
			ID:          "news1",
			Title:       "Bonang Matheba's New Business Venture",
			Description: "The media personality announces her latest investment in tech startups",
			Thumbnail:   "/placeholder.svg?height=200&width=300",
			VideoURL:    "/placeholder.svg?height=400&width=600",
		},
		{
			ID:          "news2",
			Title:       "Cassper Nyovest Studio Session",
			Description: "Behind the scenes of his latest album recording",
			Thumbnail:   "/placeholder.svg?height=200&width=300",
			VideoURL:    "/placeholder.svg?height=400&width=600",
		},
	}, nil
}
