package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPProvider fetches the catalog from a remote feed URL serving a JSON
// array of items.
type HTTPProvider struct {
	url    string
	client *http.Client
}

// NewHTTPProvider targets the provided feed URL with the given timeout.
func NewHTTPProvider(url string, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPProvider{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// List fetches and decodes the remote catalog.
func (p *HTTPProvider) List(ctx context.Context) ([]Item, error) {
	if p == nil || p.url == "" {
		return nil, ErrProviderUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build news request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch news feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news feed returned status %d", resp.StatusCode)
	}

	var items []Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode news feed: %w", err)
	}
	return items, nil
}

// FallbackProvider tries the primary source and degrades to the fallback
// on any error, so a broken remote feed never takes the news tab down.
type FallbackProvider struct {
	Primary  Provider
	Fallback Provider
}

// List returns the primary catalog when it works, the fallback otherwise.
func (p FallbackProvider) List(ctx context.Context) ([]Item, error) {
	if p.Primary != nil {
		items, err := p.Primary.List(ctx)
		if err == nil {
			return items, nil
		}
	}
	if p.Fallback == nil {
		return nil, ErrProviderUnavailable
	}
	return p.Fallback.List(ctx)
}
