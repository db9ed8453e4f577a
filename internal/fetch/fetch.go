package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/arcanaland/konamimap/internal/card"
	"github.com/hashicorp/go-cleanhttp"
)

// DefaultTimeout bounds a whole download, body included
const DefaultTimeout = 30 * time.Second

// Client downloads the card database
type Client struct {
	HTTP      *http.Client
	UserAgent string
}

// NewClient creates a client with its own pooled transport and the given timeout.
// A non-positive timeout falls back to DefaultTimeout.
func NewClient(timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = timeout

	return &Client{
		HTTP:      httpClient,
		UserAgent: userAgent,
	}
}

// Fetch performs a single GET and returns the full response body.
// Every failure wraps card.ErrNetwork.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request for %s: %v", card.ErrNetwork, url, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", card.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s returned HTTP %d", card.ErrNetwork, url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", card.ErrNetwork, err)
	}

	return body, nil
}
