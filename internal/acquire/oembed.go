package acquire

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OEmbedProvider fetches the video title from YouTube's oEmbed endpoint,
// which needs no credential. oEmbed carries no description.
type OEmbedProvider struct {
	httpClient *http.Client
}

// NewOEmbedProvider creates the credential-free metadata source.
func NewOEmbedProvider(timeout time.Duration) *OEmbedProvider {
	return &OEmbedProvider{httpClient: &http.Client{Timeout: timeout}}
}

func (p *OEmbedProvider) Name() string { return "oembed" }

// GetMetadata fetches oEmbed JSON for the video and returns its title.
func (p *OEmbedProvider) GetMetadata(ctx context.Context, req Request) (string, string, error) {
	oembedURL := fmt.Sprintf(
		"https://www.youtube.com/oembed?url=https://www.youtube.com/watch?v=%s&format=json",
		req.VideoID,
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, oembedURL, nil)
	if err != nil {
		return "", "", err
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", "", fmt.Errorf("oEmbed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("oEmbed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 256<<10))
	if err != nil {
		return "", "", fmt.Errorf("read oEmbed response: %w", err)
	}

	var oembed struct {
		Title      string `json:"title"`
		AuthorName string `json:"author_name"`
	}
	if err := json.Unmarshal(body, &oembed); err != nil {
		return "", "", fmt.Errorf("decode oEmbed response: %w", err)
	}

	return oembed.Title, "", nil
}
