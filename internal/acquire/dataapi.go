package acquire

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const dataAPIVideosURL = "https://www.googleapis.com/youtube/v3/videos"

// DataAPIProvider fetches title/description from the official YouTube Data
// API v3. It is only assembled into the cascade when a key is configured.
type DataAPIProvider struct {
	httpClient *http.Client
	apiKey     string
}

// NewDataAPIProvider creates the official-API metadata source.
func NewDataAPIProvider(apiKey string, timeout time.Duration) *DataAPIProvider {
	return &DataAPIProvider{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
	}
}

func (p *DataAPIProvider) Name() string { return "youtube-data-api" }

// GetMetadata queries videos?part=snippet for the video's title/description.
func (p *DataAPIProvider) GetMetadata(ctx context.Context, req Request) (string, string, error) {
	query := url.Values{}
	query.Set("part", "snippet")
	query.Set("id", req.VideoID)
	query.Set("key", p.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, dataAPIVideosURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", "", err
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", "", fmt.Errorf("data API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", "", fmt.Errorf("read data API response: %w", err)
	}

	var payload struct {
		Items []struct {
			Snippet struct {
				Title       string `json:"title"`
				Description string `json:"description"`
			} `json:"snippet"`
		} `json:"items"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", "", fmt.Errorf("decode data API response: %w", err)
	}

	if payload.Error != nil {
		return "", "", fmt.Errorf("data API error: %s", payload.Error.Message)
	}
	if len(payload.Items) == 0 {
		return "", "", errors.New("video not found via data API")
	}

	snippet := payload.Items[0].Snippet
	return snippet.Title, snippet.Description, nil
}
