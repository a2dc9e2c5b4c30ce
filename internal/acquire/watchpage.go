package acquire

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// WatchPageProvider is the last-resort metadata source: a direct fetch of
// the public watch page with a browser-like User-Agent, scraping the title
// element and description meta tag.
type WatchPageProvider struct {
	httpClient *http.Client
	userAgent  string
}

// NewWatchPageProvider creates the page-scrape metadata source.
func NewWatchPageProvider(userAgent string, timeout time.Duration) *WatchPageProvider {
	return &WatchPageProvider{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

func (p *WatchPageProvider) Name() string { return "watch-page" }

// GetMetadata fetches the original URL and scrapes <title> and the
// description meta tag.
func (p *WatchPageProvider) GetMetadata(ctx context.Context, req Request) (string, string, error) {
	pageURL := req.RawURL
	if pageURL == "" {
		pageURL = fmt.Sprintf("https://www.youtube.com/watch?v=%s", req.VideoID)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", "", err
	}
	httpReq.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", "", fmt.Errorf("fetch watch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("watch page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", "", fmt.Errorf("parse watch page HTML: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	title = strings.TrimSuffix(title, " - YouTube")

	description, _ := doc.Find(`meta[name="description"]`).Attr("content")

	return title, strings.TrimSpace(description), nil
}
