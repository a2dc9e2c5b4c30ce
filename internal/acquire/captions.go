package acquire

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const captionTracksMarker = `"captionTracks":`

// CaptionScraper is the secondary transcript source: it scrapes the caption
// track list out of the public watch page and fetches the track matching the
// requested language.
type CaptionScraper struct {
	httpClient *http.Client
	userAgent  string
}

// NewCaptionScraper creates the transcript-only fallback source.
func NewCaptionScraper(userAgent string, timeout time.Duration) *CaptionScraper {
	return &CaptionScraper{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

// GetTranscript fetches the watch page, extracts its caption track list, and
// returns the text fragments of the track for lang (or the first track when
// no language matches).
func (c *CaptionScraper) GetTranscript(ctx context.Context, videoID string, lang string) ([]string, error) {
	watchURL := fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch watch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read watch page: %w", err)
	}

	tracks, err := parseCaptionTracks(string(body))
	if err != nil {
		return nil, err
	}

	track := tracks[0]
	for _, t := range tracks {
		if t.LanguageCode == lang {
			track = t
			break
		}
	}

	return fetchTimedText(ctx, c.httpClient, track.BaseURL, c.userAgent)
}

// parseCaptionTracks extracts the caption track array embedded in the watch
// page's player config JSON.
func parseCaptionTracks(html string) ([]captionTrack, error) {
	_, after, found := strings.Cut(html, captionTracksMarker)
	if !found {
		return nil, errors.New("no caption tracks on watch page")
	}

	end := strings.IndexByte(after, ']')
	if end == -1 {
		return nil, errors.New("malformed caption track list")
	}

	var tracks []captionTrack
	if err := json.Unmarshal([]byte(after[:end+1]), &tracks); err != nil {
		return nil, fmt.Errorf("decode caption track list: %w", err)
	}
	if len(tracks) == 0 {
		return nil, errors.New("empty caption track list")
	}

	return tracks, nil
}
