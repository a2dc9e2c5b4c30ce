package acquire

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	innertubePlayerURL = "https://www.youtube.com/youtubei/v1/player?prettyPrint=false"

	// The ANDROID client context returns caption tracks without the
	// PoToken requirement the WEB client carries.
	androidClientVersion = "19.09.37"
)

// InnertubeClient is the primary video-info source: YouTube's internal
// player API, queried the way the mobile client does.
type InnertubeClient struct {
	httpClient *http.Client
	userAgent  string
}

// NewInnertubeClient creates the primary provider.
func NewInnertubeClient(userAgent string, timeout time.Duration) *InnertubeClient {
	return &InnertubeClient{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

type innertubeRequest struct {
	VideoID string           `json:"videoId"`
	Context innertubeContext `json:"context"`
}

type innertubeContext struct {
	Client innertubeClientInfo `json:"client"`
}

type innertubeClientInfo struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSDKVersion int    `json:"androidSdkVersion"`
	Hl                string `json:"hl"`
	Gl                string `json:"gl"`
}

type innertubeResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	VideoDetails struct {
		Title            string `json:"title"`
		ShortDescription string `json:"shortDescription"`
	} `json:"videoDetails"`
	Captions struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

// captionTrack describes one caption track exposed by the player response or
// the watch-page scrape. Kind "asr" marks auto-generated captions.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

// GetVideoInfo queries the player API for title, description, and caption
// segments. A failure to fetch captions is not fatal: the info is returned
// with no segments so the cascade can try the transcript-only source.
func (c *InnertubeClient) GetVideoInfo(ctx context.Context, videoID string) (*VideoInfo, error) {
	reqBody, err := json.Marshal(innertubeRequest{
		VideoID: videoID,
		Context: innertubeContext{
			Client: innertubeClientInfo{
				ClientName:        "ANDROID",
				ClientVersion:     androidClientVersion,
				AndroidSDKVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal player request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, innertubePlayerURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("player request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("player API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read player response: %w", err)
	}

	var player innertubeResponse
	if err := json.Unmarshal(body, &player); err != nil {
		return nil, fmt.Errorf("decode player response: %w", err)
	}

	if s := player.PlayabilityStatus.Status; s != "" && s != "OK" {
		return nil, fmt.Errorf("video not playable: %s (%s)", s, player.PlayabilityStatus.Reason)
	}

	info := &VideoInfo{
		Title:       player.VideoDetails.Title,
		Description: player.VideoDetails.ShortDescription,
	}

	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return info, nil
	}

	track := pickCaptionTrack(tracks, "en")
	segments, err := fetchTimedText(ctx, c.httpClient, track.BaseURL, c.userAgent)
	if err != nil {
		// Caption fetch failure leaves the info usable for degraded mode.
		return info, nil
	}
	info.Segments = segments

	return info, nil
}

// pickCaptionTrack selects a track, preferring a manual track in the given
// language, then an auto-generated one, then any English track.
func pickCaptionTrack(tracks []captionTrack, lang string) captionTrack {
	for _, t := range tracks {
		if t.LanguageCode == lang && t.Kind != "asr" {
			return t
		}
	}
	for _, t := range tracks {
		if t.LanguageCode == lang {
			return t
		}
	}
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t
		}
	}
	return tracks[0]
}
