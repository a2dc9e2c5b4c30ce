// Package acquire gathers transcript or metadata for a YouTube video by
// cascading through independent, individually unreliable sources.
package acquire

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"tubepost/internal/config"
	"tubepost/internal/core"
	"tubepost/internal/logger"
)

// ErrAcquisitionFailed indicates every source was exhausted without
// producing a transcript or a title. Callers surface it as a client-facing
// "could not retrieve video information" condition.
var ErrAcquisitionFailed = errors.New("failed to fetch video information")

// Request identifies the video a source should look up.
type Request struct {
	VideoID string
	RawURL  string
}

// VideoInfo is the primary provider's view of a video: basic metadata plus
// timed-caption segments in original time order (empty when no captions).
type VideoInfo struct {
	Title       string
	Description string
	Segments    []string
}

// VideoInfoProvider is the primary source: structured metadata and captions
// from one query.
type VideoInfoProvider interface {
	GetVideoInfo(ctx context.Context, videoID string) (*VideoInfo, error)
}

// TranscriptProvider is the secondary transcript-only source, queried with a
// preferred caption language.
type TranscriptProvider interface {
	GetTranscript(ctx context.Context, videoID string, lang string) ([]string, error)
}

// MetadataProvider is one fallback source for title/description when the
// primary provider is unreachable.
type MetadataProvider interface {
	Name() string
	GetMetadata(ctx context.Context, req Request) (title, description string, err error)
}

// Pipeline runs the acquisition cascade. Sources are tried strictly in
// sequence; every individual failure is logged and swallowed, and only the
// cumulative nothing-worked outcome propagates.
type Pipeline struct {
	info     VideoInfoProvider
	captions TranscriptProvider
	metadata []MetadataProvider
	lang     string
	timeout  time.Duration
	log      *slog.Logger
}

// New assembles the default cascade from configuration: Innertube primary,
// caption-scrape secondary, then Data API (when a key is configured),
// oEmbed, and a direct watch-page scrape.
func New() *Pipeline {
	cfg := config.GetYouTube()
	timeout := config.YouTubeTimeout()

	metadata := []MetadataProvider{}
	if cfg.APIKey != "" {
		metadata = append(metadata, NewDataAPIProvider(cfg.APIKey, timeout))
	}
	metadata = append(metadata,
		NewOEmbedProvider(timeout),
		NewWatchPageProvider(cfg.UserAgent, timeout),
	)

	return &Pipeline{
		info:     NewInnertubeClient(cfg.UserAgent, timeout),
		captions: NewCaptionScraper(cfg.UserAgent, timeout),
		metadata: metadata,
		lang:     cfg.TranscriptLang,
		timeout:  timeout,
		log:      logger.Get(),
	}
}

// NewWithSources builds a pipeline from explicit sources. Used by tests and
// by callers that need to swap providers.
func NewWithSources(info VideoInfoProvider, captions TranscriptProvider, metadata []MetadataProvider, lang string, timeout time.Duration) *Pipeline {
	return &Pipeline{
		info:     info,
		captions: captions,
		metadata: metadata,
		lang:     lang,
		timeout:  timeout,
		log:      logger.Get(),
	}
}

// Acquire runs the cascade for one video and returns the gathered content.
//
// Order of attempts:
//  1. Primary provider for metadata + caption segments.
//  2. If the primary was reachable but yielded no segments, the secondary
//     transcript source.
//  3. If the primary failed outright, each metadata source in order, each
//     skipped once a title is known.
//
// The cascade succeeds as soon as a transcript or a non-empty title exists.
func (p *Pipeline) Acquire(ctx context.Context, ref core.VideoReference) (core.AcquiredContent, error) {
	content := core.AcquiredContent{}
	req := Request{VideoID: ref.VideoID, RawURL: ref.RawURL}

	info, err := p.getVideoInfo(ctx, ref.VideoID)
	if err == nil {
		content.VideoTitle = info.Title
		content.VideoDescription = info.Description

		if len(info.Segments) > 0 {
			content.TranscriptText = strings.Join(info.Segments, " ")
			content.TranscriptAvailable = true
			p.log.Info("Transcript fetched from primary source",
				"video_id", ref.VideoID, "length", len(content.TranscriptText))
			return content, nil
		}

		// Provider reachable but no captions: try the transcript-only source.
		p.log.Debug("Primary source returned no caption segments, trying transcript fallback",
			"video_id", ref.VideoID)
		if fragments, terr := p.getTranscript(ctx, ref.VideoID); terr != nil {
			p.log.Warn("Transcript fallback failed", "video_id", ref.VideoID, "error", terr.Error())
		} else if len(fragments) > 0 {
			content.TranscriptText = strings.Join(fragments, " ")
			content.TranscriptAvailable = true
			p.log.Info("Transcript fetched from fallback source",
				"video_id", ref.VideoID, "length", len(content.TranscriptText))
			return content, nil
		}
	} else {
		p.log.Warn("Primary video info source failed, falling back to metadata sources",
			"video_id", ref.VideoID, "error", err.Error())

		for _, source := range p.metadata {
			if content.VideoTitle != "" {
				break
			}
			title, description, merr := p.getMetadata(ctx, source, req)
			if merr != nil {
				p.log.Warn("Metadata source failed",
					"source", source.Name(), "video_id", ref.VideoID, "error", merr.Error())
				continue
			}
			if title != "" {
				content.VideoTitle = title
				p.log.Info("Metadata fetched", "source", source.Name(), "video_id", ref.VideoID)
			}
			if description != "" && content.VideoDescription == "" {
				content.VideoDescription = description
			}
		}
	}

	if content.TranscriptAvailable || content.VideoTitle != "" {
		return content, nil
	}

	return core.AcquiredContent{}, ErrAcquisitionFailed
}

func (p *Pipeline) getVideoInfo(ctx context.Context, videoID string) (*VideoInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.info.GetVideoInfo(ctx, videoID)
}

func (p *Pipeline) getTranscript(ctx context.Context, videoID string) ([]string, error) {
	if p.captions == nil {
		return nil, errors.New("no transcript source configured")
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.captions.GetTranscript(ctx, videoID, p.lang)
}

func (p *Pipeline) getMetadata(ctx context.Context, source MetadataProvider, req Request) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return source.GetMetadata(ctx, req)
}
