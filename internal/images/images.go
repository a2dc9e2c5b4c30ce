// Package images derives deterministic illustrative-image URLs from
// generated prompts and keywords. Pure URL construction, no network I/O.
package images

import (
	"fmt"
	"net/url"
	"strings"

	"tubepost/internal/config"
	"tubepost/internal/core"
)

// defaultKeyword is used when neither a prompt nor a usable keyword exists.
const defaultKeyword = "technology"

// Resolver builds image URLs against a fixed generation endpoint.
type Resolver struct {
	endpoint     string
	width        int
	height       int
	stylePrefix  string
	maxPromptLen int
}

// NewResolver creates a resolver from configuration.
func NewResolver() *Resolver {
	cfg := config.GetImages()
	return &Resolver{
		endpoint:     cfg.Endpoint,
		width:        cfg.Width,
		height:       cfg.Height,
		stylePrefix:  cfg.StylePrefix,
		maxPromptLen: cfg.MaxPromptLen,
	}
}

// NewResolverWith creates a resolver with explicit parameters. Used by tests.
func NewResolverWith(endpoint string, width, height int, stylePrefix string, maxPromptLen int) *Resolver {
	return &Resolver{
		endpoint:     endpoint,
		width:        width,
		height:       height,
		stylePrefix:  stylePrefix,
		maxPromptLen: maxPromptLen,
	}
}

// URLForPrompt turns a free-text prompt into a generation URL. The prompt is
// whitespace-normalized to hyphens, truncated to the configured bound, and
// percent-encoded. Always returns some URL.
func (r *Resolver) URLForPrompt(promptText string) string {
	cleaned := strings.Join(strings.Fields(promptText), "-")
	if cleaned == "" {
		cleaned = defaultKeyword
	}
	if r.maxPromptLen > 0 && len(cleaned) > r.maxPromptLen {
		cleaned = cleaned[:r.maxPromptLen]
		cleaned = strings.TrimSuffix(cleaned, "-")
	}
	if r.stylePrefix != "" {
		cleaned = r.stylePrefix + "-" + cleaned
	}

	return fmt.Sprintf("%s%s?width=%d&height=%d&nologo=true",
		r.endpoint, url.QueryEscape(cleaned), r.width, r.height)
}

// CoverURL resolves the cover image for a document: the model's cover
// prompt when present, otherwise the first tag, otherwise a stock keyword.
func (r *Resolver) CoverURL(doc core.GeneratedDocument) string {
	if doc.CoverImagePrompt != "" {
		return r.URLForPrompt(doc.CoverImagePrompt)
	}
	if len(doc.Tags) > 0 && doc.Tags[0] != "" {
		return r.URLForPrompt(doc.Tags[0])
	}
	return r.URLForPrompt(defaultKeyword)
}

// SectionURL resolves a section's image: the model's prompt when present,
// otherwise a keyword derived from the heading.
func (r *Resolver) SectionURL(section core.DocumentSection) string {
	if section.ImagePrompt != "" {
		return r.URLForPrompt(section.ImagePrompt)
	}
	return r.URLForPrompt(FallbackKeyword(section.Heading))
}

// FallbackKeyword derives a short keyword from a title or heading: its
// first two words.
func FallbackKeyword(text string) string {
	words := strings.Fields(text)
	if len(words) > 2 {
		words = words[:2]
	}
	if len(words) == 0 {
		return defaultKeyword
	}
	return strings.Join(words, " ")
}

// UnsplashURL is a deterministic keyword-based stock image URL, used by
// clients as a render-time fallback when the generated image 404s.
func UnsplashURL(keyword string, width, height int) string {
	if keyword == "" {
		keyword = defaultKeyword
	}
	return fmt.Sprintf("https://source.unsplash.com/%dx%d/?%s",
		width, height, url.QueryEscape(keyword))
}
