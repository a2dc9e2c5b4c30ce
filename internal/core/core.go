package core

import "time"

// VideoReference identifies a YouTube video extracted from a user-supplied URL.
type VideoReference struct {
	RawURL  string `json:"raw_url"`  // The URL exactly as the caller provided it
	VideoID string `json:"video_id"` // Canonical 11-character video identifier
}

// AcquiredContent is the material gathered for a video before generation.
// When TranscriptAvailable is true, TranscriptText is non-empty; otherwise at
// least one of VideoTitle/VideoDescription carries the degraded-mode payload.
type AcquiredContent struct {
	TranscriptText      string `json:"transcript_text"`
	VideoTitle          string `json:"video_title"`
	VideoDescription    string `json:"video_description"`
	TranscriptAvailable bool   `json:"transcript_available"`
}

// GenerationOptions are the user's style knobs, passed verbatim into the prompt.
type GenerationOptions struct {
	Style    string `json:"style"`
	Audience string `json:"audience"`
	Length   string `json:"length"`
}

// DocumentSection is one titled content block of a generated document.
// JSON tags match the shape the model is instructed to emit.
type DocumentSection struct {
	Heading     string `json:"heading"`
	Content     string `json:"content"`
	ImagePrompt string `json:"imagePrompt"`
}

// GeneratedDocument is the validated structured output of the generation step.
type GeneratedDocument struct {
	Title            string            `json:"title"`
	Subtitle         string            `json:"subtitle"`
	CoverImagePrompt string            `json:"coverImagePrompt"`
	Sections         []DocumentSection `json:"sections"`
	Conclusion       string            `json:"conclusion"`
	Tags             []string          `json:"tags"`
}

// Blog is the persisted parent record for a generated post.
// JSON tags use the camelCase names the web front-end consumes.
type Blog struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Subtitle   string        `json:"subtitle"`
	Conclusion string        `json:"conclusion"`
	YouTubeURL string        `json:"youtubeUrl"`
	CoverImage string        `json:"coverImage"`
	CreatedAt  time.Time     `json:"createdAt"`
	Sections   []BlogSection `json:"sections,omitempty"`
}

// BlogSection is one ordered section owned by a Blog. Order is the
// authoritative rendering sequence, contiguous from 0.
type BlogSection struct {
	ID       string `json:"id"`
	BlogID   string `json:"blogId"`
	Heading  string `json:"heading"`
	Content  string `json:"content"`
	Order    int    `json:"order"`
	ImageURL string `json:"imageUrl"`
}
