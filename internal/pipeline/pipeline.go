// Package pipeline orchestrates the generate-blog workflow: parse the video
// reference, acquire content, generate the document, resolve images, and
// persist the result.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tubepost/internal/core"
	"tubepost/internal/llm"
	"tubepost/internal/logger"
	"tubepost/internal/prompt"
	"tubepost/internal/videoref"
)

// ContentAcquirer produces AcquiredContent for a video reference.
type ContentAcquirer interface {
	Acquire(ctx context.Context, ref core.VideoReference) (core.AcquiredContent, error)
}

// TextGenerator invokes the generative model once, with separate
// instruction and content inputs.
type TextGenerator interface {
	GenerateText(ctx context.Context, instruction, content string) (string, error)
}

// ImageResolver derives image URLs for a generated document.
type ImageResolver interface {
	CoverURL(doc core.GeneratedDocument) string
	SectionURL(section core.DocumentSection) string
}

// BlogStore persists a blog and its sections atomically.
type BlogStore interface {
	CreateBlogWithSections(ctx context.Context, blog core.Blog) (string, error)
}

// Pipeline runs the full generate-blog flow. One run shares no mutable
// state with another; the hosting handler may run many concurrently.
type Pipeline struct {
	acquirer   ContentAcquirer
	generator  TextGenerator
	images     ImageResolver
	store      BlogStore
	genTimeout time.Duration
	log        *slog.Logger
}

// New creates a pipeline from its collaborators. genTimeout bounds the
// generation call; zero means no bound.
func New(acquirer ContentAcquirer, generator TextGenerator, images ImageResolver, store BlogStore, genTimeout time.Duration) *Pipeline {
	return &Pipeline{
		acquirer:   acquirer,
		generator:  generator,
		images:     images,
		store:      store,
		genTimeout: genTimeout,
		log:        logger.Get(),
	}
}

// Generate converts one YouTube URL into a persisted blog and returns the
// new record's identifier.
//
// Error taxonomy for callers (match with errors.Is):
//   - videoref.ErrInvalidVideoReference: bad caller input
//   - acquire.ErrAcquisitionFailed: no usable video information
//   - llm.ErrNotConfigured: missing generation credential
//   - llm.ErrGenerationFailed: model output unusable
//   - anything else: store or transport fault
func (p *Pipeline) Generate(ctx context.Context, youtubeURL string, opts core.GenerationOptions) (string, error) {
	ref, err := videoref.Parse(youtubeURL)
	if err != nil {
		return "", err
	}

	p.log.Info("Generating blog", "video_id", ref.VideoID)

	content, err := p.acquirer.Acquire(ctx, ref)
	if err != nil {
		return "", err
	}

	instruction, payload := prompt.Build(content, opts)

	genCtx := ctx
	if p.genTimeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, p.genTimeout)
		defer cancel()
	}

	raw, err := p.generator.GenerateText(genCtx, instruction, payload)
	if err != nil {
		return "", fmt.Errorf("generation call: %w", err)
	}

	doc, err := llm.ExtractDocument(raw)
	if err != nil {
		// Raw model output is diagnostic material for the logs, never for
		// the response body.
		p.log.Error("Failed to parse model response", "video_id", ref.VideoID,
			"error", err.Error(), "raw_response", raw)
		return "", err
	}

	blog := p.buildRecord(doc, ref.RawURL)

	id, err := p.store.CreateBlogWithSections(ctx, blog)
	if err != nil {
		return "", fmt.Errorf("persist blog: %w", err)
	}

	p.log.Info("Blog generated", "blog_id", id, "video_id", ref.VideoID,
		"sections", len(blog.Sections), "transcript", content.TranscriptAvailable)

	return id, nil
}

// buildRecord maps a validated document plus resolved image URLs into the
// record the store persists.
func (p *Pipeline) buildRecord(doc core.GeneratedDocument, youtubeURL string) core.Blog {
	blog := core.Blog{
		Title:      doc.Title,
		Subtitle:   doc.Subtitle,
		Conclusion: doc.Conclusion,
		YouTubeURL: youtubeURL,
		CoverImage: p.images.CoverURL(doc),
	}

	for _, section := range doc.Sections {
		blog.Sections = append(blog.Sections, core.BlogSection{
			Heading:  section.Heading,
			Content:  section.Content,
			ImageURL: p.images.SectionURL(section),
		})
	}

	return blog
}
