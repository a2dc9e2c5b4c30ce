package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tubepost/internal/acquire"
	"tubepost/internal/core"
	"tubepost/internal/images"
	"tubepost/internal/llm"
	"tubepost/internal/videoref"
)

type fakeAcquirer struct {
	content core.AcquiredContent
	err     error
	calls   int
}

func (f *fakeAcquirer) Acquire(ctx context.Context, ref core.VideoReference) (core.AcquiredContent, error) {
	f.calls++
	return f.content, f.err
}

type fakeGenerator struct {
	response       string
	err            error
	calls          int
	gotInstruction string
	gotContent     string
}

func (f *fakeGenerator) GenerateText(ctx context.Context, instruction, content string) (string, error) {
	f.calls++
	f.gotInstruction = instruction
	f.gotContent = content
	return f.response, f.err
}

type fakeStore struct {
	saved core.Blog
	err   error
	calls int
}

func (f *fakeStore) CreateBlogWithSections(ctx context.Context, blog core.Blog) (string, error) {
	f.calls++
	f.saved = blog
	if f.err != nil {
		return "", f.err
	}
	return "blog-123", nil
}

func testResolver() *images.Resolver {
	return images.NewResolverWith("https://image.pollinations.ai/prompt/", 1600, 900, "cinematic-tech-blog-illustration", 200)
}

const modelResponse = "```json\n" + `{
  "title": "Understanding Goroutines",
  "subtitle": "Concurrency without the ceremony",
  "coverImagePrompt": "abstract network of glowing threads",
  "sections": [
    {"heading": "What Is a Goroutine", "content": "A goroutine is a lightweight thread.", "imagePrompt": "tiny workers on a conveyor belt"},
    {"heading": "Channels", "content": "Channels move values between goroutines.", "imagePrompt": ""}
  ],
  "conclusion": "Start small and measure.",
  "tags": ["go", "concurrency"]
}` + "\n```"

func newTestPipeline(acq *fakeAcquirer, gen *fakeGenerator, st *fakeStore) *Pipeline {
	return New(acq, gen, testResolver(), st, 0)
}

func TestGenerate_FullFlow(t *testing.T) {
	acq := &fakeAcquirer{content: core.AcquiredContent{
		TranscriptText:      "hello world transcript",
		VideoTitle:          "Goroutines Explained",
		VideoDescription:    "A talk about goroutines",
		TranscriptAvailable: true,
	}}
	gen := &fakeGenerator{response: modelResponse}
	st := &fakeStore{}

	id, err := newTestPipeline(acq, gen, st).Generate(context.Background(),
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		core.GenerationOptions{Style: "casual", Audience: "developers", Length: "medium"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if id != "blog-123" {
		t.Errorf("Generate() id = %q, want %q", id, "blog-123")
	}

	if !strings.Contains(gen.gotContent, "hello world transcript") {
		t.Error("generation content missing transcript text")
	}
	if !strings.Contains(gen.gotContent, "casual") || !strings.Contains(gen.gotContent, "developers") {
		t.Error("generation content missing requested options")
	}
	if gen.gotInstruction == "" {
		t.Error("generation call had no system instruction")
	}

	blog := st.saved
	if blog.Title != "Understanding Goroutines" {
		t.Errorf("saved title = %q", blog.Title)
	}
	if blog.YouTubeURL != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("saved youtube url = %q", blog.YouTubeURL)
	}
	if len(blog.Sections) != 2 {
		t.Fatalf("saved %d sections, want 2", len(blog.Sections))
	}
	if blog.CoverImage == "" {
		t.Error("cover image URL not resolved")
	}
	for i, s := range blog.Sections {
		if s.ImageURL == "" {
			t.Errorf("section %d image URL not resolved", i)
		}
	}
	// The second section's model prompt was empty, so its URL must come
	// from the heading keyword instead.
	if !strings.Contains(blog.Sections[1].ImageURL, "Channels") {
		t.Errorf("section 1 image URL = %q, want heading-derived keyword", blog.Sections[1].ImageURL)
	}
}

func TestGenerate_InvalidURL(t *testing.T) {
	acq := &fakeAcquirer{}
	gen := &fakeGenerator{}
	st := &fakeStore{}

	_, err := newTestPipeline(acq, gen, st).Generate(context.Background(),
		"https://www.youtube.com/feed/subscriptions", core.GenerationOptions{})
	if !errors.Is(err, videoref.ErrInvalidVideoReference) {
		t.Fatalf("Generate() error = %v, want ErrInvalidVideoReference", err)
	}
	if acq.calls != 0 || gen.calls != 0 || st.calls != 0 {
		t.Error("downstream stages ran for an invalid reference")
	}
}

func TestGenerate_AcquisitionFailed(t *testing.T) {
	acq := &fakeAcquirer{err: acquire.ErrAcquisitionFailed}
	gen := &fakeGenerator{}
	st := &fakeStore{}

	_, err := newTestPipeline(acq, gen, st).Generate(context.Background(),
		"https://youtu.be/dQw4w9WgXcQ", core.GenerationOptions{})
	if !errors.Is(err, acquire.ErrAcquisitionFailed) {
		t.Fatalf("Generate() error = %v, want ErrAcquisitionFailed", err)
	}
	if gen.calls != 0 {
		t.Error("generation ran after acquisition failed")
	}
	if st.calls != 0 {
		t.Error("persistence ran after acquisition failed")
	}
}

func TestGenerate_UnparseableModelOutput(t *testing.T) {
	acq := &fakeAcquirer{content: core.AcquiredContent{VideoTitle: "Some Video"}}
	gen := &fakeGenerator{response: "I'm sorry, I can't help with that."}
	st := &fakeStore{}

	_, err := newTestPipeline(acq, gen, st).Generate(context.Background(),
		"https://youtu.be/dQw4w9WgXcQ", core.GenerationOptions{})
	if !errors.Is(err, llm.ErrGenerationFailed) {
		t.Fatalf("Generate() error = %v, want ErrGenerationFailed", err)
	}
	if st.calls != 0 {
		t.Error("persistence ran for an unusable model response")
	}
}

func TestGenerate_GeneratorError(t *testing.T) {
	acq := &fakeAcquirer{content: core.AcquiredContent{VideoTitle: "Some Video"}}
	genErr := errors.New("model unavailable")
	gen := &fakeGenerator{err: genErr}
	st := &fakeStore{}

	_, err := newTestPipeline(acq, gen, st).Generate(context.Background(),
		"https://youtu.be/dQw4w9WgXcQ", core.GenerationOptions{})
	if !errors.Is(err, genErr) {
		t.Fatalf("Generate() error = %v, want wrapped generator error", err)
	}
	if st.calls != 0 {
		t.Error("persistence ran after a failed generation call")
	}
}

func TestGenerate_StoreError(t *testing.T) {
	acq := &fakeAcquirer{content: core.AcquiredContent{VideoTitle: "Some Video"}}
	gen := &fakeGenerator{response: modelResponse}
	stErr := errors.New("disk full")
	st := &fakeStore{err: stErr}

	_, err := newTestPipeline(acq, gen, st).Generate(context.Background(),
		"https://youtu.be/dQw4w9WgXcQ", core.GenerationOptions{})
	if !errors.Is(err, stErr) {
		t.Fatalf("Generate() error = %v, want wrapped store error", err)
	}
}

func TestGenerate_DegradedModeContent(t *testing.T) {
	acq := &fakeAcquirer{content: core.AcquiredContent{
		VideoTitle:       "Metadata Only Video",
		VideoDescription: "Only the description survived",
	}}
	gen := &fakeGenerator{response: modelResponse}
	st := &fakeStore{}

	if _, err := newTestPipeline(acq, gen, st).Generate(context.Background(),
		"https://youtu.be/dQw4w9WgXcQ", core.GenerationOptions{Style: "formal"}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(gen.gotContent, "No transcript is available") {
		t.Error("degraded-mode content should state that no transcript exists")
	}
	if !strings.Contains(gen.gotContent, "Metadata Only Video") {
		t.Error("degraded-mode content missing video title")
	}
}
