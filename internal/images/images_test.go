package images

import (
	"strings"
	"testing"

	"tubepost/internal/core"
)

func testResolver() *Resolver {
	return NewResolverWith("https://image.pollinations.ai/prompt/", 1600, 900, "cinematic-tech-blog-illustration", 200)
}

func TestURLForPrompt(t *testing.T) {
	r := testResolver()

	got := r.URLForPrompt("a robot   writing\na blog")
	want := "https://image.pollinations.ai/prompt/cinematic-tech-blog-illustration-a-robot-writing-a-blog?width=1600&height=900&nologo=true"
	if got != want {
		t.Errorf("URLForPrompt = %q, want %q", got, want)
	}
}

func TestURLForPrompt_Truncation(t *testing.T) {
	r := NewResolverWith("https://image.pollinations.ai/prompt/", 1600, 900, "", 10)

	got := r.URLForPrompt("a very long prompt that keeps going and going")
	if strings.Contains(got, "keeps") {
		t.Errorf("Prompt should be truncated: %q", got)
	}
	if !strings.HasSuffix(got, "?width=1600&height=900&nologo=true") {
		t.Errorf("Size params missing: %q", got)
	}
}

func TestURLForPrompt_EmptyPrompt(t *testing.T) {
	got := testResolver().URLForPrompt("  ")
	if !strings.Contains(got, "technology") {
		t.Errorf("Empty prompt should fall back to a stock keyword: %q", got)
	}
}

func TestURLForPrompt_PercentEncoding(t *testing.T) {
	got := testResolver().URLForPrompt("50% off & more")
	if strings.Contains(got, "% ") || strings.Contains(got, "&m") {
		t.Errorf("Prompt should be percent-encoded: %q", got)
	}
}

func TestCoverURL(t *testing.T) {
	r := testResolver()

	withPrompt := r.CoverURL(core.GeneratedDocument{CoverImagePrompt: "sunrise over circuits", Tags: []string{"ai"}})
	if !strings.Contains(withPrompt, "sunrise-over-circuits") {
		t.Errorf("Cover should use the model's prompt: %q", withPrompt)
	}

	withTag := r.CoverURL(core.GeneratedDocument{Tags: []string{"ai"}})
	if !strings.Contains(withTag, "-ai?") {
		t.Errorf("Cover should fall back to the first tag: %q", withTag)
	}

	bare := r.CoverURL(core.GeneratedDocument{})
	if !strings.Contains(bare, "technology") {
		t.Errorf("Cover should fall back to a stock keyword: %q", bare)
	}
}

func TestSectionURL(t *testing.T) {
	r := testResolver()

	withPrompt := r.SectionURL(core.DocumentSection{Heading: "Intro", ImagePrompt: "a neon city"})
	if !strings.Contains(withPrompt, "a-neon-city") {
		t.Errorf("Section should use the model's prompt: %q", withPrompt)
	}

	fromHeading := r.SectionURL(core.DocumentSection{Heading: "Getting Started With Go"})
	if !strings.Contains(fromHeading, "Getting+Started") && !strings.Contains(fromHeading, "Getting-Started") {
		t.Errorf("Section should derive keyword from heading: %q", fromHeading)
	}
	if strings.Contains(fromHeading, "With") {
		t.Errorf("Heading keyword should be the first two words only: %q", fromHeading)
	}
}

func TestFallbackKeyword(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Getting Started With Go", "Getting Started"},
		{"Intro", "Intro"},
		{"", "technology"},
	}
	for _, tt := range tests {
		if got := FallbackKeyword(tt.in); got != tt.want {
			t.Errorf("FallbackKeyword(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnsplashURL(t *testing.T) {
	got := UnsplashURL("retro computing", 1600, 900)
	want := "https://source.unsplash.com/1600x900/?retro+computing"
	if got != want {
		t.Errorf("UnsplashURL = %q, want %q", got, want)
	}
}
