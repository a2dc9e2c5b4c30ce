// Package prompt builds the generation request for the blog-writing model.
package prompt

import (
	"fmt"

	"tubepost/internal/core"
)

// Instruction is the system-level contract for the model. It pins down the
// output shape and the editorial constraints; the user content only carries
// the source material and the requested style knobs.
const Instruction = `You are an expert blog writer. You convert YouTube video material into a well-structured blog post.

Follow these rules strictly:
- Never restate or paraphrase the blog title inside section content or the conclusion.
- The first section must open with substantive content, not a continuation of the title.
- If the source material is not in English, translate it and write the entire blog post in fluent English.
- For the cover and for every section, also write a short, vivid image-generation prompt describing an illustrative scene.
- Respond with a single JSON object and nothing else: no markdown code fences, no commentary before or after.

The JSON object must have exactly this structure:
{
  "title": "Catchy Title",
  "subtitle": "Engaging Subtitle",
  "coverImagePrompt": "Image generation prompt for the cover",
  "sections": [
    { "heading": "Section Heading", "content": "Section content...", "imagePrompt": "Image generation prompt for this section" }
  ],
  "conclusion": "Concluding thoughts",
  "tags": ["tag1", "tag2"]
}`

// transcriptContentTemplate is used when a transcript was acquired.
const transcriptContentTemplate = `Write a blog post based on the following YouTube video transcript.

Video Title: %s
Video Description: %s

Transcript:
%s

Requirements:
- Writing style: %s
- Target audience: %s
- Desired length: %s`

// metadataContentTemplate is the degraded mode: no transcript exists and
// only title/description are available.
const metadataContentTemplate = `Write a blog post about a YouTube video. No transcript is available for this video; you only have its title and description. Create a compelling post from this limited information. You can infer reasonable details but don't hallucinate wild claims.

Video Title: %s
Video Description: %s

Requirements:
- Writing style: %s
- Target audience: %s
- Desired length: %s`

// Build turns acquired content and the user's options into the instruction
// and content strings for one generation call. Pure; no failure modes.
func Build(content core.AcquiredContent, opts core.GenerationOptions) (instruction, payload string) {
	if content.TranscriptAvailable {
		payload = fmt.Sprintf(transcriptContentTemplate,
			content.VideoTitle,
			content.VideoDescription,
			content.TranscriptText,
			opts.Style,
			opts.Audience,
			opts.Length,
		)
	} else {
		payload = fmt.Sprintf(metadataContentTemplate,
			content.VideoTitle,
			content.VideoDescription,
			opts.Style,
			opts.Audience,
			opts.Length,
		)
	}

	return Instruction, payload
}
