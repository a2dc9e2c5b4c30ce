package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tubepost/internal/core"
)

// ErrGenerationFailed indicates the model's raw output could not be turned
// into a valid document. The raw text belongs in server-side logs only.
var ErrGenerationFailed = errors.New("failed to parse generated document")

// ExtractDocument pulls a GeneratedDocument out of free-form model output.
//
// Model responses are not guaranteed to be bare JSON: they may be wrapped in
// markdown code fences and surrounded by commentary. The tolerance here is
// deliberate and fixed: strip fence markers, then treat the span from the
// first '{' to the last '}' as the candidate object. Anything beyond that
// tolerance is ErrGenerationFailed, not something to repair.
func ExtractDocument(raw string) (core.GeneratedDocument, error) {
	sanitized := strings.ReplaceAll(raw, "```json", "")
	sanitized = strings.ReplaceAll(sanitized, "```", "")

	first := strings.Index(sanitized, "{")
	last := strings.LastIndex(sanitized, "}")
	if first == -1 || last == -1 || last < first {
		return core.GeneratedDocument{}, fmt.Errorf("%w: no JSON object in response", ErrGenerationFailed)
	}

	var doc core.GeneratedDocument
	if err := json.Unmarshal([]byte(sanitized[first:last+1]), &doc); err != nil {
		return core.GeneratedDocument{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if err := validateDocument(doc); err != nil {
		return core.GeneratedDocument{}, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	return doc, nil
}

func validateDocument(doc core.GeneratedDocument) error {
	if doc.Title == "" {
		return errors.New("document has no title")
	}
	if len(doc.Sections) == 0 {
		return errors.New("document has no sections")
	}
	for i, section := range doc.Sections {
		if section.Heading == "" {
			return fmt.Errorf("section %d has no heading", i)
		}
		if section.Content == "" {
			return fmt.Errorf("section %d has no content", i)
		}
	}
	return nil
}
