package acquire

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
)

// timedText mirrors YouTube's timedtext caption XML: an ordered list of
// <text> elements with start/duration attributes.
type timedText struct {
	XMLName xml.Name        `xml:"transcript"`
	Lines   []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}

// fetchTimedText downloads a caption track URL and returns its cleaned text
// fragments in original time order.
func fetchTimedText(ctx context.Context, client *http.Client, baseURL, userAgent string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timedtext returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return nil, fmt.Errorf("read timedtext: %w", err)
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	segments := make([]string, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		// Caption text arrives double-escaped (&amp;#39; inside the XML).
		text := strings.TrimSpace(html.UnescapeString(line.Text))
		if text != "" {
			segments = append(segments, text)
		}
	}

	return segments, nil
}
