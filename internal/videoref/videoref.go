// Package videoref extracts canonical video identifiers from YouTube URLs.
package videoref

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"tubepost/internal/core"
)

// ErrInvalidVideoReference indicates the input could not be resolved to a
// video identifier. It is a caller-input error, never a server fault.
var ErrInvalidVideoReference = errors.New("invalid video reference")

// Parse resolves an arbitrary YouTube URL into a VideoReference.
// Supported shapes: youtu.be short links, watch?v= links, /shorts/ and
// /live/ paths. Parse performs no network I/O.
func Parse(rawURL string) (core.VideoReference, error) {
	id, err := extractVideoID(rawURL)
	if err != nil {
		return core.VideoReference{}, err
	}
	return core.VideoReference{RawURL: rawURL, VideoID: id}, nil
}

// extractVideoID pulls the identifier out of the URL, or reports
// ErrInvalidVideoReference when no recognizable identifier exists.
func extractVideoID(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidVideoReference, rawURL)
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")

	// Short links carry the ID as the first path segment.
	if host == "youtu.be" {
		if id := firstPathSegment(u.Path); id != "" {
			return id, nil
		}
		return "", fmt.Errorf("%w: %s", ErrInvalidVideoReference, rawURL)
	}

	if id := u.Query().Get("v"); id != "" {
		return id, nil
	}

	for _, marker := range []string{"/shorts/", "/live/"} {
		if idx := strings.Index(u.Path, marker); idx != -1 {
			rest := u.Path[idx+len(marker):]
			if id := firstPathSegment(rest); id != "" {
				return id, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %s", ErrInvalidVideoReference, rawURL)
}

func firstPathSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i != -1 {
		path = path[:i]
	}
	return path
}
