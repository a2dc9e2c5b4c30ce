package videoref

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "short link",
			url:  "https://youtu.be/dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "short link with tracking query",
			url:  "https://youtu.be/9H1W3tBBdDo?si=FvNqd_GqcZV9j8G6",
			want: "9H1W3tBBdDo",
		},
		{
			name: "standard watch link",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "watch link with extra params",
			url:  "https://www.youtube.com/watch?t=42&v=dQw4w9WgXcQ&list=PL123",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "shorts link",
			url:  "https://www.youtube.com/shorts/abc123XYZ_-",
			want: "abc123XYZ_-",
		},
		{
			name: "shorts link with trailing path",
			url:  "https://www.youtube.com/shorts/abc123XYZ_-/extra",
			want: "abc123XYZ_-",
		},
		{
			name: "live link",
			url:  "https://www.youtube.com/live/jNQXAC9IVRw",
			want: "jNQXAC9IVRw",
		},
		{
			name: "mobile host",
			url:  "https://m.youtube.com/watch?v=jNQXAC9IVRw",
			want: "jNQXAC9IVRw",
		},
		{
			name: "v param on unrecognized host",
			url:  "https://example.com/watch?v=dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name:    "no identifier",
			url:     "https://www.youtube.com/feed/subscriptions",
			wantErr: true,
		},
		{
			name:    "bare short-link host",
			url:     "https://youtu.be/",
			wantErr: true,
		},
		{
			name:    "not a URL",
			url:     "://not a url",
			wantErr: true,
		},
		{
			name:    "empty input",
			url:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := Parse(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %q", tt.url, ref.VideoID)
				}
				if !errors.Is(err, ErrInvalidVideoReference) {
					t.Errorf("Parse(%q) error = %v, want ErrInvalidVideoReference", tt.url, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.url, err)
			}
			if ref.VideoID != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.url, ref.VideoID, tt.want)
			}
			if ref.RawURL != tt.url {
				t.Errorf("Parse(%q) RawURL = %q, want original input", tt.url, ref.RawURL)
			}
		})
	}
}
