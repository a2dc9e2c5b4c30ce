package acquire

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchTimedText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="utf-8" ?>
<transcript>
  <text start="0" dur="1.54">Hello world</text>
  <text start="1.54" dur="2.1">it&amp;#39;s a caption</text>
  <text start="3.64" dur="0.5">   </text>
  <text start="4.14" dur="1.0">with entities &amp;amp; more</text>
</transcript>`))
	}))
	defer server.Close()

	segments, err := fetchTimedText(context.Background(), server.Client(), server.URL, "test-agent")
	if err != nil {
		t.Fatalf("fetchTimedText failed: %v", err)
	}

	want := []string{"Hello world", "it's a caption", "with entities & more"}
	if len(segments) != len(want) {
		t.Fatalf("len(segments) = %d, want %d (%v)", len(segments), len(want), segments)
	}
	for i, s := range segments {
		if s != want[i] {
			t.Errorf("segments[%d] = %q, want %q", i, s, want[i])
		}
	}
}

func TestFetchTimedText_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	if _, err := fetchTimedText(context.Background(), server.Client(), server.URL, "test-agent"); err == nil {
		t.Error("Expected error for non-200 timedtext response")
	}
}

func TestFetchTimedText_NotXML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not xml at all"))
	}))
	defer server.Close()

	if _, err := fetchTimedText(context.Background(), server.Client(), server.URL, "test-agent"); err == nil {
		t.Error("Expected error for non-XML body")
	}
}

func TestWatchPageProvider_GetMetadata(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`<html><head>
<title>Cool Video - YouTube</title>
<meta name="description" content="A video about captions.">
</head><body></body></html>`))
	}))
	defer server.Close()

	provider := NewWatchPageProvider("Mozilla/5.0 (test)", 0)
	provider.httpClient = server.Client()

	title, description, err := provider.GetMetadata(context.Background(), Request{
		VideoID: "abc123",
		RawURL:  server.URL,
	})
	if err != nil {
		t.Fatalf("GetMetadata failed: %v", err)
	}

	if title != "Cool Video" {
		t.Errorf("Title = %q, want the YouTube suffix stripped", title)
	}
	if description != "A video about captions." {
		t.Errorf("Description = %q", description)
	}
	if !strings.HasPrefix(gotUA, "Mozilla/5.0") {
		t.Errorf("User-Agent = %q, want browser-like value", gotUA)
	}
}
