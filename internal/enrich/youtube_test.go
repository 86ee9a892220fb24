package enrich

import "testing"

func TestYouTubeVideoID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url with params", "https://www.youtube.com/watch?v=abc123&t=42s", "abc123"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short link with query", "https://youtu.be/abc123?si=xyz", "abc123"},
		{"embed", "https://www.youtube.com/embed/abc123", "abc123"},
		{"legacy v path", "https://www.youtube.com/v/abc123", "abc123"},
		{"channel page", "https://www.youtube.com/@somechannel", ""},
		{"not youtube", "https://example.com/watch?v=abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := YouTubeVideoID(tt.url); got != tt.want {
				t.Errorf("YouTubeVideoID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestYouTubeThumbnail(t *testing.T) {
	got := YouTubeThumbnail("https://youtu.be/abc123")
	want := "https://img.youtube.com/vi/abc123/maxresdefault.jpg"
	if got != want {
		t.Errorf("YouTubeThumbnail() = %q, want %q", got, want)
	}

	if got := YouTubeThumbnail("https://example.com"); got != "" {
		t.Errorf("YouTubeThumbnail(non-video) = %q, want empty", got)
	}
}
