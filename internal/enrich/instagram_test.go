package enrich

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/savedsphere/sphered/internal/logger"
)

func TestInstagramMediaID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"post", "https://www.instagram.com/p/Cabc123/", "Cabc123"},
		{"reel", "https://www.instagram.com/reel/Cxyz789/", "Cxyz789"},
		{"tv", "https://www.instagram.com/tv/Ctv456/", "Ctv456"},
		{"post with query", "https://instagram.com/p/Cabc?igshid=1", "Cabc"},
		{"profile", "https://www.instagram.com/someuser/", ""},
		{"not instagram", "https://example.com/p/abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InstagramMediaID(tt.url); got != tt.want {
				t.Errorf("InstagramMediaID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestInstagramThumbnailFromOEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("url") == "" {
			t.Error("oembed request missing url parameter")
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"thumbnail_url": "https://cdn.example.com/thumb.jpg",
		})
	}))
	defer srv.Close()

	f := NewFetcher(time.Second, logger.New("error", false))
	f.oembedURL = srv.URL

	got := f.InstagramThumbnail(context.Background(), "https://www.instagram.com/p/Cabc123/")
	if got != "https://cdn.example.com/thumb.jpg" {
		t.Errorf("InstagramThumbnail() = %q, want oembed thumbnail", got)
	}
}

func TestInstagramThumbnailFallsBackToMediaURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(time.Second, logger.New("error", false))
	f.oembedURL = srv.URL

	got := f.InstagramThumbnail(context.Background(), "https://www.instagram.com/p/Cabc123/")
	want := "https://instagram.com/p/Cabc123/media/?size=l"
	if got != want {
		t.Errorf("InstagramThumbnail() = %q, want %q", got, want)
	}
}

func TestInstagramThumbnailNonMediaURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(time.Second, logger.New("error", false))
	f.oembedURL = srv.URL

	if got := f.InstagramThumbnail(context.Background(), "https://www.instagram.com/someuser/"); got != "" {
		t.Errorf("InstagramThumbnail(profile) = %q, want empty", got)
	}
}
