// Package enrich derives best-effort presentation metadata for links:
// thumbnail URLs, video and media identifiers. Nothing in this package
// may fail a save; every function degrades to an empty result.
package enrich

import "regexp"

var youtubePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/embed/([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/v/([^&\n?#]+)`),
}

// YouTubeVideoID extracts the video ID from a YouTube URL, or returns
// "" when the URL carries none.
func YouTubeVideoID(rawURL string) string {
	for _, p := range youtubePatterns {
		if m := p.FindStringSubmatch(rawURL); m != nil {
			return m[1]
		}
	}
	return ""
}

// YouTubeThumbnail builds the deterministic thumbnail URL for a
// YouTube link, or returns "" when no video ID can be extracted.
func YouTubeThumbnail(rawURL string) string {
	id := YouTubeVideoID(rawURL)
	if id == "" {
		return ""
	}
	return "https://img.youtube.com/vi/" + id + "/maxresdefault.jpg"
}
