package domain

import (
	"net/url"
	"strings"
)

// Platform is the closed category label derived from a link's domain.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformInstagram Platform = "instagram"
	PlatformTwitter   Platform = "twitter"
	PlatformFacebook  Platform = "facebook"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTikTok    Platform = "tiktok"
	PlatformPinterest Platform = "pinterest"
	PlatformReddit    Platform = "reddit"
	PlatformGitHub    Platform = "github"
	PlatformMedium    Platform = "medium"
	PlatformThreads   Platform = "threads"
	PlatformBlog      Platform = "blog"
	PlatformOther     Platform = "other"
)

// MainPlatforms are the five platforms that get a system folder on
// first run. Links from these platforms are auto-filed when the user
// picks no folder.
var MainPlatforms = []Platform{
	PlatformYouTube,
	PlatformInstagram,
	PlatformLinkedIn,
	PlatformGitHub,
	PlatformReddit,
}

// IsMainPlatform reports whether p is one of the five main platforms.
func IsMainPlatform(p Platform) bool {
	for _, m := range MainPlatforms {
		if m == p {
			return true
		}
	}
	return false
}

// PlatformMeta carries display metadata for a platform.
type PlatformMeta struct {
	Name  string
	Color string
	Icon  string
}

// PlatformMetadata maps every platform to its display metadata.
var PlatformMetadata = map[Platform]PlatformMeta{
	PlatformYouTube:   {Name: "YouTube", Color: "#FF0000", Icon: "Play"},
	PlatformInstagram: {Name: "Instagram", Color: "#E4405F", Icon: "Camera"},
	PlatformTwitter:   {Name: "Twitter", Color: "#1DA1F2", Icon: "Twitter"},
	PlatformFacebook:  {Name: "Facebook", Color: "#1877F2", Icon: "Facebook"},
	PlatformLinkedIn:  {Name: "LinkedIn", Color: "#0077B5", Icon: "Linkedin"},
	PlatformTikTok:    {Name: "TikTok", Color: "#000000", Icon: "Music"},
	PlatformPinterest: {Name: "Pinterest", Color: "#E60023", Icon: "Pin"},
	PlatformReddit:    {Name: "Reddit", Color: "#FF4500", Icon: "MessageSquare"},
	PlatformGitHub:    {Name: "GitHub", Color: "#181717", Icon: "Github"},
	PlatformMedium:    {Name: "Medium", Color: "#000000", Icon: "BookOpen"},
	PlatformThreads:   {Name: "Threads", Color: "#000000", Icon: "MessageCircle"},
	PlatformBlog:      {Name: "Blog", Color: "#6B7280", Icon: "FileText"},
	PlatformOther:     {Name: "Other", Color: "#6B7280", Icon: "Link"},
}

// platformDomains pairs a platform with the domains it owns. The table
// order matters: the first matching entry wins, and exact domain
// matches are always tried before the blog path heuristic. This
// ordering determines auto-foldering behavior.
type platformDomains struct {
	platform Platform
	domains  []string
}

var domainTable = []platformDomains{
	{PlatformYouTube, []string{"youtube.com", "youtu.be"}},
	{PlatformInstagram, []string{"instagram.com"}},
	{PlatformTwitter, []string{"twitter.com", "x.com"}},
	{PlatformFacebook, []string{"facebook.com"}},
	{PlatformLinkedIn, []string{"linkedin.com"}},
	{PlatformTikTok, []string{"tiktok.com"}},
	{PlatformPinterest, []string{"pinterest.com"}},
	{PlatformReddit, []string{"reddit.com"}},
	{PlatformGitHub, []string{"github.com"}},
	{PlatformMedium, []string{"medium.com"}},
	{PlatformThreads, []string{"threads.net"}},
}

// blogSegments are path segments that mark a generic article page.
var blogSegments = []string{"blog", "article", "news", "post", "story"}

// DetectPlatform classifies a URL by its domain. Exact domain and
// subdomain matches against the ordered table are tried first, then a
// path-segment heuristic for the generic "blog" category, and
// everything else falls back to "other". Unparsable URLs are "other".
func DetectPlatform(rawURL string) Platform {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return PlatformOther
	}
	host := strings.ToLower(u.Hostname())

	for _, entry := range domainTable {
		for _, d := range entry.domains {
			if host == d || strings.HasSuffix(host, "."+d) {
				return entry.platform
			}
		}
	}

	for _, seg := range strings.Split(strings.ToLower(u.Path), "/") {
		for _, b := range blogSegments {
			if seg == b {
				return PlatformBlog
			}
		}
	}

	return PlatformOther
}
