package media

import (
	"regexp"
	"strings"

	"github.com/mlm272/maggiemayer-portfolio/internal/models"
)

// VideoKind classifies where a video is hosted
type VideoKind string

const (
	VideoYouTube VideoKind = "youtube"
	VideoTikTok  VideoKind = "tiktok"
	VideoLocal   VideoKind = "local"
	VideoOther   VideoKind = "other"
)

var (
	youTubeIDPattern = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([^&\n?#]+)`)
	tikTokIDPattern  = regexp.MustCompile(`/video/(\d+)`)
)

// ClassifyVideo detects the platform for a stored video link
func ClassifyVideo(url string) VideoKind {
	switch {
	case strings.Contains(url, "youtube.com"), strings.Contains(url, "youtu.be"):
		return VideoYouTube
	case strings.Contains(url, "tiktok.com"):
		return VideoTikTok
	case strings.HasPrefix(url, "/") && (strings.HasSuffix(url, ".mp4") || strings.HasSuffix(url, ".mov")):
		return VideoLocal
	}
	return VideoOther
}

// YouTubeEmbedURL converts a watch or short link into an embed URL.
// If no id can be extracted the raw url is returned with ok false.
func YouTubeEmbedURL(url string) (string, bool) {
	m := youTubeIDPattern.FindStringSubmatch(url)
	if m == nil {
		return url, false
	}
	return "https://www.youtube.com/embed/" + m[1], true
}

// TikTokEmbedURL converts https://www.tiktok.com/@user/video/<id> into
// the iframe embed form. If no id can be extracted the raw url is
// returned with ok false.
func TikTokEmbedURL(url string) (string, bool) {
	m := tikTokIDPattern.FindStringSubmatch(url)
	if m == nil {
		return url, false
	}
	return "https://www.tiktok.com/embed/v2/" + m[1], true
}

// EmbedView is what the detail template needs to render one video
type EmbedView struct {
	Kind        VideoKind
	Src         string
	Fallbacks   []string
	Raw         string
	Description string
	// Embedded is false when the template should render a plain link
	Embedded bool
}

// Embed prepares a stored video for rendering
func Embed(v models.Video) EmbedView {
	view := EmbedView{
		Kind:        ClassifyVideo(v.URL),
		Raw:         v.URL,
		Description: v.Description,
	}

	switch view.Kind {
	case VideoYouTube:
		view.Src, view.Embedded = YouTubeEmbedURL(v.URL)
	case VideoTikTok:
		view.Src, view.Embedded = TikTokEmbedURL(v.URL)
	case VideoLocal:
		view.Fallbacks = FallbackChain(v.URL)
		view.Src = view.Fallbacks[0]
		view.Embedded = true
	default:
		view.Src = v.URL
	}
	return view
}
