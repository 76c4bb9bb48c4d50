package render

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/nijanthan/portfolio-cms/internal/content"
)

// YouTubeID extracts the video ID from a youtube.com watch URL or a
// youtu.be short link. Returns "" for anything else, including
// unparseable input.
func YouTubeID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	switch {
	case strings.Contains(u.Hostname(), "youtube.com"):
		return u.Query().Get("v")
	case strings.Contains(u.Hostname(), "youtu.be"):
		return strings.TrimPrefix(u.Path, "/")
	default:
		return ""
	}
}

// Thumbnail resolves the display thumbnail for a published-work item.
// Video items without an explicit thumbnail derive it from the
// platform's canonical thumbnail URL; article items use their own
// thumbnail through the image optimizer. An empty result means the
// template renders the generic placeholder; resolution never fails.
func Thumbnail(item content.LatestItem, width int) string {
	if item.Kind == content.KindVideo {
		if id := YouTubeID(item.Href); id != "" {
			return fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", id)
		}
	}
	if item.Thumbnail != "" {
		return OptimizeImage(item.Thumbnail, width)
	}
	return ""
}
