package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nijanthan/portfolio-cms/internal/content"
)

func TestYouTubeID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url with extra params", "https://www.youtube.com/watch?v=abc123&t=42s", "abc123"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"bare youtube.com", "https://youtube.com/watch?v=xyz", "xyz"},
		{"vimeo", "https://vimeo.com/123456", ""},
		{"not a url", "://nope", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, YouTubeID(tt.url))
		})
	}
}

func TestThumbnail(t *testing.T) {
	t.Run("video derives platform thumbnail", func(t *testing.T) {
		item := content.LatestItem{
			Kind: content.KindVideo,
			Href: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		}
		assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", Thumbnail(item, 800))
	})

	t.Run("video prefers derived thumbnail over explicit", func(t *testing.T) {
		item := content.LatestItem{
			Kind:      content.KindVideo,
			Href:      "https://youtu.be/abc",
			Thumbnail: "https://example.com/custom.png",
		}
		assert.Equal(t, "https://img.youtube.com/vi/abc/hqdefault.jpg", Thumbnail(item, 800))
	})

	t.Run("video with unrecognized host falls back to explicit thumbnail", func(t *testing.T) {
		item := content.LatestItem{
			Kind:      content.KindVideo,
			Href:      "https://vimeo.com/123",
			Thumbnail: "https://example.com/custom.png",
		}
		assert.Equal(t, "https://example.com/custom.png", Thumbnail(item, 800))
	})

	t.Run("article thumbnail goes through optimizer", func(t *testing.T) {
		item := content.LatestItem{
			Kind:      content.KindArticle,
			Thumbnail: "https://res.cloudinary.com/demo/image/upload/v1/a.png",
		}
		assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/f_auto,q_auto,w_800/v1/a.png", Thumbnail(item, 800))
	})

	t.Run("article without thumbnail resolves empty", func(t *testing.T) {
		item := content.LatestItem{Kind: content.KindArticle, Href: "https://example.com/post"}
		assert.Equal(t, "", Thumbnail(item, 800))
	})
}
