package render

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// UnfurlTimeout bounds one unfurl fetch.
const UnfurlTimeout = 15 * time.Second

const unfurlUserAgent = "Mozilla/5.0 (compatible; PortfolioCMS/1.0)"

// Unfurl fetches a page and extracts its social-preview image, used by
// the editor to suggest a thumbnail for a new article entry.
func Unfurl(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid URL %q", rawURL)
	}

	client := &http.Client{Timeout: UnfurlTimeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", unfurlUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: HTTP %d", rawURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	for _, selector := range []string{
		`meta[property="og:image"]`,
		`meta[name="twitter:image"]`,
	} {
		if img, ok := doc.Find(selector).First().Attr("content"); ok {
			img = strings.TrimSpace(img)
			if img != "" {
				return img, nil
			}
		}
	}
	return "", fmt.Errorf("no preview image found at %s", rawURL)
}
