package render

import (
	"fmt"
	"strings"
)

// OptimizeImage rewrites a Cloudinary delivery URL to request
// auto-format and auto-quality, optionally bounded to width pixels
// (width <= 0 leaves sizing to Cloudinary). Non-Cloudinary URLs pass
// through untouched.
func OptimizeImage(url string, width int) string {
	if url == "" {
		return ""
	}
	if !strings.Contains(url, "res.cloudinary.com") {
		return url
	}

	parts := strings.SplitN(url, "/upload/", 2)
	if len(parts) != 2 {
		return url
	}

	params := "f_auto,q_auto"
	if width > 0 {
		params = fmt.Sprintf("%s,w_%d", params, width)
	}
	return parts[0] + "/upload/" + params + "/" + parts[1]
}
