//go:build linux

package mpris

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// posterNames lists common poster filenames in priority order.
var posterNames = []string{
	"poster.jpg", "poster.png",
	"folder.jpg", "folder.png",
	"cover.jpg", "cover.png",
}

// FindPoster looks for artwork next to a local video: first a picture sharing
// the video's base name, then a common poster name. Returns the path to the
// art file, or empty string if the source is not a local file or none exists.
func FindPoster(sourceURL string) string {
	u, err := url.Parse(sourceURL)
	if err != nil || u.Scheme != "file" || u.Path == "" {
		return ""
	}
	dir := filepath.Dir(u.Path)
	stem := strings.TrimSuffix(filepath.Base(u.Path), filepath.Ext(u.Path))

	candidates := []string{stem + ".jpg", stem + ".png"}
	candidates = append(candidates, posterNames...)
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
