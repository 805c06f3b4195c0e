// Package media classifies task attachment URLs.
package media

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/example/kanban/internal/models"
)

var (
	youTubeURL = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be)/(?:watch\?v=)?([a-zA-Z0-9_-]{11})`)
	youTubeID  = regexp.MustCompile(`(?:youtu\.be/|youtube\.com(?:/embed/|/v/|/shorts/|/watch\?v=|/watch\?.+&v=))([a-zA-Z0-9_-]{11})`)
)

// IsYouTube reports whether raw points at a YouTube video.
func IsYouTube(raw string) bool {
	if youTubeURL.MatchString(raw) {
		return true
	}
	_, ok := VideoID(raw)
	return ok
}

// VideoID extracts the 11 character YouTube video id from raw.
func VideoID(raw string) (string, bool) {
	m := youTubeID.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// EmbedURL returns the embeddable player URL for a YouTube link.
func EmbedURL(raw string) (string, bool) {
	id, ok := VideoID(raw)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("https://www.youtube.com/embed/%s?autoplay=0", id), true
}

// Resolve classifies a task media URL as an embeddable video or an image.
func Resolve(raw string) (models.MediaRef, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.MediaRef{}, fmt.Errorf("media URL is empty: %w", models.ErrInvalid)
	}

	if embed, ok := EmbedURL(raw); ok {
		return models.MediaRef{Kind: models.MediaYouTube, URL: embed}, nil
	}

	switch {
	case strings.HasPrefix(raw, "data:image/"),
		strings.HasPrefix(raw, "http://"),
		strings.HasPrefix(raw, "https://"),
		strings.HasPrefix(raw, "file://"):
		return models.MediaRef{Kind: models.MediaImage, URL: raw}, nil
	}

	return models.MediaRef{}, fmt.Errorf("unsupported media URL %q: %w", raw, models.ErrInvalid)
}
