// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/kanban/internal/ports/secondary"
)

// ImageStore implements secondary.ImageStore on a local directory, one
// subdirectory per user.
type ImageStore struct {
	baseDir       string
	publicBaseURL string
	now           func() time.Time
}

// NewImageStore creates an image store rooted at baseDir.
// If baseDir is empty, defaults to ~/.kanban/media. When publicBaseURL is
// empty, saved images are addressed with file:// URLs.
func NewImageStore(baseDir, publicBaseURL string) (*ImageStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".kanban", "media")
	}

	return &ImageStore{
		baseDir:       baseDir,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		now:           time.Now,
	}, nil
}

// Save writes content to <base>/<user>/<unix ms>_<filename> and returns its URL.
func (s *ImageStore) Save(ctx context.Context, userID, filename string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if userID == "" || strings.ContainsAny(userID, `/\`) || userID == ".." {
		return "", fmt.Errorf("invalid user directory %q", userID)
	}

	dir := filepath.Join(s.baseDir, userID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	name := fmt.Sprintf("%d_%s", s.now().UnixMilli(), filepath.Base(filename))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	return s.URL(userID, name, path), nil
}

// URL addresses a stored file through the public base URL when set.
func (s *ImageStore) URL(userID, name, path string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + url.PathEscape(userID) + "/" + url.PathEscape(name)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
}

// BaseDir returns the directory images are stored under.
func (s *ImageStore) BaseDir() string {
	return s.baseDir
}

var _ secondary.ImageStore = (*ImageStore)(nil)
