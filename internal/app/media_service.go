package app

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/example/kanban/internal/core/media"
	"github.com/example/kanban/internal/ctxutil"
	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/primary"
	"github.com/example/kanban/internal/ports/secondary"
)

// DefaultMaxImageBytes caps uploaded images.
const DefaultMaxImageBytes = 5 << 20

// MediaServiceImpl implements the MediaService interface.
type MediaServiceImpl struct {
	store    secondary.ImageStore
	maxBytes int
	logger   *zap.Logger
}

// NewMediaService creates a new MediaService. maxBytes <= 0 selects DefaultMaxImageBytes.
func NewMediaService(store secondary.ImageStore, maxBytes int, logger *zap.Logger) *MediaServiceImpl {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MediaServiceImpl{store: store, maxBytes: maxBytes, logger: logger}
}

// UploadImage validates and stores an image, returning its URL.
func (s *MediaServiceImpl) UploadImage(ctx context.Context, filename string, content []byte) (string, error) {
	if len(content) == 0 {
		return "", invalid("image is empty")
	}
	if len(content) > s.maxBytes {
		return "", invalid(fmt.Sprintf("image is %d bytes, limit is %d", len(content), s.maxBytes))
	}
	if ct := http.DetectContentType(content); !strings.HasPrefix(ct, "image/") {
		return "", invalid(fmt.Sprintf("unsupported content type %s (expected image/*)", ct))
	}

	name := sanitizeFilename(filename)
	url, err := s.store.Save(ctx, ctxutil.UserOrLocal(ctx), name, content)
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	s.logger.Info("image uploaded", zap.String("file", name), zap.Int("bytes", len(content)))
	return url, nil
}

// sanitizeFilename keeps the base name and replaces characters that are
// awkward in URLs.
func sanitizeFilename(filename string) string {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "image"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

// ResolveMedia classifies a media URL (YouTube embed or image).
func (s *MediaServiceImpl) ResolveMedia(_ context.Context, url string) (*models.MediaRef, error) {
	ref, err := media.Resolve(url)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

// Ensure MediaServiceImpl implements the interface
var _ primary.MediaService = (*MediaServiceImpl)(nil)
