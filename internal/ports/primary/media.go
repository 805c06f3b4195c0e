package primary

import (
	"context"

	"github.com/example/kanban/internal/models"
)

// MediaService defines the primary port for task attachments.
type MediaService interface {
	// UploadImage validates and stores an image, returning its URL.
	UploadImage(ctx context.Context, filename string, content []byte) (string, error)

	// ResolveMedia classifies a media URL (YouTube embed or image).
	ResolveMedia(ctx context.Context, url string) (*models.MediaRef, error)
}

// WidgetService defines the primary port for dashboard widgets.
type WidgetService interface {
	// Weather returns the forecast for a location, or for the board's
	// configured location when location is empty.
	Weather(ctx context.Context, boardID, location string) (*models.WeatherReport, error)

	// TimeProgress returns the current year, month and week progress.
	TimeProgress(ctx context.Context) models.TimeProgress
}
