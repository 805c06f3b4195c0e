package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/example/kanban/internal/core/progress"
	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/primary"
	"github.com/example/kanban/internal/ports/secondary"
)

// ForecastDays is the number of days shown by the weather widget.
const ForecastDays = 5

// WidgetServiceImpl implements the WidgetService interface.
type WidgetServiceImpl struct {
	boardRepo secondary.BoardRepository
	weather   secondary.WeatherProvider
	now       func() time.Time
}

// NewWidgetService creates a new WidgetService with injected dependencies.
func NewWidgetService(boardRepo secondary.BoardRepository, weather secondary.WeatherProvider) *WidgetServiceImpl {
	return &WidgetServiceImpl{
		boardRepo: boardRepo,
		weather:   weather,
		now:       time.Now,
	}
}

// Weather returns the forecast for a location, or for the board's
// configured location when location is empty.
func (s *WidgetServiceImpl) Weather(ctx context.Context, boardID, location string) (*models.WeatherReport, error) {
	location = strings.TrimSpace(location)
	if location == "" && boardID != "" {
		board, err := s.boardRepo.GetByID(ctx, boardID)
		if err != nil {
			return nil, err
		}
		location = board.WeatherLocation
	}
	if location == "" {
		return nil, invalid("no weather location configured")
	}
	if s.weather == nil {
		return nil, fmt.Errorf("weather provider not configured")
	}

	report, err := s.weather.Forecast(ctx, location, ForecastDays)
	if err != nil {
		return nil, fmt.Errorf("failed to get forecast for %q: %w", location, err)
	}
	return report, nil
}

// TimeProgress returns the current year, month and week progress.
func (s *WidgetServiceImpl) TimeProgress(_ context.Context) models.TimeProgress {
	return progress.Compute(s.now())
}

// Ensure WidgetServiceImpl implements the interface
var _ primary.WidgetService = (*WidgetServiceImpl)(nil)
