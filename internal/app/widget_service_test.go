package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/kanban/internal/models"
)

// fakeWeather answers every forecast with a fixed report.
type fakeWeather struct {
	location string
	days     int
	err      error
}

func (f *fakeWeather) Forecast(ctx context.Context, location string, days int) (*models.WeatherReport, error) {
	f.location, f.days = location, days
	if f.err != nil {
		return nil, f.err
	}
	return &models.WeatherReport{Location: location, Days: make([]models.ForecastDay, days)}, nil
}

func TestWidgetService_Weather(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	boardID, _ := env.mustDefaultBoard(t)
	weather := &fakeWeather{}
	svc := NewWidgetService(env.boardRepo, weather)

	_, err := svc.Weather(ctx, boardID, "")
	assert.ErrorIs(t, err, models.ErrInvalid, "no location anywhere")

	require.NoError(t, env.boards.SetWeatherLocation(ctx, boardID, "Madrid"))
	report, err := svc.Weather(ctx, boardID, "")
	require.NoError(t, err)
	assert.Equal(t, "Madrid", weather.location)
	assert.Len(t, report.Days, ForecastDays)

	_, err = svc.Weather(ctx, boardID, " Oslo ")
	require.NoError(t, err)
	assert.Equal(t, "Oslo", weather.location, "explicit location wins")

	_, err = svc.Weather(ctx, "BOARD-999", "")
	assert.ErrorIs(t, err, models.ErrNotFound)

	weather.err = errors.New("upstream down")
	_, err = svc.Weather(ctx, "", "Oslo")
	assert.Error(t, err)
}

func TestWidgetService_TimeProgress(t *testing.T) {
	svc := NewWidgetService(nil, nil)
	svc.now = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }

	got := svc.TimeProgress(context.Background())
	assert.Equal(t, 0, got.Year)
	assert.Equal(t, 0, got.Month)
}
