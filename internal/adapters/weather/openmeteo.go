// Package weather implements the weather provider port on Open-Meteo.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/secondary"
)

// Public Open-Meteo endpoints. Neither needs an API key.
const (
	DefaultGeocodeURL  = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"
)

// OpenMeteo geocodes a place name and fetches its daily forecast.
type OpenMeteo struct {
	geocodeURL  string
	forecastURL string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewOpenMeteo creates a provider. Empty URLs fall back to the public API.
func NewOpenMeteo(geocodeURL, forecastURL string, logger *zap.Logger) *OpenMeteo {
	if geocodeURL == "" {
		geocodeURL = DefaultGeocodeURL
	}
	if forecastURL == "" {
		forecastURL = DefaultForecastURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenMeteo{
		geocodeURL:  geocodeURL,
		forecastURL: forecastURL,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		logger:      logger,
	}
}

type place struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type geocodeResponse struct {
	Results []place `json:"results"`
}

type forecastResponse struct {
	Daily struct {
		Time        []string  `json:"time"`
		WeatherCode []int     `json:"weather_code"`
		MaxTemp     []float64 `json:"temperature_2m_max"`
		MinTemp     []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

// Forecast returns up to days daily entries for location.
func (o *OpenMeteo) Forecast(ctx context.Context, location string, days int) (*models.WeatherReport, error) {
	p, err := o.geocode(ctx, location)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(p.Latitude, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(p.Longitude, 'f', 4, 64))
	q.Set("daily", "weather_code,temperature_2m_max,temperature_2m_min")
	q.Set("timezone", "auto")
	q.Set("forecast_days", strconv.Itoa(days))

	var fc forecastResponse
	if err := o.getJSON(ctx, o.forecastURL, q, &fc); err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}

	d := fc.Daily
	n := min(len(d.Time), len(d.WeatherCode), len(d.MaxTemp), len(d.MinTemp), days)
	report := &models.WeatherReport{
		Location: p.Name,
		Country:  p.Country,
		Days:     make([]models.ForecastDay, n),
	}
	for i := 0; i < n; i++ {
		report.Days[i] = models.ForecastDay{
			Date:        d.Time[i],
			MinTemp:     d.MinTemp[i],
			MaxTemp:     d.MaxTemp[i],
			Code:        d.WeatherCode[i],
			Description: Describe(d.WeatherCode[i]),
		}
	}

	o.logger.Debug("weather forecast", zap.String("location", p.Name), zap.Int("days", n))
	return report, nil
}

func (o *OpenMeteo) geocode(ctx context.Context, location string) (*place, error) {
	q := url.Values{}
	q.Set("name", location)
	q.Set("count", "1")
	q.Set("format", "json")

	var geo geocodeResponse
	if err := o.getJSON(ctx, o.geocodeURL, q, &geo); err != nil {
		return nil, fmt.Errorf("failed to geocode %q: %w", location, err)
	}
	if len(geo.Results) == 0 {
		return nil, fmt.Errorf("location %q %w", location, models.ErrNotFound)
	}
	return &geo.Results[0], nil
}

func (o *OpenMeteo) getJSON(ctx context.Context, base string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := o.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// Describe maps a WMO weather code to a short description.
func Describe(code int) string {
	switch {
	case code == 0:
		return "Clear sky"
	case code <= 3:
		return "Partly cloudy"
	case code == 45 || code == 48:
		return "Fog"
	case code >= 51 && code <= 57:
		return "Drizzle"
	case code >= 61 && code <= 67:
		return "Rain"
	case code >= 71 && code <= 77:
		return "Snow"
	case code >= 80 && code <= 82:
		return "Rain showers"
	case code == 85 || code == 86:
		return "Snow showers"
	case code >= 95:
		return "Thunderstorm"
	default:
		return "Unknown"
	}
}

var _ secondary.WeatherProvider = (*OpenMeteo)(nil)
