package models

// WeatherReport is a daily forecast for a resolved location.
type WeatherReport struct {
	Location string        `json:"location"`
	Country  string        `json:"country,omitempty"`
	Days     []ForecastDay `json:"days"`
}

// ForecastDay is one day of a forecast.
type ForecastDay struct {
	Date        string  `json:"date"`
	MinTemp     float64 `json:"min_temp"`
	MaxTemp     float64 `json:"max_temp"`
	Code        int     `json:"code"`
	Description string  `json:"description"`
}

// TimeProgress holds elapsed percentages of the current year, month and week.
type TimeProgress struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Week  int `json:"week"`
}

// MediaRef classifies a task media URL.
type MediaRef struct {
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

// Media kinds
const (
	MediaImage   = "image"
	MediaYouTube = "youtube"
)
