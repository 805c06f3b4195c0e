// Package progress computes calendar progress percentages.
package progress

import (
	"math"
	"time"

	"github.com/example/kanban/internal/models"
)

// Compute returns how far now is through its year and month, and the
// week progress counted in whole days with Monday as the first day.
func Compute(now time.Time) models.TimeProgress {
	loc := now.Location()

	startYear := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
	endYear := startYear.AddDate(1, 0, 0)

	startMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	endMonth := startMonth.AddDate(0, 1, 0)

	day := int(now.Weekday())
	if day == 0 {
		day = 7
	}

	return models.TimeProgress{
		Year:  percent(now.Sub(startYear), endYear.Sub(startYear)),
		Month: percent(now.Sub(startMonth), endMonth.Sub(startMonth)),
		Week:  int(math.Round(float64(day-1) / 7 * 100)),
	}
}

func percent(elapsed, total time.Duration) int {
	return int(math.Round(float64(elapsed) / float64(total) * 100))
}
