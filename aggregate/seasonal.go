package aggregate

import (
	"strconv"
	"time"

	"github.com/tegar-ganang/air-quality-dicoding/domain/models"
)

func byMonthOfYear(r models.Reading) string {
	return strconv.Itoa(int(r.Timestamp.Month()))
}

// Seasonal is the mean of p per month of year across all years, January first.
// Only months with at least one reading are returned.
func Seasonal(readings []models.Reading, p models.Pollutant) []models.SeasonalPoint {
	var seen [13]bool
	for _, r := range readings {
		seen[r.Timestamp.Month()] = true
	}
	means := groupMeans(readings, p, byMonthOfYear)

	points := make([]models.SeasonalPoint, 0, 12)
	for m := time.January; m <= time.December; m++ {
		if !seen[m] {
			continue
		}
		points = append(points, models.SeasonalPoint{
			Month: m,
			Label: m.String()[:3],
			Value: lookup(means, strconv.Itoa(int(m))),
		})
	}
	return points
}
