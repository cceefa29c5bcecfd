package aggregate

import (
	"time"

	"github.com/tegar-ganang/air-quality-dicoding/domain/models"
)

// monthlyMeans is the mean of p per calendar month together with the first and last
// month holding a reading, measured or not.
func monthlyMeans(readings []models.Reading, p models.Pollutant) (map[string]float64, time.Time, time.Time) {
	var first, last time.Time
	for i, r := range readings {
		month := truncateMonth(r.Timestamp)
		if i == 0 || month.Before(first) {
			first = month
		}
		if i == 0 || month.After(last) {
			last = month
		}
	}
	return groupMeans(readings, p, byMonth), first, last
}

// MonthlyTrend is the mean of p per calendar month, in chronological order. Months
// between the first and last reading with no data are kept with a nil value.
func MonthlyTrend(readings []models.Reading, p models.Pollutant) []models.SeriesPoint {
	points := make([]models.SeriesPoint, 0)
	if len(readings) == 0 {
		return points
	}
	means, first, last := monthlyMeans(readings, p)
	for _, month := range monthRange(first, last) {
		points = append(points, models.SeriesPoint{
			Label: models.MonthLabel(month),
			Time:  month,
			Value: lookup(means, monthKey(month)),
		})
	}
	return points
}
