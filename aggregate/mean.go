package aggregate

import (
	"fmt"
	"time"

	"github.com/donghquinn/gopandas"

	"github.com/tegar-ganang/air-quality-dicoding/domain/models"
)

const (
	colGroup = "group"
	colLevel = "level"
)

// groupMeans is the mean level per group key. The frame holds one row per measured level
// of p; missing levels never enter it, so keys whose readings are all missing are absent
// from the result.
func groupMeans(readings []models.Reading, p models.Pollutant, key func(models.Reading) string) map[string]float64 {
	means := make(map[string]float64)
	df := gopandas.NewDataFrame([]string{colGroup, colLevel})
	for _, r := range readings {
		v, ok := r.Level(p)
		if !ok {
			continue
		}
		df.AddRow([]interface{}{key(r), v})
	}
	if rows, _ := df.Shape(); rows == 0 {
		return means
	}
	groups, err := df.GroupBy(colGroup)
	if err != nil {
		return means
	}
	for group, frame := range groups {
		col, err := frame.GetColumn(colLevel)
		if err != nil {
			continue
		}
		mean, err := col.Mean()
		if err != nil {
			continue
		}
		means[fmt.Sprint(group)] = mean
	}
	return means
}

// lookup returns nil for a key without a mean.
func lookup(means map[string]float64, key string) *float64 {
	v, ok := means[key]
	if !ok {
		return nil
	}
	return models.Float(v)
}

func byStation(r models.Reading) string {
	return r.Station
}

func truncateMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func monthKey(t time.Time) string {
	return models.MonthLabel(truncateMonth(t))
}

func byMonth(r models.Reading) string {
	return monthKey(r.Timestamp)
}

// monthRange lists every month from first to last, both included.
func monthRange(first, last time.Time) []time.Time {
	var months []time.Time
	for m := truncateMonth(first); !m.After(last); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}
