package aggregate

import (
	"sort"
	"strconv"

	"github.com/tegar-ganang/air-quality-dicoding/domain/models"
)

func yearStationKey(year int, station string) string {
	return strconv.Itoa(year) + "/" + station
}

func byYearStation(r models.Reading) string {
	return yearStationKey(r.Timestamp.Year(), r.Station)
}

// AnnualByStation is the mean of p per (year, station), one series per station over the
// years present in readings. A station without readings in a year has a nil value there.
func AnnualByStation(readings []models.Reading, p models.Pollutant) models.AnnualTable {
	table := models.AnnualTable{Years: []int{}, Series: []models.StationSeries{}}
	if len(readings) == 0 {
		return table
	}

	years := make(map[int]struct{})
	stations := make(map[string]struct{})
	for _, r := range readings {
		years[r.Timestamp.Year()] = struct{}{}
		stations[r.Station] = struct{}{}
	}
	means := groupMeans(readings, p, byYearStation)

	for y := range years {
		table.Years = append(table.Years, y)
	}
	sort.Ints(table.Years)

	names := make([]string, 0, len(stations))
	for s := range stations {
		names = append(names, s)
	}
	sort.Strings(names)

	for _, s := range names {
		series := models.StationSeries{Station: s, Values: make([]*float64, len(table.Years))}
		for i, y := range table.Years {
			series.Values[i] = lookup(means, yearStationKey(y, s))
		}
		table.Series = append(table.Series, series)
	}
	return table
}
