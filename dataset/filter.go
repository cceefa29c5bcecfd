package dataset

import "github.com/tegar-ganang/air-quality-dicoding/domain/models"

// Filter returns the readings inside the date range that belong to the selected
// stations, keeping input order. An inverted range or an unknown station yields no rows.
func Filter(readings []models.Reading, rng models.DateRange, sel models.StationSelection) []models.Reading {
	result := make([]models.Reading, 0)
	for _, r := range readings {
		if !rng.Contains(r.Timestamp) || !sel.Match(r.Station) {
			continue
		}
		result = append(result, r)
	}
	return result
}

// FilterByArea keeps readings of one area type.
func FilterByArea(readings []models.Reading, area models.AreaType) []models.Reading {
	result := make([]models.Reading, 0)
	for _, r := range readings {
		if r.AreaType == area {
			result = append(result, r)
		}
	}
	return result
}
