package aggregate

import (
	"time"

	"github.com/tegar-ganang/air-quality-dicoding/dataset"
	"github.com/tegar-ganang/air-quality-dicoding/domain/models"
)

// CompareAreas computes Urban and Suburban monthly means on a shared month axis that
// spans both series.
func CompareAreas(readings []models.Reading, p models.Pollutant) models.AreaComparison {
	cmp := models.AreaComparison{Months: []time.Time{}, Urban: []*float64{}, Suburban: []*float64{}}

	urban := dataset.FilterByArea(readings, models.Urban)
	suburban := dataset.FilterByArea(readings, models.Suburban)
	if len(urban) == 0 && len(suburban) == 0 {
		return cmp
	}

	urbanMeans, uFirst, uLast := monthlyMeans(urban, p)
	suburbanMeans, sFirst, sLast := monthlyMeans(suburban, p)

	first, last := uFirst, uLast
	if len(urban) == 0 {
		first, last = sFirst, sLast
	} else if len(suburban) > 0 {
		if sFirst.Before(first) {
			first = sFirst
		}
		if sLast.After(last) {
			last = sLast
		}
	}

	for _, month := range monthRange(first, last) {
		key := monthKey(month)
		cmp.Months = append(cmp.Months, month)
		cmp.Urban = append(cmp.Urban, lookup(urbanMeans, key))
		cmp.Suburban = append(cmp.Suburban, lookup(suburbanMeans, key))
	}
	return cmp
}
