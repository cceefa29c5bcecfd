package plot

import (
	"fmt"
	"time"

	"github.com/tegar-ganang/air-quality-dicoding/domain/models"
)

// dataMonthlyForGraph is the monthly trend line. Months without data are dropped and the
// line joins their neighbours.
type dataMonthlyForGraph struct {
	xValues   []time.Time
	yValues   []float64
	nameYAxis string
	nameGraph string
}

func NewDataMonthlyForGraph(points []models.SeriesPoint, p models.Pollutant) dataMonthlyForGraph {
	d := dataMonthlyForGraph{
		nameYAxis: fmt.Sprintf("%s (%s)", p, p.Unit()),
		nameGraph: fmt.Sprintf("Monthly %s trend", p),
	}
	for _, point := range points {
		if point.Value == nil {
			continue
		}
		d.xValues = append(d.xValues, point.Time)
		d.yValues = append(d.yValues, *point.Value)
	}
	return d
}

func (d dataMonthlyForGraph) GetNameGraph() string {
	return d.nameGraph
}
func (d dataMonthlyForGraph) getNameYAxis() string {
	return d.nameYAxis
}
func (d dataMonthlyForGraph) getYValues() []float64 {
	return d.yValues
}
func (d dataMonthlyForGraph) getXValues() []time.Time {
	return d.xValues
}
func (d dataMonthlyForGraph) lenXValues() int {
	return len(d.xValues)
}
