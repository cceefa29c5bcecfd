package plot

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/tegar-ganang/air-quality-dicoding/domain/models"
)

// dataSeasonalForGraph is the calendar-month profile. Months without a value are left out.
type dataSeasonalForGraph struct {
	months    []string
	yValues   []float64
	nameYAxis string
	nameGraph string
}

func NewDataSeasonalForGraph(points []models.SeasonalPoint, p models.Pollutant) dataSeasonalForGraph {
	d := dataSeasonalForGraph{
		nameYAxis: fmt.Sprintf("%s (%s)", p, p.Unit()),
		nameGraph: fmt.Sprintf("Seasonal %s pattern", p),
	}
	for _, point := range points {
		if point.Value == nil {
			continue
		}
		d.months = append(d.months, point.Label)
		d.yValues = append(d.yValues, *point.Value)
	}
	return d
}

func (d dataSeasonalForGraph) GetNameGraph() string {
	return d.nameGraph
}
func (d dataSeasonalForGraph) getNameYAxis() string {
	return d.nameYAxis
}
func (d dataSeasonalForGraph) getYValues() []float64 {
	return d.yValues
}

func (d dataSeasonalForGraph) calculateChartDimensions(minBarWidth float64) (width, height int) {
	return chartDimensions(len(d.months), minBarWidth)
}

func (d dataSeasonalForGraph) generateBarValues() []chart.Value {
	bars := make([]chart.Value, 0, len(d.months))
	for i, month := range d.months {
		bars = append(bars, chart.Value{
			Value: d.yValues[i],
			Label: month,
			Style: chart.Style{
				FillColor: drawing.ColorPurple.WithAlpha(100),
			},
		})
	}
	return bars
}
