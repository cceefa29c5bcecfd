package plot

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/tegar-ganang/air-quality-dicoding/domain/models"
)

// dataStationsForGraph is the per-station average bar chart, one bar per station colored
// by severity tier.
type dataStationsForGraph struct {
	stations  []string
	yValues   []float64
	nameYAxis string
	nameGraph string
}

func NewDataStationsForGraph(means []models.StationMean, p models.Pollutant) dataStationsForGraph {
	d := dataStationsForGraph{
		stations:  make([]string, 0, len(means)),
		yValues:   make([]float64, 0, len(means)),
		nameYAxis: fmt.Sprintf("%s (%s)", p, p.Unit()),
		nameGraph: fmt.Sprintf("Average %s by station", p),
	}
	for _, m := range means {
		d.stations = append(d.stations, m.Station)
		d.yValues = append(d.yValues, m.Mean)
	}
	return d
}

func (d dataStationsForGraph) GetNameGraph() string {
	return d.nameGraph
}
func (d dataStationsForGraph) getNameYAxis() string {
	return d.nameYAxis
}
func (d dataStationsForGraph) getYValues() []float64 {
	return d.yValues
}

func (d dataStationsForGraph) calculateChartDimensions(minBarWidth float64) (width, height int) {
	return chartDimensions(len(d.stations), minBarWidth)
}

func (d dataStationsForGraph) generateBarValues() []chart.Value {
	bars := make([]chart.Value, 0, len(d.stations))
	for i, station := range d.stations {
		bars = append(bars, chart.Value{
			Value: d.yValues[i],
			Label: station,
			Style: chart.Style{
				FillColor:   severityColor(models.SeverityFor(d.yValues[i])).WithAlpha(180),
				StrokeColor: drawing.ColorBlack,
				StrokeWidth: 1,
			},
		})
	}
	return bars
}

func severityColor(s models.Severity) drawing.Color {
	switch s {
	case models.SeverityHigh:
		return drawing.ColorFromHex("dc143c")
	case models.SeverityMedium:
		return drawing.ColorFromHex("ffa500")
	default:
		return drawing.ColorFromHex("008000")
	}
}
