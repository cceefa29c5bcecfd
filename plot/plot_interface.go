package plot

import "github.com/wcharczuk/go-chart/v2"

// dataForGraph is a pollutant series that DrawPlotBar can render as a PNG bar chart.
type dataForGraph interface {
	GetNameGraph() string
	getNameYAxis() string
	getYValues() []float64
	calculateChartDimensions(float64) (int, int)
	generateBarValues() []chart.Value
}
