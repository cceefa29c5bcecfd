package plot

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/tegar-ganang/air-quality-dicoding/domain/models"
	"github.com/tegar-ganang/air-quality-dicoding/stationmap"
)

// beijingMap is the go-echarts preset map name for Beijing.
const beijingMap = "北京"

var severityOrder = []models.Severity{models.SeverityLow, models.SeverityMedium, models.SeverityHigh}

// StationMapChart places every marker on the Beijing map, one scatter series per severity
// tier so each tier keeps its color. The tooltip shows the marker popup.
func (b Builder) StationMapChart(m stationmap.Map) *charts.Geo {
	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(b.initOpts("stationmap")),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Average %s by station", m.Pollutant)}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:       beijingMap,
			ItemStyle: &opts.ItemStyle{Color: "#f3f3f3", BorderColor: "#999"},
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Formatter: opts.FuncOpts("function (params) { return params.name; }"),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)

	groups := m.BySeverity()
	for _, severity := range severityOrder {
		markers := groups[severity]
		if len(markers) == 0 {
			continue
		}
		data := make([]opts.GeoData, 0, len(markers))
		for _, marker := range markers {
			data = append(data, opts.GeoData{
				Name:  marker.Popup,
				Value: []float64{marker.Longitude, marker.Latitude, roundTwo(marker.Value)},
			})
		}
		geo.AddSeries(string(severity), types.ChartScatter, data,
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color:   severity.Color(),
				Opacity: opts.Float(float32(stationmap.FillOpacity)),
			}),
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: stationmap.MarkerRadius * 2}),
		)
	}
	return geo
}
