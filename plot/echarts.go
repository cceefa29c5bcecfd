package plot

import (
	"fmt"
	"html/template"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"

	"github.com/tegar-ganang/air-quality-dicoding/domain/models"
)

const (
	chartWidth  = "100%"
	chartHeight = "420px"
	// missingValue is how echarts marks an empty point on a category axis.
	missingValue = "-"
)

// Builder creates the interactive dashboard charts. AssetsHost overrides where the echarts
// scripts are loaded from.
type Builder struct {
	AssetsHost string
}

func (b Builder) initOpts(id string) opts.Initialization {
	init := opts.Initialization{Width: chartWidth, Height: chartHeight, ChartID: id}
	if b.AssetsHost != "" {
		init.AssetsHost = b.AssetsHost
	}
	return init
}

func (b Builder) newLine(id, title string, p models.Pollutant) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(b.initOpts(id)),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithYAxisOpts(opts.YAxis{Name: fmt.Sprintf("%s (%s)", p, p.Unit())}),
	)
	return line
}

func lineData(values []*float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		if v == nil {
			data[i] = opts.LineData{Value: missingValue}
			continue
		}
		data[i] = opts.LineData{Value: roundTwo(*v)}
	}
	return data
}

func roundTwo(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return r
}

// MonthlyChart is the month-by-month trend. Empty months are gaps in the line.
func (b Builder) MonthlyChart(points []models.SeriesPoint, p models.Pollutant) *charts.Line {
	line := b.newLine("monthly", fmt.Sprintf("Monthly %s trend", p), p)
	labels := make([]string, len(points))
	values := make([]*float64, len(points))
	for i, point := range points {
		labels[i] = point.Label
		values[i] = point.Value
	}
	line.SetXAxis(labels).AddSeries(p.String(), lineData(values),
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

func (b Builder) SeasonalChart(points []models.SeasonalPoint, p models.Pollutant) *charts.Line {
	line := b.newLine("seasonal", fmt.Sprintf("Seasonal %s pattern", p), p)
	labels := make([]string, len(points))
	values := make([]*float64, len(points))
	for i, point := range points {
		labels[i] = point.Label
		values[i] = point.Value
	}
	line.SetXAxis(labels).AddSeries(p.String(), lineData(values),
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
		charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(0.2)}))
	return line
}

// AnnualChart draws one line per station across the years of the table.
func (b Builder) AnnualChart(table models.AnnualTable, p models.Pollutant) *charts.Line {
	line := b.newLine("annual", fmt.Sprintf("Annual %s by station", p), p)
	years := make([]string, len(table.Years))
	for i, y := range table.Years {
		years[i] = strconv.Itoa(y)
	}
	line.SetXAxis(years)
	for _, s := range table.Series {
		line.AddSeries(s.Station, lineData(s.Values))
	}
	return line
}

func (b Builder) AreaChart(cmp models.AreaComparison, p models.Pollutant) *charts.Line {
	line := b.newLine("areas", fmt.Sprintf("Urban vs Suburban %s", p), p)
	labels := make([]string, len(cmp.Months))
	for i, m := range cmp.Months {
		labels[i] = models.MonthLabel(m)
	}
	line.SetXAxis(labels).
		AddSeries(string(models.Urban), lineData(cmp.Urban)).
		AddSeries(string(models.Suburban), lineData(cmp.Suburban))
	return line
}

type snippetChart interface {
	RenderSnippet() render.ChartSnippet
	GetAssets() opts.Assets
}

// Embedded is a chart ready to be placed into a larger HTML page.
type Embedded struct {
	Element template.HTML
	Script  template.HTML
	Scripts []string
}

// Embed renders c as an HTML fragment plus the script URLs it depends on.
func Embed(c snippetChart) Embedded {
	snippet := c.RenderSnippet()
	assets := c.GetAssets()
	return Embedded{
		Element: template.HTML(snippet.Element),
		Script:  template.HTML(snippet.Script),
		Scripts: append([]string(nil), assets.JSAssets.Values...),
	}
}
