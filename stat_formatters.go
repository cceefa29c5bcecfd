package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/tegar-ganang/air-quality-dicoding/domain/models"
)

func formatValue(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

func newTable(title string, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetTitle(title)
	t.AppendHeader(header)
	t.SetStyle(table.StyleDefault)
	return t
}

// GenerateMetricsTable lists the ranking metrics of the selected policy.
func GenerateMetricsTable(v View) string {
	t := newTable(fmt.Sprintf("Ranking (%s)", v.Policy), table.Row{"Station", fmt.Sprintf("%s (%s)", v.Pollutant, v.Unit), "Tag"})
	for _, m := range v.Metrics {
		t.AppendRow(table.Row{m.Label, m.Value, m.Delta})
	}
	return t.Render()
}

func GenerateMonthlyTable(v View) string {
	t := newTable(fmt.Sprintf("Monthly %s", v.Pollutant), table.Row{"Month", "Mean"})
	for _, p := range v.Monthly {
		t.AppendRow(table.Row{p.Label, formatValue(p.Value)})
	}
	return t.Render()
}

func GenerateSeasonalTable(v View) string {
	t := newTable(fmt.Sprintf("Seasonal %s", v.Pollutant), table.Row{"Month", "Mean"})
	for _, p := range v.Seasonal {
		t.AppendRow(table.Row{p.Label, formatValue(p.Value)})
	}
	return t.Render()
}

func GenerateAreaTable(v View) string {
	t := newTable(fmt.Sprintf("Urban vs Suburban %s", v.Pollutant), table.Row{"Month", models.Urban, models.Suburban})
	for i, m := range v.Areas.Months {
		t.AppendRow(table.Row{models.MonthLabel(m), formatValue(v.Areas.Urban[i]), formatValue(v.Areas.Suburban[i])})
	}
	return t.Render()
}

func GenerateAnnualTable(v View) string {
	header := table.Row{"Station"}
	for _, y := range v.Annual.Years {
		header = append(header, y)
	}
	t := newTable(fmt.Sprintf("Annual %s by station", v.Pollutant), header)
	for _, s := range v.Annual.Series {
		row := table.Row{s.Station}
		for _, val := range s.Values {
			row = append(row, formatValue(val))
		}
		t.AppendRow(row)
	}
	return t.Render()
}

func GenerateStationsTable(v View) string {
	t := newTable(fmt.Sprintf("Average %s by station", v.Pollutant), table.Row{"Station", "Mean", "Severity"})
	for _, m := range v.Means {
		t.AppendRow(table.Row{m.Station, fmt.Sprintf("%.2f", m.Mean), models.SeverityFor(m.Mean)})
	}
	return t.Render()
}

// GenerateSummary is the full text rendition of a view.
func GenerateSummary(v View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s %s, %s to %s, %d readings, stations: %s\n\n",
		v.Title, v.Pollutant, v.Unit, v.Start, v.End, v.Rows, strings.Join(v.Selected, ", "))
	for _, section := range []string{
		GenerateMetricsTable(v),
		GenerateStationsTable(v),
		GenerateMonthlyTable(v),
		GenerateSeasonalTable(v),
		GenerateAreaTable(v),
		GenerateAnnualTable(v),
	} {
		b.WriteString(section)
		b.WriteString("\n\n")
	}
	return b.String()
}
