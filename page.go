package main

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/tegar-ganang/air-quality-dicoding/plot"
)

const dashboardTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.View.Title}}</title>
{{range .Scripts}}<script src="{{.}}"></script>
{{end}}<style>
body { margin: 0; font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; color: #222; display: flex; }
aside { width: 260px; min-height: 100vh; background: #f0f2f6; padding: 1rem; box-sizing: border-box; }
aside label { display: block; margin-top: .8rem; font-size: 14px; font-weight: 600; }
aside select, aside input { width: 100%; margin-top: .3rem; }
main { flex: 1; padding: 1rem 2rem; overflow-x: auto; }
.metrics { display: flex; flex-wrap: wrap; gap: 1rem; }
.metric { border: 1px solid #ddd; border-radius: 6px; padding: .5rem 1rem; min-width: 140px; }
.metric .value { font-size: 22px; }
.delta-good { color: green; }
.delta-bad { color: crimson; }
table { border-collapse: collapse; font-size: 12px; }
th, td { border: 1px solid #ddd; padding: 2px 6px; }
.empty { color: #888; }
</style>
</head>
<body>
<aside>
<h3>Filter Options</h3>
<form method="get" action="/">
<label>Select Pollutant
<select name="pollutant">{{range .View.Pollutants}}<option{{if eq . $.View.Pollutant}} selected{{end}}>{{.}}</option>{{end}}</select>
</label>
<label>Start date <input type="date" name="start" value="{{.View.Start}}"></label>
<label>End date <input type="date" name="end" value="{{.View.End}}"></label>
<label>Stations
<select name="station" multiple size="8">{{range .View.StationOptions}}<option{{if index $.Selected .}} selected{{end}}>{{.}}</option>{{end}}</select>
</label>
<label>Ranking
<select name="policy">
<option value="thresholds"{{if eq (print .View.Policy) "thresholds"}} selected{{end}}>Good / bad thresholds</option>
<option value="extremes"{{if eq (print .View.Policy) "extremes"}} selected{{end}}>Best / worst station</option>
</select>
</label>
<p><button type="submit">Apply</button></p>
</form>
<form method="post" action="/api/report?{{.Query}}">
<button type="submit">Generate EDA report</button>
</form>
<p><a href="/report">Last report</a></p>
</aside>
<main>
<h1>{{.View.Title}}</h1>
<p>{{.View.Rows}} readings from {{.View.Start}} to {{.View.End}}</p>

<h2>Station ranking</h2>
{{if .View.Metrics}}<div class="metrics">{{range .View.Metrics}}
<div class="metric"><div>{{.Label}}</div><div class="value">{{.Value}}</div><div class="delta-{{.Delta}}">{{.Delta}}</div></div>{{end}}
</div>{{else}}<p class="empty">No station matches.</p>{{end}}

{{range .Sections}}
<h2>{{.Title}}</h2>
{{.Chart.Element}}
{{.Chart.Script}}
{{end}}

<h2>Raw Data</h2>
<table>
<tr>{{range .View.Preview.Header}}<th>{{.}}</th>{{end}}</tr>
{{range .View.Preview.Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}
</table>
</main>
</body>
</html>
`

var dashboardPage = template.Must(template.New("dashboard").Parse(dashboardTemplate))

type pageSection struct {
	Title string
	Chart plot.Embedded
}

type pageData struct {
	View     View
	Query    string
	Selected map[string]bool
	Sections []pageSection
	Scripts  []string
}

// renderDashboard renders the HTML dashboard for v with its interactive charts.
func renderDashboard(v View, req ViewRequest, charts plot.Builder) ([]byte, error) {
	p := v.Pollutant
	data := pageData{
		View:     v,
		Query:    req.Query().Encode(),
		Selected: make(map[string]bool, len(v.Selected)),
		Sections: []pageSection{
			{Title: fmt.Sprintf("1. %s - Trend Analysis by Month", p), Chart: plot.Embed(charts.MonthlyChart(v.Monthly, p))},
			{Title: fmt.Sprintf("2. %s - Seasonal Patterns (Monthly Averages)", p), Chart: plot.Embed(charts.SeasonalChart(v.Seasonal, p))},
			{Title: fmt.Sprintf("3. %s - Urban vs Suburban Comparison", p), Chart: plot.Embed(charts.AreaChart(v.Areas, p))},
			{Title: fmt.Sprintf("4. %s - Annual Averages by Station", p), Chart: plot.Embed(charts.AnnualChart(v.Annual, p))},
			{Title: fmt.Sprintf("%s Distribution Across Stations", p), Chart: plot.Embed(charts.StationMapChart(v.Map))},
		},
	}
	for _, name := range v.Selected {
		data.Selected[name] = true
	}
	seen := make(map[string]bool)
	for _, section := range data.Sections {
		for _, src := range section.Chart.Scripts {
			if !seen[src] {
				seen[src] = true
				data.Scripts = append(data.Scripts, src)
			}
		}
	}

	var buf bytes.Buffer
	if err := dashboardPage.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render dashboard: %w", err)
	}
	return buf.Bytes(), nil
}
