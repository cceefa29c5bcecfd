package report

import (
	"bytes"
	"fmt"
	"html/template"
	"math"

	"github.com/jedib0t/go-pretty/v6/table"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; margin: 2rem; color: #222; }
h1 { margin-bottom: 0; }
h2 { border-bottom: 1px solid #ddd; padding-bottom: .3rem; margin-top: 2rem; }
.meta { color: #777; }
table { border-collapse: collapse; margin: .5rem 0 1rem; font-size: 13px; }
th, td { border: 1px solid #ddd; padding: 4px 8px; text-align: right; }
th { background: #f4f4f4; }
td:first-child, th:first-child { text-align: left; }
.hist { display: flex; align-items: flex-end; height: 60px; gap: 2px; margin-bottom: 1rem; }
.hist div { background: #4c78a8; width: 18px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">Generated {{.Generated}}</p>

<h2>Overview</h2>
{{.Overview}}

<h2>Variables</h2>
{{.Variables}}

<h2>Distributions</h2>
{{range .Distributions}}
<h3>{{.Name}}</h3>
{{.Stats}}
<div class="hist" title="{{.Name}} histogram">{{range .Bars}}<div style="height: {{.Height}}%" title="{{.Label}}"></div>{{end}}</div>
{{end}}

<h2>Categories</h2>
{{range .Categories}}
<h3>{{.Name}}</h3>
{{.Table}}
{{end}}

<h2>Missing values</h2>
{{.Missing}}

<h2>Correlations</h2>
{{if .Correlations}}{{.Correlations}}{{else}}<p>Not enough numeric columns.</p>{{end}}

<h2>Sample</h2>
{{.Sample}}
</body>
</html>
`

var page = template.Must(template.New("report").Parse(pageTemplate))

type bar struct {
	Height float64
	Label  string
}

type distribution struct {
	Name  string
	Stats template.HTML
	Bars  []bar
}

type category struct {
	Name  string
	Table template.HTML
}

type pageData struct {
	Title         string
	Generated     string
	Overview      template.HTML
	Variables     template.HTML
	Distributions []distribution
	Categories    []category
	Missing       template.HTML
	Correlations  template.HTML
	Sample        template.HTML
}

// RenderHTML renders rep as a self-contained HTML document.
func RenderHTML(rep *Report) ([]byte, error) {
	data := pageData{
		Title:     rep.Title,
		Generated: rep.GeneratedAt.Format("2006-01-02 15:04:05"),
		Overview:  htmlTable(overviewTable(rep)),
		Variables: htmlTable(variablesTable(rep)),
		Missing:   htmlTable(missingTable(rep)),
		Sample:    htmlTable(sampleTable(rep)),
	}
	if rep.Correlations != nil {
		data.Correlations = htmlTable(correlationTable(rep.Correlations))
	}
	for _, c := range rep.Columns {
		switch c.Kind {
		case KindNumeric:
			if c.Stats == nil {
				continue
			}
			data.Distributions = append(data.Distributions, distribution{
				Name:  c.Name,
				Stats: htmlTable(statsTable(c)),
				Bars:  bars(c.Histogram),
			})
		case KindCategorical:
			data.Categories = append(data.Categories, category{Name: c.Name, Table: htmlTable(topValuesTable(c))})
		}
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

// htmlTable renders t as HTML. go-pretty escapes the cell text.
func htmlTable(t table.Writer) template.HTML {
	t.SetStyle(table.StyleDefault)
	return template.HTML(t.RenderHTML())
}

func overviewTable(rep *Report) table.Writer {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Metric", "Value"})
	cells := rep.Rows * len(rep.Columns)
	t.AppendRows([]table.Row{
		{"Rows", rep.Rows},
		{"Columns", len(rep.Columns)},
		{"Missing cells", rep.MissingCells},
		{"Missing cells (%)", fmt.Sprintf("%.2f", percent(rep.MissingCells, cells))},
	})
	for _, c := range rep.Columns {
		if c.Kind == KindDatetime && c.Count > 0 {
			t.AppendRow(table.Row{"First timestamp", c.First.Format("2006-01-02 15:04:05")})
			t.AppendRow(table.Row{"Last timestamp", c.Last.Format("2006-01-02 15:04:05")})
		}
	}
	return t
}

func variablesTable(rep *Report) table.Writer {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Column", "Kind", "Count", "Missing", "Unique"})
	for _, c := range rep.Columns {
		t.AppendRow(table.Row{c.Name, c.Kind, c.Count, c.Missing, c.Unique})
	}
	return t
}

func statsTable(c ColumnSummary) table.Writer {
	s := c.Stats
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Mean", "Std", "Min", "1%", "25%", "Median", "75%", "99%", "Max", "IQR", "Outliers"})
	t.AppendRow(table.Row{
		s.Average, s.Std, s.Min, s.Quantiles[0.01], s.Quantiles[0.25], s.Median,
		s.Quantiles[0.75], s.Quantiles[0.99], s.Max, s.IQR, s.Outliers,
	})
	return t
}

func topValuesTable(c ColumnSummary) table.Writer {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Value", "Count", "%"})
	for _, v := range c.TopValues {
		t.AppendRow(table.Row{v.Value, v.Count, fmt.Sprintf("%.2f", v.Percent)})
	}
	return t
}

func missingTable(rep *Report) table.Writer {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Column", "Missing", "Missing (%)"})
	for _, c := range rep.Columns {
		t.AppendRow(table.Row{c.Name, c.Missing, fmt.Sprintf("%.2f", c.MissingPct)})
	}
	return t
}

func correlationTable(m *CorrMatrix) table.Writer {
	t := table.NewWriter()
	header := table.Row{""}
	for _, name := range m.Columns {
		header = append(header, name)
	}
	t.AppendHeader(header)
	for i, name := range m.Columns {
		row := table.Row{name}
		for _, v := range m.Values[i] {
			if math.IsNaN(v) {
				row = append(row, "")
				continue
			}
			row = append(row, fmt.Sprintf("%.2f", v))
		}
		t.AppendRow(row)
	}
	return t
}

func sampleTable(rep *Report) table.Writer {
	t := table.NewWriter()
	header := table.Row{}
	for _, h := range rep.SampleHeader {
		header = append(header, h)
	}
	t.AppendHeader(header)
	for _, sample := range rep.Samples {
		row := table.Row{}
		for _, v := range sample {
			row = append(row, v)
		}
		t.AppendRow(row)
	}
	return t
}

func bars(bins []Bin) []bar {
	max := 0
	for _, b := range bins {
		if b.Count > max {
			max = b.Count
		}
	}
	result := make([]bar, 0, len(bins))
	for _, b := range bins {
		height := 0.0
		if max > 0 {
			height = roundToTwo(float64(b.Count) * 100 / float64(max))
		}
		result = append(result, bar{
			Height: height,
			Label:  fmt.Sprintf("%.2f - %.2f: %d", b.RangeStart, b.RangeEnd, b.Count),
		})
	}
	return result
}
