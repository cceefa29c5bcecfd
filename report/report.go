// Package report builds the exploratory data analysis document for a set of readings.
package report

import (
	"math"
	"sort"
	"time"

	"github.com/tegar-ganang/air-quality-dicoding/dataset"
	"github.com/tegar-ganang/air-quality-dicoding/domain/models"
)

const (
	KindNumeric     = "numeric"
	KindDatetime    = "datetime"
	KindCategorical = "categorical"

	histogramBins = 10
	topValues     = 10
	sampleRows    = 5
)

type CategoryCount struct {
	Value   string
	Count   int
	Percent float64
}

// ColumnSummary describes one column of the analyzed rows.
type ColumnSummary struct {
	Name       string
	Kind       string
	Count      int
	Missing    int
	MissingPct float64
	Unique     int
	Stats      *NumberStats
	Histogram  []Bin
	TopValues  []CategoryCount
	First      time.Time
	Last       time.Time
}

type Report struct {
	Title        string
	GeneratedAt  time.Time
	Rows         int
	Columns      []ColumnSummary
	MissingCells int
	Correlations *CorrMatrix
	SampleHeader []string
	Samples      [][]string
}

// column is the internal column-wise view used while building a report.
type column struct {
	name    string
	numeric []float64
	text    []string
}

// Build computes the report over rows. ds supplies the auxiliary columns and may be nil.
func Build(ds *dataset.Dataset, rows []models.Reading, now time.Time) *Report {
	if ds == nil {
		ds = &dataset.Dataset{}
	}
	rep := &Report{
		Title:       "Air Quality EDA Report",
		GeneratedAt: now,
		Rows:        len(rows),
	}

	rep.Columns = append(rep.Columns, datetimeSummary(rows))

	cols := extractColumns(ds, rows)
	var corrNames []string
	var corrSeries [][]float64
	for _, c := range cols {
		var summary ColumnSummary
		if c.text == nil {
			summary = numericSummary(c.name, c.numeric, len(rows))
			corrNames = append(corrNames, c.name)
			corrSeries = append(corrSeries, c.numeric)
		} else {
			summary = categoricalSummary(c.name, c.text)
		}
		rep.MissingCells += summary.Missing
		rep.Columns = append(rep.Columns, summary)
	}
	rep.Correlations = correlations(corrNames, corrSeries)

	rep.SampleHeader, rep.Samples = ds.Table(dataset.Head(rows, sampleRows))
	return rep
}

func extractColumns(ds *dataset.Dataset, rows []models.Reading) []column {
	station := column{name: "station", text: make([]string, len(rows))}
	area := column{name: "area_type", text: make([]string, len(rows))}
	for i, r := range rows {
		station.text[i] = r.Station
		area.text[i] = string(r.AreaType)
	}
	cols := []column{station, area}

	for _, p := range models.Pollutants {
		c := column{name: p.String(), numeric: make([]float64, len(rows))}
		for i, r := range rows {
			c.numeric[i] = r.Levels[p.Index()]
		}
		cols = append(cols, c)
	}

	for _, aux := range ds.Aux {
		c := column{name: aux.Name}
		if aux.Numeric {
			c.numeric = make([]float64, len(rows))
			for i, r := range rows {
				c.numeric[i] = math.NaN()
				if r.Row < len(aux.Values) {
					c.numeric[i] = aux.Values[r.Row]
				}
			}
		} else {
			c.text = make([]string, len(rows))
			for i, r := range rows {
				c.text[i] = ds.AuxValue(r, aux)
			}
		}
		cols = append(cols, c)
	}
	return cols
}

func datetimeSummary(rows []models.Reading) ColumnSummary {
	s := ColumnSummary{Name: "datetime", Kind: KindDatetime, Count: len(rows)}
	unique := make(map[time.Time]struct{})
	for i, r := range rows {
		if i == 0 || r.Timestamp.Before(s.First) {
			s.First = r.Timestamp
		}
		if i == 0 || r.Timestamp.After(s.Last) {
			s.Last = r.Timestamp
		}
		unique[r.Timestamp] = struct{}{}
	}
	s.Unique = len(unique)
	return s
}

func numericSummary(name string, values []float64, total int) ColumnSummary {
	s := ColumnSummary{Name: name, Kind: KindNumeric}
	present := make([]float64, 0, len(values))
	unique := make(map[float64]struct{})
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		present = append(present, v)
		unique[v] = struct{}{}
	}
	s.Count = len(present)
	s.Missing = total - len(present)
	s.MissingPct = percent(s.Missing, total)
	s.Unique = len(unique)
	s.Stats = AnalyzeNumbers(present)
	s.Histogram = histogram(present, histogramBins)
	return s
}

func categoricalSummary(name string, values []string) ColumnSummary {
	s := ColumnSummary{Name: name, Kind: KindCategorical}
	counts := make(map[string]int)
	for _, v := range values {
		if v == "" {
			s.Missing++
			continue
		}
		counts[v]++
		s.Count++
	}
	s.MissingPct = percent(s.Missing, len(values))
	s.Unique = len(counts)

	for v, c := range counts {
		s.TopValues = append(s.TopValues, CategoryCount{Value: v, Count: c, Percent: percent(c, s.Count)})
	}
	sort.Slice(s.TopValues, func(i, j int) bool {
		if s.TopValues[i].Count != s.TopValues[j].Count {
			return s.TopValues[i].Count > s.TopValues[j].Count
		}
		return s.TopValues[i].Value < s.TopValues[j].Value
	})
	if len(s.TopValues) > topValues {
		s.TopValues = s.TopValues[:topValues]
	}
	return s
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return roundToTwo(float64(part) * 100 / float64(total))
}
