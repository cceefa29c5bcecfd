package report

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tegar-ganang/air-quality-dicoding/dataset"
	"github.com/tegar-ganang/air-quality-dicoding/domain/models"
)

const sampleCSV = `datetime,PM2.5,PM10,SO2,NO2,CO,O3,TEMP,wd,station,area_type
2013-03-01 00:00:00,4,8,4,7,300,77,-0.7,NNW,Aotizhongxin,Urban
2013-03-01 01:00:00,8,16,4,7,300,77,-1.1,N,Aotizhongxin,Urban
2013-03-01 02:00:00,NA,24,5,10,400,NA,-1.1,NW,Dongsi,Urban
2013-03-01 03:00:00,16,32,11,14,500,80,,,Huairou,Suburban
`

func loadSample(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	return ds
}

func findColumn(rep *Report, name string) ColumnSummary {
	for _, c := range rep.Columns {
		if c.Name == name {
			return c
		}
	}
	return ColumnSummary{}
}

func TestAnalyzeNumbers(t *testing.T) {
	stats := AnalyzeNumbers([]float64{1, 2, 3, 4, 100})
	require.NotNil(t, stats)
	assert.Equal(t, 5, stats.Count)
	assert.Equal(t, 22.0, stats.Average)
	assert.Equal(t, 3.0, stats.Median)
	assert.Equal(t, 1.0, stats.Min)
	assert.Equal(t, 100.0, stats.Max)
	assert.Equal(t, 2.0, stats.Quantiles[0.25])
	assert.Equal(t, 4.0, stats.Quantiles[0.75])
	assert.Equal(t, 2.0, stats.IQR)
	assert.Equal(t, 1, stats.Outliers)
	assert.Equal(t, 43.62, stats.Std)

	assert.Nil(t, AnalyzeNumbers(nil))
}

func TestHistogram(t *testing.T) {
	bins := histogram([]float64{0, 1, 2, 3, 10}, 5)
	require.Len(t, bins, 5)
	assert.Equal(t, 2, bins[0].Count)
	assert.Equal(t, 2, bins[1].Count)
	assert.Equal(t, 1, bins[4].Count)
	assert.Equal(t, 10.0, bins[4].RangeEnd)

	single := histogram([]float64{5, 5}, 10)
	require.Len(t, single, 1)
	assert.Equal(t, 2, single[0].Count)

	skipped := histogram([]float64{10, 20, math.Inf(1), math.Inf(-1), math.NaN()}, 2)
	require.Len(t, skipped, 2)
	assert.Equal(t, 1, skipped[0].Count)
	assert.Equal(t, 1, skipped[1].Count)
	assert.Equal(t, 20.0, skipped[1].RangeEnd)

	assert.Nil(t, histogram([]float64{math.Inf(1)}, 10))
}

func TestBuildWithInfiniteLevel(t *testing.T) {
	rows := make([]models.Reading, 3)
	for i, v := range []float64{10, 20, math.Inf(1)} {
		rows[i] = models.Reading{
			Timestamp: time.Date(2014, 1, i+1, 0, 0, 0, 0, time.UTC),
			Station:   "Dongsi",
			AreaType:  models.Urban,
		}
		for j := range rows[i].Levels {
			rows[i].Levels[j] = math.NaN()
		}
		rows[i].Levels[models.PM25.Index()] = v
	}

	var rep *Report
	require.NotPanics(t, func() { rep = Build(nil, rows, time.Now()) })
	pm := findColumn(rep, "PM2.5")
	assert.Equal(t, 2, pm.Count)
	assert.Equal(t, 1, pm.Missing)
	require.NotNil(t, pm.Stats)
	assert.Equal(t, 15.0, pm.Stats.Average)
}

func TestPearson(t *testing.T) {
	assert.InDelta(t, 1.0, pearson([]float64{1, 2, 3}, []float64{2, 4, 6}), 1e-9)
	assert.InDelta(t, -1.0, pearson([]float64{1, 2, 3}, []float64{3, 2, 1}), 1e-9)
	assert.InDelta(t, 1.0, pearson([]float64{1, math.NaN(), 3, 4}, []float64{1, 100, 3, 4}), 1e-9)
	assert.True(t, math.IsNaN(pearson([]float64{1, 1, 1}, []float64{1, 2, 3})))
}

func TestBuild(t *testing.T) {
	ds := loadSample(t)
	rep := Build(ds, ds.Readings, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 4, rep.Rows)

	dt := findColumn(rep, "datetime")
	assert.Equal(t, KindDatetime, dt.Kind)
	assert.Equal(t, time.Date(2013, 3, 1, 3, 0, 0, 0, time.UTC), dt.Last)

	pm := findColumn(rep, "PM2.5")
	assert.Equal(t, KindNumeric, pm.Kind)
	assert.Equal(t, 3, pm.Count)
	assert.Equal(t, 1, pm.Missing)
	assert.Equal(t, 25.0, pm.MissingPct)
	require.NotNil(t, pm.Stats)
	assert.Equal(t, 9.33, pm.Stats.Average)

	station := findColumn(rep, "station")
	assert.Equal(t, KindCategorical, station.Kind)
	assert.Equal(t, 3, station.Unique)
	require.NotEmpty(t, station.TopValues)
	assert.Equal(t, "Aotizhongxin", station.TopValues[0].Value)
	assert.Equal(t, 2, station.TopValues[0].Count)

	wd := findColumn(rep, "wd")
	assert.Equal(t, KindCategorical, wd.Kind)
	assert.Equal(t, 1, wd.Missing)

	temp := findColumn(rep, "TEMP")
	assert.Equal(t, KindNumeric, temp.Kind)
	assert.Equal(t, 1, temp.Missing)

	require.NotNil(t, rep.Correlations)
	idx := map[string]int{}
	for i, name := range rep.Correlations.Columns {
		idx[name] = i
	}
	assert.InDelta(t, 1.0, rep.Correlations.Values[idx["PM2.5"]][idx["PM10"]], 1e-9)

	assert.Len(t, rep.Samples, 4)
	assert.Equal(t, "datetime", rep.SampleHeader[0])
	assert.Contains(t, rep.SampleHeader, "TEMP")
}

func TestBuildEmpty(t *testing.T) {
	ds := loadSample(t)
	rep := Build(ds, nil, time.Now())
	assert.Equal(t, 0, rep.Rows)
	assert.Empty(t, rep.Samples)

	content, err := RenderHTML(rep)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<html")
}

func TestRenderHTML(t *testing.T) {
	ds := loadSample(t)
	content, err := RenderHTML(Build(ds, ds.Readings, time.Now()))
	require.NoError(t, err)
	html := string(content)
	assert.Contains(t, html, "Air Quality EDA Report")
	assert.Contains(t, html, "<table")
	assert.Contains(t, html, "Correlations")
	assert.Contains(t, html, "Aotizhongxin")
	assert.Contains(t, html, "Missing values")
}

func TestGeneratorOverwrites(t *testing.T) {
	ds := loadSample(t)
	path := filepath.Join(t.TempDir(), "out", DefaultFileName)
	g := NewGenerator(path)
	assert.Equal(t, path, g.Path())

	_, err := g.Generate(ds, ds.Readings)
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(first), "Huairou")

	_, err = g.Generate(ds, ds.Readings[:1])
	require.NoError(t, err)
	second, err := g.Read()
	require.NoError(t, err)
	assert.NotContains(t, string(second), "Huairou")
}

func TestNewGeneratorDefaultPath(t *testing.T) {
	assert.Equal(t, DefaultFileName, NewGenerator("").Path())
}
