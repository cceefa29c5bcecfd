package dataset

import (
	"archive/zip"
	"compress/gzip"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pierrec/lz4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tegar-ganang/air-quality-dicoding/domain/models"
)

const sampleCSV = `No,datetime,PM2.5,PM10,SO2,NO2,CO,O3,TEMP,wd,station,area_type
1,2013-03-01 02:00:00,7,7,11,14,300,77,-1.1,NW,Dongsi,Urban
2,2013-03-01 00:00:00,4,4,4,7,300,77,-0.7,NNW,Aotizhongxin,Urban
3,2013-03-01 01:00:00,NA,8,,NA,300,NA,-1.0,N,Huairou,Suburban
4,2013-03-01 01:00:00,9,10,5,12,200,80,NA,N,Unknown,Urban
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadSortsAndParses(t *testing.T) {
	ds, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	require.Len(t, ds.Readings, 3)
	assert.Equal(t, 1, ds.Skipped)
	assert.False(t, ds.AreaFromRegistry)

	assert.Equal(t, "Aotizhongxin", ds.Readings[0].Station)
	assert.Equal(t, "Huairou", ds.Readings[1].Station)
	assert.Equal(t, "Dongsi", ds.Readings[2].Station)
	assert.Equal(t, time.Date(2013, 3, 1, 0, 0, 0, 0, time.UTC), ds.Readings[0].Timestamp)

	huairou := ds.Readings[1]
	assert.Equal(t, models.Suburban, huairou.AreaType)
	assert.True(t, math.IsNaN(huairou.Levels[models.PM25.Index()]))
	assert.True(t, math.IsNaN(huairou.Levels[models.SO2.Index()]))
	v, ok := huairou.Level(models.PM10)
	assert.True(t, ok)
	assert.Equal(t, 8.0, v)

	start, end, ok := ds.Span()
	require.True(t, ok)
	assert.Equal(t, time.Date(2013, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2013, 3, 1, 2, 0, 0, 0, time.UTC), end)
}

func TestReadAuxColumns(t *testing.T) {
	ds, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	names := make([]string, 0, len(ds.Aux))
	for _, c := range ds.Aux {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"No", "TEMP", "wd"}, names)

	temp := ds.Aux[1]
	assert.True(t, temp.Numeric)
	wd := ds.Aux[2]
	assert.False(t, wd.Numeric)

	dongsi := ds.Readings[2]
	assert.Equal(t, "-1.1", ds.AuxValue(dongsi, temp))
	assert.Equal(t, "NW", ds.AuxValue(dongsi, wd))
}

func TestReadAreaFromRegistry(t *testing.T) {
	csvData := "datetime,station,PM2.5,PM10,SO2,NO2,CO,O3\n2014-01-01 00:00:00,Shunyi,1,2,3,4,5,6\n"
	ds, err := Read(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, ds.Readings, 1)
	assert.True(t, ds.AreaFromRegistry)
	assert.Equal(t, models.Suburban, ds.Readings[0].AreaType)
}

func TestReadMissingColumn(t *testing.T) {
	csvData := "datetime,station,PM2.5,PM10,SO2,NO2,CO\n2014-01-01 00:00:00,Shunyi,1,2,3,4,5\n"
	_, err := Read(strings.NewReader(csvData))
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "o3")

	_, err = Read(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestReadBadTimestamp(t *testing.T) {
	csvData := "datetime,station,PM2.5,PM10,SO2,NO2,CO,O3\nyesterday,Shunyi,1,2,3,4,5,6\n"
	_, err := Read(strings.NewReader(csvData))
	assert.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadCompressed(t *testing.T) {
	dir := t.TempDir()

	gzPath := filepath.Join(dir, "data.csv.gz")
	f, err := os.Create(gzPath)
	require.NoError(t, err)
	gw := gzip.NewWriter(f)
	_, err = gw.Write([]byte(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())

	lzPath := filepath.Join(dir, "data.csv.lz4")
	f, err = os.Create(lzPath)
	require.NoError(t, err)
	lw := lz4.NewWriter(f)
	_, err = lw.Write([]byte(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, lw.Close())
	require.NoError(t, f.Close())

	zipPath := filepath.Join(dir, "data.zip")
	f, err = os.Create(zipPath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	small, err := zw.Create("readme.txt")
	require.NoError(t, err)
	_, err = small.Write([]byte("x"))
	require.NoError(t, err)
	big, err := zw.Create("main_data.csv")
	require.NoError(t, err)
	_, err = big.Write([]byte(sampleCSV))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	for _, path := range []string{gzPath, lzPath, zipPath} {
		ds, err := Load(path)
		require.NoError(t, err, path)
		assert.Len(t, ds.Readings, 3, path)
		assert.Equal(t, path, ds.Path)
		_, err = os.Stat(path)
		assert.NoError(t, err, "archive must be kept")
	}
}

func TestHeaderNormalization(t *testing.T) {
	assert.Equal(t, "pm2_5", headerKey(" PM2.5 "))
	assert.Equal(t, "area_type", headerKey("Area Type"))
	assert.Equal(t, "datetime", headerKey("DateTime"))
	assert.Equal(t, "station", headerKey("Stâtion"))

	assert.Equal(t, []string{"a", "a_1", "column_3", "a_2"}, validateHeaders([]string{"a", "a", "", "a"}))
}

func TestParseLevel(t *testing.T) {
	for _, missing := range []string{"", "NA", "nan", " null ", "inf", "+Inf", "-inf", "Infinity", "NaN"} {
		_, ok := parseLevel(missing)
		assert.False(t, ok, missing)
	}
	v, ok := parseLevel(" 12.5 ")
	assert.True(t, ok)
	assert.Equal(t, 12.5, v)
}

func TestReadTreatsNonFiniteAsMissing(t *testing.T) {
	const csv = `datetime,station,PM2.5,PM10,SO2,NO2,CO,O3,TEMP
2014-01-01 00:00:00,Dongsi,inf,nan,+Inf,Infinity,-inf,5,inf
2014-01-01 01:00:00,Dongsi,10,20,NaN,3,4,5,1.5
`
	ds, err := Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, ds.Readings, 2)

	first := ds.Readings[0]
	for _, p := range []models.Pollutant{models.PM25, models.PM10, models.SO2, models.NO2, models.CO} {
		_, ok := first.Level(p)
		assert.False(t, ok, p.String())
	}
	v, ok := first.Level(models.O3)
	assert.True(t, ok)
	assert.Equal(t, 5.0, v)

	_, ok = ds.Readings[1].Level(models.SO2)
	assert.False(t, ok)

	require.Len(t, ds.Aux, 1)
	temp := ds.Aux[0]
	assert.True(t, temp.Numeric)
	assert.True(t, math.IsNaN(temp.Values[0]))
	assert.Equal(t, 1.5, temp.Values[1])
}
