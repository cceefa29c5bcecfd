package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePollutant(t *testing.T) {
	cases := map[string]Pollutant{
		"PM2.5": PM25,
		"pm2.5": PM25,
		"pm2_5": PM25,
		"pm25":  PM25,
		" pm10": PM10,
		"co":    CO,
		"O3":    O3,
	}
	for in, want := range cases {
		got, err := ParsePollutant(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParsePollutant("CO2")
	assert.Error(t, err)
}

func TestPollutantUnit(t *testing.T) {
	assert.Equal(t, "mg/m³", CO.Unit())
	assert.Equal(t, "µg/m³", PM25.Unit())
}

func TestReadingLevel(t *testing.T) {
	r := Reading{Levels: [PollutantCount]float64{10, math.NaN(), 3, 4, 5, 6}}
	v, ok := r.Level(PM25)
	assert.True(t, ok)
	assert.Equal(t, 10.0, v)
	_, ok = r.Level(PM10)
	assert.False(t, ok)
	_, ok = r.Level(Pollutant("bogus"))
	assert.False(t, ok)
}

func TestDateRangeContains(t *testing.T) {
	r := NewDateRange(time.Date(2014, 1, 1, 13, 0, 0, 0, time.UTC), time.Date(2014, 1, 2, 0, 0, 0, 0, time.UTC))
	assert.True(t, r.Contains(time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Contains(time.Date(2014, 1, 2, 23, 0, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2014, 1, 3, 0, 0, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2013, 12, 31, 23, 0, 0, 0, time.UTC)))

	inverted := NewDateRange(time.Date(2014, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.False(t, inverted.Contains(time.Date(2014, 1, 15, 0, 0, 0, 0, time.UTC)))
}

func TestParseStationSelection(t *testing.T) {
	assert.True(t, ParseStationSelection(nil).IsAll())
	assert.True(t, ParseStationSelection([]string{"Dongsi", "all"}).IsAll())

	sel := ParseStationSelection([]string{"Dongsi, Tiantan", ""})
	assert.False(t, sel.IsAll())
	assert.True(t, sel.Match("Dongsi"))
	assert.True(t, sel.Match("Tiantan"))
	assert.False(t, sel.Match("Shunyi"))
	assert.ElementsMatch(t, []string{"Dongsi", "Tiantan"}, sel.Names())

	assert.False(t, SelectStations().Match("Dongsi"))
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, SeverityHigh, SeverityFor(100.01))
	assert.Equal(t, SeverityMedium, SeverityFor(100))
	assert.Equal(t, SeverityMedium, SeverityFor(50.01))
	assert.Equal(t, SeverityLow, SeverityFor(50))
	assert.Equal(t, "crimson", SeverityHigh.Color())
	assert.Equal(t, "orange", SeverityMedium.Color())
	assert.Equal(t, "green", SeverityLow.Color())
}

func TestThresholds(t *testing.T) {
	th, ok := ThresholdFor(PM25)
	require.True(t, ok)
	assert.Equal(t, Threshold{Good: 50, Bad: 100}, th)
	th, _ = ThresholdFor(CO)
	assert.Equal(t, Threshold{Good: 4, Bad: 10}, th)
	_, ok = ThresholdFor("TEMP")
	assert.False(t, ok)
}
