package models

import "time"

// SeriesPoint is one bucket of a monthly series. Value is nil when the bucket has no data.
type SeriesPoint struct {
	Label string    `json:"label"`
	Time  time.Time `json:"time"`
	Value *float64  `json:"value"`
}

type SeasonalPoint struct {
	Month time.Month `json:"month"`
	Label string     `json:"label"`
	Value *float64   `json:"value"`
}

type StationSeries struct {
	Station string     `json:"station"`
	Values  []*float64 `json:"values"`
}

// AnnualTable holds one series per station over the same list of years.
type AnnualTable struct {
	Years  []int           `json:"years"`
	Series []StationSeries `json:"series"`
}

// AreaComparison aligns the Urban and Suburban monthly means on one month axis.
type AreaComparison struct {
	Months   []time.Time `json:"months"`
	Urban    []*float64  `json:"urban"`
	Suburban []*float64  `json:"suburban"`
}

// MonthLabel formats a month bucket the way every series axis shows it.
func MonthLabel(t time.Time) string {
	return t.Format("2006-01")
}

type StationMean struct {
	Station string  `json:"station"`
	Mean    float64 `json:"mean"`
}

type Classification struct {
	Good []StationMean `json:"good"`
	Bad  []StationMean `json:"bad"`
}

type Extremes struct {
	Best  StationMean `json:"best"`
	Worst StationMean `json:"worst"`
	OK    bool        `json:"ok"`
}

// Float returns a pointer to v, used for optional aggregate values.
func Float(v float64) *float64 {
	return &v
}
