package models

// Threshold splits station means into good (below Good) and bad (above Bad).
type Threshold struct {
	Good float64 `json:"good"`
	Bad  float64 `json:"bad"`
}

var thresholds = map[Pollutant]Threshold{
	PM25: {Good: 50, Bad: 100},
	PM10: {Good: 75, Bad: 150},
	SO2:  {Good: 20, Bad: 80},
	NO2:  {Good: 40, Bad: 100},
	CO:   {Good: 4, Bad: 10},
	O3:   {Good: 60, Bad: 120},
}

func ThresholdFor(p Pollutant) (Threshold, bool) {
	t, ok := thresholds[p]
	return t, ok
}

// Severity is the map marker tier. Its scale is fixed and does not follow Threshold.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

func SeverityFor(v float64) Severity {
	switch {
	case v > 100:
		return SeverityHigh
	case v > 50:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func (s Severity) Color() string {
	switch s {
	case SeverityHigh:
		return "crimson"
	case SeverityMedium:
		return "orange"
	default:
		return "green"
	}
}
