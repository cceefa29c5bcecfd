package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type Pollutant string

const (
	PM25 Pollutant = "PM2.5"
	PM10 Pollutant = "PM10"
	SO2  Pollutant = "SO2"
	NO2  Pollutant = "NO2"
	CO   Pollutant = "CO"
	O3   Pollutant = "O3"
)

// PollutantCount is the number of measured pollutants carried by every Reading.
const PollutantCount = 6

// Pollutants lists the pollutants in CSV column order.
var Pollutants = [PollutantCount]Pollutant{PM25, PM10, SO2, NO2, CO, O3}

// Index returns the position of p inside Reading.Levels, or -1.
func (p Pollutant) Index() int {
	for i, v := range Pollutants {
		if v == p {
			return i
		}
	}
	return -1
}

func (p Pollutant) Valid() bool {
	return p.Index() >= 0
}

// Unit is the measurement unit of the pollutant. CO is reported in mg/m³.
func (p Pollutant) Unit() string {
	if p == CO {
		return "mg/m³"
	}
	return "µg/m³"
}

func (p Pollutant) String() string {
	return string(p)
}

// ParsePollutant accepts display names and normalized header spellings (pm2_5, pm25).
func ParsePollutant(s string) (Pollutant, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "_", ".")
	if key == "PM25" {
		key = string(PM25)
	}
	for _, p := range Pollutants {
		if string(p) == key {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown pollutant %q", s)
}

type AreaType string

const (
	Urban    AreaType = "Urban"
	Suburban AreaType = "Suburban"
)

func ParseAreaType(s string) (AreaType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "urban":
		return Urban, nil
	case "suburban":
		return Suburban, nil
	}
	return "", fmt.Errorf("unknown area type %q", s)
}

// Reading is one row of the dataset: a station measurement at a point in time.
type Reading struct {
	Timestamp time.Time
	Station   string
	AreaType  AreaType
	// Levels is indexed by Pollutant.Index(); NaN marks a missing measurement.
	Levels [PollutantCount]float64
	// Row is the position of the record in the source file. Auxiliary columns
	// (TEMP, PRES, wd, ...) are stored column-wise by the dataset and looked up by Row.
	Row int
}

// Level returns the pollutant level and whether it was measured.
func (r Reading) Level(p Pollutant) (float64, bool) {
	i := p.Index()
	if i < 0 {
		return math.NaN(), false
	}
	v := r.Levels[i]
	return v, !math.IsNaN(v)
}

type Station struct {
	Name      string   `json:"name" yaml:"name"`
	Latitude  float64  `json:"latitude" yaml:"latitude"`
	Longitude float64  `json:"longitude" yaml:"longitude"`
	AreaType  AreaType `json:"area_type" yaml:"area_type"`
}
