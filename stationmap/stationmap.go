// Package stationmap turns per-station averages into colored map markers.
package stationmap

import (
	"fmt"

	"github.com/tegar-ganang/air-quality-dicoding/domain/models"
)

const (
	CenterLatitude  = 39.9042
	CenterLongitude = 116.4074
	DefaultZoom     = 10
	MarkerRadius    = 10
	FillOpacity     = 0.7
)

// Lookup is the part of the station registry the renderer needs.
type Lookup interface {
	Get(name string) (models.Station, bool)
}

type Marker struct {
	Station     string          `json:"station"`
	Latitude    float64         `json:"latitude"`
	Longitude   float64         `json:"longitude"`
	Value       float64         `json:"value"`
	Severity    models.Severity `json:"severity"`
	Color       string          `json:"color"`
	Popup       string          `json:"popup"`
	Radius      int             `json:"radius"`
	FillOpacity float64         `json:"fill_opacity"`
}

type Map struct {
	Pollutant models.Pollutant `json:"pollutant"`
	Latitude  float64          `json:"latitude"`
	Longitude float64          `json:"longitude"`
	Zoom      int              `json:"zoom"`
	Markers   []Marker         `json:"markers"`
}

// Render builds one marker per average whose station is known to reg; the others are
// skipped.
func Render(averages []models.StationMean, reg Lookup, p models.Pollutant) Map {
	m := Map{
		Pollutant: p,
		Latitude:  CenterLatitude,
		Longitude: CenterLongitude,
		Zoom:      DefaultZoom,
		Markers:   make([]Marker, 0, len(averages)),
	}
	for _, avg := range averages {
		station, ok := reg.Get(avg.Station)
		if !ok {
			continue
		}
		severity := models.SeverityFor(avg.Mean)
		m.Markers = append(m.Markers, Marker{
			Station:     avg.Station,
			Latitude:    station.Latitude,
			Longitude:   station.Longitude,
			Value:       avg.Mean,
			Severity:    severity,
			Color:       severity.Color(),
			Popup:       Popup(avg.Station, p, avg.Mean),
			Radius:      MarkerRadius,
			FillOpacity: FillOpacity,
		})
	}
	return m
}

// Popup is the marker text. The unit is always µg/m³, CO included.
func Popup(station string, p models.Pollutant, value float64) string {
	return fmt.Sprintf("%s - %s: %.2f µg/m³", station, p, value)
}

// BySeverity groups markers by tier, keeping their order.
func (m Map) BySeverity() map[models.Severity][]Marker {
	groups := make(map[models.Severity][]Marker)
	for _, marker := range m.Markers {
		groups[marker.Severity] = append(groups[marker.Severity], marker)
	}
	return groups
}
