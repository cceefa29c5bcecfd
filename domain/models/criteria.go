package models

import (
	"strings"
	"time"
)

// AllStationsLabel is the wildcard entry of the station selector.
const AllStationsLabel = "All"

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: truncateDay(start), End: truncateDay(end)}
}

// Contains reports whether t falls on a day between Start and End, both included.
// A range with Start after End contains nothing.
func (r DateRange) Contains(t time.Time) bool {
	if r.Start.After(r.End) {
		return false
	}
	upper := r.End.AddDate(0, 0, 1)
	return !t.Before(r.Start) && t.Before(upper)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StationSelection is either the "All" wildcard or an explicit set of station names.
type StationSelection struct {
	all   bool
	names map[string]struct{}
}

func AllStations() StationSelection {
	return StationSelection{all: true}
}

func SelectStations(names ...string) StationSelection {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return StationSelection{names: set}
}

// ParseStationSelection builds a selection from user input. An empty list or a list
// containing "All" means no station filter.
func ParseStationSelection(values []string) StationSelection {
	var names []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if strings.EqualFold(part, AllStationsLabel) {
				return AllStations()
			}
			names = append(names, part)
		}
	}
	if len(names) == 0 {
		return AllStations()
	}
	return SelectStations(names...)
}

func (s StationSelection) IsAll() bool {
	return s.all
}

func (s StationSelection) Match(station string) bool {
	if s.all {
		return true
	}
	_, ok := s.names[station]
	return ok
}

// Names returns the explicit names, nil for the wildcard.
func (s StationSelection) Names() []string {
	if s.all {
		return nil
	}
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	return out
}
