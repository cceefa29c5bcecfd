package aggregate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tegar-ganang/air-quality-dicoding/domain/models"
)

// RankingPolicy selects how station means are ranked.
type RankingPolicy string

const (
	// PolicyThresholds partitions stations into good and bad lists.
	PolicyThresholds RankingPolicy = "thresholds"
	// PolicyExtremes keeps only the best and the worst station.
	PolicyExtremes RankingPolicy = "extremes"
)

func ParsePolicy(s string) (RankingPolicy, error) {
	switch RankingPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyThresholds:
		return PolicyThresholds, nil
	case PolicyExtremes:
		return PolicyExtremes, nil
	}
	return "", fmt.Errorf("unknown ranking policy %q", s)
}

// Ranking is the outcome of one policy over the station means; only the matching part
// is filled.
type Ranking struct {
	Policy         RankingPolicy          `json:"policy"`
	Means          []models.StationMean   `json:"means"`
	Classification *models.Classification `json:"classification,omitempty"`
	Extremes       *models.Extremes       `json:"extremes,omitempty"`
}

// StationMeans is the mean of p per station, sorted by station name. Stations without
// any measured value are left out.
func StationMeans(readings []models.Reading, p models.Pollutant) []models.StationMean {
	byName := groupMeans(readings, p, byStation)
	means := make([]models.StationMean, 0, len(byName))
	for station, mean := range byName {
		means = append(means, models.StationMean{Station: station, Mean: mean})
	}
	sort.Slice(means, func(i, j int) bool { return means[i].Station < means[j].Station })
	return means
}

// Classify splits means into good (below the pollutant's good threshold, ascending) and
// bad (above its bad threshold, descending). Means in between land in neither list.
func Classify(means []models.StationMean, p models.Pollutant) models.Classification {
	c := models.Classification{Good: []models.StationMean{}, Bad: []models.StationMean{}}
	th, ok := models.ThresholdFor(p)
	if !ok {
		return c
	}
	for _, m := range means {
		switch {
		case m.Mean < th.Good:
			c.Good = append(c.Good, m)
		case m.Mean > th.Bad:
			c.Bad = append(c.Bad, m)
		}
	}
	sort.SliceStable(c.Good, func(i, j int) bool { return c.Good[i].Mean < c.Good[j].Mean })
	sort.SliceStable(c.Bad, func(i, j int) bool { return c.Bad[i].Mean > c.Bad[j].Mean })
	return c
}

// FindExtremes returns the station with the lowest mean as best and the highest as
// worst. On ties the first station in input order wins.
func FindExtremes(means []models.StationMean) models.Extremes {
	if len(means) == 0 {
		return models.Extremes{}
	}
	e := models.Extremes{Best: means[0], Worst: means[0], OK: true}
	for _, m := range means[1:] {
		if m.Mean < e.Best.Mean {
			e.Best = m
		}
		if m.Mean > e.Worst.Mean {
			e.Worst = m
		}
	}
	return e
}

// Rank computes station means and applies the selected policy.
func Rank(readings []models.Reading, p models.Pollutant, policy RankingPolicy) (Ranking, error) {
	means := StationMeans(readings, p)
	switch policy {
	case PolicyThresholds:
		c := Classify(means, p)
		return Ranking{Policy: policy, Means: means, Classification: &c}, nil
	case PolicyExtremes:
		e := FindExtremes(means)
		return Ranking{Policy: policy, Means: means, Extremes: &e}, nil
	}
	return Ranking{}, fmt.Errorf("unknown ranking policy %q", policy)
}
