package main

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/tegar-ganang/air-quality-dicoding/aggregate"
	"github.com/tegar-ganang/air-quality-dicoding/dataset"
	"github.com/tegar-ganang/air-quality-dicoding/domain/models"
	"github.com/tegar-ganang/air-quality-dicoding/stationmap"
	"github.com/tegar-ganang/air-quality-dicoding/stations"
)

const (
	dashboardTitle = "Air Quality Monitoring Dashboard 🌍"
	dateLayout     = "2006-01-02"
	previewRows    = 100

	deltaGood = "good"
	deltaBad  = "bad"
)

// ViewRequest is the sidebar state: pollutant, optional date bounds, stations and the
// ranking policy.
type ViewRequest struct {
	Pollutant models.Pollutant
	Start     *time.Time
	End       *time.Time
	Stations  models.StationSelection
	Policy    aggregate.RankingPolicy
}

func defaultViewRequest() ViewRequest {
	return ViewRequest{
		Pollutant: models.PM25,
		Stations:  models.AllStations(),
		Policy:    aggregate.PolicyThresholds,
	}
}

// ParseViewRequest reads pollutant, start, end, station and policy query parameters.
// Absent parameters fall back to PM2.5, the whole dataset span, all stations and the
// threshold policy.
func ParseViewRequest(q url.Values) (ViewRequest, error) {
	req := defaultViewRequest()

	if v := q.Get("pollutant"); v != "" {
		p, err := models.ParsePollutant(v)
		if err != nil {
			return req, badRequest(ErrorCodeInvalidPollutant, err)
		}
		req.Pollutant = p
	}
	for _, bound := range []struct {
		key string
		dst **time.Time
	}{{"start", &req.Start}, {"end", &req.End}} {
		v := strings.TrimSpace(q.Get(bound.key))
		if v == "" {
			continue
		}
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return req, badRequest(ErrorCodeInvalidDate, fmt.Errorf("%s: expected YYYY-MM-DD, got %q", bound.key, v))
		}
		*bound.dst = &t
	}
	req.Stations = models.ParseStationSelection(q["station"])
	if v := q.Get("policy"); v != "" {
		policy, err := aggregate.ParsePolicy(v)
		if err != nil {
			return req, badRequest(ErrorCodeInvalidPolicy, err)
		}
		req.Policy = policy
	}
	return req, nil
}

// Query encodes req back into URL parameters.
func (r ViewRequest) Query() url.Values {
	q := url.Values{}
	q.Set("pollutant", r.Pollutant.String())
	if r.Start != nil {
		q.Set("start", r.Start.Format(dateLayout))
	}
	if r.End != nil {
		q.Set("end", r.End.Format(dateLayout))
	}
	for _, name := range r.Stations.Names() {
		q.Add("station", name)
	}
	q.Set("policy", string(r.Policy))
	return q
}

// Metric is a scalar display: label, value and a qualitative delta tag.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Delta string `json:"delta"`
}

type Preview struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// View is everything the dashboard shows for one ViewRequest.
type View struct {
	Title          string                  `json:"title"`
	Pollutant      models.Pollutant        `json:"pollutant"`
	Unit           string                  `json:"unit"`
	Pollutants     []models.Pollutant      `json:"pollutants"`
	Start          string                  `json:"start"`
	End            string                  `json:"end"`
	StationOptions []string                `json:"station_options"`
	Selected       []string                `json:"selected"`
	Policy         aggregate.RankingPolicy `json:"policy"`
	Rows           int                     `json:"rows"`
	Monthly        []models.SeriesPoint    `json:"monthly"`
	Seasonal       []models.SeasonalPoint  `json:"seasonal"`
	Annual         models.AnnualTable      `json:"annual"`
	Areas          models.AreaComparison   `json:"areas"`
	Means          []models.StationMean    `json:"means"`
	Ranking        aggregate.Ranking       `json:"ranking"`
	Metrics        []Metric                `json:"metrics"`
	Map            stationmap.Map          `json:"map"`
	Preview        Preview                 `json:"preview"`
}

// effectiveRange resolves the optional bounds of req against the dataset span.
func effectiveRange(ds *dataset.Dataset, req ViewRequest) models.DateRange {
	start, end, _ := ds.Span()
	if req.Start != nil {
		start = *req.Start
	}
	if req.End != nil {
		end = *req.End
	}
	return models.NewDateRange(start, end)
}

// BuildView filters the dataset and computes every dashboard section. It has no side
// effects.
func BuildView(ds *dataset.Dataset, reg *stations.Registry, req ViewRequest) View {
	p := req.Pollutant
	rng := effectiveRange(ds, req)
	rows := dataset.Filter(ds.Readings, rng, req.Stations)

	ranking, err := aggregate.Rank(rows, p, req.Policy)
	if err != nil {
		ranking, _ = aggregate.Rank(rows, p, aggregate.PolicyThresholds)
	}
	v := View{
		Title:          dashboardTitle,
		Pollutant:      p,
		Unit:           p.Unit(),
		Pollutants:     models.Pollutants[:],
		Start:          rng.Start.Format(dateLayout),
		End:            rng.End.Format(dateLayout),
		StationOptions: append([]string{models.AllStationsLabel}, reg.Names()...),
		Selected:       selectedStations(req.Stations),
		Policy:         ranking.Policy,
		Rows:           len(rows),
		Monthly:        aggregate.MonthlyTrend(rows, p),
		Seasonal:       aggregate.Seasonal(rows, p),
		Annual:         aggregate.AnnualByStation(rows, p),
		Areas:          aggregate.CompareAreas(rows, p),
		Means:          ranking.Means,
		Ranking:        ranking,
		Map:            stationmap.Render(ranking.Means, reg, p),
	}
	v.Metrics = metrics(v)
	v.Preview.Header, v.Preview.Rows = ds.Table(dataset.Head(rows, previewRows))
	return v
}

func selectedStations(sel models.StationSelection) []string {
	if sel.IsAll() {
		return []string{models.AllStationsLabel}
	}
	names := sel.Names()
	sort.Strings(names)
	return names
}

// metrics turns the ranking of the selected policy into metric displays.
func metrics(v View) []Metric {
	out := make([]Metric, 0)
	if e := v.Ranking.Extremes; e != nil {
		if !e.OK {
			return out
		}
		return append(out,
			Metric{Label: "Best air quality", Value: formatMean(e.Best), Delta: deltaGood},
			Metric{Label: "Worst air quality", Value: formatMean(e.Worst), Delta: deltaBad},
		)
	}
	if c := v.Ranking.Classification; c != nil {
		for _, m := range c.Good {
			out = append(out, Metric{Label: m.Station, Value: fmt.Sprintf("%.2f", m.Mean), Delta: deltaGood})
		}
		for _, m := range c.Bad {
			out = append(out, Metric{Label: m.Station, Value: fmt.Sprintf("%.2f", m.Mean), Delta: deltaBad})
		}
	}
	return out
}

func formatMean(m models.StationMean) string {
	return fmt.Sprintf("%s/%.2f", m.Station, m.Mean)
}
