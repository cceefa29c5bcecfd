package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tegar-ganang/air-quality-dicoding/domain/models"
	"github.com/tegar-ganang/air-quality-dicoding/stations"
)

var (
	ErrMissingColumn = errors.New("missing column")
	ErrParse         = errors.New("parse error")
)

const SEPARATOR = ','

var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Column is an auxiliary column kept column-wise and indexed by Reading.Row.
type Column struct {
	Name    string
	Numeric bool
	Values  []float64
	Text    []string
}

// Dataset is the immutable result of a load.
type Dataset struct {
	Path     string
	Readings []models.Reading
	Aux      []Column
	// Skipped counts rows whose station is not in the registry.
	Skipped int
	// AreaFromRegistry is set when the file has no area_type column.
	AreaFromRegistry bool
}

type options struct {
	registry *stations.Registry
}

type Option func(*options)

func WithRegistry(reg *stations.Registry) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// Load reads the CSV at path and returns its readings sorted by timestamp.
func Load(path string, opts ...Option) (*Dataset, error) {
	rc, err := openSource(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer rc.Close()

	ds, err := Read(rc, opts...)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}
	ds.Path = path
	return ds, nil
}

// Read parses CSV data from r.
func Read(r io.Reader, opts ...Option) (*Dataset, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = stations.Default()
	}

	cr := csv.NewReader(r)
	cr.Comma = SEPARATOR
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	headers, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, colDatetime)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrParse, err)
	}
	layout, err := analyzeHeaders(headers)
	if err != nil {
		return nil, err
	}
	areaIdx, hasArea := layout.index[colAreaType]

	ds := &Dataset{AreaFromRegistry: !hasArea}
	rawAux := make([][]string, len(layout.auxIdx))

	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrParse, line, err)
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}

		ts, err := parseTimestamp(field(record, layout.index[colDatetime]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrParse, line, err)
		}
		name := strings.TrimSpace(field(record, layout.index[colStation]))
		station, known := o.registry.Get(name)
		if !known {
			ds.Skipped++
			continue
		}

		area := station.AreaType
		if hasArea {
			if parsed, err := models.ParseAreaType(field(record, areaIdx)); err == nil {
				area = parsed
			}
		}

		reading := models.Reading{
			Timestamp: ts,
			Station:   name,
			AreaType:  area,
			Row:       len(ds.Readings),
		}
		for i, key := range pollutantKeys {
			v, ok := parseLevel(field(record, layout.index[key]))
			if !ok {
				v = math.NaN()
			}
			reading.Levels[i] = v
		}
		ds.Readings = append(ds.Readings, reading)

		for i, idx := range layout.auxIdx {
			rawAux[i] = append(rawAux[i], field(record, idx))
		}
	}

	ds.Aux = buildColumns(layout.auxName, rawAux)

	sort.SliceStable(ds.Readings, func(i, j int) bool {
		return ds.Readings[i].Timestamp.Before(ds.Readings[j].Timestamp)
	})
	return ds, nil
}

func field(record []string, idx int) string {
	if idx < len(record) {
		return record[idx]
	}
	return ""
}

func parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", value)
}

func buildColumns(names []string, raw [][]string) []Column {
	columns := make([]Column, len(names))
	for i, name := range names {
		col := Column{Name: name}
		if isNumericData(raw[i]) {
			col.Numeric = true
			col.Values = make([]float64, len(raw[i]))
			for j, value := range raw[i] {
				v, ok := parseLevel(value)
				if !ok {
					v = math.NaN()
				}
				col.Values[j] = v
			}
		} else {
			col.Text = raw[i]
		}
		columns[i] = col
	}
	return columns
}

// Span returns the first and last timestamp of the dataset.
func (d *Dataset) Span() (start, end time.Time, ok bool) {
	if len(d.Readings) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return d.Readings[0].Timestamp, d.Readings[len(d.Readings)-1].Timestamp, true
}

// AuxValue returns the auxiliary cell of a reading formatted for display.
func (d *Dataset) AuxValue(r models.Reading, col Column) string {
	if col.Numeric {
		if r.Row >= len(col.Values) || math.IsNaN(col.Values[r.Row]) {
			return ""
		}
		return fmt.Sprintf("%g", col.Values[r.Row])
	}
	if r.Row >= len(col.Text) {
		return ""
	}
	return col.Text[r.Row]
}

// Head returns at most n readings from rows.
func Head(rows []models.Reading, n int) []models.Reading {
	if n < 0 || len(rows) <= n {
		return rows
	}
	return rows[:n]
}

// Table formats rows as display cells: datetime, station, area_type, the pollutants and
// then the auxiliary columns. Missing values are empty strings.
func (d *Dataset) Table(rows []models.Reading) (header []string, cells [][]string) {
	header = []string{colDatetime, colStation, colAreaType}
	for _, p := range models.Pollutants {
		header = append(header, p.String())
	}
	for _, c := range d.Aux {
		header = append(header, c.Name)
	}

	cells = make([][]string, 0, len(rows))
	for _, r := range rows {
		row := make([]string, 0, len(header))
		row = append(row, r.Timestamp.Format(timeLayouts[0]), r.Station, string(r.AreaType))
		for _, p := range models.Pollutants {
			v, ok := r.Level(p)
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
		}
		for _, c := range d.Aux {
			row = append(row, d.AuxValue(r, c))
		}
		cells = append(cells, row)
	}
	return header, cells
}
