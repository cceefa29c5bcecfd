package stations

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/tegar-ganang/air-quality-dicoding/domain/models"
)

//go:embed stations.yaml
var defaultStations []byte

var ErrDuplicateStation = errors.New("duplicate station")

// Registry is a read-only lookup of monitoring stations by name.
type Registry struct {
	stations []models.Station
	byName   map[string]models.Station
	byArea   map[models.AreaType][]models.Station
}

type document struct {
	Stations []models.Station `yaml:"stations"`
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// Default returns the built-in Beijing registry, parsed once per process.
func Default() *Registry {
	once.Do(func() {
		reg, err := Parse(bytes.NewReader(defaultStations))
		if err != nil {
			panic(fmt.Sprintf("stations: embedded registry is invalid: %v", err))
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}

// Parse reads a YAML station list.
func Parse(r io.Reader) (*Registry, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode stations: %w", err)
	}
	return New(doc.Stations)
}

func New(list []models.Station) (*Registry, error) {
	reg := &Registry{
		stations: make([]models.Station, 0, len(list)),
		byName:   make(map[string]models.Station, len(list)),
		byArea:   make(map[models.AreaType][]models.Station),
	}
	for _, s := range list {
		if s.Name == "" {
			return nil, errors.New("station without name")
		}
		area, err := models.ParseAreaType(string(s.AreaType))
		if err != nil {
			return nil, fmt.Errorf("station %s: %w", s.Name, err)
		}
		s.AreaType = area
		if _, exists := reg.byName[s.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStation, s.Name)
		}
		reg.byName[s.Name] = s
		reg.stations = append(reg.stations, s)
	}
	sort.Slice(reg.stations, func(i, j int) bool { return reg.stations[i].Name < reg.stations[j].Name })
	for _, s := range reg.stations {
		reg.byArea[s.AreaType] = append(reg.byArea[s.AreaType], s)
	}
	return reg, nil
}

// All returns every station sorted by name.
func (r *Registry) All() []models.Station {
	result := make([]models.Station, len(r.stations))
	copy(result, r.stations)
	return result
}

func (r *Registry) Get(name string) (models.Station, bool) {
	s, ok := r.byName[name]
	return s, ok
}

func (r *Registry) Contains(name string) bool {
	_, ok := r.byName[name]
	return ok
}

func (r *Registry) Names() []string {
	names := make([]string, len(r.stations))
	for i, s := range r.stations {
		names[i] = s.Name
	}
	return names
}

func (r *Registry) ByArea(area models.AreaType) []models.Station {
	list := r.byArea[area]
	result := make([]models.Station, len(list))
	copy(result, list)
	return result
}

func (r *Registry) Len() int {
	return len(r.stations)
}
