package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tegar-ganang/air-quality-dicoding/dataset"
	"github.com/tegar-ganang/air-quality-dicoding/domain/models"
)

// DefaultFileName is the report artifact name, overwritten on each run.
const DefaultFileName = "eda_report.html"

// Generator writes the EDA report to a fixed path. Nothing is cached between runs.
type Generator struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

func NewGenerator(path string) *Generator {
	if path == "" {
		path = DefaultFileName
	}
	return &Generator{path: path, now: time.Now}
}

func (g *Generator) Path() string {
	return g.path
}

// Generate builds the report for rows, overwrites the artifact and returns its content.
func (g *Generator) Generate(ds *dataset.Dataset, rows []models.Reading) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	content, err := RenderHTML(Build(ds, rows, g.now()))
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(g.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create report dir: %w", err)
		}
	}
	if err := os.WriteFile(g.path, content, 0o644); err != nil {
		return nil, fmt.Errorf("write report %s: %w", g.path, err)
	}
	return content, nil
}

// Read returns the last generated artifact.
func (g *Generator) Read() ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return os.ReadFile(g.path)
}
