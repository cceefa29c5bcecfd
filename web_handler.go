package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	uuid "github.com/satori/go.uuid"

	"github.com/tegar-ganang/air-quality-dicoding/aggregate"
	"github.com/tegar-ganang/air-quality-dicoding/config"
	"github.com/tegar-ganang/air-quality-dicoding/dataset"
	"github.com/tegar-ganang/air-quality-dicoding/domain/models"
	"github.com/tegar-ganang/air-quality-dicoding/plot"
	"github.com/tegar-ganang/air-quality-dicoding/report"
	"github.com/tegar-ganang/air-quality-dicoding/stations"
)

const requestIDHeader = "X-Request-ID"

const (
	chartMonthly  = "monthly"
	chartSeasonal = "seasonal"
	chartStations = "stations"
)

var (
	chartKinds      = []string{chartMonthly, chartSeasonal, chartStations}
	errUnknownChart = errors.New("unknown chart")
)

type ctxKey int

const loggerKey ctxKey = iota

type server struct {
	cfg     *config.Config
	log     *slog.Logger
	reg     *stations.Registry
	data    *datasetSource
	reports *report.Generator
	charts  plot.Builder
}

func newServer(cfg *config.Config, log *slog.Logger, reg *stations.Registry, data *datasetSource, reports *report.Generator) *server {
	return &server{
		cfg:     cfg,
		log:     log,
		reg:     reg,
		data:    data,
		reports: reports,
		charts:  plot.Builder{AssetsHost: cfg.AssetsHost},
	}
}

func (s *server) routes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/report", s.handleLastReport).Methods(http.MethodGet)
	r.HandleFunc("/upload", s.handleUpload).Methods(http.MethodPost)
	r.HandleFunc("/charts/{kind:[a-z]+}.png", s.handleChart).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/view", s.handleView).Methods(http.MethodGet)
	api.HandleFunc("/stations", s.handleStations).Methods(http.MethodGet)
	api.HandleFunc("/report", s.handleGenerateReport).Methods(http.MethodPost)
	api.HandleFunc("/reload", s.handleReload).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, NewAPIError(ErrorCodeNotFound, "route not found", r.URL.Path, http.StatusNotFound))
	})

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	})
	return s.requestLogger(c.Handler(r))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// requestLogger tags every request with an id, exposes it as a header and logs the
// outcome.
func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewV4().String()
		}
		w.Header().Set(requestIDHeader, id)

		log := s.log.With("request_id", id)
		r = r.WithContext(context.WithValue(r.Context(), loggerKey, log))

		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sr, r)

		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sr.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func logger(r *http.Request) *slog.Logger {
	if log, ok := r.Context().Value(loggerKey).(*slog.Logger); ok {
		return log
	}
	return slog.Default()
}

// viewFor loads the dataset and parses the request filters from the query and, for
// POSTs, the form body.
func (s *server) viewFor(r *http.Request) (*dataset.Dataset, ViewRequest, error) {
	if err := r.ParseForm(); err != nil {
		return nil, ViewRequest{}, badRequest(ErrorCodeBadRequest, err)
	}
	req, err := ParseViewRequest(r.Form)
	if err != nil {
		return nil, req, err
	}
	ds, err := s.data.Get()
	if err != nil {
		logger(r).Error("load dataset", "path", s.data.Path(), "error", err)
		return nil, req, datasetUnavailable(err)
	}
	return ds, req, nil
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ds, req, err := s.viewFor(r)
	if err != nil {
		respondWithError(w, err)
		return
	}
	page, err := renderDashboard(BuildView(ds, s.reg, req), req, s.charts)
	if err != nil {
		respondWithError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *server) handleView(w http.ResponseWriter, r *http.Request) {
	ds, req, err := s.viewFor(r)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, BuildView(ds, s.reg, req))
}

func (s *server) handleStations(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, s.reg.All())
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"dataset":        s.data.Path(),
		"dataset_loaded": s.data.Loaded(),
		"stations":       s.reg.Len(),
	})
}

// handleGenerateReport regenerates the EDA report over the filtered rows and returns it.
func (s *server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	ds, req, err := s.viewFor(r)
	if err != nil {
		respondWithError(w, err)
		return
	}
	rows := dataset.Filter(ds.Readings, effectiveRange(ds, req), req.Stations)
	content, err := s.reports.Generate(ds, rows)
	if err != nil {
		respondWithError(w, err)
		return
	}
	logger(r).Info("report generated", "path", s.reports.Path(), "rows", len(rows))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(content)
}

func (s *server) handleLastReport(w http.ResponseWriter, r *http.Request) {
	content, err := s.reports.Read()
	if errors.Is(err, os.ErrNotExist) {
		respondWithError(w, NewAPIError(ErrorCodeReportMissing, "no report generated yet", "POST /api/report", http.StatusNotFound))
		return
	}
	if err != nil {
		respondWithError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(content)
}

// handleChart serves the static PNG renditions of the dashboard charts.
func (s *server) handleChart(w http.ResponseWriter, r *http.Request) {
	ds, req, err := s.viewFor(r)
	if err != nil {
		respondWithError(w, err)
		return
	}
	rows := dataset.Filter(ds.Readings, effectiveRange(ds, req), req.Stations)

	kind := mux.Vars(r)["kind"]
	png, err := renderChart(kind, rows, req.Pollutant)
	if errors.Is(err, errUnknownChart) {
		respondWithError(w, NewAPIError(ErrorCodeNotFound, err.Error(), chartKinds, http.StatusNotFound))
		return
	}
	if errors.Is(err, plot.ErrNotEnoughData) {
		respondWithError(w, NewAPIError(ErrorCodeNotEnoughData, err.Error(), nil, http.StatusUnprocessableEntity))
		return
	}
	if err != nil {
		respondWithError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func isChartKind(kind string) bool {
	for _, k := range chartKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// renderChart draws the PNG chart of the given kind over rows.
func renderChart(kind string, rows []models.Reading, p models.Pollutant) ([]byte, error) {
	switch kind {
	case chartMonthly:
		return plot.DrawTimeSeries(plot.NewDataMonthlyForGraph(aggregate.MonthlyTrend(rows, p), p))
	case chartSeasonal:
		return plot.DrawPlotBar(plot.NewDataSeasonalForGraph(aggregate.Seasonal(rows, p), p))
	case chartStations:
		return plot.DrawPlotBar(plot.NewDataStationsForGraph(aggregate.StationMeans(rows, p), p))
	}
	return nil, fmt.Errorf("%w %q", errUnknownChart, kind)
}
