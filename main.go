package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tegar-ganang/air-quality-dicoding/config"
	"github.com/tegar-ganang/air-quality-dicoding/domain/models"
	"github.com/tegar-ganang/air-quality-dicoding/report"
	"github.com/tegar-ganang/air-quality-dicoding/stations"
)

var (
	cfgFile  string
	dataPath string
	debug    bool

	cfg    *config.Config
	cfgErr error
)

var rootCmd = &cobra.Command{
	Use:           "air-quality",
	Short:         "Air quality dashboard over Beijing monitoring station readings",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return cfgErr
	},
}

func main() {
	Execute()
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "dataset CSV, optionally .gz, .lz4 or .zip (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func loadConfig() {
	c, err := config.Load(cfgFile)
	if err != nil {
		cfgErr = fmt.Errorf("load config: %w", err)
		return
	}
	if dataPath != "" {
		c.DataPath = dataPath
	}
	cfg = c
}

// app holds the collaborators shared by every command.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	reg     *stations.Registry
	data    *datasetSource
	reports *report.Generator
}

func newApp(c *config.Config, w io.Writer) *app {
	log := newLogger(c, w, debug)
	slog.SetDefault(log)
	reg := stations.Default()
	return &app{
		cfg:     c,
		log:     log,
		reg:     reg,
		data:    newDatasetSource(c.DataPath, reg),
		reports: report.NewGenerator(c.ReportPath),
	}
}

// warnUnknownStations logs selected names missing from the registry; they match no rows.
func (a *app) warnUnknownStations(sel models.StationSelection) {
	for _, name := range sel.Names() {
		if !a.reg.Contains(name) {
			a.log.Warn("unknown station selected", "station", name, "known", a.reg.Len())
		}
	}
}

func (a *app) server() *server {
	return newServer(a.cfg, a.log, a.reg, a.data, a.reports)
}
