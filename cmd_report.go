package main

import (
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/tegar-ganang/air-quality-dicoding/dataset"
)

// viewFlags are the dashboard filters exposed on the command line.
type viewFlags struct {
	pollutant string
	start     string
	end       string
	stations  []string
	policy    string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.pollutant, "pollutant", "p", "PM2.5", "pollutant: PM2.5, PM10, SO2, NO2, CO, O3")
	cmd.Flags().StringVar(&f.start, "start", "", "start date YYYY-MM-DD (default: dataset start)")
	cmd.Flags().StringVar(&f.end, "end", "", "end date YYYY-MM-DD, inclusive (default: dataset end)")
	cmd.Flags().StringSliceVarP(&f.stations, "station", "s", nil, "station names (default: All)")
	cmd.Flags().StringVar(&f.policy, "policy", "thresholds", "ranking policy: thresholds or extremes")
}

func (f *viewFlags) request() (ViewRequest, error) {
	q := url.Values{}
	q.Set("pollutant", f.pollutant)
	q.Set("start", f.start)
	q.Set("end", f.end)
	q.Set("policy", f.policy)
	q["station"] = f.stations
	return ParseViewRequest(q)
}

var reportFlags viewFlags

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the EDA report for the filtered readings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(newApp(cfg, os.Stderr), &reportFlags, cmd.OutOrStdout())
	},
}

func init() {
	reportFlags.register(reportCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReport(a *app, f *viewFlags, out io.Writer) error {
	req, err := f.request()
	if err != nil {
		return err
	}
	a.warnUnknownStations(req.Stations)
	ds, err := a.data.Get()
	if err != nil {
		return err
	}
	rows := dataset.Filter(ds.Readings, effectiveRange(ds, req), req.Stations)
	if _, err := a.reports.Generate(ds, rows); err != nil {
		return err
	}
	a.log.Info("report generated", "path", a.reports.Path(), "rows", len(rows))
	fmt.Fprintf(out, "✓ EDA report written to %s (%d readings)\n", a.reports.Path(), len(rows))
	return nil
}
