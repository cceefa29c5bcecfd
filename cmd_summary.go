package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var summaryFlags viewFlags

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the dashboard view as text tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSummary(newApp(cfg, os.Stderr), &summaryFlags, cmd.OutOrStdout())
	},
}

func init() {
	summaryFlags.register(summaryCmd)
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(a *app, f *viewFlags, out io.Writer) error {
	req, err := f.request()
	if err != nil {
		return err
	}
	a.warnUnknownStations(req.Stations)
	ds, err := a.data.Get()
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, GenerateSummary(BuildView(ds, a.reg, req)))
	return err
}
