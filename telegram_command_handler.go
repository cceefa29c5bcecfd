package main

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

type botAction string

const (
	actionStart   botAction = "start"
	actionSummary botAction = "summary"
	actionRanking botAction = "ranking"
	actionChart   botAction = "chart"
	actionReport  botAction = "report"
)

const welcomeText = `Hi! 👋 I report on air quality at the Beijing monitoring stations.

/summary <pollutant> [from] [to] - dashboard tables, dates as YYYY-MM-DD
/ranking <pollutant> [thresholds|extremes] - good and bad stations
/chart <pollutant> [monthly|seasonal|stations] - chart as an image
/report - regenerate the EDA report and send it

Pollutants: PM2.5, PM10, SO2, NO2, CO, O3`

var errUnknownCommand = errors.New("unknown command")

// botCommand is a parsed bot message.
type botCommand struct {
	Action    botAction
	Request   ViewRequest
	ChartKind string
}

// parseBotCommand turns a command name and its argument string into a botCommand.
// Argument errors are the same APIErrors the HTTP surface returns.
func parseBotCommand(command, args string) (botCommand, error) {
	fields := strings.Fields(args)
	arg := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}
	q := url.Values{}
	if p := arg(0); p != "" {
		q.Set("pollutant", p)
	}

	cmd := botCommand{Action: botAction(strings.ToLower(command))}
	switch cmd.Action {
	case "help", "":
		cmd.Action = actionStart
		return cmd, nil
	case actionStart:
		return cmd, nil
	case actionSummary:
		q.Set("start", arg(1))
		q.Set("end", arg(2))
	case actionRanking:
		q.Set("policy", arg(1))
	case actionChart:
		cmd.ChartKind = strings.ToLower(arg(1))
		if cmd.ChartKind == "" {
			cmd.ChartKind = chartMonthly
		}
		if !isChartKind(cmd.ChartKind) {
			return cmd, badRequest(ErrorCodeBadRequest, fmt.Errorf("unknown chart %q, use one of %s", cmd.ChartKind, strings.Join(chartKinds, ", ")))
		}
	case actionReport:
		q = url.Values{}
	default:
		return cmd, fmt.Errorf("%w /%s", errUnknownCommand, command)
	}

	req, err := ParseViewRequest(q)
	if err != nil {
		return cmd, err
	}
	cmd.Request = req
	return cmd, nil
}
