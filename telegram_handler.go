package main

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/tegar-ganang/air-quality-dicoding/dataset"
	"github.com/tegar-ganang/air-quality-dicoding/plot"
)

// telegramBot answers bot commands from the same view-model the dashboard uses.
type telegramBot struct {
	api botSender
	app *app
	log *slog.Logger
}

func newTelegramBot(api botSender, a *app) *telegramBot {
	return &telegramBot{api: api, app: a, log: a.log.With("surface", "telegram")}
}

// runTelegramBot polls updates until ctx is done.
func runTelegramBot(ctx context.Context, a *app) error {
	api, err := tgbotapi.NewBotAPI(a.cfg.TgToken)
	if err != nil {
		return fmt.Errorf("telegram: %w", err)
	}
	api.Debug = debug
	a.log.Info("telegram bot authorized", "account", api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := api.GetUpdatesChan(u)
	if err != nil {
		return fmt.Errorf("telegram updates: %w", err)
	}

	newTelegramBot(api, a).serve(ctx, updates, api.StopReceivingUpdates)
	return nil
}

// serve answers each message on its own goroutine until ctx is done or updates is
// closed, then waits for the answers in flight.
func (b *telegramBot) serve(ctx context.Context, updates <-chan tgbotapi.Update, stop func()) {
	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		select {
		case <-ctx.Done():
			stop()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			msg := update.Message
			wg.Add(1)
			go func() {
				defer wg.Done()
				b.handleMessage(msg.Chat.ID, msg.Command(), msg.CommandArguments())
			}()
		}
	}
}

// handleMessage answers one message. Plain text gets the welcome text.
func (b *telegramBot) handleMessage(chatID int64, command, args string) {
	log := b.log.With("chat_id", chatID, "command", command)
	cmd, err := parseBotCommand(command, args)
	if err != nil {
		var apiErr APIError
		if errors.As(err, &apiErr) {
			b.sendText(chatID, apiErr.Message)
			return
		}
		b.sendText(chatID, err.Error()+"\n\n"+welcomeText)
		return
	}
	if err := b.dispatch(chatID, cmd); err != nil {
		log.Error("bot command failed", "error", err)
		b.sendText(chatID, "Error: "+err.Error())
		return
	}
	log.Info("bot command handled")
}

func (b *telegramBot) dispatch(chatID int64, cmd botCommand) error {
	if cmd.Action == actionStart {
		return b.sendText(chatID, welcomeText)
	}

	ds, err := b.app.data.Get()
	if err != nil {
		return fmt.Errorf("dataset unavailable: %w", err)
	}
	req := cmd.Request

	switch cmd.Action {
	case actionSummary:
		v := BuildView(ds, b.app.reg, req)
		head := fmt.Sprintf("%s, %s to %s, %d readings\n\n", v.Pollutant, v.Start, v.End, v.Rows)
		if err := b.sendPre(chatID, head+GenerateMetricsTable(v)+"\n"+GenerateStationsTable(v)); err != nil {
			return err
		}
		return sendTextDocument(b.api, chatID, "summary.txt", "Full summary", []byte(GenerateSummary(v)))
	case actionRanking:
		v := BuildView(ds, b.app.reg, req)
		return b.sendPre(chatID, GenerateMetricsTable(v))
	case actionChart:
		rows := dataset.Filter(ds.Readings, effectiveRange(ds, req), req.Stations)
		png, err := renderChart(cmd.ChartKind, rows, req.Pollutant)
		if errors.Is(err, plot.ErrNotEnoughData) {
			return b.sendText(chatID, fmt.Sprintf("Not enough %s data for the %s chart.", req.Pollutant, cmd.ChartKind))
		}
		if err != nil {
			return err
		}
		return sendGraphVisualization(b.api, chatID, png, cmd.ChartKind, req.Pollutant)
	case actionReport:
		content, err := b.app.reports.Generate(ds, ds.Readings)
		if err != nil {
			return err
		}
		return sendTextDocument(b.api, chatID, "eda_report.html", "EDA report", content)
	}
	return fmt.Errorf("%w /%s", errUnknownCommand, cmd.Action)
}

func (b *telegramBot) sendText(chatID int64, text string) error {
	_, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (b *telegramBot) sendPre(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, "<pre>\n"+html.EscapeString(text)+"\n</pre>")
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(msg)
	return err
}
