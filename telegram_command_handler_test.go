package main

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tegar-ganang/air-quality-dicoding/aggregate"
	"github.com/tegar-ganang/air-quality-dicoding/domain/models"
)

func TestParseBotCommand(t *testing.T) {
	tests := []struct {
		name    string
		command string
		args    string
		check   func(t *testing.T, cmd botCommand)
		errCode ErrorCode
		unknown bool
	}{
		{
			name:    "start",
			command: "start",
			check: func(t *testing.T, cmd botCommand) {
				assert.Equal(t, actionStart, cmd.Action)
			},
		},
		{
			name:    "summary with range",
			command: "summary",
			args:    "no2 2014-01-01 2014-06-30",
			check: func(t *testing.T, cmd botCommand) {
				assert.Equal(t, actionSummary, cmd.Action)
				assert.Equal(t, models.NO2, cmd.Request.Pollutant)
				require.NotNil(t, cmd.Request.Start)
				require.NotNil(t, cmd.Request.End)
				assert.Equal(t, "2014-06-30", cmd.Request.End.Format(dateLayout))
				assert.True(t, cmd.Request.Stations.IsAll())
			},
		},
		{
			name:    "summary defaults to PM2.5",
			command: "summary",
			check: func(t *testing.T, cmd botCommand) {
				assert.Equal(t, models.PM25, cmd.Request.Pollutant)
				assert.Nil(t, cmd.Request.Start)
			},
		},
		{
			name:    "ranking with policy",
			command: "ranking",
			args:    "PM10 extremes",
			check: func(t *testing.T, cmd botCommand) {
				assert.Equal(t, models.PM10, cmd.Request.Pollutant)
				assert.Equal(t, aggregate.PolicyExtremes, cmd.Request.Policy)
			},
		},
		{
			name:    "chart defaults to monthly",
			command: "chart",
			args:    "O3",
			check: func(t *testing.T, cmd botCommand) {
				assert.Equal(t, chartMonthly, cmd.ChartKind)
				assert.Equal(t, models.O3, cmd.Request.Pollutant)
			},
		},
		{name: "bad pollutant", command: "summary", args: "PM3", errCode: ErrorCodeInvalidPollutant},
		{name: "bad date", command: "summary", args: "PM2.5 2014-13-01", errCode: ErrorCodeInvalidDate},
		{name: "bad policy", command: "ranking", args: "PM2.5 median", errCode: ErrorCodeInvalidPolicy},
		{name: "bad chart", command: "chart", args: "PM2.5 pie", errCode: ErrorCodeBadRequest},
		{name: "unknown command", command: "forecast", unknown: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := parseBotCommand(tt.command, tt.args)
			switch {
			case tt.unknown:
				assert.ErrorIs(t, err, errUnknownCommand)
			case tt.errCode != "":
				var apiErr APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.errCode, apiErr.Code)
			default:
				require.NoError(t, err)
				tt.check(t, cmd)
			}
		})
	}
}

type fakeSender struct {
	mu   sync.Mutex
	sent []tgbotapi.Chattable
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func TestSendGraphVisualizationPhotoOrDocument(t *testing.T) {
	sender := &fakeSender{}
	require.NoError(t, sendGraphVisualization(sender, 1, []byte("small"), chartSeasonal, models.PM25))
	require.NoError(t, sendGraphVisualization(sender, 1, bytes.Repeat([]byte{1}, maxSizePhoto), chartMonthly, models.PM25))
	require.Len(t, sender.sent, 2)

	photo, ok := sender.sent[0].(tgbotapi.PhotoConfig)
	require.True(t, ok)
	assert.Contains(t, photo.Caption, "Seasonal PM2.5")
	_, ok = sender.sent[1].(tgbotapi.DocumentConfig)
	assert.True(t, ok)
}

func TestTelegramBotSummaryAndRanking(t *testing.T) {
	a := testApp(t, endToEndCSV)
	sender := &fakeSender{}
	b := newTelegramBot(sender, a)

	b.handleMessage(7, "ranking", "PM2.5 extremes")
	require.Len(t, sender.sent, 1)
	msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, tgbotapi.ModeHTML, msg.ParseMode)
	assert.Contains(t, msg.Text, "Aotizhongxin/30.00")
	assert.Contains(t, msg.Text, "Changping/150.00")

	b.handleMessage(7, "summary", "PM2.5")
	require.Len(t, sender.sent, 3)
	_, ok = sender.sent[2].(tgbotapi.DocumentConfig)
	assert.True(t, ok)

	b.handleMessage(7, "summary", "PM3")
	require.Len(t, sender.sent, 4)
	msg = sender.sent[3].(tgbotapi.MessageConfig)
	assert.True(t, strings.HasPrefix(msg.Text, "unknown pollutant"), msg.Text)
}

func TestTelegramBotServeWaitsForAnswers(t *testing.T) {
	a := testApp(t, endToEndCSV)
	sender := &fakeSender{}
	b := newTelegramBot(sender, a)

	updates := make(chan tgbotapi.Update, 4)
	for i := int64(1); i <= 3; i++ {
		updates <- tgbotapi.Update{Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: i}, Text: "hello"}}
	}
	updates <- tgbotapi.Update{}
	close(updates)

	stopped := false
	b.serve(context.Background(), updates, func() { stopped = true })
	assert.False(t, stopped)
	require.Len(t, sender.sent, 3)
	for _, c := range sender.sent {
		msg, ok := c.(tgbotapi.MessageConfig)
		require.True(t, ok)
		assert.Equal(t, welcomeText, msg.Text)
	}
}

func TestTelegramBotServeStopsOnCancel(t *testing.T) {
	a := testApp(t, endToEndCSV)
	b := newTelegramBot(&fakeSender{}, a)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stopped := false
	b.serve(ctx, make(chan tgbotapi.Update), func() { stopped = true })
	assert.True(t, stopped)
}
