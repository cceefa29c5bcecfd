package main

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/tegar-ganang/air-quality-dicoding/domain/models"
)

// Charts at or above this size in bytes are sent as documents.
const maxSizePhoto = 150000

type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// sendGraphVisualization sends a PNG chart as a photo, or as a document when it is
// too large.
func sendGraphVisualization(api botSender, chatID int64, graph []byte, kind string, p models.Pollutant) error {
	pngFile := tgbotapi.FileBytes{
		Name:  fmt.Sprintf("%s_%s_%s.png", kind, fileSafe(p), time.Now().Format("20060102-150405")),
		Bytes: graph,
	}
	caption := chartCaption(kind, p)

	var msg tgbotapi.Chattable
	if len(graph) < maxSizePhoto {
		photo := tgbotapi.NewPhotoUpload(chatID, pngFile)
		photo.Caption = caption
		msg = photo
	} else {
		doc := tgbotapi.NewDocumentUpload(chatID, pngFile)
		doc.Caption = caption
		msg = doc
	}
	if _, err := api.Send(msg); err != nil {
		return fmt.Errorf("send %s chart: %w", kind, err)
	}
	return nil
}

func sendTextDocument(api botSender, chatID int64, name, caption string, content []byte) error {
	doc := tgbotapi.NewDocumentUpload(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("%s_%s", time.Now().Format("20060102-150405"), name),
		Bytes: content,
	})
	doc.Caption = caption
	if _, err := api.Send(doc); err != nil {
		return fmt.Errorf("send %s: %w", name, err)
	}
	return nil
}

func chartCaption(kind string, p models.Pollutant) string {
	switch kind {
	case chartMonthly:
		return fmt.Sprintf("Monthly %s trend (%s)", p, p.Unit())
	case chartSeasonal:
		return fmt.Sprintf("Seasonal %s pattern: mean per calendar month (%s)", p, p.Unit())
	case chartStations:
		return fmt.Sprintf("Average %s by station (%s)", p, p.Unit())
	}
	return fmt.Sprintf("%s chart", p)
}

func fileSafe(p models.Pollutant) string {
	return strings.ReplaceAll(p.String(), ".", "")
}
