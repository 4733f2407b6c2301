// Package notification provides delivery of rendered charts to
// external services
package notification

import (
	"fmt"
	"time"

	tb "gopkg.in/tucnak/telebot.v2"

	"github.com/raykavin/chartsnap/core"
)

const pollingTimeout = 10 * time.Second

// Telegram sends rendered chart images to a Telegram chat
type Telegram struct {
	client *tb.Bot
	chat   *tb.Chat
	log    core.Logger
}

// NewTelegram creates a Telegram notifier for the given bot token and
// destination chat
func NewTelegram(token string, chatID int64, log core.Logger) (*Telegram, error) {
	client, err := tb.NewBot(tb.Settings{
		Token:  token,
		Poller: &tb.LongPoller{Timeout: pollingTimeout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram client: %w", err)
	}

	return &Telegram{
		client: client,
		chat:   &tb.Chat{ID: chatID},
		log:    log,
	}, nil
}

// Notify sends a plain text message
func (t *Telegram) Notify(text string) {
	if _, err := t.client.Send(t.chat, text); err != nil {
		t.log.WithError(err).Error("telegram: failed to send message")
	}
}

// SendChart delivers a rendered chart image with a caption
func (t *Telegram) SendChart(path, caption string) error {
	photo := &tb.Photo{
		File:    tb.FromDisk(path),
		Caption: caption,
	}

	if _, err := t.client.Send(t.chat, photo); err != nil {
		return fmt.Errorf("telegram: failed to send chart: %w", err)
	}

	t.log.Infof("chart delivered to telegram chat %d", t.chat.ID)
	return nil
}
