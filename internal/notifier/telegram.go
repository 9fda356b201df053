package notifier

import (
	"fmt"

	"github.com/jayyyyqwq/hackathon-finder-bot/internal/event"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/logger"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/telegram"
)

// telegramSender is the slice of the Telegram client the notifier needs.
type telegramSender interface {
	SendMessage(text string) error
	SendDocument(path, caption string) error
}

// TelegramNotifier announces new events to a Telegram chat as an HTML
// digest. A digest that outgrows telegram.MessageLimit is delivered as
// the snapshot file instead, since Telegram rejects oversized messages.
type TelegramNotifier struct {
	sender       telegramSender
	heading      string
	documentPath string
}

// NewTelegramNotifier creates a Telegram notifier. documentPath is the
// snapshot file sent when a digest is too long for a single message.
func NewTelegramNotifier(client *telegram.Client, documentPath string) *TelegramNotifier {
	return &TelegramNotifier{
		sender:       client,
		heading:      telegram.HeadingNew,
		documentPath: documentPath,
	}
}

// Notify sends the digest for events. An empty announce list sends
// nothing; quiet runs should not ping the chat.
func (n *TelegramNotifier) Notify(events []*event.Event) error {
	if len(events) == 0 {
		return nil
	}

	digest := telegram.Digest(n.heading, events)
	if len(digest) > telegram.MessageLimit {
		logger.Info("digest too long, sending snapshot file", logger.Fields{
			"length": len(digest),
			"events": len(events),
		})
		caption := fmt.Sprintf("%d new events (digest too long for one message)", len(events))
		if err := n.sender.SendDocument(n.documentPath, caption); err != nil {
			return fmt.Errorf("sending digest document: %w", err)
		}
		return nil
	}

	if err := n.sender.SendMessage(digest); err != nil {
		return fmt.Errorf("sending digest: %w", err)
	}
	return nil
}
