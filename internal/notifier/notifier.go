package notifier

import (
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/event"
)

// Notifier defines the interface for announcing newly discovered events
type Notifier interface {
	// Notify announces the given events
	Notify(events []*event.Event) error
}
