package notifier

import (
	"fmt"
	"io"
	"os"

	"github.com/jayyyyqwq/hackathon-finder-bot/internal/event"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/telegram"
)

// DryRunNotifier prints what would be announced without actually posting
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a new dry-run notifier
func NewDryRunNotifier() *DryRunNotifier {
	return &DryRunNotifier{out: os.Stdout}
}

// Notify prints the Telegram digest that would be sent
func (n *DryRunNotifier) Notify(events []*event.Event) error {
	digest := telegram.Digest(telegram.HeadingNew, events)

	fmt.Fprintln(n.out, "--- Digest (dry run) ---")
	fmt.Fprintln(n.out, digest)
	fmt.Fprintf(n.out, "\n(%d events, %d characters)\n", len(events), len(digest))

	return nil
}
