package notifier

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/jayyyyqwq/hackathon-finder-bot/internal/event"
)

func TestFormatTweet(t *testing.T) {
	tests := []struct {
		name     string
		event    *event.Event
		contains []string
	}{
		{
			name: "complete event",
			event: &event.Event{
				ID:       "test123",
				Title:    "Smart India Hackathon 2026",
				Link:     "https://sih.gov.in/2026",
				Source:   "mygov",
				Deadline: time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC),
			},
			contains: []string{
				"🚀",
				"Smart India Hackathon 2026",
				"Deadline: 2026-01-31",
				"https://sih.gov.in/2026",
				"#hackathon",
			},
		},
		{
			name: "event without deadline",
			event: &event.Event{
				ID:     "test456",
				Title:  "Space Apps Challenge",
				Link:   "https://isro.gov.in/space-apps",
				Source: "isro",
			},
			contains: []string{
				"Space Apps Challenge",
				"https://isro.gov.in/space-apps",
				"#challenge",
			},
		},
		{
			name: "event without link",
			event: &event.Event{
				ID:     "test789",
				Title:  "Quantum Grand Challenge",
				Source: "meity",
			},
			contains: []string{
				"Quantum Grand Challenge",
				"#hackathon",
			},
		},
		{
			name: "very long title gets truncated",
			event: &event.Event{
				ID:     "test000",
				Title:  strings.Repeat("Innovation Challenge ", 20),
				Link:   "https://example.com/very-long",
				Source: "devpost",
			},
			contains: []string{
				"...",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatTweet(tt.event)

			if n := utf8.RuneCountInString(got); n > tweetLimit {
				t.Errorf("formatTweet() length = %d runes, want <= %d", n, tweetLimit)
			}

			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("formatTweet() missing %q in tweet:\n%s", want, got)
				}
			}
		})
	}
}

func TestFormatTweetOmitsMissingParts(t *testing.T) {
	got := formatTweet(&event.Event{
		ID:     "test1",
		Title:  "Open Data Challenge",
		Source: "mygov",
	})

	if strings.Contains(got, "Deadline:") {
		t.Errorf("tweet should have no deadline line:\n%s", got)
	}
	if strings.Contains(got, "🔗") {
		t.Errorf("tweet should have no link line:\n%s", got)
	}
}

func TestDryRunNotifier(t *testing.T) {
	var buf bytes.Buffer
	notifier := &DryRunNotifier{out: &buf}

	events := []*event.Event{
		{
			ID:     "test1",
			Title:  "Robotics Challenge",
			Link:   "https://isro.gov.in/robotics",
			Source: "isro",
		},
		{
			ID:     "test2",
			Title:  "Clean Water Hackathon",
			Link:   "https://mygov.in/water",
			Source: "mygov",
		},
	}

	if err := notifier.Notify(events); err != nil {
		t.Errorf("DryRunNotifier.Notify() error = %v, want nil", err)
	}

	out := buf.String()
	for _, want := range []string{"Robotics Challenge", "Clean Water Hackathon", "2 events"} {
		if !strings.Contains(out, want) {
			t.Errorf("dry run output missing %q:\n%s", want, out)
		}
	}
}
