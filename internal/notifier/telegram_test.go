package notifier

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jayyyyqwq/hackathon-finder-bot/internal/event"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/telegram"
)

type fakeSender struct {
	messages  []string
	documents []string
	err       error
}

func (f *fakeSender) SendMessage(text string) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, text)
	return nil
}

func (f *fakeSender) SendDocument(path, caption string) error {
	if f.err != nil {
		return f.err
	}
	f.documents = append(f.documents, path)
	return nil
}

func TestTelegramNotifier(t *testing.T) {
	fake := &fakeSender{}
	n := &TelegramNotifier{sender: fake, heading: telegram.HeadingNew, documentPath: "data/events.json"}

	events := []*event.Event{
		{Title: "Robotics Challenge", Link: "https://isro.gov.in/robotics", Source: "isro"},
		{Title: "Clean Water Hackathon", Link: "https://mygov.in/water", Source: "mygov"},
	}

	if err := n.Notify(events); err != nil {
		t.Fatalf("Notify() error: %v", err)
	}

	if len(fake.messages) != 1 {
		t.Fatalf("sent %d messages, want 1", len(fake.messages))
	}
	if len(fake.documents) != 0 {
		t.Errorf("sent %d documents, want 0", len(fake.documents))
	}

	msg := fake.messages[0]
	for _, want := range []string{"New Hackathons", "Robotics Challenge", "Clean Water Hackathon"} {
		if !strings.Contains(msg, want) {
			t.Errorf("digest missing %q:\n%s", want, msg)
		}
	}
}

func TestTelegramNotifierEmptyRunSendsNothing(t *testing.T) {
	fake := &fakeSender{}
	n := &TelegramNotifier{sender: fake, heading: telegram.HeadingNew, documentPath: "data/events.json"}

	if err := n.Notify(nil); err != nil {
		t.Fatalf("Notify() error: %v", err)
	}

	if len(fake.messages) != 0 || len(fake.documents) != 0 {
		t.Errorf("quiet run sent %d messages and %d documents, want none",
			len(fake.messages), len(fake.documents))
	}
}

func TestTelegramNotifierLongDigestSendsDocument(t *testing.T) {
	fake := &fakeSender{}
	n := &TelegramNotifier{sender: fake, heading: telegram.HeadingNew, documentPath: "data/events.json"}

	var events []*event.Event
	for _, source := range []string{"devpost", "unstop"} {
		for i := 0; i < 10; i++ {
			events = append(events, &event.Event{
				Title:  strings.Repeat("x", 150),
				Link:   fmt.Sprintf("https://%s.com/hackathons/entry-%02d", source, i),
				Source: source,
			})
		}
	}

	if err := n.Notify(events); err != nil {
		t.Fatalf("Notify() error: %v", err)
	}

	if len(fake.documents) != 1 {
		t.Fatalf("sent %d documents, want 1", len(fake.documents))
	}
	if fake.documents[0] != "data/events.json" {
		t.Errorf("document path = %q, want data/events.json", fake.documents[0])
	}
	if len(fake.messages) != 0 {
		t.Errorf("sent %d messages alongside the document, want 0", len(fake.messages))
	}
}

func TestTelegramNotifierSendError(t *testing.T) {
	fake := &fakeSender{err: errors.New("telegram down")}
	n := &TelegramNotifier{sender: fake, heading: telegram.HeadingNew, documentPath: "data/events.json"}

	events := []*event.Event{
		{Title: "Robotics Challenge", Link: "https://isro.gov.in/robotics", Source: "isro"},
	}

	err := n.Notify(events)
	if err == nil {
		t.Fatal("Notify() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "telegram down") {
		t.Errorf("error = %v, want wrapped send failure", err)
	}
}

func TestNewTelegramNotifier(t *testing.T) {
	client, err := telegram.NewClient("token", "123")
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}

	n := NewTelegramNotifier(client, "data/events.json")
	if n.heading != telegram.HeadingNew {
		t.Errorf("heading = %q, want %q", n.heading, telegram.HeadingNew)
	}
	if n.documentPath != "data/events.json" {
		t.Errorf("documentPath = %q", n.documentPath)
	}
}
