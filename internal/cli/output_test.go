package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jayyyyqwq/hackathon-finder-bot/internal/event"
)

func sampleResult() *OutputResult {
	return &OutputResult{
		CheckedAt: time.Date(2026, time.February, 1, 12, 0, 0, 0, time.UTC),
		Events: []*event.Event{
			{
				ID:       "aaa111",
				Title:    "Robotics Challenge",
				Link:     "https://isro.gov.in/robotics",
				Source:   "isro",
				Deadline: time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
			},
			{
				ID:     "bbb222",
				Title:  "Space Apps",
				Link:   "https://isro.gov.in/space-apps",
				Source: "isro",
			},
			{
				ID:     "ccc333",
				Title:  "Clean Water Hackathon",
				Link:   "https://mygov.in/water",
				Source: "mygov",
			},
		},
		EventCount: 3,
		Stats: RunStats{
			Raw:     40,
			Dropped: 2,
			Expired: 1,
			Active:  25,
			Elapsed: "1.2s",
		},
	}
}

func TestWriteTextGrouped(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatText, true, false); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"ISRO (2 new):",
		"MYGOV (1 new):",
		"NEW: Robotics Challenge",
		"Deadline: 2026-03-15",
		"https://mygov.in/water",
		"Total: 3 new across 2 sources",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteTextFlat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatText, false, false); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "ISRO (") {
		t.Errorf("flat output should have no section headers:\n%s", out)
	}
	if !strings.Contains(out, "NEW: Space Apps") {
		t.Errorf("output missing event line:\n%s", out)
	}
	if !strings.Contains(out, "Total: 3 new\n") {
		t.Errorf("output missing total line:\n%s", out)
	}
}

func TestWriteTextShowAll(t *testing.T) {
	var buf bytes.Buffer
	result := sampleResult()
	result.ShowAll = true
	if err := WriteOutput(&buf, result, FormatText, true, false); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "NEW:") {
		t.Errorf("show-all output should not mark events as new:\n%s", out)
	}
	if !strings.Contains(out, "ISRO (2 active):") {
		t.Errorf("output missing active section header:\n%s", out)
	}
}

func TestWriteTextVerbose(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatText, true, true); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}

	if out := buf.String(); !strings.Contains(out, "ID: aaa111") {
		t.Errorf("verbose output missing event ID:\n%s", out)
	}
}

func TestWriteTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, &OutputResult{}, FormatText, true, false); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}
	if out := buf.String(); !strings.Contains(out, "No new events found.") {
		t.Errorf("output = %q", out)
	}

	buf.Reset()
	if err := WriteOutput(&buf, &OutputResult{ShowAll: true}, FormatText, true, false); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}
	if out := buf.String(); !strings.Contains(out, "No active events.") {
		t.Errorf("output = %q", out)
	}
}

func TestWriteTextFailures(t *testing.T) {
	result := sampleResult()
	result.Failures = map[string]string{
		"rbi":   "fetching https://www.rbi.org.in: Service Unavailable",
		"apple": "fetch abandoned: context deadline exceeded",
	}

	var buf bytes.Buffer
	if err := WriteOutput(&buf, result, FormatText, true, false); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Source failures:") {
		t.Fatalf("output missing failures section:\n%s", out)
	}

	appleIdx := strings.Index(out, "apple:")
	rbiIdx := strings.Index(out, "rbi:")
	if appleIdx == -1 || rbiIdx == -1 {
		t.Fatalf("output missing failure lines:\n%s", out)
	}
	if appleIdx > rbiIdx {
		t.Errorf("failures should print in name order:\n%s", out)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), FormatJSON, true, false); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}

	var decoded struct {
		EventCount int `json:"event_count"`
		Events     []struct {
			Title  string `json:"title"`
			Source string `json:"source"`
		} `json:"events"`
		Stats struct {
			Raw     int    `json:"raw_records"`
			Elapsed string `json:"elapsed"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded.EventCount != 3 {
		t.Errorf("event_count = %d, want 3", decoded.EventCount)
	}
	if len(decoded.Events) != 3 || decoded.Events[0].Title != "Robotics Challenge" {
		t.Errorf("events = %+v", decoded.Events)
	}
	if decoded.Stats.Raw != 40 || decoded.Stats.Elapsed != "1.2s" {
		t.Errorf("stats = %+v", decoded.Stats)
	}
}

func TestWriteOutputUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleResult(), OutputFormat("yaml"), true, false); err == nil {
		t.Error("WriteOutput() expected error for unknown format, got nil")
	}
}
