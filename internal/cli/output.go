package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jayyyyqwq/hackathon-finder-bot/internal/event"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// RunStats summarizes one pipeline run for output.
type RunStats struct {
	Raw     int    `json:"raw_records"`
	Dropped int    `json:"dropped"`
	Expired int    `json:"expired"`
	Active  int    `json:"active"`
	Elapsed string `json:"elapsed"`
}

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt  time.Time         `json:"checked_at"`
	Events     []*event.Event    `json:"events"`
	EventCount int               `json:"event_count"`
	ShowAll    bool              `json:"show_all,omitempty"`
	Failures   map[string]string `json:"failures,omitempty"`
	Stats      RunStats          `json:"stats"`
}

// WriteOutput writes the result in the specified format. grouped selects
// per-source sections in text mode; flat lines otherwise.
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, grouped, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, grouped, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, grouped, verbose bool) error {
	eventLabel := "new"
	eventPrefix := "NEW"
	if result.ShowAll {
		eventLabel = "active"
		eventPrefix = ""
	}

	if result.EventCount == 0 {
		if result.ShowAll {
			fmt.Fprintln(w, "No active events.")
		} else {
			fmt.Fprintln(w, "No new events found.")
		}
		writeFailures(w, result.Failures)
		return nil
	}

	if grouped {
		// Events arrive sorted by source, so consecutive runs form the
		// sections.
		counts := map[string]int{}
		for _, evt := range result.Events {
			counts[evt.Source]++
		}

		currentSource := ""
		for _, evt := range result.Events {
			if evt.Source != currentSource {
				currentSource = evt.Source
				fmt.Fprintf(w, "\n%s (%d %s):\n", strings.ToUpper(evt.Source), counts[evt.Source], eventLabel)
			}
			writeEventLine(w, evt, eventPrefix, "  ", verbose)
		}
		fmt.Fprintf(w, "\nTotal: %d %s across %d sources\n",
			result.EventCount, eventLabel, len(counts))
	} else {
		for _, evt := range result.Events {
			writeEventLine(w, evt, eventPrefix, "", verbose)
		}
		fmt.Fprintf(w, "\nTotal: %d %s\n", result.EventCount, eventLabel)
	}

	writeFailures(w, result.Failures)
	return nil
}

func writeEventLine(w io.Writer, evt *event.Event, prefix, indent string, verbose bool) {
	if prefix != "" {
		fmt.Fprintf(w, "%s%s: %s\n", indent, prefix, evt.Title)
	} else {
		fmt.Fprintf(w, "%s%s\n", indent, evt.Title)
	}
	if evt.HasDeadline() {
		fmt.Fprintf(w, "%s     Deadline: %s\n", indent, evt.Deadline.Format("2006-01-02"))
	}
	if verbose {
		fmt.Fprintf(w, "%s     ID: %s\n", indent, evt.ID)
		if evt.Link != "" {
			fmt.Fprintf(w, "%s     Link: %s\n", indent, evt.Link)
		}
	} else if evt.Link != "" {
		fmt.Fprintf(w, "%s     %s\n", indent, evt.Link)
	}
}

func writeFailures(w io.Writer, failures map[string]string) {
	if len(failures) == 0 {
		return
	}
	names := make([]string, 0, len(failures))
	for name := range failures {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "\nSource failures:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %s\n", name, failures[name])
	}
}
