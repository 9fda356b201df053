package cli

import (
	"sort"
	"strings"

	"github.com/jayyyyqwq/hackathon-finder-bot/internal/event"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortBySource   SortOrder = "source"
	SortByTitle    SortOrder = "title"
	SortByDeadline SortOrder = "deadline"
)

// sortEvents sorts a slice of events based on the specified sort order
func sortEvents(events []*event.Event, sortOrder SortOrder) {
	switch sortOrder {
	case SortBySource:
		event.SortBySourceTitle(events)
	case SortByTitle:
		sort.Slice(events, func(i, j int) bool {
			ti := strings.ToLower(events[i].Title)
			tj := strings.ToLower(events[j].Title)
			if ti != tj {
				return ti < tj
			}
			// If titles are equal, sort by deadline
			return compareByDeadline(events[i], events[j])
		})
	case SortByDeadline:
		sort.Slice(events, func(i, j int) bool {
			return compareByDeadline(events[i], events[j])
		})
	}
}

// compareByDeadline compares two events by deadline
// Returns true if event i should come before event j
func compareByDeadline(i, j *event.Event) bool {
	// If both deadlines are known, the sooner one comes first
	if i.HasDeadline() && j.HasDeadline() {
		if !i.Deadline.Equal(j.Deadline) {
			return i.Deadline.Before(j.Deadline)
		}
	} else if i.HasDeadline() {
		// Dated events come before dateless ones
		return true
	} else if j.HasDeadline() {
		return false
	}

	// Equal or missing deadlines fall back to source then title
	if i.Source != j.Source {
		return i.Source < j.Source
	}
	return strings.ToLower(i.Title) < strings.ToLower(j.Title)
}
