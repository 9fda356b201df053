package event

import (
	"sort"
	"strings"
	"time"
)

// Snapshot is the durable set of active events at a point in time
type Snapshot struct {
	Events    map[string]*Event `json:"events"`     // keyed by Event.ID
	UpdatedAt string            `json:"updated_at"` // RFC3339 timestamp
}

// NewSnapshot creates an empty snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Events: make(map[string]*Event),
	}
}

// ReconcileResult contains the outcome of merging one run into the store
type ReconcileResult struct {
	Announce []*Event  // newly seen and unexpired, sorted by source then title
	Expired  []*Event  // entries purged this run
	Snapshot *Snapshot // next durable state
}

// Reconcile merges the current run's events into the previous snapshot,
// purges expired entries, and returns the events to announce.
//
// Rules:
//   - a known id keeps its Source and FirstSeen; Title and Deadline are
//     refreshed from the current run
//   - duplicate ids within one run: the first occurrence wins, and callers
//     supply events in configured adapter order
//   - newly seen ids get FirstSeen = now
//   - the expiry sweep covers the whole store, so a brand-new event whose
//     deadline already passed is neither stored nor announced
func Reconcile(previous *Snapshot, current []*Event, now time.Time, retention time.Duration) *ReconcileResult {
	if previous == nil {
		previous = NewSnapshot()
	}

	next := NewSnapshot()
	next.UpdatedAt = now.UTC().Format(time.RFC3339)
	for id, evt := range previous.Events {
		copied := *evt
		next.Events[id] = &copied
	}

	fresh := make([]*Event, 0)
	seen := make(map[string]bool)
	for _, evt := range current {
		if seen[evt.ID] {
			continue
		}
		seen[evt.ID] = true

		if known, ok := next.Events[evt.ID]; ok {
			known.Title = evt.Title
			known.Deadline = evt.Deadline
			continue
		}

		copied := *evt
		copied.FirstSeen = now.UTC()
		next.Events[copied.ID] = &copied
		fresh = append(fresh, &copied)
	}

	result := &ReconcileResult{
		Announce: make([]*Event, 0),
		Snapshot: next,
	}

	for id, evt := range next.Events {
		if evt.Expired(now, retention) {
			result.Expired = append(result.Expired, evt)
			delete(next.Events, id)
		}
	}

	for _, evt := range fresh {
		if _, ok := next.Events[evt.ID]; ok {
			result.Announce = append(result.Announce, evt)
		}
	}
	SortBySourceTitle(result.Announce)
	SortBySourceTitle(result.Expired)

	return result
}

// SortBySourceTitle orders events by source, then lowercased title.
// Announce lists and digests rely on this for deterministic output.
func SortBySourceTitle(events []*Event) {
	sort.Slice(events, func(i, j int) bool {
		if events[i].Source != events[j].Source {
			return events[i].Source < events[j].Source
		}
		return strings.ToLower(events[i].Title) < strings.ToLower(events[j].Title)
	})
}

// Active returns the snapshot's events sorted by source then title.
func (s *Snapshot) Active() []*Event {
	events := make([]*Event, 0, len(s.Events))
	for _, evt := range s.Events {
		events = append(events, evt)
	}
	SortBySourceTitle(events)
	return events
}
