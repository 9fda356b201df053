package event

import (
	"crypto/sha1"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Event represents a hackathon or competition announcement
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Link      string    `json:"link,omitempty"`
	Source    string    `json:"source"`
	Deadline  time.Time `json:"deadline,omitzero"` // zero value = no parsable deadline
	FirstSeen time.Time `json:"first_seen"`
}

// CanonicalLink reduces a link to the form used for identity:
// lower-cased, query string and fragment dropped, trailing slash stripped.
// Tracking parameters and listing-page slashes otherwise make the same
// announcement look new on every run.
func CanonicalLink(link string) string {
	link = strings.ToLower(strings.TrimSpace(link))
	if link == "" {
		return ""
	}
	u, err := url.Parse(link)
	if err != nil {
		return strings.TrimSuffix(link, "/")
	}
	u.RawQuery = ""
	u.Fragment = ""
	return strings.TrimSuffix(u.String(), "/")
}

// GenerateID creates a deterministic ID for an event. The canonical link
// is the primary key; announcements without a link fall back to the
// normalized title plus source so they still dedupe across runs.
func GenerateID(link, title, source string) string {
	key := CanonicalLink(link)
	if key == "" {
		key = strings.ToLower(strings.TrimSpace(title)) + "|" + source
	}
	h := sha1.New()
	h.Write([]byte(key))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// New creates an Event with its ID populated. FirstSeen is left zero;
// Reconcile stamps it when the id first enters the store.
func New(title, link, source string, deadline time.Time) *Event {
	return &Event{
		ID:       GenerateID(link, title, source),
		Title:    title,
		Link:     link,
		Source:   source,
		Deadline: deadline,
	}
}

// HasDeadline reports whether a parsable deadline was found.
func (e *Event) HasDeadline() bool {
	return !e.Deadline.IsZero()
}

// Expired reports whether the event should leave the store: its deadline
// date has passed, or it is dateless and older than the retention window.
// Comparison is by calendar date, so an event stays live through its
// deadline day.
func (e *Event) Expired(now time.Time, retention time.Duration) bool {
	if e.HasDeadline() {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return e.Deadline.Before(today)
	}
	if e.FirstSeen.IsZero() {
		return false
	}
	return now.Sub(e.FirstSeen) > retention
}
