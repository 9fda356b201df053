// Package normalize converts raw scraped records into canonical events.
//
// Normalization is where noisy per-site markup stops mattering: titles are
// cleaned and bounded, links validated, deadlines parsed, and the stable id
// derived. Records that cannot become events are rejected with sentinel
// errors the pipeline drops and counts rather than treating as failures.
package normalize

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/jayyyyqwq/hackathon-finder-bot/internal/event"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/source"
)

// DefaultTitleLimit bounds rendered titles; chat digest lines get unreadable past this.
const DefaultTitleLimit = 140

var (
	// ErrEmptyRecord marks records with neither a usable title nor a link.
	ErrEmptyRecord = errors.New("record has neither title nor link")
	// ErrBadLink marks records whose link is present but not an absolute http(s) URL.
	ErrBadLink = errors.New("link is not an absolute http or https URL")
)

var whitespace = regexp.MustCompile(`\s+`)

// Normalizer converts RawRecords into Events
type Normalizer struct {
	TitleLimit int // rune cap for titles, 0 means DefaultTitleLimit
}

// Normalize converts one raw record into a canonical Event.
// ErrEmptyRecord and ErrBadLink are expected outcomes for junk records,
// not pipeline failures; callers drop the record and move on.
func (n *Normalizer) Normalize(rec source.RawRecord) (*event.Event, error) {
	title := CleanTitle(rec.Title, n.limit())
	link := strings.TrimSpace(rec.Link)

	if title == "" && link == "" {
		return nil, ErrEmptyRecord
	}

	if link != "" {
		u, err := url.Parse(link)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, ErrBadLink
		}
	}

	deadline := event.ParseDeadline(rec.DeadlineText)

	return event.New(title, link, rec.Source, deadline), nil
}

func (n *Normalizer) limit() int {
	if n.TitleLimit > 0 {
		return n.TitleLimit
	}
	return DefaultTitleLimit
}

// CleanTitle collapses whitespace runs to single spaces, trims, and
// truncates to limit runes with an ellipsis marker when cut. Truncation
// counts runes, not bytes, so multi-byte titles are never split mid-character.
func CleanTitle(title string, limit int) string {
	title = strings.TrimSpace(whitespace.ReplaceAllString(title, " "))
	rs := []rune(title)
	if limit > 0 && len(rs) > limit {
		return string(rs[:limit]) + "…"
	}
	return title
}
