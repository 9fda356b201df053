package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/jayyyyqwq/hackathon-finder-bot/internal/config"
)

// UserAgent is sent with every outbound request. Several of the scraped
// sites return stripped-down pages to clients without a browser-like agent.
const UserAgent = "Mozilla/5.0 HackFinder/6.0"

// RawRecord is a single announcement exactly as it appeared at the source,
// before normalization.
type RawRecord struct {
	Title        string
	Link         string
	Source       string
	DeadlineText string
}

// Source fetches raw announcement records from one site or feed.
type Source interface {
	// Name returns the configured source name, used for attribution and logs.
	Name() string
	// Fetch retrieves the current set of announcements. A failure affects
	// only this source; callers are expected to continue with the rest.
	Fetch(ctx context.Context) ([]RawRecord, error)
}

// New builds a Source from its configuration entry.
func New(cfg config.SourceConfig) (Source, error) {
	switch cfg.Type {
	case config.TypeHTML:
		return NewHTML(cfg), nil
	case config.TypeFeed:
		return NewFeed(cfg), nil
	default:
		return nil, fmt.Errorf("source %s: unknown type %q", cfg.Name, cfg.Type)
	}
}

// FromConfigs builds all configured sources, preserving configuration order.
func FromConfigs(cfgs []config.SourceConfig) ([]Source, error) {
	sources := make([]Source, 0, len(cfgs))
	for _, cfg := range cfgs {
		s, err := New(cfg)
		if err != nil {
			return nil, err
		}
		sources = append(sources, s)
	}
	return sources, nil
}

// matchKeywords reports whether text contains any of the keywords,
// case-insensitively. An empty keyword list matches everything.
func matchKeywords(text string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
