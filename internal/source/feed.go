package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/jayyyyqwq/hackathon-finder-bot/internal/config"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/event"
)

// FeedSource reads announcement items from an RSS or Atom feed.
type FeedSource struct {
	name     string
	url      string
	keywords []string
	maxAge   time.Duration
	timeout  time.Duration
}

// NewFeed creates a feed source from its configuration.
func NewFeed(cfg config.SourceConfig) *FeedSource {
	return &FeedSource{
		name:     cfg.Name,
		url:      cfg.URL,
		keywords: cfg.Keywords,
		maxAge:   time.Duration(cfg.MaxAge),
		timeout:  time.Duration(cfg.Timeout),
	}
}

// Name returns the configured source name.
func (s *FeedSource) Name() string { return s.name }

// Fetch parses the feed and keeps items whose title matches the keyword
// filter. When a max age is configured, items published before the cutoff
// are dropped; items without a parsable publish date are kept.
func (s *FeedSource) Fetch(ctx context.Context) ([]RawRecord, error) {
	parser := gofeed.NewParser()
	parser.UserAgent = UserAgent
	parser.Client = &http.Client{Timeout: s.timeout}

	feed, err := parser.ParseURLWithContext(s.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching feed %s: %w", s.url, err)
	}

	now := time.Now()
	records := make([]RawRecord, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil || item.Title == "" {
			continue
		}
		if !matchKeywords(item.Title, s.keywords) {
			continue
		}
		if s.maxAge > 0 && item.PublishedParsed != nil && now.Sub(*item.PublishedParsed) > s.maxAge {
			continue
		}

		deadline := event.FindDeadlineText(item.Title)
		if deadline == "" {
			deadline = event.FindDeadlineText(item.Description)
		}

		records = append(records, RawRecord{
			Title:        item.Title,
			Link:         item.Link,
			Source:       s.name,
			DeadlineText: deadline,
		})
	}

	return records, nil
}
