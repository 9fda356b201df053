package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/jayyyyqwq/hackathon-finder-bot/internal/config"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/event"
)

// HTMLSource scrapes a listing page and turns every element matched by the
// configured CSS selector into one raw record.
type HTMLSource struct {
	name     string
	url      string
	selector string
	keywords []string
	timeout  time.Duration
}

// NewHTML creates an HTML scraping source from its configuration.
func NewHTML(cfg config.SourceConfig) *HTMLSource {
	return &HTMLSource{
		name:     cfg.Name,
		url:      cfg.URL,
		selector: cfg.Selector,
		keywords: cfg.Keywords,
		timeout:  time.Duration(cfg.Timeout),
	}
}

// Name returns the configured source name.
func (s *HTMLSource) Name() string { return s.name }

// Fetch downloads the listing page and extracts one record per selector
// match. Matches whose text contains none of the configured keywords are
// skipped. Relative links are resolved against the page URL.
func (s *HTMLSource) Fetch(ctx context.Context) ([]RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := colly.NewCollector(
		colly.UserAgent(UserAgent),
	)
	c.SetRequestTimeout(s.timeout)

	records := make([]RawRecord, 0)

	c.OnHTML(s.selector, func(e *colly.HTMLElement) {
		title := strings.TrimSpace(e.Text)
		if title == "" {
			// Image-only anchors often carry the name in the title attribute.
			title = strings.TrimSpace(e.Attr("title"))
		}
		if title == "" || !matchKeywords(title, s.keywords) {
			return
		}

		link := e.Attr("href")
		if link == "" {
			link = e.ChildAttr("a[href]", "href")
		}
		if link != "" {
			link = e.Request.AbsoluteURL(link)
		}

		records = append(records, RawRecord{
			Title:        title,
			Link:         link,
			Source:       s.name,
			DeadlineText: nearbyDeadline(e.DOM),
		})
	})

	if err := c.Visit(s.url); err != nil {
		return nil, fmt.Errorf("fetching %s: %w", s.url, err)
	}

	return records, nil
}

// nearbyDeadline probes for deadline-bearing text around a matched
// element. Deadlines usually live in the element text itself; some sites
// put them in a sibling node inside the same card, so fall back to the
// enclosing element.
func nearbyDeadline(sel *goquery.Selection) string {
	if d := event.FindDeadlineText(sel.Text()); d != "" {
		return d
	}
	return event.FindDeadlineText(sel.Parent().Text())
}
