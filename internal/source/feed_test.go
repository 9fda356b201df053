package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jayyyyqwq/hackathon-finder-bot/internal/config"
)

func TestFeedFetch(t *testing.T) {
	now := time.Now().UTC()
	rss := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>hackathon - Google News</title>
<item>
  <title>National AI Hackathon opens registrations</title>
  <link>https://example.com/news/ai-hackathon</link>
  <pubDate>%s</pubDate>
</item>
<item>
  <title>Last year's hackathon winners announced</title>
  <link>https://example.com/news/old-hackathon</link>
  <pubDate>%s</pubDate>
</item>
<item>
  <title>Cricket league scores update</title>
  <link>https://example.com/news/cricket</link>
  <pubDate>%s</pubDate>
</item>
<item>
  <title>CodeSprint Challenge closes 2026-01-31</title>
  <link>https://example.com/news/codesprint</link>
  <pubDate>%s</pubDate>
</item>
<item>
  <title>Fintech Challenge for students</title>
  <link>https://example.com/news/fintech</link>
  <description>Apply by 10 May 2026 on the portal.</description>
</item>
</channel>
</rss>`,
		now.Add(-2*time.Hour).Format(time.RFC1123Z),
		now.Add(-240*time.Hour).Format(time.RFC1123Z),
		now.Add(-1*time.Hour).Format(time.RFC1123Z),
		now.Add(-3*time.Hour).Format(time.RFC1123Z),
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rss))
	}))
	defer server.Close()

	src := NewFeed(config.SourceConfig{
		Name:     "google_news",
		Type:     config.TypeFeed,
		URL:      server.URL,
		Keywords: []string{"hackathon", "challenge"},
		MaxAge:   config.Duration(7 * 24 * time.Hour),
		Timeout:  config.Duration(5 * time.Second),
	})

	records, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	// The stale item and the cricket item are filtered out; the item with
	// no pubDate is kept.
	want := []RawRecord{
		{
			Title:  "National AI Hackathon opens registrations",
			Link:   "https://example.com/news/ai-hackathon",
			Source: "google_news",
		},
		{
			Title:        "CodeSprint Challenge closes 2026-01-31",
			Link:         "https://example.com/news/codesprint",
			Source:       "google_news",
			DeadlineText: "2026-01-31",
		},
		{
			Title:        "Fintech Challenge for students",
			Link:         "https://example.com/news/fintech",
			Source:       "google_news",
			DeadlineText: "10 May 2026",
		},
	}

	if len(records) != len(want) {
		t.Fatalf("Fetch() returned %d records, want %d: %+v", len(records), len(want), records)
	}
	for i, rec := range records {
		if rec != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, rec, want[i])
		}
	}
}

func TestFeedFetchNoMaxAge(t *testing.T) {
	rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>updates</title>
<item>
  <title>Ancient Hackathon announcement</title>
  <link>https://example.com/ancient</link>
  <pubDate>Tue, 03 Jan 2006 15:04:05 +0000</pubDate>
</item>
</channel>
</rss>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rss))
	}))
	defer server.Close()

	src := NewFeed(config.SourceConfig{
		Name:     "google_news",
		URL:      server.URL,
		Keywords: []string{"hackathon"},
		Timeout:  config.Duration(5 * time.Second),
	})

	records, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Fetch() returned %d records, want 1 (no max age configured)", len(records))
	}
}

func TestFeedFetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "http error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
		},
		{
			name: "not a feed",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html><body>maintenance</body></html>"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			src := NewFeed(config.SourceConfig{
				Name:    "google_news",
				URL:     server.URL,
				Timeout: config.Duration(5 * time.Second),
			})

			if _, err := src.Fetch(context.Background()); err == nil {
				t.Error("Fetch() expected error, got nil")
			}
		})
	}
}
