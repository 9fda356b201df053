// Package config loads the YAML runtime configuration: where the store
// lives, how the pipeline is tuned, and which sources to scrape.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Source types selectable in the config file.
const (
	TypeHTML = "html"
	TypeFeed = "feed"
)

// Defaults applied to fields the file leaves unset.
const (
	DefaultStorePath     = "data/events.json"
	DefaultConcurrency   = 6
	MaxConcurrency       = 16
	DefaultSourceTimeout = Duration(15 * time.Second)
	DefaultRunTimeout    = Duration(2 * time.Minute)
	DefaultRetention     = Duration(30 * 24 * time.Hour)
)

// Duration reads Go duration strings ("15s", "2m", "720h") from YAML.
// yaml.v3 only understands integer nanoseconds for time.Duration fields,
// which nobody wants to write in a config file.
type Duration time.Duration

func (d Duration) String() string { return time.Duration(d).String() }

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// SourceConfig describes one origin site or feed
type SourceConfig struct {
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"`               // html | feed
	URL      string   `yaml:"url"`
	Selector string   `yaml:"selector,omitempty"` // html: CSS selector for candidate elements
	Keywords []string `yaml:"keywords,omitempty"` // keep only titles containing one of these
	MaxAge   Duration `yaml:"max_age,omitempty"`  // feed: skip entries published earlier than this
	Timeout  Duration `yaml:"timeout,omitempty"`  // per-fetch cap, defaulted from pipeline.source_timeout
}

// PipelineConfig tunes one pipeline run
type PipelineConfig struct {
	Concurrency   int      `yaml:"concurrency"`
	SourceTimeout Duration `yaml:"source_timeout"`
	RunTimeout    Duration `yaml:"run_timeout"`
	Retention     Duration `yaml:"retention"`
	TitleLimit    int      `yaml:"title_limit"`
}

// Config is the root of the YAML file
type Config struct {
	Store    string         `yaml:"store"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Sources  []SourceConfig `yaml:"sources"`
}

// Load reads, defaults, and validates a configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Store == "" {
		c.Store = DefaultStorePath
	}
	if c.Pipeline.Concurrency <= 0 {
		c.Pipeline.Concurrency = DefaultConcurrency
	}
	if c.Pipeline.Concurrency > MaxConcurrency {
		c.Pipeline.Concurrency = MaxConcurrency
	}
	if c.Pipeline.SourceTimeout <= 0 {
		c.Pipeline.SourceTimeout = DefaultSourceTimeout
	}
	if c.Pipeline.RunTimeout <= 0 {
		c.Pipeline.RunTimeout = DefaultRunTimeout
	}
	if c.Pipeline.Retention <= 0 {
		c.Pipeline.Retention = DefaultRetention
	}
	for i := range c.Sources {
		if c.Sources[i].Timeout <= 0 {
			c.Sources[i].Timeout = c.Pipeline.SourceTimeout
		}
	}
}

// Validate checks the config for mistakes that would otherwise surface as
// confusing mid-run failures.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return errors.New("config needs at least one source")
	}

	seen := make(map[string]bool)
	for i, s := range c.Sources {
		if s.Name == "" {
			return fmt.Errorf("source %d: name is required", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("source %q: duplicate name", s.Name)
		}
		seen[s.Name] = true

		if s.URL == "" {
			return fmt.Errorf("source %q: url is required", s.Name)
		}

		switch s.Type {
		case TypeHTML:
			if s.Selector == "" {
				return fmt.Errorf("source %q: selector is required for html sources", s.Name)
			}
		case TypeFeed:
		default:
			return fmt.Errorf("source %q: unknown type %q", s.Name, s.Type)
		}
	}

	return nil
}

// Default returns the built-in configuration: government portals, company
// challenge pages, competition listings, and a news feed. Used when no
// config file is given.
func Default() *Config {
	c := &Config{
		Sources: []SourceConfig{
			{Name: "mygov", Type: TypeHTML, URL: "https://www.mygov.in/homepage/",
				Selector: "a", Keywords: []string{"challenge", "hackathon"}},
			{Name: "meity", Type: TypeHTML, URL: "https://www.meity.gov.in/press-releases",
				Selector: "a", Keywords: []string{"challenge", "hackathon", "innovation"}},
			{Name: "digital_india", Type: TypeHTML, URL: "https://www.digitalindia.gov.in/news",
				Selector: "a", Keywords: []string{"hackathon"}},
			{Name: "rbi", Type: TypeHTML, URL: "https://www.rbi.org.in/Scripts/BS_PressReleaseDisplay.aspx",
				Selector: "a", Keywords: []string{"harbinger", "hackathon"}},
			{Name: "isro", Type: TypeHTML, URL: "https://www.isro.gov.in/Updates.html",
				Selector: "a", Keywords: []string{"hackathon", "challenge"}},
			{Name: "nic", Type: TypeHTML, URL: "https://www.nic.in/news/",
				Selector: "h2, h3", Keywords: []string{"challenge", "hackathon"}},
			{Name: "nvidia", Type: TypeHTML, URL: "https://developer.nvidia.com/community/events",
				Selector: "h3, h2", Keywords: []string{"challenge", "hackathon"}},
			{Name: "meta", Type: TypeHTML, URL: "https://developers.facebook.com/blog/",
				Selector: "h2", Keywords: []string{"challenge", "hackathon"}},
			{Name: "google_dev", Type: TypeHTML, URL: "https://developers.google.com/events",
				Selector: "a", Keywords: []string{"challenge", "hackathon"}},
			{Name: "microsoft", Type: TypeHTML, URL: "https://developer.microsoft.com/en-us/events/",
				Selector: "h3, h2", Keywords: []string{"challenge", "hackathon"}},
			{Name: "apple", Type: TypeHTML, URL: "https://developer.apple.com/news/",
				Selector: "h2, h3", Keywords: []string{"challenge"}},
			{Name: "aws", Type: TypeHTML, URL: "https://aws.amazon.com/events/",
				Selector: "h2, h3", Keywords: []string{"challenge", "hackathon"}},
			{Name: "kaggle", Type: TypeHTML, URL: "https://www.kaggle.com/competitions",
				Selector: "a.sc-bYoBruce"},
			{Name: "aicrowd", Type: TypeHTML, URL: "https://www.aicrowd.com/challenges",
				Selector: "a.challenge-list-item__link"},
			{Name: "devfolio", Type: TypeHTML, URL: "https://devfolio.co/hackathons",
				Selector: "h3", Keywords: []string{"hackathon"}},
			{Name: "google_news", Type: TypeFeed,
				URL:      "https://news.google.com/rss/search?q=hackathon&hl=en-IN&gl=IN&ceid=IN:en",
				Keywords: []string{"hackathon", "challenge"}, MaxAge: Duration(7 * 24 * time.Hour)},
		},
	}
	c.applyDefaults()
	return c
}
