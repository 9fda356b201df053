// Package source fetches raw hackathon announcements from the configured
// sites and feeds.
//
// Two source kinds are supported: HTML sources scrape a listing page with a
// CSS selector, feed sources read RSS or Atom items. Both produce RawRecord
// values that carry the announcement exactly as published; cleaning and
// validation happen later in the normalize package. Each source is built
// from its config entry through New, so adding a site is a config change
// rather than a code change.
package source
