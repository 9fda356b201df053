// Package cli implements the command-line interface for hackfinder.
//
// The cli package provides the Cobra-based CLI with support for running the
// scrape pipeline once, formatting output (text/JSON), sorting (by
// source/title/deadline), and announcing new events through a notifier.
// It coordinates the source, pipeline, and storage packages to fetch,
// persist, and report on newly announced hackathons and competitions.
package cli
