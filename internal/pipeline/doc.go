// Package pipeline orchestrates a full scrape cycle.
//
// A run loads the persisted snapshot, fetches every configured source
// through a bounded worker pool, normalizes the raw records, reconciles
// them against the snapshot, and saves the result atomically. Individual
// source failures never abort a run; they are collected per source so the
// caller can report them. The returned Result carries the events to
// announce plus counters describing what happened.
package pipeline
