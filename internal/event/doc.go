// Package event provides types and functions for hackathon and competition announcements.
//
// The event package handles announcement representation, identification, and
// run-over-run reconciliation through a snapshot store. Each event is assigned a
// deterministic SHA1-based ID generated from its canonical link, falling back to
// normalized title and source, enabling reliable deduplication across runs and
// across sources. Deadline extraction from loosely structured page text lives
// here too; a failed parse is a normal outcome that leaves the deadline absent.
package event
