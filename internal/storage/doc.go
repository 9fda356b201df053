// Package storage provides JSON-based persistence for the event snapshot.
//
// The snapshot lives in a single file whose location comes from the config.
// Saves go through a temp file and an atomic rename, so an interrupted run
// can never leave a half-written store behind. The default location is
// data/events.json relative to the working directory.
package storage
