// Package notifier provides notification interfaces and implementations for
// announcing hackathon and competition events.
//
// The notifier package supports posting announcements to various channels
// including Telegram and Twitter. It handles OAuth authentication, rate
// limiting, and message formatting for each channel, plus a dry-run
// implementation for testing what would be sent.
package notifier
