// Package telegram provides Telegram Bot API integration for announcing
// hackathon digests and serving bot commands.
//
// The client wraps the handful of Bot API methods the bot needs: sending
// HTML messages, uploading the snapshot file, and long-polling for updates.
// Sends retry transient failures with exponential backoff. Digest rendering
// lives here too, so the bot and the notifier share one message format.
//
// Authentication requires a bot token (from @BotFather) and chat ID.
package telegram
