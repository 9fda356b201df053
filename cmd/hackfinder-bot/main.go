package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jayyyyqwq/hackathon-finder-bot/internal/config"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/event"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/logger"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/notifier"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/pipeline"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/schedule"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/source"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/storage"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/telegram"
)

// pollTimeout is the getUpdates long-poll window in seconds.
const pollTimeout = 30

const startText = `👋 <b>Hackathon Finder Bot</b>

Commands:
/check - run the scrapers now and get fresh results
/active - list everything currently tracked
/file - download the raw JSON snapshot
/help - list commands

The bot also scrapes on a schedule and announces anything new.`

var (
	botToken   = flag.String("bot-token", os.Getenv("TELEGRAM_BOT_TOKEN"), "Telegram bot token (or env: TELEGRAM_BOT_TOKEN)")
	chatID     = flag.String("chat-id", os.Getenv("TELEGRAM_CHAT_ID"), "Telegram chat ID (or env: TELEGRAM_CHAT_ID)")
	configPath = flag.String("config", "", "Path to YAML config (default: built-in source list)")
	storePath  = flag.String("store", "", "Snapshot file path (overrides config)")
	cronSpec   = flag.String("schedule", schedule.DefaultSpec, "Cron expression for scheduled scrapes")
	once       = flag.Bool("once", false, "Run one scrape cycle, announce, and exit")
	dryRun     = flag.Bool("dry-run", false, "Print announcements instead of sending them (disables the command loop)")
	verbose    = flag.Bool("verbose", false, "Enable debug logging")
)

// bot ties the Telegram client to the scrape pipeline. All replies go to
// the one configured chat; messages from anywhere else are ignored.
type bot struct {
	client    *telegram.Client
	scheduler *schedule.Scheduler
	store     *storage.Store
	chatID    string
}

func main() {
	flag.Parse()

	level := logger.LevelInfo
	if *verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, os.Stdout))

	if !*dryRun {
		if *botToken == "" {
			fmt.Fprintf(os.Stderr, "Error: bot token is required (use --bot-token or TELEGRAM_BOT_TOKEN env var)\n")
			os.Exit(1)
		}
		if *chatID == "" {
			fmt.Fprintf(os.Stderr, "Error: chat ID is required (use --chat-id or TELEGRAM_CHAT_ID env var)\n")
			os.Exit(1)
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *storePath != "" {
		cfg.Store = *storePath
	}

	sources, err := source.FromConfigs(cfg.Sources)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building sources: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.New(cfg.Store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	runner := pipeline.New(cfg, sources, store)

	var client *telegram.Client
	var announcer notifier.Notifier
	if *dryRun {
		announcer = notifier.NewDryRunNotifier()
	} else {
		client, err = telegram.NewClient(*botToken, *chatID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing Telegram client: %v\n", err)
			os.Exit(1)
		}
		announcer = notifier.NewTelegramNotifier(client, store.Path())
	}

	announce := func(result *pipeline.Result) {
		if len(result.Announce) == 0 {
			return
		}
		if err := announcer.Notify(result.Announce); err != nil {
			logger.Error("announcing scheduled run", nil, err)
		}
	}

	scheduler, err := schedule.New(*cronSpec, runner, announce)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *once {
		result, err := scheduler.Trigger(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running pipeline: %v\n", err)
			os.Exit(1)
		}
		announce(result)
		fmt.Printf("Run complete: %d new, %d active, %d source failures\n",
			len(result.Announce), result.Active, len(result.Failures))
		return
	}

	scheduler.Start()
	defer scheduler.Stop()

	logger.Info("bot started", logger.Fields{
		"schedule": *cronSpec,
		"sources":  len(sources),
		"store":    store.Path(),
	})

	if *dryRun {
		// No client to poll with; scheduled runs print to stdout.
		select {}
	}

	b := &bot{
		client:    client,
		scheduler: scheduler,
		store:     store,
		chatID:    *chatID,
	}
	b.commandLoop()
}

// loadConfig reads the configured file, falling back to the built-in set.
func loadConfig() (*config.Config, error) {
	if *configPath == "" {
		return config.Default(), nil
	}
	return config.Load(*configPath)
}

// commandLoop long-polls Telegram for commands. It never returns; update
// errors are logged and retried after a short pause.
func (b *bot) commandLoop() {
	offset := 0
	for {
		updates, err := b.client.GetUpdates(offset, pollTimeout)
		if err != nil {
			logger.Warn("getting updates", logger.Fields{"error": err.Error()})
			time.Sleep(5 * time.Second)
			continue
		}

		for _, update := range updates {
			// Mark the update processed regardless of what it was
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}

			if update.Message == nil {
				continue
			}
			b.handleMessage(update.Message)
		}
	}
}

// parseCommand extracts the command word from a message, dropping
// arguments and the @BotName suffix groups append.
func parseCommand(text string) string {
	command := strings.TrimSpace(text)
	if i := strings.IndexAny(command, " @"); i > 0 {
		command = command[:i]
	}
	return command
}

func (b *bot) handleMessage(msg *telegram.Message) {
	chat := fmt.Sprintf("%d", msg.Chat.ID)
	if chat != b.chatID {
		logger.Debug("ignoring message from unconfigured chat", logger.Fields{"chat": chat})
		return
	}

	command := parseCommand(msg.Text)

	logger.Info("command received", logger.Fields{
		"from": msg.From.Username,
		"text": msg.Text,
	})

	switch command {
	case "/start":
		b.reply(startText)
	case "/help":
		b.reply("/check, /active, /file, /help")
	case "/check":
		b.handleCheck()
	case "/active":
		b.handleActive()
	case "/file":
		b.handleFile()
	default:
		if strings.HasPrefix(command, "/") {
			b.reply("Unknown command. /help lists what I understand.")
		}
	}
}

// handleCheck runs the pipeline synchronously and replies with whatever
// is new. Shares the scheduler's mutex, so it queues behind a scheduled
// run instead of racing it.
func (b *bot) handleCheck() {
	b.reply("⏳ Running scraper - please wait a few seconds...")

	result, err := b.scheduler.Trigger(context.Background())
	if err != nil {
		b.reply(fmt.Sprintf("Scrape failed: %v", err))
		return
	}

	if len(result.Announce) == 0 {
		b.reply(fmt.Sprintf("No new events found. %d active in the store.", result.Active))
		return
	}
	b.sendDigest(telegram.HeadingNew, result.Announce)
}

func (b *bot) handleActive() {
	snap, err := b.store.Load()
	if err != nil {
		b.reply(fmt.Sprintf("Loading snapshot failed: %v", err))
		return
	}
	b.sendDigest(telegram.HeadingLatest, snap.Active())
}

func (b *bot) handleFile() {
	if _, err := os.Stat(b.store.Path()); err != nil {
		b.reply("No data file available. Run /check first.")
		return
	}
	if err := b.client.SendDocument(b.store.Path(), ""); err != nil {
		logger.Error("sending snapshot file", nil, err)
		b.reply(fmt.Sprintf("Sending file failed: %v", err))
	}
}

// sendDigest replies with the digest, falling back to the snapshot file
// when the digest is too long for one message.
func (b *bot) sendDigest(heading string, events []*event.Event) {
	digest := telegram.Digest(heading, events)
	if len(digest) > telegram.MessageLimit {
		caption := fmt.Sprintf("%d events (digest too long for one message)", len(events))
		if err := b.client.SendDocument(b.store.Path(), caption); err != nil {
			logger.Error("sending digest document", nil, err)
		}
		return
	}
	b.reply(digest)
}

func (b *bot) reply(text string) {
	if err := b.client.SendMessage(text); err != nil {
		logger.Error("sending reply", nil, err)
	}
}
