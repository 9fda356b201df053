package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jayyyyqwq/hackathon-finder-bot/internal/config"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/event"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/logger"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/notifier"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/pipeline"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/source"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/storage"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/telegram"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess   = 0
	ExitError     = 1
	ExitNewEvents = 2
)

var (
	flagConfig   string
	flagStore    string
	flagFormat   string
	flagSort     string
	flagNotify   string
	flagBotToken string
	flagChatID   string
	flagDryRun   bool
	flagShowAll  bool
	flagVerbose  bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hackfinder",
		Short: "Check hackathon listings for newly announced events",
		Long: `A CLI tool that scrapes hackathon and competition listings, deduplicates
them against a local snapshot, and reports the events it has not seen
before. Exit code 2 means new events were found.`,
		RunE: runCheck,
	}

	// Define flags
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to YAML config (default: built-in source list)")
	cmd.Flags().StringVar(&flagStore, "store", "", "Snapshot file path (overrides config)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flagSort, "sort", "source", "Sort order: source, title or deadline")
	cmd.Flags().StringVar(&flagNotify, "notify", "none", "Announce new events: none, telegram, twitter or dry-run")
	cmd.Flags().StringVar(&flagBotToken, "bot-token", os.Getenv("TELEGRAM_BOT_TOKEN"), "Telegram bot token (or env: TELEGRAM_BOT_TOKEN)")
	cmd.Flags().StringVar(&flagChatID, "chat-id", os.Getenv("TELEGRAM_CHAT_ID"), "Telegram chat ID (or env: TELEGRAM_CHAT_ID)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Shorthand for --notify dry-run")
	cmd.Flags().BoolVar(&flagShowAll, "show-all", false, "List every active event, not just new ones")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

// runCheck is the main command logic
func runCheck(cmd *cobra.Command, args []string) error {
	level := logger.LevelWarn
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, os.Stderr))

	// Validate format and sort order
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	sortOrder := SortOrder(strings.ToLower(flagSort))
	if sortOrder != SortBySource && sortOrder != SortByTitle && sortOrder != SortByDeadline {
		return fmt.Errorf("invalid sort order: %s (must be 'source', 'title' or 'deadline')", flagSort)
	}

	notifyMode := strings.ToLower(flagNotify)
	if flagDryRun {
		notifyMode = "dry-run"
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagStore != "" {
		cfg.Store = flagStore
	}

	sources, err := source.FromConfigs(cfg.Sources)
	if err != nil {
		return fmt.Errorf("building sources: %w", err)
	}

	store, err := storage.New(cfg.Store)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	if flagVerbose {
		fmt.Fprintf(os.Stderr, "Checking %d sources\n", len(sources))
		fmt.Fprintf(os.Stderr, "Snapshot file: %s\n", store.Path())
	}

	runner := pipeline.New(cfg, sources, store)

	result, err := runner.Run(context.Background())
	if err != nil {
		return fmt.Errorf("running pipeline: %w", err)
	}

	// Announce before sorting for display; the notifiers expect the
	// pipeline's source-then-title order.
	if notifyMode != "none" {
		if err := notify(notifyMode, store.Path(), result.Announce); err != nil {
			return err
		}
	}

	events := result.Announce
	if flagShowAll {
		snap, err := store.Load()
		if err != nil {
			return fmt.Errorf("loading snapshot: %w", err)
		}
		events = snap.Active()
	}
	sortEvents(events, sortOrder)

	out := &OutputResult{
		CheckedAt:  time.Now().UTC(),
		Events:     events,
		EventCount: len(events),
		ShowAll:    flagShowAll,
		Failures:   failureMessages(result.Failures),
		Stats: RunStats{
			Raw:     result.Raw,
			Dropped: result.Dropped,
			Expired: result.Expired,
			Active:  result.Active,
			Elapsed: result.Elapsed.Round(time.Millisecond).String(),
		},
	}

	grouped := sortOrder == SortBySource
	if err := WriteOutput(os.Stdout, out, format, grouped, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	// Exit code signals whether new events were found
	if len(result.Announce) > 0 {
		os.Exit(ExitNewEvents)
	}
	os.Exit(ExitSuccess)

	return nil
}

// loadConfig reads the configured file, falling back to the built-in set.
func loadConfig() (*config.Config, error) {
	if flagConfig == "" {
		return config.Default(), nil
	}
	return config.Load(flagConfig)
}

// notify announces events through the selected channel. Nothing is sent
// for a quiet run; the notifiers handle that themselves.
func notify(mode, snapshotPath string, events []*event.Event) error {
	n, err := buildNotifier(mode, snapshotPath)
	if err != nil {
		return err
	}
	if err := n.Notify(events); err != nil {
		return fmt.Errorf("announcing events: %w", err)
	}
	return nil
}

func buildNotifier(mode, snapshotPath string) (notifier.Notifier, error) {
	switch mode {
	case "dry-run", "dryrun":
		return notifier.NewDryRunNotifier(), nil
	case "telegram":
		client, err := telegram.NewClient(flagBotToken, flagChatID)
		if err != nil {
			return nil, fmt.Errorf("initializing telegram: %w", err)
		}
		return notifier.NewTelegramNotifier(client, snapshotPath), nil
	case "twitter":
		tw, err := notifier.NewTwitterNotifier()
		if err != nil {
			return nil, fmt.Errorf("initializing twitter: %w", err)
		}
		return tw, nil
	default:
		return nil, fmt.Errorf("unknown notifier: %s (must be 'none', 'telegram', 'twitter' or 'dry-run')", mode)
	}
}

// failureMessages flattens fetch errors for output; error values do not
// marshal to JSON.
func failureMessages(failures map[string]error) map[string]string {
	if len(failures) == 0 {
		return nil
	}
	msgs := make(map[string]string, len(failures))
	for name, err := range failures {
		msgs[name] = err.Error()
	}
	return msgs
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
