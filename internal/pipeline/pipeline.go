package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/jayyyyqwq/hackathon-finder-bot/internal/config"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/event"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/logger"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/normalize"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/source"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/storage"
)

// Result summarizes one pipeline run.
type Result struct {
	Announce []*event.Event   // newly seen events, ordered by source then title
	Failures map[string]error // per-source fetch failures, keyed by source name
	Raw      int              // raw records fetched across all sources
	Dropped  int              // records rejected during normalization
	Expired  int              // events purged from the store this run
	Active   int              // events stored after the run
	Elapsed  time.Duration
}

// Runner wires sources, normalization, and the store into one run.
type Runner struct {
	Sources       []source.Source
	Store         *storage.Store
	Normalizer    *normalize.Normalizer
	Concurrency   int
	SourceTimeout time.Duration
	RunTimeout    time.Duration
	Retention     time.Duration
}

// New creates a Runner tuned from the pipeline config.
func New(cfg *config.Config, sources []source.Source, store *storage.Store) *Runner {
	return &Runner{
		Sources:       sources,
		Store:         store,
		Normalizer:    &normalize.Normalizer{TitleLimit: cfg.Pipeline.TitleLimit},
		Concurrency:   cfg.Pipeline.Concurrency,
		SourceTimeout: time.Duration(cfg.Pipeline.SourceTimeout),
		RunTimeout:    time.Duration(cfg.Pipeline.RunTimeout),
		Retention:     time.Duration(cfg.Pipeline.Retention),
	}
}

// Run executes one full cycle: load the store, fetch every source, normalize
// and reconcile, persist the new snapshot, and report what should be
// announced. Source failures are contained and reported in the Result; only
// store errors abort the run.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	previous, err := r.Store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading store: %w", err)
	}

	if r.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.RunTimeout)
		defer cancel()
	}

	records, failures := r.fetchAll(ctx)

	result := &Result{
		Failures: failures,
		Raw:      len(records),
	}

	current := make([]*event.Event, 0, len(records))
	for _, rec := range records {
		evt, err := r.Normalizer.Normalize(rec)
		if err != nil {
			result.Dropped++
			logger.Debug("record dropped", logger.Fields{
				"source": rec.Source,
				"title":  rec.Title,
				"reason": err.Error(),
			})
			continue
		}
		current = append(current, evt)
	}

	outcome := event.Reconcile(previous, current, time.Now(), r.Retention)

	if err := r.Store.Save(outcome.Snapshot); err != nil {
		return nil, fmt.Errorf("saving store: %w", err)
	}

	result.Announce = outcome.Announce
	result.Expired = len(outcome.Expired)
	result.Active = len(outcome.Snapshot.Events)
	result.Elapsed = time.Since(start)

	logger.Info("run complete", logger.Fields{
		"sources":   len(r.Sources),
		"failures":  len(result.Failures),
		"raw":       result.Raw,
		"dropped":   result.Dropped,
		"announced": len(result.Announce),
		"expired":   result.Expired,
		"active":    result.Active,
		"elapsed":   result.Elapsed.String(),
	})
	logger.IncrCounter("pipeline.runs")
	logger.AddCounter("pipeline.announced", int64(len(result.Announce)))
	logger.SetGauge("store.events", float64(result.Active))

	return result, nil
}

type fetchResult struct {
	records []source.RawRecord
	err     error
}

// fetchAll runs every source through a bounded worker pool and merges the
// results in configuration order, so downstream tie-breaking stays
// deterministic no matter which fetch finishes first. When the run context
// expires, unfinished sources are abandoned and recorded as failures; their
// goroutines finish in the background, bounded by the per-request timeouts.
func (r *Runner) fetchAll(ctx context.Context) ([]source.RawRecord, map[string]error) {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = config.DefaultConcurrency
	}

	sem := make(chan struct{}, concurrency)
	results := make([]chan fetchResult, len(r.Sources))

	for i, src := range r.Sources {
		results[i] = make(chan fetchResult, 1)
		go func(i int, src source.Source) {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				results[i] <- fetchResult{err: ctx.Err()}
				return
			}
			defer func() { <-sem }()

			fetchCtx := ctx
			if r.SourceTimeout > 0 {
				var cancel context.CancelFunc
				fetchCtx, cancel = context.WithTimeout(ctx, r.SourceTimeout)
				defer cancel()
			}

			started := time.Now()
			records, err := src.Fetch(fetchCtx)
			logger.RecordTiming("source.fetch", time.Since(started))
			results[i] <- fetchResult{records: records, err: err}
		}(i, src)
	}

	merged := make([]source.RawRecord, 0)
	failures := make(map[string]error)

	for i, src := range r.Sources {
		var res fetchResult
		select {
		case res = <-results[i]:
		case <-ctx.Done():
			// The source may have delivered just before the deadline.
			select {
			case res = <-results[i]:
			default:
				res = fetchResult{err: fmt.Errorf("fetch abandoned: %w", ctx.Err())}
			}
		}

		if res.err != nil {
			failures[src.Name()] = res.err
			logger.Error("source failed", logger.Fields{"source": src.Name()}, res.err)
			logger.IncrCounter("source.failures")
			continue
		}

		logger.Info("source fetched", logger.Fields{
			"source":  src.Name(),
			"records": len(res.records),
		})
		merged = append(merged, res.records...)
	}

	return merged, failures
}
