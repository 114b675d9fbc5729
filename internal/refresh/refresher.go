package refresh

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/dkonya/methu-forecast/internal/domain"
	"github.com/dkonya/methu-forecast/internal/observability"
	"github.com/dkonya/methu-forecast/internal/scrape"
)

// Parser turns fetched markup into a forecast snapshot.
type Parser interface {
	Parse(markup, settlement string) (domain.ForecastSnapshot, scrape.ParseStats, error)
}

// Publisher forwards a refreshed snapshot downstream.
type Publisher interface {
	Publish(ctx context.Context, settlement domain.Settlement, snapshot domain.ForecastSnapshot) error
}

// Refresher periodically re-fetches and re-parses the forecast for every
// configured settlement, keeping the latest snapshot in the store and
// optionally publishing it to Kafka.
type Refresher struct {
	settlements []string
	interval    time.Duration

	resolver  domain.Resolver
	fetcher   domain.Fetcher
	parser    Parser
	publisher Publisher // nil when publishing is disabled
	store     *Store

	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
	ready   atomic.Bool
}

// New creates a Refresher. A nil clock means real time.
func New(
	settlements []string,
	interval time.Duration,
	resolver domain.Resolver,
	fetcher domain.Fetcher,
	parser Parser,
	publisher Publisher,
	store *Store,
	logger *slog.Logger,
	metrics *observability.Metrics,
	clock clockwork.Clock,
) *Refresher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Refresher{
		settlements: settlements,
		interval:    interval,
		resolver:    resolver,
		fetcher:     fetcher,
		parser:      parser,
		publisher:   publisher,
		store:       store,
		logger:      logger,
		metrics:     metrics,
		clock:       clock,
	}
}

// CheckReadiness returns nil once at least one settlement has been refreshed
// successfully.
func (r *Refresher) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("no settlement has been refreshed yet")
	}
	return nil
}

// Run refreshes all settlements immediately and then on every interval tick
// until the context is cancelled. A cycle with failures is retried with
// exponential backoff instead of waiting out the full interval.
func (r *Refresher) Run(ctx context.Context) error {
	r.logger.Info("refresher started",
		"settlements", len(r.settlements), "interval", r.interval)
	r.metrics.RefresherRunning.Set(1)
	defer r.metrics.RefresherRunning.Set(0)

	backoff := time.Minute
	maxBackoff := r.interval

	for {
		failed := r.refreshAll(ctx)
		if ctx.Err() != nil {
			r.logger.Info("refresher stopping", "reason", ctx.Err())
			return nil
		}

		wait := r.interval
		if failed > 0 {
			wait = backoff
			backoff = nextBackoff(backoff, maxBackoff)
			r.logger.Warn("refresh cycle had failures, retrying early",
				"failed", failed, "retry_in", wait)
		} else {
			backoff = time.Minute
		}

		select {
		case <-ctx.Done():
			r.logger.Info("refresher stopping", "reason", ctx.Err())
			return nil
		case <-r.clock.After(wait):
		}
	}
}

// refreshAll runs one refresh cycle over every settlement and returns the
// number of failures.
func (r *Refresher) refreshAll(ctx context.Context) int {
	failed := 0
	for _, name := range r.settlements {
		if ctx.Err() != nil {
			return failed
		}
		if err := r.refreshOne(ctx, name); err != nil {
			failed++
		}
	}
	return failed
}

func (r *Refresher) refreshOne(ctx context.Context, name string) error {
	settlement, err := r.resolver.Resolve(ctx, name)
	switch {
	case errors.Is(err, domain.ErrSettlementNotFound):
		r.metrics.ResolverRequests.WithLabelValues("empty").Inc()
		r.logger.Error("settlement unknown to met.hu", "settlement", name)
		return err
	case err != nil:
		r.metrics.ResolverRequests.WithLabelValues("error").Inc()
		r.logger.Error("settlement lookup failed", "settlement", name, "error", err)
		return err
	}
	r.metrics.ResolverRequests.WithLabelValues("success").Inc()

	start := r.clock.Now()
	markup, err := r.fetcher.Fetch(ctx, settlement)
	r.metrics.FetchDuration.Observe(r.clock.Since(start).Seconds())
	if err != nil {
		r.metrics.FetchRequests.WithLabelValues("error").Inc()
		r.logger.Error("forecast fetch failed",
			"settlement", settlement.Name, "kod", settlement.Code, "error", err)
		return err
	}
	r.metrics.FetchRequests.WithLabelValues("success").Inc()

	snapshot, stats, err := r.parser.Parse(markup, settlement.Name)
	if err != nil {
		r.logger.Error("parse failed", "settlement", settlement.Name, "error", err)
		return err
	}

	strategy := stats.Strategy
	if strategy == "" {
		strategy = "none"
	}
	r.metrics.ParseOutcomes.WithLabelValues(strategy).Inc()
	r.metrics.SlotsExtracted.Observe(float64(len(snapshot.Slots)))
	r.metrics.UnknownIcons.Add(float64(stats.UnknownIcons))

	if !snapshot.Found {
		r.logger.Warn("no forecast in response", "settlement", settlement.Name)
	}

	r.store.Put(settlement, snapshot)
	r.ready.Store(true)

	r.logger.Info("settlement refreshed",
		"settlement", settlement.Name,
		"strategy", strategy,
		"slots", len(snapshot.Slots),
		"days", len(snapshot.Days))

	if r.publisher != nil {
		if err := r.publisher.Publish(ctx, settlement, snapshot); err != nil {
			r.metrics.PublishErrors.Inc()
			r.logger.Error("snapshot publish failed",
				"settlement", settlement.Name, "error", err)
			return err
		}
		r.metrics.SnapshotsPublished.Inc()
	}

	return nil
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}
