package outbox

import (
	"context"
	"fmt"

	"github.com/MikeRez0/yporders/internal/adapter/config"
	"github.com/MikeRez0/yporders/internal/adapter/metrics"
	"github.com/MikeRez0/yporders/internal/core/port"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Stats struct {
	Pending int
	Sent    int
	Failed  int
}

// Relay moves pending outbox messages to the broker on a cron schedule.
// Delivery is at-least-once: a message sent but not marked is sent again.
// A batch is fetched, sent and marked in one transaction so that concurrent
// relays skip the rows another one holds.
type Relay struct {
	store       port.OutboxStore
	tx          port.Transactor
	sink        port.MessageSink
	metrics     *metrics.Metrics
	logger      *zap.Logger
	schedule    string
	batchSize   int
	maxAttempts int
	cron        *cron.Cron
}

func NewRelay(store port.OutboxStore, tx port.Transactor, sink port.MessageSink, cfg *config.Outbox,
	m *metrics.Metrics, logger *zap.Logger) (*Relay, error) {
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("outbox relay: batch size must be positive, got %d", cfg.BatchSize)
	}
	return &Relay{
		store:       store,
		tx:          tx,
		sink:        sink,
		metrics:     m,
		logger:      logger,
		schedule:    cfg.Schedule,
		batchSize:   cfg.BatchSize,
		maxAttempts: cfg.MaxAttempts,
		cron:        cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}, nil
}

// Start schedules Flush until ctx is done or Stop is called.
func (r *Relay) Start(ctx context.Context) error {
	_, err := r.cron.AddFunc(r.schedule, func() {
		if ctx.Err() != nil {
			return
		}
		if _, err := r.Flush(ctx); err != nil {
			r.logger.Error("Outbox relay run failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule outbox relay %q: %w", r.schedule, err)
	}

	r.cron.Start()
	r.logger.Info("Outbox relay started", zap.String("schedule", r.schedule))
	return nil
}

// Stop waits for a running Flush to finish.
func (r *Relay) Stop() {
	<-r.cron.Stop().Done()
	r.logger.Info("Outbox relay stopped")
}

// Flush delivers one batch of pending messages.
func (r *Relay) Flush(ctx context.Context) (Stats, error) {
	return r.flush(ctx, r.maxAttempts)
}

// FlushAll delivers one batch ignoring the attempts limit.
func (r *Relay) FlushAll(ctx context.Context) (Stats, error) {
	return r.flush(ctx, 0)
}

func (r *Relay) flush(ctx context.Context, maxAttempts int) (Stats, error) {
	var (
		stats   Stats
		stopErr error
	)

	// marks made before a shutdown still commit
	err := r.tx.WithinTransaction(context.WithoutCancel(ctx), func(txCtx context.Context) error {
		pending, err := r.store.FetchPending(txCtx, r.batchSize, maxAttempts)
		if err != nil {
			return fmt.Errorf("fetch pending outbox messages: %w", err)
		}
		stats.Pending = len(pending)
		r.metrics.OutboxBacklog.Set(float64(len(pending)))

		for _, msg := range pending {
			if ctx.Err() != nil {
				stopErr = ctx.Err()
				return nil
			}
			r.deliver(ctx, txCtx, msg, &stats)
		}
		return nil
	})
	if err != nil {
		return stats, err
	}

	return stats, stopErr
}

func (r *Relay) deliver(ctx, txCtx context.Context, msg *port.OutboxMessage, stats *Stats) {
	err := r.sink.Send(ctx, msg)
	if err != nil {
		stats.Failed++
		r.metrics.OutboxFailed.Inc()
		r.logger.Warn("Outbox message delivery failed",
			zap.String("id", string(msg.ID)),
			zap.String("key", msg.Key),
			zap.Int("attempt", msg.Attempts+1),
			zap.Error(err))

		if markErr := r.store.MarkFailed(txCtx, msg.ID, err); markErr != nil {
			r.logger.Error("Mark outbox message failed", zap.String("id", string(msg.ID)), zap.Error(markErr))
		}
		return
	}

	stats.Sent++
	r.metrics.OutboxSent.Inc()
	if markErr := r.store.MarkSent(txCtx, msg.ID); markErr != nil {
		// will be sent again on the next run
		r.logger.Error("Mark outbox message sent", zap.String("id", string(msg.ID)), zap.Error(markErr))
	}
}
