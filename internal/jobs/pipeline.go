package jobs

import (
	"context"
	"log/slog"

	"github.com/telcoflow/backoffice/internal/domain"
)

// AggregateStore is the storage surface the pipeline job drives: schema
// migrations, the aggregator, and the upsert sink.
type AggregateStore interface {
	RunMigrations(ctx context.Context, migrationsDir string) error
	AggregatePayments(ctx context.Context) ([]domain.PaymentAmount, error)
	UpsertPaymentAmounts(ctx context.Context, amounts []domain.PaymentAmount) error
}

// Pusher re-publishes aggregate rows through the bulk-write endpoint.
type Pusher interface {
	PushPaymentAmounts(ctx context.Context, amounts []domain.PaymentAmount) error
}

// PipelineJob is the daily recompute: ensure the schema (including the
// unique_customer_id constraint) is in place, aggregate payments per
// customer directly against the store, merge the result into
// payment_amount, and optionally push the same rows through the HTTP
// bulk-write endpoint for dual-write auditing. The push is off by default
// since it writes the same table the sink just wrote.
type PipelineJob struct {
	store         AggregateStore
	pusher        Pusher
	logger        *slog.Logger
	migrationsDir string
	pushAfterLoad bool
}

func NewPipelineJob(store AggregateStore, pusher Pusher, migrationsDir string, pushAfterLoad bool, logger *slog.Logger) *PipelineJob {
	return &PipelineJob{
		store:         store,
		pusher:        pusher,
		logger:        logger,
		migrationsDir: migrationsDir,
		pushAfterLoad: pushAfterLoad,
	}
}

func (j *PipelineJob) Name() string { return "pipeline" }

func (j *PipelineJob) Run(ctx context.Context) error {
	if err := j.store.RunMigrations(ctx, j.migrationsDir); err != nil {
		return err
	}

	amounts, err := j.store.AggregatePayments(ctx)
	if err != nil {
		return err
	}
	j.logger.Info("payments aggregated", "customers", len(amounts))

	if err := j.store.UpsertPaymentAmounts(ctx, amounts); err != nil {
		return err
	}
	j.logger.Info("payment_amount merged", "rows", len(amounts))

	if j.pushAfterLoad && j.pusher != nil {
		if err := j.pusher.PushPaymentAmounts(ctx, amounts); err != nil {
			return err
		}
	}

	return nil
}
