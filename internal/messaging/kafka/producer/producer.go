package producer

import (
	"context"
	"time"

	"github.com/abbie-leigh/hr-portal/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	pollInterval = 2 * time.Second
	batchSize    = 50
)

// Writer is the slice of kafkago.Writer the relay needs; kept as an
// interface so tests can swap in a recorder.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Relay drains the transactional outbox into kafka. Events are published
// at-least-once: a crash between WriteMessages and MarkSent replays the
// event on the next pass, so consumers must tolerate duplicates.
type Relay struct {
	outbox kafka.OutboxRepository
	writer Writer
	logger *zap.Logger
}

func NewRelay(outbox kafka.OutboxRepository, writer Writer, logger ...*zap.Logger) *Relay {
	l := zap.L().Named("kafka.relay")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.relay")
	}
	return &Relay{outbox: outbox, writer: writer, logger: l}
}

// Run polls until the context is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	r.logger.Info("outbox relay started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopping")
			return ctx.Err()
		case <-ticker.C:
			if err := r.ProcessOutboxEvents(ctx); err != nil {
				r.logger.Error("outbox pass failed", zap.Error(err))
			}
		}
	}
}

// ProcessOutboxEvents publishes one batch of pending events. Failures are
// recorded per event and do not stop the batch.
func (r *Relay) ProcessOutboxEvents(ctx context.Context) error {
	events, err := r.outbox.ListPending(ctx, batchSize)
	if err != nil {
		return err
	}

	for _, event := range events {
		if err := r.publish(ctx, event); err != nil {
			r.logger.Warn("publish failed",
				zap.String("event_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.Int("retry_count", event.RetryCount),
				zap.Error(err),
			)
			if markErr := r.outbox.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				r.logger.Error("mark failed errored", zap.String("event_id", event.ID), zap.Error(markErr))
			}
			continue
		}

		if err := r.outbox.MarkSent(ctx, event.ID); err != nil {
			r.logger.Error("mark sent errored", zap.String("event_id", event.ID), zap.Error(err))
			continue
		}

		r.logger.Info("event published",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		)
	}

	return nil
}

func (r *Relay) publish(ctx context.Context, event kafka.OutboxEvent) error {
	return r.writer.WriteMessages(ctx, kafkago.Message{
		Topic: event.Topic,
		// Key by aggregate so one leave request's events stay ordered
		// within a partition.
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
			{Key: "request_id", Value: []byte(event.RequestID)},
		},
	})
}
