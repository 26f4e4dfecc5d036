package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/abbie-leigh/hr-portal/internal/events"
	"github.com/abbie-leigh/hr-portal/internal/leave"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Reader is the slice of kafkago.Reader the consumer needs.
type Reader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// LifecycleConsumer keeps cached leave summaries coherent across
// instances: any lifecycle event for an employee drops that employee's
// summary from redis.
type LifecycleConsumer struct {
	reader Reader
	rdb    *redis.Client
	logger *zap.Logger
}

func NewLifecycleConsumer(reader Reader, rdb *redis.Client, logger ...*zap.Logger) *LifecycleConsumer {
	l := zap.L().Named("kafka.consumer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.consumer")
	}
	return &LifecycleConsumer{reader: reader, rdb: rdb, logger: l}
}

func (c *LifecycleConsumer) Run(ctx context.Context) error {
	c.logger.Info("lifecycle consumer started", zap.String("topic", events.LeaveLifecycleTopic))

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				c.logger.Info("lifecycle consumer stopping")
				return err
			}
			c.logger.Error("fetch failed", zap.Error(err))
			continue
		}

		if err := c.handle(ctx, msg); err != nil {
			// Leave the offset uncommitted so the message is retried.
			c.logger.Error("handle failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("commit failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}

func (c *LifecycleConsumer) handle(ctx context.Context, msg kafkago.Message) error {
	var event events.LeaveLifecycleEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		// A malformed payload never becomes valid; log and commit past it.
		c.logger.Warn("dropping malformed event", zap.Int64("offset", msg.Offset), zap.Error(err))
		return nil
	}

	if event.EmployeeID == "" {
		return nil
	}

	if err := c.rdb.Del(ctx, leave.SummaryCacheKey(event.EmployeeID)).Err(); err != nil {
		return err
	}

	c.logger.Info("summary cache invalidated",
		zap.String("event_type", event.EventType),
		zap.String("employee_id", event.EmployeeID),
	)
	return nil
}
