package app

import (
	"context"

	"github.com/abbie-leigh/hr-portal/internal/events"
	"github.com/abbie-leigh/hr-portal/internal/messaging/kafka/consumer"
	"github.com/abbie-leigh/hr-portal/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
)

// RunConsumer tails the leave lifecycle topic and keeps redis summaries
// coherent until ctx is cancelled.
func RunConsumer(ctx context.Context, cfg Config) error {
	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
	if err != nil {
		return err
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		GroupID: cfg.ConsumerGroup,
		Topic:   events.LeaveLifecycleTopic,
	})
	defer reader.Close()

	return consumer.NewLifecycleConsumer(reader, rdb).Run(ctx)
}
