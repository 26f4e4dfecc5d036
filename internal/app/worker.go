package app

import (
	"context"

	"github.com/abbie-leigh/hr-portal/internal/messaging/kafka"
	"github.com/abbie-leigh/hr-portal/internal/messaging/kafka/producer"
	"github.com/abbie-leigh/hr-portal/internal/shared/connection"
)

// RunWorker drives the outbox relay until ctx is cancelled.
func RunWorker(ctx context.Context, cfg Config) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
		connectRetries,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	writer, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, connectRetries)
	if err != nil {
		return err
	}
	defer writer.Close()

	relay := producer.NewRelay(kafka.NewOutboxRepository(sqlDB), writer)
	return relay.Run(ctx)
}
