package user

import (
	"context"
	"time"

	kafkalib "github.com/s21platform/kafka-lib"

	"github.com/s21platform/conversation-service/internal/config"
)

const DefaultRetryDelay = time.Second

func NewConsumer(cfg config.Kafka, metrics kafkalib.Metrics) (*kafkalib.KafkaConsumer, error) {
	consumerConfig := kafkalib.DefaultConsumerConfig(cfg.Host, cfg.Port, cfg.UserTopic, cfg.GroupID)
	return kafkalib.NewConsumer(consumerConfig, metrics)
}

// Retrying hands the same event to handle until it succeeds or ctx is done. The consumer
// skips a failed event and commits the next one over it, so a store outage must not
// surface as an error while the event can still be written.
func Retrying(handle func(ctx context.Context, in []byte) error, delay time.Duration) func(ctx context.Context, in []byte) error {
	return func(ctx context.Context, in []byte) error {
		for {
			err := handle(ctx, in)
			if err == nil {
				return nil
			}

			select {
			case <-ctx.Done():
				return err
			case <-time.After(delay):
			}
		}
	}
}
