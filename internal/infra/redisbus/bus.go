// Package redisbus spreads push events across service nodes. Every node publishes to one
// Redis channel and every node, the publisher included, hands what it receives to its local hub.
package redisbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/conversation-service/internal/config"
	"github.com/s21platform/conversation-service/internal/model"
)

type Bus struct {
	client  *redis.Client
	channel string
	local   LocalSink
	logger  logger_lib.LoggerInterface
}

func New(cfg config.Redis, local LocalSink, logger logger_lib.LoggerInterface) *Bus {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &Bus{
		client:  client,
		channel: cfg.Channel,
		local:   local,
		logger:  logger,
	}
}

func (b *Bus) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func (b *Bus) Close() error {
	return b.client.Close()
}

func (b *Bus) Deliver(ctx context.Context, recipients []int64, event model.Event) error {
	payload, err := json.Marshal(model.Delivery{
		Recipients: recipients,
		Event:      event,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal delivery: %v", err)
	}

	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish delivery: %v", err)
	}

	return nil
}

// Run subscribes to the channel and forwards deliveries to the local sink until ctx is done.
func (b *Bus) Run(ctx context.Context) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close() //nolint:errcheck // .

	if _, err := sub.Receive(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("failed to subscribe to %s: %v", b.channel, err)
	}

	b.logger.Info(fmt.Sprintf("subscribed to redis channel %s", b.channel))

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			b.handle(ctx, msg.Payload)
		}
	}
}

func (b *Bus) handle(ctx context.Context, payload string) {
	var delivery model.Delivery
	if err := json.Unmarshal([]byte(payload), &delivery); err != nil {
		b.logger.Warn(fmt.Sprintf("skipping malformed delivery: %v", err))
		return
	}

	if err := b.local.Deliver(ctx, delivery.Recipients, delivery.Event); err != nil {
		b.logger.Error(fmt.Sprintf("failed to deliver %s event locally: %v", delivery.Event.Kind, err))
	}
}
