package notifier

import (
	"context"
	"fmt"
	"time"

	logger_lib "github.com/s21platform/logger-lib"
	"github.com/s21platform/metrics-lib/pkg"
	"golang.org/x/sync/errgroup"

	"github.com/s21platform/conversation-service/internal/config"
	"github.com/s21platform/conversation-service/internal/model"
)

// Notifier fans push events out to its sinks from a pool of workers. Pushing never blocks:
// when the queue is full the event is dropped, and sink failures are only logged.
type Notifier struct {
	sinks   []Sink
	queue   chan model.Delivery
	workers int
	timeout time.Duration
	logger  logger_lib.LoggerInterface
	metrics pkg.MetricInterface
}

func New(cfg config.Notifier, logger logger_lib.LoggerInterface, metrics pkg.MetricInterface, sinks ...Sink) *Notifier {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1024
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.PushTimeout <= 0 {
		cfg.PushTimeout = 5 * time.Second
	}

	return &Notifier{
		sinks:   sinks,
		queue:   make(chan model.Delivery, cfg.QueueSize),
		workers: cfg.Workers,
		timeout: cfg.PushTimeout,
		logger:  logger,
		metrics: metrics,
	}
}

func (n *Notifier) PushMessageEvent(recipientIDs []int64, conversationID int64) {
	n.push(model.EventKindMessage, recipientIDs, conversationID)
}

func (n *Notifier) PushConversationEvent(recipientIDs []int64, conversationID int64) {
	n.push(model.EventKindConversation, recipientIDs, conversationID)
}

// Run drains the queue until ctx is cancelled. Events still queued at that point are discarded.
func (n *Notifier) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < n.workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case delivery := <-n.queue:
					n.dispatch(ctx, delivery)
				}
			}
		})
	}

	return g.Wait()
}

func (n *Notifier) push(kind model.EventKind, recipientIDs []int64, conversationID int64) {
	if len(recipientIDs) == 0 {
		return
	}

	delivery := model.Delivery{
		Recipients: append([]int64(nil), recipientIDs...),
		Event: model.Event{
			Kind:           kind,
			ConversationID: conversationID,
		},
	}

	select {
	case n.queue <- delivery:
	default:
		n.logger.Warn(fmt.Sprintf("notification queue is full, dropping %s event for conversation %d", kind, conversationID))
		n.metrics.Increment("notifier.dropped")
	}
}

func (n *Notifier) dispatch(ctx context.Context, delivery model.Delivery) {
	for _, sink := range n.sinks {
		start := time.Now()
		pushCtx, cancel := context.WithTimeout(ctx, n.timeout)
		err := sink.Deliver(pushCtx, delivery.Recipients, delivery.Event)
		cancel()
		if err != nil {
			n.logger.Error(fmt.Sprintf("failed to push %s event for conversation %d: %v",
				delivery.Event.Kind, delivery.Event.ConversationID, err))
			n.metrics.Increment("notifier.push.error")
			continue
		}
		n.metrics.Increment("notifier.push.ok")
		n.metrics.Duration(time.Since(start).Milliseconds(), "notifier.push")
	}
}
