package scheduler

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/justnitesh531/orderflow/domain"
)

// Sink receives reminder notifications. Delivery mechanics live behind this
// interface; the scheduler never talks to a transport directly.
type Sink interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// NotificationEnqueuer is the slice of the storage layer the queue sink needs.
type NotificationEnqueuer interface {
	EnqueueNotification(ctx context.Context, n domain.Notification) error
}

// QueueSink hands notifications to the storage notification queue, leaving
// actual delivery to whatever consumes the queue.
type QueueSink struct {
	store NotificationEnqueuer
}

// NewQueueSink creates a Sink backed by the notification queue.
func NewQueueSink(store NotificationEnqueuer) *QueueSink {
	if store == nil {
		panic("scheduler.NewQueueSink: store is nil")
	}
	return &QueueSink{store: store}
}

func (s *QueueSink) Notify(ctx context.Context, n domain.Notification) error {
	return s.store.EnqueueNotification(ctx, n)
}

// LogSink records notifications in the log only. It is the fallback when no
// queue is configured.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink creates a Sink that writes notifications to the given logger.
func NewLogSink(logger *log.Logger) *LogSink {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Notify(_ context.Context, n domain.Notification) error {
	s.logger.WithFields(log.Fields{
		"fired_at": n.FiredAt.Format("2006-01-02 15:04:05"),
	}).Info(n.Message)
	return nil
}
