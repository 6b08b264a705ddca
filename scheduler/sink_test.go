package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/justnitesh531/orderflow/domain"
)

type stubEnqueuer struct {
	enqueue func(ctx context.Context, n domain.Notification) error
	sent    []domain.Notification
}

func (s *stubEnqueuer) EnqueueNotification(ctx context.Context, n domain.Notification) error {
	s.sent = append(s.sent, n)
	if s.enqueue != nil {
		return s.enqueue(ctx, n)
	}
	return nil
}

func TestQueueSinkNotify(t *testing.T) {
	store := &stubEnqueuer{}
	sink := NewQueueSink(store)
	n := domain.Notification{
		Message: DefaultMessage,
		FiredAt: time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC),
	}

	if err := sink.Notify(context.Background(), n); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(store.sent) != 1 || store.sent[0].Message != DefaultMessage {
		t.Fatalf("unexpected enqueued notifications: %+v", store.sent)
	}
}

func TestQueueSinkNotifySurfacesError(t *testing.T) {
	boom := errors.New("queue unavailable")
	store := &stubEnqueuer{enqueue: func(context.Context, domain.Notification) error { return boom }}
	sink := NewQueueSink(store)

	if err := sink.Notify(context.Background(), domain.Notification{}); !errors.Is(err, boom) {
		t.Fatalf("expected enqueue error, got %v", err)
	}
}

func TestNewQueueSinkNilStorePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for nil store")
		}
	}()
	NewQueueSink(nil)
}

func TestLogSinkNotify(t *testing.T) {
	logger, hook := test.NewNullLogger()
	sink := NewLogSink(logger)
	n := domain.Notification{
		Message: "⏰ Reminder: Create tomorrow's order!",
		FiredAt: time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC),
	}

	if err := sink.Notify(context.Background(), n); err != nil {
		t.Fatalf("notify: %v", err)
	}
	entry := hook.LastEntry()
	if entry == nil {
		t.Fatalf("expected a log entry")
	}
	if entry.Message != n.Message {
		t.Fatalf("unexpected log message: %q", entry.Message)
	}
	if entry.Data["fired_at"] != "2025-06-01 18:00:00" {
		t.Fatalf("unexpected fired_at field: %v", entry.Data["fired_at"])
	}
}
