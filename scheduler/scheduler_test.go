package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/justnitesh531/orderflow/domain"
)

type stubReader struct {
	draft   domain.Draft
	loadErr error
	loads   int
}

func (s *stubReader) LoadDraft(context.Context) (domain.Draft, string, error) {
	s.loads++
	return s.draft, "", s.loadErr
}

type memGuard struct {
	held       map[string]bool
	acquireErr error
}

func newMemGuard() *memGuard {
	return &memGuard{held: make(map[string]bool)}
}

func (g *memGuard) Acquire(_ context.Context, key string) (bool, error) {
	if g.acquireErr != nil {
		return false, g.acquireErr
	}
	if g.held[key] {
		return false, nil
	}
	g.held[key] = true
	return true, nil
}

func (g *memGuard) Release(_ context.Context, key string) error {
	delete(g.held, key)
	return nil
}

type stubSink struct {
	notify func(ctx context.Context, n domain.Notification) error
	sent   []domain.Notification
}

func (s *stubSink) Notify(ctx context.Context, n domain.Notification) error {
	s.sent = append(s.sent, n)
	if s.notify != nil {
		return s.notify(ctx, n)
	}
	return nil
}

func newTestScheduler(t *testing.T, store DraftReader, guard Guard, sink Sink) *Scheduler {
	t.Helper()

	logger, _ := test.NewNullLogger()
	schedule, err := ParseSchedule("18:00")
	if err != nil {
		t.Fatalf("parse schedule: %v", err)
	}
	return New(schedule, time.Minute, store, guard, sink, logger, "")
}

func triggerTime() time.Time {
	return time.Date(2025, 6, 1, 18, 0, 5, 0, time.UTC)
}

func TestTickFiresWhenDraftEmpty(t *testing.T) {
	store := &stubReader{draft: domain.EmptyDraft()}
	sink := &stubSink{}
	s := newTestScheduler(t, store, newMemGuard(), sink)
	s.now = triggerTime

	s.tick(context.Background())

	if len(sink.sent) != 1 {
		t.Fatalf("expected one notification, got %d", len(sink.sent))
	}
	if sink.sent[0].Message != DefaultMessage {
		t.Fatalf("unexpected message: %q", sink.sent[0].Message)
	}
	if !sink.sent[0].FiredAt.Equal(triggerTime()) {
		t.Fatalf("unexpected fired_at: %v", sink.sent[0].FiredAt)
	}
}

func TestTickSkipsOutsideTriggerMinute(t *testing.T) {
	store := &stubReader{draft: domain.EmptyDraft()}
	sink := &stubSink{}
	s := newTestScheduler(t, store, newMemGuard(), sink)
	s.now = func() time.Time {
		return time.Date(2025, 6, 1, 17, 30, 0, 0, time.UTC)
	}

	s.tick(context.Background())

	if store.loads != 0 {
		t.Fatalf("expected no draft load outside the trigger minute")
	}
	if len(sink.sent) != 0 {
		t.Fatalf("expected no notification, got %d", len(sink.sent))
	}
}

func TestTickFiresOncePerTriggerMinute(t *testing.T) {
	store := &stubReader{draft: domain.EmptyDraft()}
	sink := &stubSink{}
	s := newTestScheduler(t, store, newMemGuard(), sink)
	s.now = triggerTime

	s.tick(context.Background())
	s.now = func() time.Time { return triggerTime().Add(45 * time.Second) }
	s.tick(context.Background())

	if len(sink.sent) != 1 {
		t.Fatalf("expected a single notification for the trigger minute, got %d", len(sink.sent))
	}
}

func TestTickSkipsWhenDraftHasItems(t *testing.T) {
	store := &stubReader{draft: domain.Draft{
		Items:  []domain.Item{{ID: "1", Name: "Milk"}},
		Status: domain.StatusDraft,
	}}
	sink := &stubSink{}
	guard := newMemGuard()
	s := newTestScheduler(t, store, guard, sink)
	s.now = triggerTime

	s.tick(context.Background())

	if len(sink.sent) != 0 {
		t.Fatalf("expected no notification when the draft already has items")
	}
	// Guard stays held: the skip is final for this trigger minute.
	s.tick(context.Background())
	if store.loads != 1 {
		t.Fatalf("expected a single draft load, got %d", store.loads)
	}
}

func TestTickReleasesGuardOnLoadFailure(t *testing.T) {
	store := &stubReader{loadErr: errors.New("table unavailable")}
	sink := &stubSink{}
	guard := newMemGuard()
	s := newTestScheduler(t, store, guard, sink)
	s.now = triggerTime

	s.tick(context.Background())
	if len(sink.sent) != 0 {
		t.Fatalf("expected no notification on load failure")
	}

	store.loadErr = nil
	store.draft = domain.EmptyDraft()
	s.tick(context.Background())
	if len(sink.sent) != 1 {
		t.Fatalf("expected retry to fire after transient load failure, got %d", len(sink.sent))
	}
}

func TestTickReleasesGuardOnSinkFailure(t *testing.T) {
	store := &stubReader{draft: domain.EmptyDraft()}
	boom := errors.New("queue unavailable")
	sink := &stubSink{notify: func(context.Context, domain.Notification) error { return boom }}
	guard := newMemGuard()
	s := newTestScheduler(t, store, guard, sink)
	s.now = triggerTime

	s.tick(context.Background())
	if len(guard.held) != 0 {
		t.Fatalf("expected guard released after sink failure")
	}

	sink.notify = nil
	s.tick(context.Background())
	if len(sink.sent) != 2 {
		t.Fatalf("expected retry to reach the sink, got %d attempts", len(sink.sent))
	}
}

func TestTickGuardErrorSkipsFiring(t *testing.T) {
	store := &stubReader{draft: domain.EmptyDraft()}
	sink := &stubSink{}
	guard := newMemGuard()
	guard.acquireErr = errors.New("redis down")
	s := newTestScheduler(t, store, guard, sink)
	s.now = triggerTime

	s.tick(context.Background())

	if store.loads != 0 || len(sink.sent) != 0 {
		t.Fatalf("expected no work when the guard is unavailable")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	store := &stubReader{draft: domain.EmptyDraft()}
	sink := &stubSink{}
	logger, _ := test.NewNullLogger()
	schedule, err := ParseSchedule("18:00")
	if err != nil {
		t.Fatalf("parse schedule: %v", err)
	}
	s := New(schedule, 10*time.Millisecond, store, newMemGuard(), sink, logger, "")
	s.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("scheduler did not stop after cancel")
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	store := &stubReader{}
	logger, _ := test.NewNullLogger()
	schedule, err := ParseSchedule("18:00")
	if err != nil {
		t.Fatalf("parse schedule: %v", err)
	}

	s := New(schedule, time.Minute, store, newMemGuard(), &stubSink{}, logger, "")
	if s.message != DefaultMessage {
		t.Fatalf("expected default message, got %q", s.message)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for non-positive interval")
		}
	}()
	New(schedule, 0, store, newMemGuard(), &stubSink{}, logger, "")
}
