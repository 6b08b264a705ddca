package scheduler

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/justnitesh531/orderflow/domain"
)

// DraftReader is the slice of the storage layer the scheduler needs to
// evaluate the trigger condition.
type DraftReader interface {
	LoadDraft(ctx context.Context) (domain.Draft, string, error)
}

// DefaultMessage is the reminder text sent to the owner.
const DefaultMessage = "⏰ Reminder: Create tomorrow's order!"

// Scheduler polls the wall clock at a fixed interval and fires a reminder
// through the sink when the daily trigger time is reached and the draft is
// still empty. The guard keeps a trigger minute from firing twice.
type Scheduler struct {
	schedule Schedule
	interval time.Duration
	store    DraftReader
	guard    Guard
	sink     Sink
	logger   *log.Logger
	message  string
	now      func() time.Time
}

// New creates a Scheduler. interval must be positive; message falls back to
// DefaultMessage when empty.
func New(schedule Schedule, interval time.Duration, store DraftReader, guard Guard, sink Sink, logger *log.Logger, message string) *Scheduler {
	if interval <= 0 {
		panic("scheduler.New: interval must be positive")
	}
	if store == nil || guard == nil || sink == nil {
		panic("scheduler.New: store, guard and sink are required")
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	if message == "" {
		message = DefaultMessage
	}
	return &Scheduler{
		schedule: schedule,
		interval: interval,
		store:    store,
		guard:    guard,
		sink:     sink,
		logger:   logger,
		message:  message,
		now:      time.Now,
	}
}

// Run polls until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Infof("reminder scheduler started, trigger %s, poll interval %v", s.schedule, s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick evaluates one poll observation.
func (s *Scheduler) tick(ctx context.Context) {
	now := s.now()
	if !s.schedule.Matches(now) {
		return
	}
	key := s.schedule.TriggerKey(now)
	won, err := s.guard.Acquire(ctx, key)
	if err != nil {
		s.logger.Errorf("fire guard: %v", err)
		return
	}
	if !won {
		s.logger.Debugf("trigger %s already handled", key)
		return
	}

	draft, _, err := s.store.LoadDraft(ctx)
	if err != nil {
		s.logger.Errorf("load draft: %v", err)
		s.release(ctx, key)
		return
	}
	if len(draft.Items) > 0 {
		// Someone already started tomorrow's order; nothing to nag about.
		s.logger.Debugf("draft has %d item(s), skipping reminder", len(draft.Items))
		return
	}

	n := domain.Notification{Message: s.message, FiredAt: now}
	if err := s.sink.Notify(ctx, n); err != nil {
		s.logger.Errorf("notify: %v", err)
		s.release(ctx, key)
		return
	}
	s.logger.Infof("reminder sent at %s", now.Format("2006-01-02 15:04:05"))
}

func (s *Scheduler) release(ctx context.Context, key string) {
	if err := s.guard.Release(ctx, key); err != nil {
		s.logger.Errorf("fire guard release failed: %v, key: %s", err, key)
	}
}
