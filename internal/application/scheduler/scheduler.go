// Package scheduler retries the notifications of submissions whose first
// delivery failed.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/linskybing/genie-forms/internal/domain/form"
	"go.uber.org/zap"
)

const defaultBatch = 50

// Lister finds submissions by status.
type Lister interface {
	ListSubmissions(filter form.SubmissionFilter) ([]form.Submission, int64, error)
}

// Notifier delivers the notifications of one submission again.
type Notifier interface {
	Renotify(ctx context.Context, sub form.Submission) error
}

// Scheduler polls for failed notifications and retries each submission up
// to maxAttempts times per process lifetime.
type Scheduler struct {
	lister      Lister
	notifier    Notifier
	interval    time.Duration
	maxAttempts int
	batch       int
	log         *zap.Logger

	running  atomic.Bool
	mu       sync.Mutex
	attempts map[uint]int
}

func NewScheduler(lister Lister, notifier Notifier, interval time.Duration, maxAttempts int, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Scheduler{
		lister:      lister,
		notifier:    notifier,
		interval:    interval,
		maxAttempts: maxAttempts,
		batch:       defaultBatch,
		log:         log,
		attempts:    make(map[uint]int),
	}
}

// Start runs a pass immediately and then on every tick until ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	s.running.Store(true)
	defer s.running.Store(false)
	s.log.Info("notification retry started", zap.Duration("interval", s.interval), zap.Int("max_attempts", s.maxAttempts))

	s.RunOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("notification retry stopped")
			return ctx.Err()
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce retries one batch of failed submissions and returns how many were
// delivered.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	subs, err := s.eligible()
	if err != nil {
		s.log.Warn("list failed submissions", zap.Error(err))
		return 0
	}

	delivered := 0
	for _, sub := range subs {
		if ctx.Err() != nil {
			break
		}
		if !s.take(sub.ID) {
			continue
		}
		if err := s.notifier.Renotify(ctx, sub); err != nil {
			s.log.Warn("notification retry failed",
				zap.String("reference", sub.Reference), zap.Int("attempt", s.attemptsFor(sub.ID)), zap.Error(err))
			if s.attemptsFor(sub.ID) >= s.maxAttempts {
				s.log.Error("giving up on notification", zap.String("reference", sub.Reference))
			}
			continue
		}
		s.done(sub.ID)
		delivered++
		s.log.Info("notification delivered on retry", zap.String("reference", sub.Reference))
	}
	return delivered
}

// eligible pages through failed submissions until it has a full batch that
// still has attempts left, or the rows run out.
func (s *Scheduler) eligible() ([]form.Submission, error) {
	out := make([]form.Submission, 0, s.batch)
	for page := 1; len(out) < s.batch; page++ {
		subs, total, err := s.lister.ListSubmissions(form.SubmissionFilter{
			Status:   string(form.StatusNotificationFailed),
			Page:     page,
			PageSize: s.batch,
		})
		if err != nil {
			return nil, err
		}
		for _, sub := range subs {
			if !s.exhausted(sub.ID) && len(out) < s.batch {
				out = append(out, sub)
			}
		}
		if len(subs) < s.batch || int64(page*s.batch) >= total {
			break
		}
	}
	return out, nil
}

func (s *Scheduler) exhausted(id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts[id] >= s.maxAttempts
}

// take records an attempt and reports whether one was still allowed.
func (s *Scheduler) take(id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attempts[id] >= s.maxAttempts {
		return false
	}
	s.attempts[id]++
	return true
}

func (s *Scheduler) done(id uint) {
	s.mu.Lock()
	delete(s.attempts, id)
	s.mu.Unlock()
}

func (s *Scheduler) attemptsFor(id uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts[id]
}

func (s *Scheduler) IsRunning() bool {
	return s.running.Load()
}

// Pending returns the number of submissions with failed attempts on record.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.attempts)
}
