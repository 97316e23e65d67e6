package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/linskybing/genie-forms/internal/domain/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeLister struct {
	mu      sync.Mutex
	subs    []form.Submission
	err     error
	filters []form.SubmissionFilter
}

func (f *fakeLister) ListSubmissions(filter form.SubmissionFilter) ([]form.Submission, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filter)
	return f.subs, int64(len(f.subs)), f.err
}

// pagingLister serves subs newest first, one page at a time.
type pagingLister struct {
	subs  []form.Submission
	pages []int
}

func (f *pagingLister) ListSubmissions(filter form.SubmissionFilter) ([]form.Submission, int64, error) {
	f.pages = append(f.pages, filter.Page)
	start := (filter.Page - 1) * filter.PageSize
	if start >= len(f.subs) {
		return nil, int64(len(f.subs)), nil
	}
	end := start + filter.PageSize
	if end > len(f.subs) {
		end = len(f.subs)
	}
	return f.subs[start:end], int64(len(f.subs)), nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	fail  map[uint]bool
	calls []uint
}

func (f *fakeNotifier) Renotify(ctx context.Context, sub form.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, sub.ID)
	if f.fail[sub.ID] {
		return errors.New("still down")
	}
	return nil
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestNewScheduler(t *testing.T) {
	sched := NewScheduler(&fakeLister{}, &fakeNotifier{}, time.Minute, 0, nil)

	require.NotNil(t, sched)
	assert.Equal(t, 1, sched.maxAttempts)
	assert.False(t, sched.IsRunning())
	assert.Equal(t, 0, sched.Pending())
}

func TestRunOnce_QueriesFailedSubmissions(t *testing.T) {
	lister := &fakeLister{subs: []form.Submission{{ID: 1}, {ID: 2}}}
	notifier := &fakeNotifier{}
	sched := NewScheduler(lister, notifier, time.Minute, 3, nil)

	delivered := sched.RunOnce(context.Background())

	assert.Equal(t, 2, delivered)
	assert.Equal(t, []uint{1, 2}, notifier.calls)
	require.Len(t, lister.filters, 1)
	assert.Equal(t, string(form.StatusNotificationFailed), lister.filters[0].Status)
	assert.Equal(t, defaultBatch, lister.filters[0].PageSize)
	assert.Equal(t, 0, sched.Pending())
}

func TestRunOnce_GivesUpAfterMaxAttempts(t *testing.T) {
	lister := &fakeLister{subs: []form.Submission{{ID: 7, Reference: "ref0000007"}}}
	notifier := &fakeNotifier{fail: map[uint]bool{7: true}}
	sched := NewScheduler(lister, notifier, time.Minute, 2, nil)

	for i := 0; i < 4; i++ {
		assert.Equal(t, 0, sched.RunOnce(context.Background()))
	}

	assert.Equal(t, []uint{7, 7}, notifier.calls)
	assert.Equal(t, 1, sched.Pending())
}

func TestRunOnce_ReachesOlderSubmissions(t *testing.T) {
	lister := &pagingLister{}
	fail := map[uint]bool{}
	for id := uint(60); id >= 1; id-- {
		lister.subs = append(lister.subs, form.Submission{ID: id})
		fail[id] = true
	}
	notifier := &fakeNotifier{fail: fail}
	sched := NewScheduler(lister, notifier, time.Minute, 3, nil)

	for i := 0; i < 20; i++ {
		sched.RunOnce(context.Background())
	}

	calls := map[uint]int{}
	for _, id := range notifier.calls {
		calls[id]++
	}
	for id := uint(1); id <= 60; id++ {
		assert.Equal(t, 3, calls[id], "submission %d", id)
	}
	assert.Contains(t, lister.pages, 2)
}

func TestRunOnce_RecoversAfterFailure(t *testing.T) {
	lister := &fakeLister{subs: []form.Submission{{ID: 3}}}
	notifier := &fakeNotifier{fail: map[uint]bool{3: true}}
	sched := NewScheduler(lister, notifier, time.Minute, 3, nil)

	assert.Equal(t, 0, sched.RunOnce(context.Background()))
	assert.Equal(t, 1, sched.Pending())

	notifier.fail[3] = false
	assert.Equal(t, 1, sched.RunOnce(context.Background()))
	assert.Equal(t, 0, sched.Pending())
}

func TestRunOnce_ListError(t *testing.T) {
	lister := &fakeLister{err: errors.New("db down")}
	notifier := &fakeNotifier{}
	sched := NewScheduler(lister, notifier, time.Minute, 3, nil)

	assert.Equal(t, 0, sched.RunOnce(context.Background()))
	assert.Empty(t, notifier.calls)
}

func TestStart_StopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	lister := &fakeLister{subs: []form.Submission{{ID: 1}}}
	notifier := &fakeNotifier{fail: map[uint]bool{1: true}}
	sched := NewScheduler(lister, notifier, 10*time.Millisecond, 100, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sched.Start(ctx) }()

	require.Eventually(t, func() bool { return notifier.count() >= 2 }, time.Second, 5*time.Millisecond)
	assert.True(t, sched.IsRunning())

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
	assert.False(t, sched.IsRunning())
}
