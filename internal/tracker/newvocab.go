package tracker

import (
	"context"
	"time"

	"github.com/abhisek/lexio/internal/task"
)

const (
	newVocabWindowCap    = 30
	maxNewVocabPerWindow = 3
	maxNewVocabPerDay    = 20
)

// DailyCounterStore persists date-keyed counters so the daily new-vocab cap
// survives process restarts. Implemented by internal/store.
type DailyCounterStore interface {
	// Increment adds n to the counter for the given day and name.
	Increment(ctx context.Context, name string, day string, n int) error

	// Get returns the counter for the given day and name, 0 when absent.
	Get(ctx context.Context, name string, day string) (int, error)
}

// DailyCounterName keys the persisted new-vocab counter.
const DailyCounterName = "new-vocab-tasks"

// NewVocabTracker enforces the two hard caps on tasks that introduce unseen
// vocabulary: at most 3 in the recent 30-task window, and at most 20 per
// calendar day across restarts. Unlike the other trackers these are strict
// filters — disallowed generators must be removed before any random choice.
type NewVocabTracker struct {
	recent  window[task.Type]
	counter DailyCounterStore
	now     func() time.Time
}

// NewNewVocabTracker creates a new-vocab tracker backed by the given
// persistent counter store. A nil store disables the daily cap (tests).
func NewNewVocabTracker(counter DailyCounterStore) *NewVocabTracker {
	return &NewVocabTracker{
		recent:  newWindow[task.Type](newVocabWindowCap),
		counter: counter,
		now:     time.Now,
	}
}

func (t *NewVocabTracker) day() string {
	return t.now().Format("2006-01-02")
}

// Track records a served task, bumping the persisted daily counter for
// new-vocab task types.
func (t *NewVocabTracker) Track(ctx context.Context, tt task.Type) error {
	t.recent.push(tt)
	if task.IsNewVocab(tt) && t.counter != nil {
		return t.counter.Increment(ctx, DailyCounterName, t.day(), 1)
	}
	return nil
}

// RecentNewVocabCount returns how many new-vocab tasks sit in the window.
func (t *NewVocabTracker) RecentNewVocabCount() int {
	return t.recent.count(func(tt task.Type) bool { return task.IsNewVocab(tt) })
}

// CanGenerateNewVocabTask reports whether another new-vocab task is allowed
// right now under both hard caps.
func (t *NewVocabTracker) CanGenerateNewVocabTask(ctx context.Context) (bool, error) {
	if t.RecentNewVocabCount() >= maxNewVocabPerWindow {
		return false, nil
	}
	if t.counter != nil {
		today, err := t.counter.Get(ctx, DailyCounterName, t.day())
		if err != nil {
			return false, err
		}
		if today >= maxNewVocabPerDay {
			return false, nil
		}
	}
	return true, nil
}
