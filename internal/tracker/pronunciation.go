package tracker

import "github.com/abhisek/lexio/internal/task"

const (
	pronunciationWindowCap = 50
	maxPronunciationRecent = 2
)

// PronunciationTracker caps add-pronunciation maintenance tasks at 2 per
// 50-task window so research chores stay an occasional change of pace.
type PronunciationTracker struct {
	recent window[task.Type]
}

// NewPronunciationTracker creates a pronunciation tracker.
func NewPronunciationTracker() *PronunciationTracker {
	return &PronunciationTracker{recent: newWindow[task.Type](pronunciationWindowCap)}
}

// Track records a served task.
func (t *PronunciationTracker) Track(tt task.Type) {
	t.recent.push(tt)
}

// CanGeneratePronunciationTask reports whether another add-pronunciation
// task fits in the recent window.
func (t *PronunciationTracker) CanGeneratePronunciationTask() bool {
	n := t.recent.count(func(tt task.Type) bool { return tt == task.TypeAddPronunciation })
	return n < maxPronunciationRecent
}
