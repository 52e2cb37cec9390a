package tracker

// Block-list horizon: units from this many recent tasks are excluded from
// the next selection.
const usedVocabBlockTasks = 3

// UsedVocabTracker keeps the per-task vocab history of a session so recent
// subjects can be blocked from immediate reselection.
type UsedVocabTracker struct {
	tasks [][]string
}

// NewUsedVocabTracker creates an empty history.
func NewUsedVocabTracker() *UsedVocabTracker {
	return &UsedVocabTracker{}
}

// TrackVocabUsed records the vocab ids one served task touched.
func (t *UsedVocabTracker) TrackVocabUsed(uids []string) {
	if len(uids) == 0 {
		return
	}
	entry := make([]string, len(uids))
	copy(entry, uids)
	t.tasks = append(t.tasks, entry)
}

// RecentlyUsed returns the distinct ids from the last few tasks.
func (t *UsedVocabTracker) RecentlyUsed() []string {
	return t.LastNTasksVocab(usedVocabBlockTasks)
}

// LastNTasksVocab returns the distinct ids from the last n tasks.
func (t *UsedVocabTracker) LastNTasksVocab(n int) []string {
	start := len(t.tasks) - n
	if start < 0 {
		start = 0
	}
	seen := map[string]bool{}
	var out []string
	for _, entry := range t.tasks[start:] {
		for _, id := range entry {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}

// AllUsed returns every distinct id recorded this session.
func (t *UsedVocabTracker) AllUsed() []string {
	return t.LastNTasksVocab(len(t.tasks))
}

// Clear drops the history.
func (t *UsedVocabTracker) Clear() {
	t.tasks = nil
}
