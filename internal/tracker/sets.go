package tracker

import "sort"

// SetTracker remembers which origin sets (import batches, decks) supplied
// the units of the last generated lesson. Composition code reads it to
// rotate across sets instead of draining one.
type SetTracker struct {
	lastUsed []string
}

// NewSetTracker creates an empty set tracker.
func NewSetTracker() *SetTracker {
	return &SetTracker{}
}

// RecordUsedSets replaces the tracked sets with the origins of the units
// used in the lesson just generated.
func (t *SetTracker) RecordUsedSets(origins [][]string) {
	seen := map[string]bool{}
	var all []string
	for _, entity := range origins {
		for _, o := range entity {
			if o != "" && !seen[o] {
				seen[o] = true
				all = append(all, o)
			}
		}
	}
	sort.Strings(all)
	t.lastUsed = all
}

// LastUsedSets returns the sets recorded for the previous lesson.
func (t *SetTracker) LastUsedSets() []string {
	out := make([]string, len(t.lastUsed))
	copy(out, t.lastUsed)
	return out
}

// Clear drops the tracked sets.
func (t *SetTracker) Clear() {
	t.lastUsed = nil
}
