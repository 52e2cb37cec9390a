package tracker

import (
	"math/rand"
	"sort"

	"github.com/abhisek/lexio/internal/task"
)

const typeWindowCap = 50

// TypeTracker ranks task types by how rarely they were served recently, so
// the composition code can nudge neglected exercise kinds back in.
type TypeTracker struct {
	recent window[task.Type]
	rng    *rand.Rand
}

// NewTypeTracker creates a type tracker over a 50-task window.
func NewTypeTracker(rng *rand.Rand) *TypeTracker {
	return &TypeTracker{recent: newWindow[task.Type](typeWindowCap), rng: rng}
}

// Track records a served task.
func (t *TypeTracker) Track(tt task.Type) {
	t.recent.push(tt)
}

// Count returns how often the type appears in the window.
func (t *TypeTracker) Count(tt task.Type) int {
	return t.recent.count(func(x task.Type) bool { return x == tt })
}

// RareFirst orders the given types by ascending recent frequency.
// Ties keep the input order.
func (t *TypeTracker) RareFirst(available []task.Type) []task.Type {
	sorted := make([]task.Type, len(available))
	copy(sorted, available)
	sort.SliceStable(sorted, func(i, j int) bool {
		return t.Count(sorted[i]) < t.Count(sorted[j])
	})
	return sorted
}

// RecommendRare picks a type with strong bias toward the rarest ones.
func (t *TypeTracker) RecommendRare(available []task.Type) (task.Type, bool) {
	return pickFromSorted(t.rng, t.RareFirst(available))
}
