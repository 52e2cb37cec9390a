package tracker

import (
	"math/rand"
	"sort"

	"github.com/abhisek/lexio/internal/task"
)

// Target ratios for the served task-size mix.
const (
	sizeWindowCap = 30

	targetSmall  = 0.85
	targetMedium = 0.10
	targetBig    = 0.05
)

// SizeTracker balances the served mix of small/medium/big tasks against the
// fixed target ratios. Advisory only: it recommends the most
// under-represented size, and callers fall back to other sizes when no
// generator of the preferred size succeeds.
type SizeTracker struct {
	recent window[task.Size]
	rng    *rand.Rand
}

// NewSizeTracker creates a size tracker over a 30-task window.
func NewSizeTracker(rng *rand.Rand) *SizeTracker {
	return &SizeTracker{recent: newWindow[task.Size](sizeWindowCap), rng: rng}
}

// Track records a served task.
func (t *SizeTracker) Track(tt task.Type) {
	t.recent.push(task.SizeOf(tt))
}

// Distribution returns the empirical share of each size in the window.
func (t *SizeTracker) Distribution() map[task.Size]float64 {
	dist := map[task.Size]float64{task.SizeSmall: 0, task.SizeMedium: 0, task.SizeBig: 0}
	total := t.recent.len()
	if total == 0 {
		return dist
	}
	for _, s := range t.recent.items {
		dist[s] += 1
	}
	for s := range dist {
		dist[s] /= float64(total)
	}
	return dist
}

// PreferredSize recommends a size, biased toward whichever is furthest
// below its target share.
func (t *SizeTracker) PreferredSize() task.Size {
	current := t.Distribution()

	type deviation struct {
		size task.Size
		dev  float64
	}
	devs := []deviation{
		{task.SizeBig, targetBig - current[task.SizeBig]},
		{task.SizeMedium, targetMedium - current[task.SizeMedium]},
		{task.SizeSmall, targetSmall - current[task.SizeSmall]},
	}
	sort.SliceStable(devs, func(i, j int) bool { return devs[i].dev > devs[j].dev })

	sorted := make([]task.Size, len(devs))
	for i, d := range devs {
		sorted[i] = d.size
	}
	if s, ok := pickFromSorted(t.rng, sorted); ok {
		return s
	}
	return task.SizeSmall
}
