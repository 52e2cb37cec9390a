package tracker

import (
	"context"
	"math/rand"

	"github.com/abhisek/lexio/internal/task"
)

// Trackers bundles every balance tracker for one practice session. It is an
// explicit context object: composition code receives it as a parameter, and
// a fresh session starts from NewTrackers.
type Trackers struct {
	Size          *SizeTracker
	Type          *TypeTracker
	NewVocab      *NewVocabTracker
	Pronunciation *PronunciationTracker
	Sets          *SetTracker
	UsedVocab     *UsedVocabTracker

	served int
}

// NewTrackers creates the full tracker set for a session. The counter store
// carries the persisted daily new-vocab cap and may be nil in tests.
func NewTrackers(rng *rand.Rand, counter DailyCounterStore) *Trackers {
	return &Trackers{
		Size:          NewSizeTracker(rng),
		Type:          NewTypeTracker(rng),
		NewVocab:      NewNewVocabTracker(counter),
		Pronunciation: NewPronunciationTracker(),
		Sets:          NewSetTracker(),
		UsedVocab:     NewUsedVocabTracker(),
	}
}

// Track records a served task with every tracker.
func (t *Trackers) Track(ctx context.Context, tt task.Type) error {
	t.served++
	t.Size.Track(tt)
	t.Type.Track(tt)
	t.Pronunciation.Track(tt)
	return t.NewVocab.Track(ctx, tt)
}

// TrackTask records a full served descriptor: its type with every tracker
// plus its vocab in the block-list history.
func (t *Trackers) TrackTask(ctx context.Context, tk *task.Task) error {
	t.UsedVocab.TrackVocabUsed(tk.AssociatedVocab)
	return t.Track(ctx, tk.Type)
}

// Served returns how many tasks this session has recorded.
func (t *Trackers) Served() int {
	return t.served
}

// Allowed filters the candidate types down to those the hard caps permit.
// Advisory trackers do not filter; only the new-vocab and pronunciation
// caps remove candidates.
func (t *Trackers) Allowed(ctx context.Context, candidates []task.Type) ([]task.Type, error) {
	newVocabOK, err := t.NewVocab.CanGenerateNewVocabTask(ctx)
	if err != nil {
		return nil, err
	}
	pronunciationOK := t.Pronunciation.CanGeneratePronunciationTask()

	var out []task.Type
	for _, tt := range candidates {
		if task.IsNewVocab(tt) && !newVocabOK {
			continue
		}
		if tt == task.TypeAddPronunciation && !pronunciationOK {
			continue
		}
		out = append(out, tt)
	}
	return out, nil
}
