package propose

import (
	"context"
	"log/slog"
	"math/rand"

	"github.com/abhisek/lexio/internal/task"
	"github.com/abhisek/lexio/internal/vocab"
)

// Vocab batch target band.
const (
	minVocabBatch = 5
	maxVocabBatch = 20
)

// TaskPicker gathers every proposer's suggestion and chooses one uniformly
// at random. A failing proposer is logged and treated as "nothing offered".
type TaskPicker struct {
	proposers []TaskProposer
	rng       *rand.Rand
}

// NewTaskPicker creates a picker over the given proposers.
func NewTaskPicker(rng *rand.Rand, proposers ...TaskProposer) *TaskPicker {
	return &TaskPicker{proposers: proposers, rng: rng}
}

// PickTask returns one proposed task, or nil when every proposer comes up
// empty.
func (p *TaskPicker) PickTask(ctx context.Context, languages []string) (*task.Task, error) {
	var proposals []*task.Task
	for _, prop := range p.proposers {
		t, err := prop.ProposeTask(ctx, languages)
		if err != nil {
			slog.Warn("task proposer failed", "proposer", prop.Name(), "err", err)
			continue
		}
		if t != nil {
			proposals = append(proposals, t)
		}
	}
	if len(proposals) == 0 {
		return nil, nil
	}
	return proposals[p.rng.Intn(len(proposals))], nil
}

// VocabPicker batches units for focused practice: every proposer contributes,
// duplicates collapse, the rest is shuffled and trimmed to a random target.
type VocabPicker struct {
	proposers []VocabProposer
	rng       *rand.Rand
}

// NewVocabPicker creates a picker over the given proposers.
func NewVocabPicker(rng *rand.Rand, proposers ...VocabProposer) *VocabPicker {
	return &VocabPicker{proposers: proposers, rng: rng}
}

// PickVocabBatch returns up to a random 5-20 units, empty when no proposer
// has anything.
func (p *VocabPicker) PickVocabBatch(ctx context.Context, languages []string) ([]*vocab.Vocab, error) {
	target := minVocabBatch + p.rng.Intn(maxVocabBatch-minVocabBatch+1)

	var all []*vocab.Vocab
	for _, prop := range p.proposers {
		units, err := prop.ProposeVocab(ctx, languages, target)
		if err != nil {
			slog.Warn("vocab proposer failed", "proposer", prop.Name(), "err", err)
			continue
		}
		all = append(all, units...)
	}
	if len(all) == 0 {
		return nil, nil
	}

	seen := map[string]bool{}
	var unique []*vocab.Vocab
	for _, v := range all {
		if v == nil || seen[v.UID] {
			continue
		}
		seen[v.UID] = true
		unique = append(unique, v)
	}

	p.rng.Shuffle(len(unique), func(i, j int) {
		unique[i], unique[j] = unique[j], unique[i]
	})
	if len(unique) > target {
		unique = unique[:target]
	}
	return unique, nil
}
