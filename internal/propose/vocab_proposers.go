package propose

import (
	"context"
	"math/rand"
	"slices"

	"github.com/abhisek/lexio/internal/content"
	"github.com/abhisek/lexio/internal/vocab"
)

// DueVocabProposer draws from the due pool.
type DueVocabProposer struct {
	vocabRepo vocab.Repo
	rng       *rand.Rand
}

func NewDueVocabProposer(vocabRepo vocab.Repo, rng *rand.Rand) *DueVocabProposer {
	return &DueVocabProposer{vocabRepo: vocabRepo, rng: rng}
}

func (p *DueVocabProposer) Name() string { return "due-vocab" }

func (p *DueVocabProposer) ProposeVocab(ctx context.Context, languages []string, n int) ([]*vocab.Vocab, error) {
	due, err := p.vocabRepo.DueInLanguages(ctx, languages, nil)
	if err != nil {
		return nil, err
	}
	p.rng.Shuffle(len(due), func(i, j int) {
		due[i], due[j] = due[j], due[i]
	})
	if len(due) > n {
		due = due[:n]
	}
	return due, nil
}

// NewVocabProposer draws from the unseen pool.
type NewVocabProposer struct {
	vocabRepo vocab.Repo
}

func NewNewVocabProposer(vocabRepo vocab.Repo) *NewVocabProposer {
	return &NewVocabProposer{vocabRepo: vocabRepo}
}

func (p *NewVocabProposer) Name() string { return "new-vocab" }

func (p *NewVocabProposer) ProposeVocab(ctx context.Context, languages []string, n int) ([]*vocab.Vocab, error) {
	return p.vocabRepo.RandomUnseenInLanguages(ctx, languages, n, nil)
}

// ImmersionVocabProposer draws the needed vocabulary of one random immersion
// content, nudging the learner toward unlocking it.
type ImmersionVocabProposer struct {
	immersion content.ImmersionRepo
	vocabRepo vocab.Repo
	rng       *rand.Rand
}

func NewImmersionVocabProposer(immersion content.ImmersionRepo, vocabRepo vocab.Repo, rng *rand.Rand) *ImmersionVocabProposer {
	return &ImmersionVocabProposer{immersion: immersion, vocabRepo: vocabRepo, rng: rng}
}

func (p *ImmersionVocabProposer) Name() string { return "immersion-almost-ready" }

func (p *ImmersionVocabProposer) ProposeVocab(ctx context.Context, languages []string, n int) ([]*vocab.Vocab, error) {
	all, err := p.immersion.All(ctx)
	if err != nil {
		return nil, err
	}
	var candidates []*content.ImmersionContent
	for _, c := range all {
		if slices.Contains(languages, c.Language) && len(c.NeededVocab) > 0 {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	picked := candidates[p.rng.Intn(len(candidates))]

	units, err := p.vocabRepo.GetByUIDs(ctx, picked.NeededVocab)
	if err != nil {
		return nil, err
	}
	var out []*vocab.Vocab
	for _, v := range units {
		if !v.DoNotPractice {
			out = append(out, v)
		}
	}
	p.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// GoalVocabProposer draws unseen and due units linked to incomplete goals.
type GoalVocabProposer struct {
	goals     content.GoalRepo
	vocabRepo vocab.Repo
	rng       *rand.Rand
}

func NewGoalVocabProposer(goals content.GoalRepo, vocabRepo vocab.Repo, rng *rand.Rand) *GoalVocabProposer {
	return &GoalVocabProposer{goals: goals, vocabRepo: vocabRepo, rng: rng}
}

func (p *GoalVocabProposer) Name() string { return "goal-linked" }

func (p *GoalVocabProposer) ProposeVocab(ctx context.Context, languages []string, n int) ([]*vocab.Vocab, error) {
	goals, err := p.goals.Incomplete(ctx)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, g := range goals {
		if slices.Contains(languages, g.Language) {
			ids = append(ids, g.Vocab...)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	unseen, err := p.vocabRepo.UnseenByUIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	due, err := p.vocabRepo.DueByUIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := append(unseen, due...)
	p.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}
