package propose

import (
	"context"
	"math/rand"
	"slices"
	"time"

	"github.com/abhisek/lexio/internal/content"
	"github.com/abhisek/lexio/internal/task"
	"github.com/abhisek/lexio/internal/taskgen"
	"github.com/abhisek/lexio/internal/vocab"
)

// Average mastery of needed vocab above which immersion content counts as
// ready to consume.
const immersionReadyMastery = 90

// DueVocabTaskProposer offers a task for one due unit.
type DueVocabTaskProposer struct {
	vocabRepo vocab.Repo
	catalog   *taskgen.Catalog
	rng       *rand.Rand
}

func NewDueVocabTaskProposer(vocabRepo vocab.Repo, catalog *taskgen.Catalog, rng *rand.Rand) *DueVocabTaskProposer {
	return &DueVocabTaskProposer{vocabRepo: vocabRepo, catalog: catalog, rng: rng}
}

func (p *DueVocabTaskProposer) Name() string { return "due-vocab" }

func (p *DueVocabTaskProposer) ProposeTask(ctx context.Context, languages []string) (*task.Task, error) {
	due, err := p.vocabRepo.DueInLanguages(ctx, languages, nil)
	if err != nil {
		return nil, err
	}
	p.rng.Shuffle(len(due), func(i, j int) {
		due[i], due[j] = due[j], due[i]
	})
	for _, v := range due {
		t, err := p.catalog.ForVocab(ctx, v)
		if err != nil {
			return nil, err
		}
		if t != nil {
			return t, nil
		}
	}
	return nil, nil
}

// NewVocabTaskProposer offers an introduction task for one unseen unit.
type NewVocabTaskProposer struct {
	vocabRepo vocab.Repo
	catalog   *taskgen.Catalog
}

func NewNewVocabTaskProposer(vocabRepo vocab.Repo, catalog *taskgen.Catalog) *NewVocabTaskProposer {
	return &NewVocabTaskProposer{vocabRepo: vocabRepo, catalog: catalog}
}

func (p *NewVocabTaskProposer) Name() string { return "new-vocab" }

func (p *NewVocabTaskProposer) ProposeTask(ctx context.Context, languages []string) (*task.Task, error) {
	unseen, err := p.vocabRepo.RandomUnseenInLanguages(ctx, languages, 1, nil)
	if err != nil {
		return nil, err
	}
	if len(unseen) == 0 {
		return nil, nil
	}
	return p.catalog.ForVocab(ctx, unseen[0])
}

// PronunciationTaskProposer offers an add-pronunciation chore for a
// high-priority unit that still lacks one.
type PronunciationTaskProposer struct {
	vocabRepo vocab.Repo
	catalog   *taskgen.Catalog
}

func NewPronunciationTaskProposer(vocabRepo vocab.Repo, catalog *taskgen.Catalog) *PronunciationTaskProposer {
	return &PronunciationTaskProposer{vocabRepo: vocabRepo, catalog: catalog}
}

func (p *PronunciationTaskProposer) Name() string { return "pronunciation" }

func (p *PronunciationTaskProposer) ProposeTask(ctx context.Context, languages []string) (*task.Task, error) {
	due, err := p.vocabRepo.DueInLanguages(ctx, languages, nil)
	if err != nil {
		return nil, err
	}
	for _, v := range due {
		t, err := p.catalog.ForVocabOfType(ctx, v, task.TypeAddPronunciation)
		if err != nil {
			return nil, err
		}
		if t != nil {
			return t, nil
		}
	}
	return nil, nil
}

// ResourceTaskProposer offers an extraction task when a due resource still
// has knowledge left in it, or one of the resource's active stored tasks
// once extraction is finished.
type ResourceTaskProposer struct {
	resources content.ResourceRepo
	tasks     content.TaskRepo
	rng       *rand.Rand
}

func NewResourceTaskProposer(resources content.ResourceRepo, tasks content.TaskRepo, rng *rand.Rand) *ResourceTaskProposer {
	return &ResourceTaskProposer{resources: resources, tasks: tasks, rng: rng}
}

func (p *ResourceTaskProposer) Name() string { return "resource-extraction" }

func (p *ResourceTaskProposer) ProposeTask(ctx context.Context, languages []string) (*task.Task, error) {
	r, err := p.resources.RandomDue(ctx, languages)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}
	if taskgen.CanGenerateExtractKnowledge(r) {
		return taskgen.GenerateExtractKnowledge(r), nil
	}

	stored, err := p.tasks.ByResourceID(ctx, r.UID)
	if err != nil {
		return nil, err
	}
	if len(stored) == 0 {
		return nil, nil
	}
	return storedToDescriptor(stored[p.rng.Intn(len(stored))]), nil
}

// storedToDescriptor turns a long-lived stored task record into a servable
// descriptor.
func storedToDescriptor(st *content.StoredTask) *task.Task {
	return &task.Task{
		UID:                 st.UID,
		Type:                task.Type(st.TaskType),
		Language:            st.Language,
		Prompt:              st.Prompt,
		AssociatedVocab:     st.AssociatedVocab,
		AssociatedGoals:     st.AssociatedGoals,
		AssociatedResources: st.AssociatedResources,
	}
}

// GoalTaskProposer offers a maintenance task for a random incomplete goal.
type GoalTaskProposer struct {
	goals content.GoalRepo
	rng   *rand.Rand
}

func NewGoalTaskProposer(goals content.GoalRepo, rng *rand.Rand) *GoalTaskProposer {
	return &GoalTaskProposer{goals: goals, rng: rng}
}

func (p *GoalTaskProposer) Name() string { return "goal-linked" }

func (p *GoalTaskProposer) ProposeTask(ctx context.Context, languages []string) (*task.Task, error) {
	goals, err := p.goals.Incomplete(ctx)
	if err != nil {
		return nil, err
	}
	var eligible []*content.Goal
	for _, g := range goals {
		if slices.Contains(languages, g.Language) {
			eligible = append(eligible, g)
		}
	}
	if len(eligible) == 0 {
		return nil, nil
	}
	// Try goals in random order; GoalTask itself can come up empty.
	p.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	for _, g := range eligible {
		if t := taskgen.GoalTask(g, p.rng); t != nil {
			return t, nil
		}
	}
	return nil, nil
}

// ImmersionTaskProposer offers a consume task for immersion content whose
// needed vocabulary the learner has essentially mastered.
type ImmersionTaskProposer struct {
	immersion content.ImmersionRepo
	vocabRepo vocab.Repo
	rng       *rand.Rand
	now       func() time.Time
}

func NewImmersionTaskProposer(immersion content.ImmersionRepo, vocabRepo vocab.Repo, rng *rand.Rand) *ImmersionTaskProposer {
	return &ImmersionTaskProposer{immersion: immersion, vocabRepo: vocabRepo, rng: rng, now: time.Now}
}

func (p *ImmersionTaskProposer) Name() string { return "immersion-content" }

func (p *ImmersionTaskProposer) ProposeTask(ctx context.Context, languages []string) (*task.Task, error) {
	all, err := p.immersion.All(ctx)
	if err != nil {
		return nil, err
	}
	now := p.now()

	var ready []*content.ImmersionContent
	for _, c := range all {
		if !slices.Contains(languages, c.Language) || len(c.NeededVocab) == 0 {
			continue
		}
		units, err := p.vocabRepo.GetByUIDs(ctx, c.NeededVocab)
		if err != nil {
			return nil, err
		}
		if len(units) == 0 {
			continue
		}
		total := 0.0
		for _, v := range units {
			total += float64(vocab.Mastery(v, now))
		}
		if total/float64(len(units)) >= immersionReadyMastery {
			ready = append(ready, c)
		}
	}
	if len(ready) == 0 {
		return nil, nil
	}
	return taskgen.GenerateConsumeImmersion(ready[p.rng.Intn(len(ready))]), nil
}
