package lesson

import (
	"context"
	"log/slog"
	"slices"

	"github.com/abhisek/lexio/internal/content"
	"github.com/abhisek/lexio/internal/task"
	"github.com/abhisek/lexio/internal/taskgen"
	"github.com/abhisek/lexio/internal/vocab"
)

// New-vocab counts introduced by a single lesson.
const (
	minNewVocabCount = 3
	maxNewVocabCount = 5

	maxNewVocabFromGoal = 3

	minImmersionUnseen = 1
	maxImmersionUnseen = 3

	lowMasteryThreshold     = 20
	highMasteryMinThreshold = 50
	highMasteryMaxThreshold = 90
	highMasteryMaxTaskCount = 17
)

// dueVocabStrategy builds the whole core from due units. The plainest
// strategy and usually the most likely to succeed.
type dueVocabStrategy struct{ g *Generator }

func (s *dueVocabStrategy) Name() string       { return "due-vocab" }
func (s *dueVocabStrategy) Bounds() (int, int) { return minTaskCount, maxTaskCount }

func (s *dueVocabStrategy) CoreTasks(ctx context.Context, languages []string, target int) ([]*task.Task, error) {
	due, err := s.g.vocabRepo.DueInLanguages(ctx, languages, nil)
	if err != nil {
		return nil, err
	}
	s.g.rng.Shuffle(len(due), func(i, j int) {
		due[i], due[j] = due[j], due[i]
	})
	used := map[string]bool{}
	return s.g.tasksForVocab(ctx, due, target, used), nil
}

// newVocabStrategy introduces a handful of never-seen units.
type newVocabStrategy struct{ g *Generator }

func (s *newVocabStrategy) Name() string       { return "new-vocab" }
func (s *newVocabStrategy) Bounds() (int, int) { return minTaskCount, maxTaskCount }

func (s *newVocabStrategy) CoreTasks(ctx context.Context, languages []string, _ int) ([]*task.Task, error) {
	n := minNewVocabCount + s.g.rng.Intn(maxNewVocabCount-minNewVocabCount+1)
	unseen, err := s.g.vocabRepo.RandomUnseenInLanguages(ctx, languages, n, nil)
	if err != nil {
		return nil, err
	}
	used := map[string]bool{}
	return s.g.tasksForVocab(ctx, unseen, n, used), nil
}

// goalBasedStrategy centers the lesson on one incomplete goal: a goal
// maintenance task, up to 3 new units from the goal, then the goal's due
// units.
type goalBasedStrategy struct{ g *Generator }

func (s *goalBasedStrategy) Name() string       { return "goal-based" }
func (s *goalBasedStrategy) Bounds() (int, int) { return minTaskCount, maxTaskCount }

func (s *goalBasedStrategy) CoreTasks(ctx context.Context, languages []string, target int) ([]*task.Task, error) {
	goals, err := s.g.goals.Incomplete(ctx)
	if err != nil {
		return nil, err
	}

	var eligible []*content.Goal
	for _, goal := range goals {
		if !slices.Contains(languages, goal.Language) {
			continue
		}
		if taskgen.CanGenerateAddSubGoals(goal) || taskgen.CanGenerateAddVocabToGoal(goal) || len(goal.Vocab) > 0 {
			eligible = append(eligible, goal)
		}
	}
	if len(eligible) == 0 {
		return nil, nil
	}
	goal := eligible[s.g.rng.Intn(len(eligible))]

	var tasks []*task.Task
	used := map[string]bool{}

	if t := taskgen.GoalTask(goal, s.g.rng); t != nil {
		tasks = append(tasks, t)
		for _, id := range t.AssociatedVocab {
			used[id] = true
		}
	}

	remaining := func() []string {
		var ids []string
		for _, id := range goal.Vocab {
			if !used[id] {
				ids = append(ids, id)
			}
		}
		return ids
	}

	unseen, err := s.g.vocabRepo.UnseenByUIDs(ctx, remaining())
	if err != nil {
		return nil, err
	}
	if len(unseen) > maxNewVocabFromGoal {
		unseen = unseen[:maxNewVocabFromGoal]
	}
	tasks = append(tasks, s.g.tasksForVocab(ctx, unseen, target-len(tasks), used)...)

	due, err := s.g.vocabRepo.DueByUIDs(ctx, remaining())
	if err != nil {
		return nil, err
	}
	tasks = append(tasks, s.g.tasksForVocab(ctx, due, target-len(tasks), used)...)

	return tasks, nil
}

// resourceExtractionStrategy centers the lesson on one due resource: an
// extraction task plus practice for the vocabulary already mined from it.
type resourceExtractionStrategy struct{ g *Generator }

func (s *resourceExtractionStrategy) Name() string       { return "resource-extraction" }
func (s *resourceExtractionStrategy) Bounds() (int, int) { return minTaskCount, maxTaskCount }

func (s *resourceExtractionStrategy) CoreTasks(ctx context.Context, languages []string, target int) ([]*task.Task, error) {
	resource, err := s.g.resources.RandomDue(ctx, languages)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, nil
	}

	var tasks []*task.Task
	used := map[string]bool{}

	if taskgen.CanGenerateExtractKnowledge(resource) {
		tasks = append(tasks, taskgen.GenerateExtractKnowledge(resource))
	}

	units, err := s.g.vocabRepo.GetByUIDs(ctx, resource.Vocab)
	if err != nil {
		return nil, err
	}
	tasks = append(tasks, s.g.tasksForVocab(ctx, units, target-len(tasks), used)...)

	return tasks, nil
}

// immersionCore is the shared body of the two mastery-band immersion
// strategies: a few unseen needed units plus the due seen ones.
func (g *Generator) immersionCore(ctx context.Context, c *content.ImmersionContent, units []*vocab.Vocab, target int) []*task.Task {
	var unseen, dueSeen []*vocab.Vocab
	now := g.now()
	for _, v := range units {
		if v == nil || v.DoNotPractice {
			continue
		}
		if v.Progress.Level <= 0 {
			unseen = append(unseen, v)
		} else if vocab.IsDue(v, now) {
			dueSeen = append(dueSeen, v)
		}
	}

	var tasks []*task.Task
	used := map[string]bool{}

	if len(unseen) > 0 {
		most := maxImmersionUnseen
		if len(unseen) < most {
			most = len(unseen)
		}
		n := minImmersionUnseen
		if most > minImmersionUnseen {
			n += g.rng.Intn(most - minImmersionUnseen + 1)
		}
		tasks = append(tasks, g.tasksForVocab(ctx, unseen, n, used)...)
	}
	tasks = append(tasks, g.tasksForVocab(ctx, dueSeen, target-len(tasks), used)...)

	slog.Debug("immersion core built", "content", c.UID, "tasks", len(tasks))
	return tasks
}

// masteryBandContent selects immersion content whose needed vocabulary has
// an average mastery inside the given open interval.
func (g *Generator) masteryBandContent(ctx context.Context, languages []string, lo, hi float64, requireNoTasks bool) (*content.ImmersionContent, []*vocab.Vocab, error) {
	all, err := g.immersion.All(ctx)
	if err != nil {
		return nil, nil, err
	}
	now := g.now()

	type candidate struct {
		content *content.ImmersionContent
		units   []*vocab.Vocab
	}
	var eligible []candidate
	for _, c := range all {
		if !slices.Contains(languages, c.Language) || len(c.NeededVocab) == 0 {
			continue
		}
		if requireNoTasks && len(c.Tasks) > 0 {
			continue
		}
		units, err := g.vocabRepo.GetByUIDs(ctx, c.NeededVocab)
		if err != nil {
			return nil, nil, err
		}
		if len(units) == 0 {
			continue
		}
		total := 0.0
		for _, v := range units {
			total += float64(vocab.Mastery(v, now))
		}
		avg := total / float64(len(units))
		if avg > lo && avg < hi {
			eligible = append(eligible, candidate{c, units})
		}
	}
	if len(eligible) == 0 {
		return nil, nil, nil
	}
	picked := eligible[g.rng.Intn(len(eligible))]
	return picked.content, picked.units, nil
}

// lowMasteryImmersionStrategy prepares the learner for immersion content
// they are far from ready for, by drilling its needed vocabulary.
type lowMasteryImmersionStrategy struct{ g *Generator }

func (s *lowMasteryImmersionStrategy) Name() string       { return "low-mastery-immersion" }
func (s *lowMasteryImmersionStrategy) Bounds() (int, int) { return minTaskCount, maxTaskCount }

func (s *lowMasteryImmersionStrategy) CoreTasks(ctx context.Context, languages []string, target int) ([]*task.Task, error) {
	c, units, err := s.g.masteryBandContent(ctx, languages, -1, lowMasteryThreshold, false)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	return s.g.immersionCore(ctx, c, units, target), nil
}

// highMasteryImmersionStrategy polishes vocabulary for immersion content the
// learner is close to ready for.
type highMasteryImmersionStrategy struct{ g *Generator }

func (s *highMasteryImmersionStrategy) Name() string       { return "high-mastery-immersion" }
func (s *highMasteryImmersionStrategy) Bounds() (int, int) { return minTaskCount, highMasteryMaxTaskCount }

func (s *highMasteryImmersionStrategy) CoreTasks(ctx context.Context, languages []string, target int) ([]*task.Task, error) {
	c, units, err := s.g.masteryBandContent(ctx, languages, highMasteryMinThreshold, highMasteryMaxThreshold, true)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	return s.g.immersionCore(ctx, c, units, target), nil
}
