package lesson

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/abhisek/lexio/internal/content"
	"github.com/abhisek/lexio/internal/task"
	"github.com/abhisek/lexio/internal/taskgen"
	"github.com/abhisek/lexio/internal/vocab"
)

// Default target-size band for a lesson. Individual strategies may narrow it.
const (
	minTaskCount = 5
	maxTaskCount = 20
)

// Strategy builds the themed core of a lesson. The shared driver handles
// target sizing, due-vocab fillup and shuffling.
type Strategy interface {
	// Name identifies the strategy in logs.
	Name() string

	// Bounds returns the inclusive target-size band for this strategy.
	Bounds() (min, max int)

	// CoreTasks builds the strategy's core selection, at most target tasks.
	// An empty result is not an error: it means the strategy has nothing to
	// offer right now.
	CoreTasks(ctx context.Context, languages []string, target int) ([]*task.Task, error)
}

// Generator composes lessons. It owns the strategy set and the shared
// driver; a session holds one Generator.
type Generator struct {
	vocabRepo vocab.Repo
	goals     content.GoalRepo
	resources content.ResourceRepo
	immersion content.ImmersionRepo
	languages content.LanguageRepo
	catalog   *taskgen.Catalog
	rng       *rand.Rand
	now       func() time.Time

	strategies []Strategy
}

// NewGenerator creates a lesson generator with the full strategy set.
func NewGenerator(
	vocabRepo vocab.Repo,
	goals content.GoalRepo,
	resources content.ResourceRepo,
	immersion content.ImmersionRepo,
	languages content.LanguageRepo,
	catalog *taskgen.Catalog,
	rng *rand.Rand,
) *Generator {
	g := &Generator{
		vocabRepo: vocabRepo,
		goals:     goals,
		resources: resources,
		immersion: immersion,
		languages: languages,
		catalog:   catalog,
		rng:       rng,
		now:       time.Now,
	}
	g.strategies = []Strategy{
		&dueVocabStrategy{g},
		&newVocabStrategy{g},
		&goalBasedStrategy{g},
		&resourceExtractionStrategy{g},
		&lowMasteryImmersionStrategy{g},
		&highMasteryImmersionStrategy{g},
	}
	return g
}

// GenerateLesson resolves the active target languages, tries the strategies
// in random order and returns the first non-empty lesson. When every
// strategy comes up empty the result is an empty, valid lesson.
func (g *Generator) GenerateLesson(ctx context.Context) (*Lesson, error) {
	active, err := g.languages.ActiveTargetLanguages(ctx)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		slog.Warn("no active target languages")
		return New(nil), nil
	}
	codes := make([]string, len(active))
	for i, l := range active {
		codes[i] = l.Code
	}
	return g.GenerateLessonForLanguages(ctx, codes)
}

// GenerateLessonForLanguages is GenerateLesson with an explicit language set.
func (g *Generator) GenerateLessonForLanguages(ctx context.Context, languages []string) (*Lesson, error) {
	order := g.rng.Perm(len(g.strategies))
	for _, i := range order {
		s := g.strategies[i]
		l, err := g.runStrategy(ctx, s, languages)
		if err != nil {
			slog.Warn("lesson strategy failed", "strategy", s.Name(), "err", err)
			continue
		}
		if !l.IsEmpty() {
			return l, nil
		}
	}
	slog.Warn("all lesson strategies exhausted", "languages", languages)
	return New(nil), nil
}

// runStrategy is the shared driver: pick a target size, build the core,
// fill up with due vocabulary, shuffle.
func (g *Generator) runStrategy(ctx context.Context, s Strategy, languages []string) (*Lesson, error) {
	lo, hi := s.Bounds()
	target := lo + g.rng.Intn(hi-lo+1)

	tasks, err := s.CoreTasks(ctx, languages, target)
	if err != nil {
		return nil, err
	}

	if len(tasks) > 0 && len(tasks) < target {
		used := usedVocabIDs(tasks)
		fill, err := g.fillWithDueVocab(ctx, languages, target-len(tasks), used)
		if err != nil {
			slog.Warn("due-vocab fillup failed", "strategy", s.Name(), "err", err)
		} else {
			tasks = append(tasks, fill...)
		}
	}

	g.rng.Shuffle(len(tasks), func(i, j int) {
		tasks[i], tasks[j] = tasks[j], tasks[i]
	})
	return New(tasks), nil
}

// fillWithDueVocab generates up to count tasks from due units not already
// used in this lesson.
func (g *Generator) fillWithDueVocab(ctx context.Context, languages []string, count int, used map[string]bool) ([]*task.Task, error) {
	due, err := g.vocabRepo.DueInLanguages(ctx, languages, keys(used))
	if err != nil {
		return nil, err
	}
	g.rng.Shuffle(len(due), func(i, j int) {
		due[i], due[j] = due[j], due[i]
	})

	var tasks []*task.Task
	for _, v := range due {
		if len(tasks) >= count {
			break
		}
		if used[v.UID] {
			continue
		}
		t, err := g.catalog.ForVocab(ctx, v)
		if err != nil {
			slog.Warn("task generation failed during fillup", "vocab", v.UID, "err", err)
			continue
		}
		if t != nil {
			tasks = append(tasks, t)
			used[v.UID] = true
		}
	}
	return tasks, nil
}

// tasksForVocab generates at most limit tasks for the given units, skipping
// used ones and recording the ones it consumes.
func (g *Generator) tasksForVocab(ctx context.Context, units []*vocab.Vocab, limit int, used map[string]bool) []*task.Task {
	var tasks []*task.Task
	for _, v := range units {
		if len(tasks) >= limit {
			break
		}
		if v == nil || used[v.UID] {
			continue
		}
		t, err := g.catalog.ForVocab(ctx, v)
		if err != nil {
			slog.Warn("task generation failed", "vocab", v.UID, "err", err)
			continue
		}
		if t != nil {
			tasks = append(tasks, t)
			used[v.UID] = true
		}
	}
	return tasks
}

func usedVocabIDs(tasks []*task.Task) map[string]bool {
	used := map[string]bool{}
	for _, t := range tasks {
		for _, id := range t.AssociatedVocab {
			used[id] = true
		}
	}
	return used
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
