// Package engine provides the single-task entry point of the practice
// engine: MakeTask picks one task on demand, balancing size and type
// variety against the session trackers and honoring the new-vocab caps.
package engine

import (
	"context"
	"log/slog"
	"math/rand"
	"slices"
	"time"

	"github.com/abhisek/lexio/internal/content"
	"github.com/abhisek/lexio/internal/task"
	"github.com/abhisek/lexio/internal/taskgen"
	"github.com/abhisek/lexio/internal/tracker"
	"github.com/abhisek/lexio/internal/vocab"
)

// focusChance is the probability of serving the focused unit when a focus
// id is given.
const focusChance = 0.8

// Engine makes single tasks. One Engine serves one session; the trackers
// it carries are mutated once per served task.
type Engine struct {
	vocabRepo vocab.Repo
	goals     content.GoalRepo
	resources content.ResourceRepo
	languages content.LanguageRepo
	catalog   *taskgen.Catalog
	trackers  *tracker.Trackers
	rng       *rand.Rand
	now       func() time.Time
}

// New creates a task engine.
func New(
	vocabRepo vocab.Repo,
	goals content.GoalRepo,
	resources content.ResourceRepo,
	languages content.LanguageRepo,
	catalog *taskgen.Catalog,
	trackers *tracker.Trackers,
	rng *rand.Rand,
) *Engine {
	return &Engine{
		vocabRepo: vocabRepo,
		goals:     goals,
		resources: resources,
		languages: languages,
		catalog:   catalog,
		trackers:  trackers,
		rng:       rng,
		now:       time.Now,
	}
}

// Trackers exposes the session trackers for composition code.
func (e *Engine) Trackers() *tracker.Trackers {
	return e.trackers
}

// MakeTask picks one task. With a non-empty focus id there is an 80% chance
// to serve that unit directly; otherwise selection is size-balanced two
// times out of three and rarity-driven once. Exhaustion returns (nil, nil).
func (e *Engine) MakeTask(ctx context.Context, focus string) (*task.Task, error) {
	active, err := e.languages.ActiveTargetLanguages(ctx)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		slog.Warn("no active target languages")
		return nil, nil
	}
	codes := make([]string, len(active))
	for i, l := range active {
		codes[i] = l.Code
	}

	block := e.trackers.UsedVocab.RecentlyUsed()

	if focus != "" && e.rng.Float64() < focusChance {
		t, err := e.makeFocusedTask(ctx, focus, block)
		if err != nil {
			return nil, err
		}
		if t != nil {
			return t, e.trackers.TrackTask(ctx, t)
		}
		// Focused generation failed; fall through to standard selection.
	}

	candidates, err := e.trackers.Allowed(ctx, e.candidateTypes())
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	var t *task.Task
	if e.rng.Intn(3) < 2 {
		t, err = e.makeSizeBalancedTask(ctx, codes, block, candidates)
	} else {
		t, err = e.makeRareTask(ctx, codes, block, candidates)
	}
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	return t, e.trackers.TrackTask(ctx, t)
}

// makeFocusedTask serves the focus unit itself when it is practisable right
// now. The very first task of a session always uses the focus unit.
func (e *Engine) makeFocusedTask(ctx context.Context, focus string, block []string) (*task.Task, error) {
	v, err := e.vocabRepo.GetByUID(ctx, focus)
	if err != nil {
		return nil, err
	}
	if v == nil {
		slog.Warn("focus vocab not found", "uid", focus)
		return nil, nil
	}

	if e.trackers.Served() > 0 {
		if v.DoNotPractice || slices.Contains(block, v.UID) {
			return nil, nil
		}
		if vocab.IsUnseen(v) {
			ok, err := e.trackers.NewVocab.CanGenerateNewVocabTask(ctx)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, nil
			}
		} else if !vocab.IsDue(v, e.now()) {
			return nil, nil
		}
	}

	return e.catalog.ForVocab(ctx, v)
}

// candidateTypes lists every type the standard selection can produce.
func (e *Engine) candidateTypes() []task.Type {
	return []task.Type{
		task.TypeAddTranslation,
		task.TypeAddPronunciation,
		task.TypeExtractFromResource,
		task.TypeAddSubGoals,
		task.TypeAddVocabToGoal,
		task.TypeAddMilestones,
		task.TypeVocabTryToRemember,
		task.TypeGuessSentenceMeaning,
		task.TypeVocabRevealTargetToNative,
		task.TypeVocabRevealNativeToTarget,
		task.TypeChoiceTwoTargetToNative,
		task.TypeChoiceTwoNativeToTarget,
		task.TypeChoiceFourTargetToNative,
		task.TypeChoiceFourNativeToTarget,
		task.TypeClozeChoice,
		task.TypeClozeReveal,
		task.TypeFreeTranslate,
	}
}

// makeSizeBalancedTask tries types of the currently under-represented size
// first, then falls back to any candidate.
func (e *Engine) makeSizeBalancedTask(ctx context.Context, languages, block []string, candidates []task.Type) (*task.Task, error) {
	preferred := e.trackers.Size.PreferredSize()

	var preferredTypes, rest []task.Type
	for _, tt := range candidates {
		if task.SizeOf(tt) == preferred {
			preferredTypes = append(preferredTypes, tt)
		} else {
			rest = append(rest, tt)
		}
	}

	t, err := e.tryTypes(ctx, languages, block, preferredTypes)
	if err != nil {
		return nil, err
	}
	if t != nil {
		return t, nil
	}
	return e.tryTypes(ctx, languages, block, rest)
}

// makeRareTask tries the rarest recently-served candidate first, then falls
// back to any candidate.
func (e *Engine) makeRareTask(ctx context.Context, languages, block []string, candidates []task.Type) (*task.Task, error) {
	if rare, ok := e.trackers.Type.RecommendRare(candidates); ok {
		t, err := e.taskOfType(ctx, languages, block, rare)
		if err != nil {
			slog.Warn("rare task generation failed", "type", rare, "err", err)
		} else if t != nil {
			return t, nil
		}
	}
	return e.tryTypes(ctx, languages, block, candidates)
}

// tryTypes attempts the given types in random order until one yields.
func (e *Engine) tryTypes(ctx context.Context, languages, block []string, types []task.Type) (*task.Task, error) {
	order := e.rng.Perm(len(types))
	for _, i := range order {
		t, err := e.taskOfType(ctx, languages, block, types[i])
		if err != nil {
			slog.Warn("task generation failed", "type", types[i], "err", err)
			continue
		}
		if t != nil {
			return t, nil
		}
	}
	return nil, nil
}

// taskOfType builds one task of a specific type from whatever pool that
// type draws on.
func (e *Engine) taskOfType(ctx context.Context, languages, block []string, tt task.Type) (*task.Task, error) {
	switch tt {
	case task.TypeExtractFromResource:
		r, err := e.resources.RandomDue(ctx, languages)
		if err != nil {
			return nil, err
		}
		if !taskgen.CanGenerateExtractKnowledge(r) {
			return nil, nil
		}
		return taskgen.GenerateExtractKnowledge(r), nil

	case task.TypeAddSubGoals, task.TypeAddVocabToGoal, task.TypeAddMilestones:
		return e.goalTaskOfType(ctx, languages, tt)

	case task.TypeVocabTryToRemember, task.TypeGuessSentenceMeaning:
		pool, err := e.vocabRepo.RandomUnseenInLanguages(ctx, languages, 10, block)
		if err != nil {
			return nil, err
		}
		return e.firstOfType(ctx, pool, tt)

	default:
		pool, err := e.vocabRepo.DueInLanguages(ctx, languages, block)
		if err != nil {
			return nil, err
		}
		e.rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
		return e.firstOfType(ctx, pool, tt)
	}
}

func (e *Engine) goalTaskOfType(ctx context.Context, languages []string, tt task.Type) (*task.Task, error) {
	goals, err := e.goals.Incomplete(ctx)
	if err != nil {
		return nil, err
	}
	e.rng.Shuffle(len(goals), func(i, j int) {
		goals[i], goals[j] = goals[j], goals[i]
	})
	for _, g := range goals {
		if !slices.Contains(languages, g.Language) {
			continue
		}
		switch tt {
		case task.TypeAddSubGoals:
			if taskgen.CanGenerateAddSubGoals(g) {
				return taskgen.GenerateAddSubGoals(g), nil
			}
		case task.TypeAddVocabToGoal:
			if taskgen.CanGenerateAddVocabToGoal(g) {
				return taskgen.GenerateAddVocabToGoal(g), nil
			}
		case task.TypeAddMilestones:
			if taskgen.CanGenerateAddMilestones(g) {
				return taskgen.GenerateAddMilestones(g), nil
			}
		}
	}
	return nil, nil
}

func (e *Engine) firstOfType(ctx context.Context, pool []*vocab.Vocab, tt task.Type) (*task.Task, error) {
	for _, v := range pool {
		t, err := e.catalog.ForVocabOfType(ctx, v, tt)
		if err != nil {
			return nil, err
		}
		if t != nil {
			return t, nil
		}
	}
	return nil, nil
}
