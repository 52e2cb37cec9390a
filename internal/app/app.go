// Package app is the composition root: it opens the store, builds the
// services and engines on top of it, and hands ready-wired components to
// the CLI commands.
package app

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/abhisek/lexio/internal/engine"
	"github.com/abhisek/lexio/internal/lesson"
	"github.com/abhisek/lexio/internal/preload"
	"github.com/abhisek/lexio/internal/propose"
	"github.com/abhisek/lexio/internal/store"
	"github.com/abhisek/lexio/internal/taskgen"
	"github.com/abhisek/lexio/internal/tracker"
	"github.com/abhisek/lexio/internal/vocab"
)

// App holds the wired components behind the CLI commands.
type App struct {
	Store       *store.Store
	Vocab       *vocab.Service
	Catalog     *taskgen.Catalog
	Trackers    *tracker.Trackers
	Engine      *engine.Engine
	Lessons     *lesson.Generator
	TaskPicker  *propose.TaskPicker
	VocabPicker *propose.VocabPicker

	rng *rand.Rand
}

// New opens the database at dbPath and wires everything up. The rng seeds
// every component that makes random choices; pass nil for an entropy seed.
func New(dbPath string, rng *rand.Rand) (*App, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	vocabRepo := s.VocabRepo()
	goals := s.GoalRepo()
	resources := s.ResourceRepo()
	immersion := s.ImmersionRepo()
	languages := s.LanguageRepo()

	catalog := taskgen.NewCatalog(vocabRepo, s.TranslationRepo(), s.NoteRepo(), rng)
	trackers := tracker.NewTrackers(rng, s.CounterRepo())

	taskPicker := propose.NewTaskPicker(rng,
		propose.NewDueVocabTaskProposer(vocabRepo, catalog, rng),
		propose.NewNewVocabTaskProposer(vocabRepo, catalog),
		propose.NewPronunciationTaskProposer(vocabRepo, catalog),
		propose.NewResourceTaskProposer(resources, s.TaskRepo(), rng),
		propose.NewGoalTaskProposer(goals, rng),
		propose.NewImmersionTaskProposer(immersion, vocabRepo, rng),
	)
	vocabPicker := propose.NewVocabPicker(rng,
		propose.NewDueVocabProposer(vocabRepo, rng),
		propose.NewNewVocabProposer(vocabRepo),
		propose.NewImmersionVocabProposer(immersion, vocabRepo, rng),
		propose.NewGoalVocabProposer(goals, vocabRepo, rng),
	)

	return &App{
		Store:       s,
		Vocab:       vocab.NewService(vocabRepo),
		Catalog:     catalog,
		Trackers:    trackers,
		Engine:      engine.New(vocabRepo, goals, resources, languages, catalog, trackers, rng),
		Lessons:     lesson.NewGenerator(vocabRepo, goals, resources, immersion, languages, catalog, rng),
		TaskPicker:  taskPicker,
		VocabPicker: vocabPicker,
		rng:         rng,
	}, nil
}

// Close releases the database handle.
func (a *App) Close() error {
	return a.Store.Close()
}

// ActiveLanguageCodes resolves the learner's active target language codes.
func (a *App) ActiveLanguageCodes(ctx context.Context) ([]string, error) {
	active, err := a.Store.LanguageRepo().ActiveTargetLanguages(ctx)
	if err != nil {
		return nil, err
	}
	codes := make([]string, len(active))
	for i, l := range active {
		codes[i] = l.Code
	}
	return codes, nil
}

// BuildQueue creates a practice-queue state machine over a fresh preloader
// for the active languages.
func (a *App) BuildQueue(ctx context.Context) (*preload.StateMachine, error) {
	codes, err := a.ActiveLanguageCodes(ctx)
	if err != nil {
		return nil, err
	}
	p := preload.New(preload.DefaultConfig(), a.Lessons, a.VocabPicker, codes)
	return preload.NewStateMachine(p, a.Vocab), nil
}
