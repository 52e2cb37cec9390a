// Package taskgen is the generator catalog: one generator plus eligibility
// predicate per (unit kind, level band) pair. Eligibility is deterministic;
// when several generators accept the same unit, one is chosen uniformly at
// random — variety is deliberate.
package taskgen

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/abhisek/lexio/internal/content"
	"github.com/abhisek/lexio/internal/task"
	"github.com/abhisek/lexio/internal/vocab"
)

// Catalog generates task descriptors for vocab units. It needs repository
// access to resolve translations, notes and distractor pools.
type Catalog struct {
	vocabRepo    vocab.Repo
	translations content.TranslationRepo
	notes        content.NoteRepo
	distractors  *vocab.DistractorSelector
	rng          *rand.Rand
	now          func() time.Time
}

// NewCatalog creates a generator catalog. The rng drives both generator
// choice and distractor shuffling; tests seed it for determinism.
func NewCatalog(vocabRepo vocab.Repo, translations content.TranslationRepo, notes content.NoteRepo, rng *rand.Rand) *Catalog {
	return &Catalog{
		vocabRepo:    vocabRepo,
		translations: translations,
		notes:        notes,
		distractors:  vocab.NewDistractorSelector(vocab.DefaultDistractorConfig(), rng),
		rng:          rng,
		now:          time.Now,
	}
}

// ForVocab generates a random eligible task for the unit, or nil when no
// generator accepts it. A unit with content but no translations only ever
// yields an add-translation maintenance task.
func (c *Catalog) ForVocab(ctx context.Context, v *vocab.Vocab) (*task.Task, error) {
	if v == nil || v.DoNotPractice || v.Content == "" {
		return nil, nil
	}

	translations, err := c.translations.GetByUIDs(ctx, v.Translations)
	if err != nil {
		return nil, err
	}
	notes, err := c.notes.GetByUIDs(ctx, v.Notes)
	if err != nil {
		return nil, err
	}

	eligible := c.Eligible(v, translations, notes)
	if len(eligible) == 0 {
		return nil, nil
	}

	// Try eligible generators in random order so a failing one does not
	// sink the whole unit.
	order := c.rng.Perm(len(eligible))
	for _, i := range order {
		g := eligible[i]
		t, err := g.Generate(ctx, c, v, translations)
		if err != nil {
			slog.Warn("task generator failed", "type", g.Type, "vocab", v.UID, "err", err)
			continue
		}
		if t != nil {
			return t, nil
		}
	}
	return nil, nil
}

// ForVocabOfType generates a task of one specific type, or nil when the
// unit is not eligible for it.
func (c *Catalog) ForVocabOfType(ctx context.Context, v *vocab.Vocab, tt task.Type) (*task.Task, error) {
	if v == nil || v.DoNotPractice || v.Content == "" {
		return nil, nil
	}

	translations, err := c.translations.GetByUIDs(ctx, v.Translations)
	if err != nil {
		return nil, err
	}
	notes, err := c.notes.GetByUIDs(ctx, v.Notes)
	if err != nil {
		return nil, err
	}

	for _, g := range append(generators, addTranslation) {
		if g.Type != tt {
			continue
		}
		if !g.CanGenerate(v, translations, notes) {
			return nil, nil
		}
		return g.Generate(ctx, c, v, translations)
	}
	return nil, nil
}

// Eligible returns the generators whose predicates accept the unit, in
// catalog order. Exposed for tests asserting the threshold table.
func (c *Catalog) Eligible(v *vocab.Vocab, translations []*content.Translation, notes []*content.Note) []Generator {
	if v.DoNotPractice || v.Content == "" {
		return nil
	}

	// Zero translations: the unit cannot be practised, only completed.
	if len(translations) == 0 && v.Progress.Level != vocab.UnseenLevel {
		if addTranslation.CanGenerate(v, translations, notes) {
			return []Generator{addTranslation}
		}
		return nil
	}

	var eligible []Generator
	for _, g := range generators {
		if g.CanGenerate(v, translations, notes) {
			eligible = append(eligible, g)
		}
	}
	return eligible
}

// translationContents joins translation texts for reveal-style solutions.
func translationContents(translations []*content.Translation) []string {
	out := make([]string, 0, len(translations))
	for _, t := range translations {
		if t.Content != "" {
			out = append(out, t.Content)
		}
	}
	return out
}

func joinedTranslations(translations []*content.Translation) string {
	return strings.Join(translationContents(translations), ", ")
}

// wrongTranslationPool gathers translation contents from other due units in
// the same language, for target-to-native choice distractors.
func (c *Catalog) wrongTranslationPool(ctx context.Context, v *vocab.Vocab) ([]string, error) {
	due, err := c.vocabRepo.DueInLanguages(ctx, []string{v.Language}, []string{v.UID})
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, other := range due {
		ids = append(ids, other.Translations...)
	}
	translations, err := c.translations.GetByUIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return translationContents(translations), nil
}

// wrongVocabPool gathers unit contents from other due units in the same
// language, for native-to-target choice distractors.
func (c *Catalog) wrongVocabPool(ctx context.Context, v *vocab.Vocab) ([]string, error) {
	due, err := c.vocabRepo.DueInLanguages(ctx, []string{v.Language}, []string{v.UID})
	if err != nil {
		return nil, err
	}
	var pool []string
	for _, other := range due {
		if other.Content != "" {
			pool = append(pool, other.Content)
		}
	}
	return pool, nil
}

// buildOptions mixes the correct answer into the distractors at a random
// position. Choice descriptors guarantee the answer appears exactly once.
func (c *Catalog) buildOptions(correct string, distractors []string) []string {
	options := make([]string, 0, len(distractors)+1)
	options = append(options, distractors...)
	options = append(options, correct)
	c.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}
