package taskgen

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/lexio/internal/content"
	"github.com/abhisek/lexio/internal/task"
	"github.com/abhisek/lexio/internal/vocab"
)

// Generator pairs an eligibility predicate with a descriptor builder.
// CanGenerate is pure; Generate may hit repositories for distractor pools
// and can fail, in which case the catalog falls through to the next one.
type Generator struct {
	Type        task.Type
	CanGenerate func(v *vocab.Vocab, translations []*content.Translation, notes []*content.Note) bool
	Generate    func(ctx context.Context, c *Catalog, v *vocab.Vocab, translations []*content.Translation) (*task.Task, error)
}

func newUID(t task.Type, vocabUID string) string {
	return fmt.Sprintf("%s-%s-%s", t, vocabUID, uuid.NewString()[:8])
}

func baseTask(t task.Type, v *vocab.Vocab, prompt string) *task.Task {
	return &task.Task{
		UID:             newUID(t, v.UID),
		Type:            t,
		Language:        v.Language,
		Prompt:          prompt,
		AssociatedVocab: []string{v.UID},
	}
}

// hasBasics is the shared requirement: non-empty content plus at least one
// translation.
func hasBasics(v *vocab.Vocab, translations []*content.Translation) bool {
	return v.Content != "" && len(translations) > 0
}

var tryToRemember = Generator{
	Type: task.TypeVocabTryToRemember,
	CanGenerate: func(v *vocab.Vocab, _ []*content.Translation, _ []*content.Note) bool {
		return v.Progress.Level == vocab.UnseenLevel && v.Content != "" && !v.Length.IsSentenceLike()
	},
	Generate: func(_ context.Context, _ *Catalog, v *vocab.Vocab, translations []*content.Translation) (*task.Task, error) {
		t := baseTask(task.TypeVocabTryToRemember, v, "Try to remember what this means")
		t.Question = v.Content
		t.Solution = joinedTranslations(translations)
		return t, nil
	},
}

var guessSentenceMeaning = Generator{
	Type: task.TypeGuessSentenceMeaning,
	CanGenerate: func(v *vocab.Vocab, translations []*content.Translation, _ []*content.Note) bool {
		return v.Progress.Level == vocab.UnseenLevel && v.Length.IsSentenceLike() && hasBasics(v, translations)
	},
	Generate: func(_ context.Context, _ *Catalog, v *vocab.Vocab, translations []*content.Translation) (*task.Task, error) {
		t := baseTask(task.TypeGuessSentenceMeaning, v, "Guess what this sentence means")
		t.Question = v.Content
		t.Solution = joinedTranslations(translations)
		return t, nil
	},
}

func choiceGenerator(tt task.Type, levels []int, targetToNative bool, optionCount int) Generator {
	return Generator{
		Type: tt,
		CanGenerate: func(v *vocab.Vocab, translations []*content.Translation, _ []*content.Note) bool {
			if v.Length.IsSentenceLike() || !hasBasics(v, translations) {
				return false
			}
			for _, l := range levels {
				if v.Progress.Level == l {
					return true
				}
			}
			return false
		},
		Generate: func(ctx context.Context, c *Catalog, v *vocab.Vocab, translations []*content.Translation) (*task.Task, error) {
			var prompt, question, correct string
			var pool []string
			var err error
			if targetToNative {
				prompt = "Choose the correct translation"
				question = v.Content
				correct = translations[c.rng.Intn(len(translations))].Content
				pool, err = c.wrongTranslationPool(ctx, v)
			} else {
				prompt = "Choose the correct vocab"
				question = translations[c.rng.Intn(len(translations))].Content
				correct = v.Content
				pool, err = c.wrongVocabPool(ctx, v)
			}
			if err != nil {
				return nil, err
			}

			distractors := c.distractors.Select(correct, pool, optionCount-1)
			if len(distractors) == 0 {
				// A one-option choice is no exercise at all.
				return nil, nil
			}

			t := baseTask(tt, v, prompt)
			t.Question = question
			t.Solution = correct
			t.Options = c.buildOptions(correct, distractors)
			return t, nil
		},
	}
}

func revealGenerator(tt task.Type, targetToNative bool) Generator {
	return Generator{
		Type: tt,
		CanGenerate: func(v *vocab.Vocab, translations []*content.Translation, _ []*content.Note) bool {
			if !hasBasics(v, translations) {
				return false
			}
			if v.Length.IsSentenceLike() {
				// Sentences fall back to whole-unit reveal only once clozes
				// run out of useful blanks.
				return v.Progress.Level > clozeMaxLevel
			}
			if targetToNative {
				return v.Progress.Level >= 3
			}
			return v.Progress.Level >= 4
		},
		Generate: func(_ context.Context, _ *Catalog, v *vocab.Vocab, translations []*content.Translation) (*task.Task, error) {
			t := baseTask(tt, v, "")
			if targetToNative {
				t.Prompt = "What does this mean?"
				t.Question = v.Content
				t.Solution = joinedTranslations(translations)
			} else {
				t.Prompt = "What vocab has this translation?"
				t.Question = joinedTranslations(translations)
				t.Solution = v.Content
			}
			return t, nil
		},
	}
}

var clozeChoice = Generator{
	Type: task.TypeClozeChoice,
	CanGenerate: func(v *vocab.Vocab, translations []*content.Translation, _ []*content.Note) bool {
		if !v.Length.IsSentenceLike() || !hasBasics(v, translations) {
			return false
		}
		if v.Progress.Level != 1 && v.Progress.Level != 2 {
			return false
		}
		return len(splitWords(v.Content)) >= 2
	},
	Generate: func(ctx context.Context, c *Catalog, v *vocab.Vocab, _ []*content.Translation) (*task.Task, error) {
		cloze := buildCloze(v.Content, v.Progress.Level)
		pool, err := c.wrongVocabPool(ctx, v)
		if err != nil {
			return nil, err
		}
		distractors := c.distractors.Select(cloze.Hidden, pool, 1)
		if len(distractors) == 0 {
			return nil, nil
		}

		t := baseTask(task.TypeClozeChoice, v, "Choose the missing word")
		t.Question = cloze.Blanked
		t.Solution = cloze.Hidden
		t.Options = c.buildOptions(cloze.Hidden, distractors)
		return t, nil
	},
}

const clozeMaxLevel = 6

var clozeReveal = Generator{
	Type: task.TypeClozeReveal,
	CanGenerate: func(v *vocab.Vocab, translations []*content.Translation, _ []*content.Note) bool {
		if !v.Length.IsSentenceLike() || !hasBasics(v, translations) {
			return false
		}
		if v.Progress.Level < 2 || v.Progress.Level > clozeMaxLevel {
			return false
		}
		return len(splitWords(v.Content)) >= 2
	},
	Generate: func(_ context.Context, _ *Catalog, v *vocab.Vocab, _ []*content.Translation) (*task.Task, error) {
		cloze := buildCloze(v.Content, v.Progress.Level)
		t := baseTask(task.TypeClozeReveal, v, "Think of the missing word, then reveal")
		t.Question = cloze.Blanked
		t.Solution = cloze.Hidden
		return t, nil
	},
}

var freeTranslate = Generator{
	Type: task.TypeFreeTranslate,
	CanGenerate: func(v *vocab.Vocab, translations []*content.Translation, _ []*content.Note) bool {
		return v.Length.IsSentenceLike() && hasBasics(v, translations) && v.Progress.Level >= 4
	},
	Generate: func(_ context.Context, _ *Catalog, v *vocab.Vocab, translations []*content.Translation) (*task.Task, error) {
		t := baseTask(task.TypeFreeTranslate, v, "Translate this sentence")
		t.Question = v.Content
		t.Solution = joinedTranslations(translations)
		return t, nil
	},
}

var addTranslation = Generator{
	Type: task.TypeAddTranslation,
	CanGenerate: func(v *vocab.Vocab, translations []*content.Translation, _ []*content.Note) bool {
		return v.Content != "" && len(translations) == 0 && v.Progress.Level != vocab.UnseenLevel
	},
	Generate: func(_ context.Context, _ *Catalog, v *vocab.Vocab, _ []*content.Translation) (*task.Task, error) {
		t := baseTask(task.TypeAddTranslation, v, "Look up what this means and add a translation")
		t.Question = v.Content
		return t, nil
	},
}

var addPronunciation = Generator{
	Type: task.TypeAddPronunciation,
	CanGenerate: func(v *vocab.Vocab, translations []*content.Translation, notes []*content.Note) bool {
		if v.Priority < 2 || !hasBasics(v, translations) {
			return false
		}
		for _, n := range notes {
			if n.NoteType == content.NotePronunciation {
				return false
			}
		}
		return true
	},
	Generate: func(_ context.Context, _ *Catalog, v *vocab.Vocab, _ []*content.Translation) (*task.Task, error) {
		t := baseTask(task.TypeAddPronunciation, v, "Research the pronunciation and add it")
		t.Question = v.Content
		return t, nil
	},
}

// generators is the full catalog in a stable order. Eligibility filters it
// per unit; selection among the survivors is uniformly random.
var generators = []Generator{
	tryToRemember,
	guessSentenceMeaning,
	choiceGenerator(task.TypeChoiceTwoTargetToNative, []int{0, 1}, true, 2),
	choiceGenerator(task.TypeChoiceTwoNativeToTarget, []int{1, 2}, false, 2),
	choiceGenerator(task.TypeChoiceFourTargetToNative, []int{1, 2}, true, 4),
	choiceGenerator(task.TypeChoiceFourNativeToTarget, []int{2, 3}, false, 4),
	revealGenerator(task.TypeVocabRevealTargetToNative, true),
	revealGenerator(task.TypeVocabRevealNativeToTarget, false),
	clozeChoice,
	clozeReveal,
	freeTranslate,
	addPronunciation,
}
