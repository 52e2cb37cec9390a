package taskgen

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexio/internal/content"
	"github.com/abhisek/lexio/internal/task"
	"github.com/abhisek/lexio/internal/vocab"
)

type fakeVocabRepo struct {
	vocab.Repo
	due []*vocab.Vocab
}

func (r *fakeVocabRepo) DueInLanguages(_ context.Context, _ []string, block []string) ([]*vocab.Vocab, error) {
	blocked := map[string]bool{}
	for _, uid := range block {
		blocked[uid] = true
	}
	var out []*vocab.Vocab
	for _, v := range r.due {
		if !blocked[v.UID] {
			out = append(out, v)
		}
	}
	return out, nil
}

type fakeTranslationRepo struct {
	content.TranslationRepo
	byUID map[string]*content.Translation
}

func (r *fakeTranslationRepo) GetByUIDs(_ context.Context, uids []string) ([]*content.Translation, error) {
	var out []*content.Translation
	for _, uid := range uids {
		if t, ok := r.byUID[uid]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeNoteRepo struct {
	content.NoteRepo
	byUID map[string]*content.Note
}

func (r *fakeNoteRepo) GetByUIDs(_ context.Context, uids []string) ([]*content.Note, error) {
	var out []*content.Note
	for _, uid := range uids {
		if n, ok := r.byUID[uid]; ok {
			out = append(out, n)
		}
	}
	return out, nil
}

func newTestCatalog(seed int64, due ...*vocab.Vocab) (*Catalog, *fakeTranslationRepo, *fakeNoteRepo) {
	translations := &fakeTranslationRepo{byUID: map[string]*content.Translation{}}
	notes := &fakeNoteRepo{byUID: map[string]*content.Note{}}
	c := NewCatalog(&fakeVocabRepo{due: due}, translations, notes, rand.New(rand.NewSource(seed)))
	return c, translations, notes
}

func unit(uid string, level int, length vocab.Length, translationIDs ...string) *vocab.Vocab {
	v := &vocab.Vocab{
		UID:          uid,
		Language:     "es",
		Content:      uid,
		Length:       length,
		Priority:     1,
		Translations: translationIDs,
	}
	v.Progress.Level = level
	return v
}

func translation(uid, text string) *content.Translation {
	return &content.Translation{UID: uid, Language: "en", Content: text}
}

func eligibleTypes(c *Catalog, v *vocab.Vocab, translations []*content.Translation, notes []*content.Note) []task.Type {
	var types []task.Type
	for _, g := range c.Eligible(v, translations, notes) {
		types = append(types, g.Type)
	}
	return types
}

func TestEligibilityThresholds(t *testing.T) {
	c, _, _ := newTestCatalog(1)
	tr := []*content.Translation{translation("t1", "house")}

	cases := []struct {
		name   string
		unit   *vocab.Vocab
		trs    []*content.Translation
		expect []task.Type
	}{
		{
			name:   "unseen word without translations",
			unit:   unit("casa", vocab.UnseenLevel, vocab.LengthWord),
			expect: []task.Type{task.TypeVocabTryToRemember},
		},
		{
			name:   "unseen sentence with translations",
			unit:   unit("la casa es azul", vocab.UnseenLevel, vocab.LengthSentence, "t1"),
			trs:    tr,
			expect: []task.Type{task.TypeGuessSentenceMeaning},
		},
		{
			name:   "level 0 word",
			unit:   unit("casa", 0, vocab.LengthWord, "t1"),
			trs:    tr,
			expect: []task.Type{task.TypeChoiceTwoTargetToNative},
		},
		{
			name: "level 1 word",
			unit: unit("casa", 1, vocab.LengthWord, "t1"),
			trs:  tr,
			expect: []task.Type{
				task.TypeChoiceTwoTargetToNative,
				task.TypeChoiceTwoNativeToTarget,
				task.TypeChoiceFourTargetToNative,
			},
		},
		{
			name: "level 2 word",
			unit: unit("casa", 2, vocab.LengthWord, "t1"),
			trs:  tr,
			expect: []task.Type{
				task.TypeChoiceTwoNativeToTarget,
				task.TypeChoiceFourTargetToNative,
				task.TypeChoiceFourNativeToTarget,
			},
		},
		{
			name: "level 3 word",
			unit: unit("casa", 3, vocab.LengthWord, "t1"),
			trs:  tr,
			expect: []task.Type{
				task.TypeChoiceFourNativeToTarget,
				task.TypeVocabRevealTargetToNative,
			},
		},
		{
			name: "level 4 word",
			unit: unit("casa", 4, vocab.LengthWord, "t1"),
			trs:  tr,
			expect: []task.Type{
				task.TypeVocabRevealTargetToNative,
				task.TypeVocabRevealNativeToTarget,
			},
		},
		{
			name:   "level 1 sentence gets cloze choice",
			unit:   unit("la casa es azul", 1, vocab.LengthSentence, "t1"),
			trs:    tr,
			expect: []task.Type{task.TypeClozeChoice},
		},
		{
			name: "level 2 sentence gets both clozes",
			unit: unit("la casa es azul", 2, vocab.LengthSentence, "t1"),
			trs:  tr,
			expect: []task.Type{
				task.TypeClozeChoice,
				task.TypeClozeReveal,
			},
		},
		{
			name: "level 4 sentence adds free translation",
			unit: unit("la casa es azul", 4, vocab.LengthSentence, "t1"),
			trs:  tr,
			expect: []task.Type{
				task.TypeClozeReveal,
				task.TypeFreeTranslate,
			},
		},
		{
			name: "sentence above cloze ceiling falls back to reveal",
			unit: unit("la casa es azul", clozeMaxLevel+1, vocab.LengthSentence, "t1"),
			trs:  tr,
			expect: []task.Type{
				task.TypeVocabRevealTargetToNative,
				task.TypeVocabRevealNativeToTarget,
				task.TypeFreeTranslate,
			},
		},
		{
			name:   "seen word with no translations only completes",
			unit:   unit("casa", 2, vocab.LengthWord),
			expect: []task.Type{task.TypeAddTranslation},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ElementsMatch(t, tc.expect, eligibleTypes(c, tc.unit, tc.trs, nil))
		})
	}
}

func TestEligibilityPronunciationRequiresPriorityAndNoNote(t *testing.T) {
	c, _, _ := newTestCatalog(1)
	tr := []*content.Translation{translation("t1", "house")}

	v := unit("casa", 2, vocab.LengthWord, "t1")
	v.Priority = 2
	assert.Contains(t, eligibleTypes(c, v, tr, nil), task.TypeAddPronunciation)

	v.Priority = 1
	assert.NotContains(t, eligibleTypes(c, v, tr, nil), task.TypeAddPronunciation)

	v.Priority = 2
	notes := []*content.Note{{UID: "n1", NoteType: content.NotePronunciation, Content: "KA-sa"}}
	assert.NotContains(t, eligibleTypes(c, v, tr, notes), task.TypeAddPronunciation)
}

func TestForVocabSkipsDoNotPractice(t *testing.T) {
	c, _, _ := newTestCatalog(1)

	v := unit("casa", vocab.UnseenLevel, vocab.LengthWord)
	v.DoNotPractice = true

	got, err := c.ForVocab(context.Background(), v)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestForVocabGeneratesChoiceWithDistractors(t *testing.T) {
	other := unit("perro", 1, vocab.LengthWord, "t2")
	other2 := unit("mesa", 1, vocab.LengthWord, "t3")
	c, translations, _ := newTestCatalog(3, other, other2)
	translations.byUID["t1"] = translation("t1", "house")
	translations.byUID["t2"] = translation("t2", "dog")
	translations.byUID["t3"] = translation("t3", "table")

	v := unit("casa", 0, vocab.LengthWord, "t1")

	got, err := c.ForVocab(context.Background(), v)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, task.TypeChoiceTwoTargetToNative, got.Type)
	assert.Equal(t, "casa", got.Question)
	assert.Equal(t, "house", got.Solution)
	assert.Len(t, got.Options, 2)
	assert.Contains(t, got.Options, "house")
	assert.Equal(t, []string{"casa"}, got.AssociatedVocab)
}

func TestForVocabChoiceWithoutPoolYieldsNothing(t *testing.T) {
	c, translations, _ := newTestCatalog(1)
	translations.byUID["t1"] = translation("t1", "house")

	// Level 0 word: only the two-option choice is eligible, and with no
	// other due units there is nothing to distract with.
	v := unit("casa", 0, vocab.LengthWord, "t1")

	got, err := c.ForVocab(context.Background(), v)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestForVocabOfTypeHonorsEligibility(t *testing.T) {
	c, translations, _ := newTestCatalog(1)
	translations.byUID["t1"] = translation("t1", "house")

	v := unit("la casa es azul", 3, vocab.LengthSentence, "t1")

	got, err := c.ForVocabOfType(context.Background(), v, task.TypeClozeReveal)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, task.TypeClozeReveal, got.Type)
	assert.Contains(t, got.Question, blankMarker)
	assert.NotEmpty(t, got.Solution)

	// A word is never cloze material.
	word := unit("casa", 3, vocab.LengthWord, "t1")
	got, err = c.ForVocabOfType(context.Background(), word, task.TypeClozeReveal)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBuildClozeCyclesBlankWithLevel(t *testing.T) {
	text := "la casa es azul"

	c2 := buildCloze(text, 2)
	assert.Equal(t, "es", c2.Hidden)
	assert.Equal(t, "la casa ____ azul", c2.Blanked)

	// Level wraps around the word count.
	c6 := buildCloze(text, 6)
	assert.Equal(t, "es", c6.Hidden)

	single := buildCloze("casa", 3)
	assert.Equal(t, "casa", single.Hidden)
	assert.Equal(t, blankMarker, single.Blanked)
}
