package lesson

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexio/internal/content"
	"github.com/abhisek/lexio/internal/task"
	"github.com/abhisek/lexio/internal/taskgen"
	"github.com/abhisek/lexio/internal/vocab"
)

type fakeVocabRepo struct {
	units map[string]*vocab.Vocab
}

func newFakeVocabRepo() *fakeVocabRepo {
	return &fakeVocabRepo{units: map[string]*vocab.Vocab{}}
}

func (r *fakeVocabRepo) add(v *vocab.Vocab) { r.units[v.UID] = v }

func (r *fakeVocabRepo) GetByUID(_ context.Context, uid string) (*vocab.Vocab, error) {
	return r.units[uid], nil
}

func (r *fakeVocabRepo) GetByUIDs(_ context.Context, uids []string) ([]*vocab.Vocab, error) {
	var out []*vocab.Vocab
	for _, id := range uids {
		if v, ok := r.units[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVocabRepo) GetByContent(_ context.Context, language, text string) (*vocab.Vocab, error) {
	for _, v := range r.units {
		if v.Language == language && v.Content == text {
			return v, nil
		}
	}
	return nil, nil
}

func (r *fakeVocabRepo) DueInLanguages(_ context.Context, languages, block []string) ([]*vocab.Vocab, error) {
	now := time.Now()
	var out []*vocab.Vocab
	for _, v := range r.units {
		if v.DoNotPractice || !slices.Contains(languages, v.Language) || slices.Contains(block, v.UID) {
			continue
		}
		if vocab.IsDue(v, now) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVocabRepo) RandomUnseenInLanguages(_ context.Context, languages []string, n int, block []string) ([]*vocab.Vocab, error) {
	var out []*vocab.Vocab
	for _, v := range r.units {
		if len(out) >= n {
			break
		}
		if v.DoNotPractice || !slices.Contains(languages, v.Language) || slices.Contains(block, v.UID) {
			continue
		}
		if vocab.IsUnseen(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVocabRepo) UnseenByUIDs(ctx context.Context, uids []string) ([]*vocab.Vocab, error) {
	all, _ := r.GetByUIDs(ctx, uids)
	var out []*vocab.Vocab
	for _, v := range all {
		if vocab.IsUnseen(v) && !v.DoNotPractice {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVocabRepo) DueByUIDs(ctx context.Context, uids []string) ([]*vocab.Vocab, error) {
	all, _ := r.GetByUIDs(ctx, uids)
	now := time.Now()
	var out []*vocab.Vocab
	for _, v := range all {
		if vocab.IsDue(v, now) && !v.DoNotPractice {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVocabRepo) List(_ context.Context, language string, limit, offset int) ([]*vocab.Vocab, error) {
	return nil, nil
}

func (r *fakeVocabRepo) LowestDueDate(_ context.Context, languages []string) (time.Time, error) {
	return time.Time{}, nil
}

func (r *fakeVocabRepo) Save(_ context.Context, v *vocab.Vocab) error { r.add(v); return nil }
func (r *fakeVocabRepo) Delete(_ context.Context, uid string) error   { delete(r.units, uid); return nil }

type fakeTranslationRepo struct {
	byUID map[string]*content.Translation
}

func newFakeTranslationRepo() *fakeTranslationRepo {
	return &fakeTranslationRepo{byUID: map[string]*content.Translation{}}
}

func (r *fakeTranslationRepo) GetByUIDs(_ context.Context, uids []string) ([]*content.Translation, error) {
	var out []*content.Translation
	for _, id := range uids {
		if t, ok := r.byUID[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTranslationRepo) AllInLanguage(_ context.Context, language string) ([]*content.Translation, error) {
	var out []*content.Translation
	for _, t := range r.byUID {
		if t.Language == language {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTranslationRepo) Save(_ context.Context, t *content.Translation) error {
	r.byUID[t.UID] = t
	return nil
}

type fakeNoteRepo struct{}

func (fakeNoteRepo) GetByUIDs(context.Context, []string) ([]*content.Note, error) { return nil, nil }
func (fakeNoteRepo) Save(context.Context, *content.Note) error                    { return nil }

type fakeGoalRepo struct{ goals []*content.Goal }

func (r *fakeGoalRepo) GetByUID(_ context.Context, uid string) (*content.Goal, error) {
	for _, g := range r.goals {
		if g.UID == uid {
			return g, nil
		}
	}
	return nil, nil
}
func (r *fakeGoalRepo) Incomplete(context.Context) ([]*content.Goal, error) {
	var out []*content.Goal
	for _, g := range r.goals {
		if !g.IsComplete {
			out = append(out, g)
		}
	}
	return out, nil
}
func (r *fakeGoalRepo) Save(_ context.Context, g *content.Goal) error {
	r.goals = append(r.goals, g)
	return nil
}

type fakeResourceRepo struct{ due *content.Resource }

func (r *fakeResourceRepo) GetByUID(context.Context, string) (*content.Resource, error) {
	return r.due, nil
}
func (r *fakeResourceRepo) RandomDue(context.Context, []string) (*content.Resource, error) {
	return r.due, nil
}
func (r *fakeResourceRepo) Save(context.Context, *content.Resource) error { return nil }

type fakeImmersionRepo struct{ all []*content.ImmersionContent }

func (r *fakeImmersionRepo) All(context.Context) ([]*content.ImmersionContent, error) {
	return r.all, nil
}
func (r *fakeImmersionRepo) GetByUID(_ context.Context, uid string) (*content.ImmersionContent, error) {
	for _, c := range r.all {
		if c.UID == uid {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeImmersionRepo) Save(context.Context, *content.ImmersionContent) error { return nil }

type fakeLanguageRepo struct{ langs []*content.Language }

func (r *fakeLanguageRepo) ActiveTargetLanguages(context.Context) ([]*content.Language, error) {
	return r.langs, nil
}
func (r *fakeLanguageRepo) Save(context.Context, *content.Language) error { return nil }

type fixture struct {
	vocabRepo    *fakeVocabRepo
	translations *fakeTranslationRepo
	goals        *fakeGoalRepo
	resources    *fakeResourceRepo
	immersion    *fakeImmersionRepo
	languages    *fakeLanguageRepo
	gen          *Generator
}

func newFixture(seed int64) *fixture {
	f := &fixture{
		vocabRepo:    newFakeVocabRepo(),
		translations: newFakeTranslationRepo(),
		goals:        &fakeGoalRepo{},
		resources:    &fakeResourceRepo{},
		immersion:    &fakeImmersionRepo{},
		languages:    &fakeLanguageRepo{langs: []*content.Language{{Code: "es", Name: "Spanish", IsActive: true}}},
	}
	rng := rand.New(rand.NewSource(seed))
	catalog := taskgen.NewCatalog(f.vocabRepo, f.translations, fakeNoteRepo{}, rng)
	f.gen = NewGenerator(f.vocabRepo, f.goals, f.resources, f.immersion, f.languages, catalog, rng)
	return f
}

// seedDueWord registers a graduated, due word with one translation.
func (f *fixture) seedDueWord(i int) *vocab.Vocab {
	uid := fmt.Sprintf("v-%03d", i)
	trUID := fmt.Sprintf("t-%03d", i)
	f.translations.byUID[trUID] = &content.Translation{UID: trUID, Language: "en", Content: fmt.Sprintf("meaning %d", i)}
	v := &vocab.Vocab{
		UID:          uid,
		Language:     "es",
		Content:      fmt.Sprintf("palabra%d", i),
		Length:       vocab.LengthWord,
		Translations: []string{trUID},
		Progress:     vocab.Progress{Level: 3},
	}
	f.vocabRepo.add(v)
	return v
}

func (f *fixture) seedUnseenWord(i int) *vocab.Vocab {
	uid := fmt.Sprintf("u-%03d", i)
	v := &vocab.Vocab{
		UID:      uid,
		Language: "es",
		Content:  fmt.Sprintf("nueva%d", i),
		Length:   vocab.LengthWord,
		Progress: vocab.NewProgress(),
	}
	f.vocabRepo.add(v)
	return v
}

func TestLessonCursor(t *testing.T) {
	l := New([]*task.Task{
		{UID: "a", Type: task.TypeClozeReveal},
		{UID: "b", Type: task.TypeClozeReveal},
	})

	require.False(t, l.IsDone())
	assert.Equal(t, 2, l.Remaining())
	assert.Equal(t, "a", l.Current().UID)

	l.Advance()
	assert.Equal(t, "b", l.Current().UID)
	assert.Equal(t, 1, l.Remaining())

	l.Advance()
	assert.True(t, l.IsDone())
	assert.Nil(t, l.Current())
	assert.Zero(t, l.Remaining())

	// Advancing a done lesson is a no-op.
	l.Advance()
	assert.True(t, l.IsDone())
}

func TestEmptyLessonIsValidAndDone(t *testing.T) {
	l := New(nil)
	assert.True(t, l.IsEmpty())
	assert.True(t, l.IsDone())
	assert.Nil(t, l.Current())
}

func TestGenerateLessonWithNothingToPractice(t *testing.T) {
	f := newFixture(1)

	l, err := f.gen.GenerateLesson(context.Background())
	require.NoError(t, err)
	assert.True(t, l.IsEmpty())
}

func TestGenerateLessonWithNoActiveLanguages(t *testing.T) {
	f := newFixture(1)
	f.languages.langs = nil
	f.seedDueWord(1)

	l, err := f.gen.GenerateLesson(context.Background())
	require.NoError(t, err)
	assert.True(t, l.IsEmpty())
}

func TestGenerateLessonBoundsAndUniqueSubjects(t *testing.T) {
	f := newFixture(42)
	for i := 0; i < 30; i++ {
		f.seedDueWord(i)
	}

	l, err := f.gen.GenerateLesson(context.Background())
	require.NoError(t, err)
	require.False(t, l.IsEmpty())

	assert.GreaterOrEqual(t, l.Len(), 5)
	assert.LessOrEqual(t, l.Len(), 20)

	subjects := map[string]bool{}
	for _, tk := range l.Tasks() {
		require.NotEmpty(t, tk.AssociatedVocab)
		uid := tk.AssociatedVocab[0]
		assert.False(t, subjects[uid], "unit %s is the subject of two tasks", uid)
		subjects[uid] = true
	}
}

func TestNewVocabStrategyIntroducesThreeToFive(t *testing.T) {
	f := newFixture(7)
	for i := 0; i < 10; i++ {
		f.seedUnseenWord(i)
	}

	s := &newVocabStrategy{f.gen}
	for i := 0; i < 20; i++ {
		tasks, err := s.CoreTasks(context.Background(), []string{"es"}, 20)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(tasks), 3)
		assert.LessOrEqual(t, len(tasks), 5)
		for _, tk := range tasks {
			assert.Equal(t, task.TypeVocabTryToRemember, tk.Type)
		}
	}
}

func TestGoalStrategyCapsNewVocab(t *testing.T) {
	f := newFixture(11)
	var goalVocab []string
	for i := 0; i < 8; i++ {
		v := f.seedUnseenWord(i)
		goalVocab = append(goalVocab, v.UID)
	}
	f.goals.goals = []*content.Goal{{
		UID:      "g-1",
		Language: "es",
		Title:    "Order food",
		Vocab:    goalVocab,
	}}

	s := &goalBasedStrategy{f.gen}
	tasks, err := s.CoreTasks(context.Background(), []string{"es"}, 20)
	require.NoError(t, err)
	require.NotEmpty(t, tasks)

	goalTasks, newVocabTasks := 0, 0
	for _, tk := range tasks {
		if len(tk.AssociatedGoals) > 0 {
			goalTasks++
		}
		if tk.Type == task.TypeVocabTryToRemember {
			newVocabTasks++
		}
	}
	assert.Equal(t, 1, goalTasks)
	assert.LessOrEqual(t, newVocabTasks, 3)
}

func TestResourceStrategyLeadsWithExtraction(t *testing.T) {
	f := newFixture(13)
	v := f.seedDueWord(1)
	f.resources.due = &content.Resource{
		UID:      "r-1",
		Language: "es",
		Title:    "News article",
		Vocab:    []string{v.UID},
	}

	s := &resourceExtractionStrategy{f.gen}
	tasks, err := s.CoreTasks(context.Background(), []string{"es"}, 20)
	require.NoError(t, err)
	require.NotEmpty(t, tasks)

	assert.Equal(t, task.TypeExtractFromResource, tasks[0].Type)
	assert.Equal(t, []string{"r-1"}, tasks[0].AssociatedResources)
}

func TestResourceStrategySkipsFinishedExtraction(t *testing.T) {
	f := newFixture(13)
	v := f.seedDueWord(1)
	f.resources.due = &content.Resource{
		UID:                "r-1",
		Language:           "es",
		Title:              "News article",
		Vocab:              []string{v.UID},
		FinishedExtracting: true,
	}

	s := &resourceExtractionStrategy{f.gen}
	tasks, err := s.CoreTasks(context.Background(), []string{"es"}, 20)
	require.NoError(t, err)
	for _, tk := range tasks {
		assert.NotEqual(t, task.TypeExtractFromResource, tk.Type)
	}
}

func TestLowMasteryImmersionSelectsByBand(t *testing.T) {
	f := newFixture(17)

	// Low-mastery content: all needed vocab unseen.
	var lowIDs []string
	for i := 0; i < 5; i++ {
		v := f.seedUnseenWord(i)
		lowIDs = append(lowIDs, v.UID)
	}
	// High-mastery content: graduated, recently reviewed units.
	var highIDs []string
	for i := 100; i < 105; i++ {
		v := f.seedDueWord(i)
		v.Progress.Level = 4
		v.Progress.Stability = 400
		highIDs = append(highIDs, v.UID)
	}
	f.immersion.all = []*content.ImmersionContent{
		{UID: "im-low", Language: "es", Title: "Cartoon", NeededVocab: lowIDs},
		{UID: "im-high", Language: "es", Title: "Podcast", NeededVocab: highIDs},
	}

	s := &lowMasteryImmersionStrategy{f.gen}
	tasks, err := s.CoreTasks(context.Background(), []string{"es"}, 20)
	require.NoError(t, err)
	require.NotEmpty(t, tasks)

	// Every core task must come from the low-mastery content's vocab.
	for _, tk := range tasks {
		require.NotEmpty(t, tk.AssociatedVocab)
		assert.Contains(t, lowIDs, tk.AssociatedVocab[0])
	}
	assert.LessOrEqual(t, len(tasks), 3)
}
