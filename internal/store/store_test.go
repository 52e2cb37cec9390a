package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexio/internal/content"
	"github.com/abhisek/lexio/internal/tracker"
	"github.com/abhisek/lexio/internal/vocab"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestVocabRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.VocabRepo()
	ctx := context.Background()

	v := &vocab.Vocab{
		UID:          "v1",
		Language:     "es",
		Content:      "casa",
		Length:       vocab.LengthWord,
		Priority:     2,
		Translations: []string{"t1"},
		Notes:        []string{"n1"},
		Progress:     vocab.NewProgress(),
	}
	require.NoError(t, repo.Save(ctx, v))

	got, err := repo.GetByUID(ctx, "v1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "casa", got.Content)
	assert.Equal(t, vocab.LengthWord, got.Length)
	assert.Equal(t, []string{"t1"}, got.Translations)
	assert.Equal(t, vocab.UnseenLevel, got.Progress.Level)

	byContent, err := repo.GetByContent(ctx, "es", "casa")
	require.NoError(t, err)
	require.NotNil(t, byContent)
	assert.Equal(t, "v1", byContent.UID)
}

func TestVocabNotFoundIsNil(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	got, err := s.VocabRepo().GetByUID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestVocabDueQueries(t *testing.T) {
	s := openTestStore(t)
	repo := s.VocabRepo()
	ctx := context.Background()
	now := time.Now()

	due := &vocab.Vocab{UID: "due", Language: "es", Content: "perro", Length: vocab.LengthWord}
	due.Progress.Level = 2
	due.Progress.Due = now.Add(-time.Hour)

	notDue := &vocab.Vocab{UID: "later", Language: "es", Content: "gato", Length: vocab.LengthWord}
	notDue.Progress.Level = 2
	notDue.Progress.Due = now.Add(48 * time.Hour)

	unseen := &vocab.Vocab{UID: "new", Language: "es", Content: "mesa", Length: vocab.LengthWord}
	unseen.Progress = vocab.NewProgress()

	excluded := &vocab.Vocab{UID: "skip", Language: "es", Content: "silla", Length: vocab.LengthWord, DoNotPractice: true}
	excluded.Progress.Level = 1
	excluded.Progress.Due = now.Add(-time.Hour)

	for _, v := range []*vocab.Vocab{due, notDue, unseen, excluded} {
		require.NoError(t, repo.Save(ctx, v))
	}

	got, err := repo.DueInLanguages(ctx, []string{"es"}, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "due", got[0].UID)

	blocked, err := repo.DueInLanguages(ctx, []string{"es"}, []string{"due"})
	require.NoError(t, err)
	assert.Empty(t, blocked)

	fresh, err := repo.RandomUnseenInLanguages(ctx, []string{"es"}, 5, nil)
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, "new", fresh[0].UID)

	lowest, err := repo.LowestDueDate(ctx, []string{"es"})
	require.NoError(t, err)
	assert.Equal(t, due.Progress.Due.Unix(), lowest.Unix())
}

func TestVocabUpsertOverwrites(t *testing.T) {
	s := openTestStore(t)
	repo := s.VocabRepo()
	ctx := context.Background()

	v := &vocab.Vocab{UID: "v1", Language: "es", Content: "casa", Length: vocab.LengthWord}
	v.Progress = vocab.NewProgress()
	require.NoError(t, repo.Save(ctx, v))

	v.Progress.Level = 3
	v.Progress.Streak = 2
	v.Progress.Due = time.Now().Add(time.Hour)
	require.NoError(t, repo.Save(ctx, v))

	got, err := repo.GetByUID(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Progress.Level)
	assert.Equal(t, 2, got.Progress.Streak)
}

func TestGoalRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.GoalRepo()
	ctx := context.Background()

	g := &content.Goal{
		UID:      "g1",
		Language: "es",
		Title:    "Order food",
		Vocab:    []string{"v1", "v2"},
	}
	require.NoError(t, repo.Save(ctx, g))

	incomplete, err := repo.Incomplete(ctx)
	require.NoError(t, err)
	require.Len(t, incomplete, 1)
	assert.Equal(t, []string{"v1", "v2"}, incomplete[0].Vocab)

	g.IsComplete = true
	require.NoError(t, repo.Save(ctx, g))

	incomplete, err = repo.Incomplete(ctx)
	require.NoError(t, err)
	assert.Empty(t, incomplete)
}

func TestResourceRandomDue(t *testing.T) {
	s := openTestStore(t)
	repo := s.ResourceRepo()
	ctx := context.Background()
	now := time.Now()

	ready := &content.Resource{
		UID:                 "r1",
		Language:            "es",
		Title:               "News article",
		NextShownEarliestAt: now.Add(-time.Minute),
	}
	cooling := &content.Resource{
		UID:                 "r2",
		Language:            "es",
		Title:               "Podcast",
		NextShownEarliestAt: now.Add(time.Hour),
	}
	require.NoError(t, repo.Save(ctx, ready))
	require.NoError(t, repo.Save(ctx, cooling))

	got, err := repo.RandomDue(ctx, []string{"es"})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "r1", got.UID)

	none, err := repo.RandomDue(ctx, []string{"fr"})
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestLanguageActiveFilter(t *testing.T) {
	s := openTestStore(t)
	repo := s.LanguageRepo()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &content.Language{Code: "es", Name: "Spanish", IsActive: true}))
	require.NoError(t, repo.Save(ctx, &content.Language{Code: "fr", Name: "French", IsActive: false}))

	active, err := repo.ActiveTargetLanguages(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "es", active[0].Code)
}

func TestStoredTaskAssociationLookup(t *testing.T) {
	s := openTestStore(t)
	repo := s.TaskRepo()
	ctx := context.Background()

	st := &content.StoredTask{
		UID:             "st1",
		TaskType:        "practice",
		Language:        "es",
		IsActive:        true,
		AssociatedVocab: []string{"v1", "v2"},
	}
	require.NoError(t, repo.Save(ctx, st))

	got, err := repo.ByVocabID(ctx, "v2")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "st1", got[0].UID)

	none, err := repo.ByVocabID(ctx, "v3")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDailyCounterIncrement(t *testing.T) {
	s := openTestStore(t)
	counter := s.CounterRepo()
	ctx := context.Background()

	count, err := counter.Get(ctx, tracker.DailyCounterName, "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, counter.Increment(ctx, tracker.DailyCounterName, "2026-08-30", 1))
	require.NoError(t, counter.Increment(ctx, tracker.DailyCounterName, "2026-08-30", 2))

	count, err = counter.Get(ctx, tracker.DailyCounterName, "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	other, err := counter.Get(ctx, tracker.DailyCounterName, "2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, 0, other)
}
