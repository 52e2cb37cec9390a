package tracker

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexio/internal/task"
)

type memCounterStore struct {
	counts map[string]int
}

func newMemCounterStore() *memCounterStore {
	return &memCounterStore{counts: map[string]int{}}
}

func (s *memCounterStore) Increment(_ context.Context, name, day string, n int) error {
	s.counts[name+"|"+day] += n
	return nil
}

func (s *memCounterStore) Get(_ context.Context, name, day string) (int, error) {
	return s.counts[name+"|"+day], nil
}

func TestWindowEvictsOldest(t *testing.T) {
	w := newWindow[int](3)
	for i := 1; i <= 5; i++ {
		w.push(i)
	}
	assert.Equal(t, 3, w.len())
	assert.Equal(t, 0, w.count(func(x int) bool { return x <= 2 }))
	assert.Equal(t, 3, w.count(func(x int) bool { return x >= 3 }))
}

func TestPickFromSortedPrefersFront(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	items := []string{"a", "b", "c"}

	hits := map[string]int{}
	for i := 0; i < 2000; i++ {
		got, ok := pickFromSorted(rng, items)
		require.True(t, ok)
		hits[got]++
	}

	assert.Greater(t, hits["a"], hits["b"])
	assert.Greater(t, hits["b"], hits["c"])
	assert.Greater(t, hits["c"], 0)
}

func TestPickFromSortedEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, ok := pickFromSorted[string](rng, nil)
	assert.False(t, ok)
}

func TestSizeTrackerPrefersUnderrepresented(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	tr := NewSizeTracker(rng)

	// All small so far, so medium and big are furthest below target.
	for i := 0; i < 30; i++ {
		tr.Track(task.TypeVocabRevealTargetToNative)
	}

	dist := tr.Distribution()
	assert.InDelta(t, 1.0, dist[task.SizeSmall], 1e-9)

	small := 0
	for i := 0; i < 500; i++ {
		if tr.PreferredSize() == task.SizeSmall {
			small++
		}
	}
	assert.Less(t, small, 250)
}

func TestSizeTrackerEmptyWindow(t *testing.T) {
	tr := NewSizeTracker(rand.New(rand.NewSource(1)))
	dist := tr.Distribution()
	assert.Zero(t, dist[task.SizeSmall])
	assert.Zero(t, dist[task.SizeMedium])
	assert.Zero(t, dist[task.SizeBig])
}

func TestTypeTrackerRareFirst(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	tr := NewTypeTracker(rng)

	for i := 0; i < 10; i++ {
		tr.Track(task.TypeClozeChoice)
	}
	for i := 0; i < 3; i++ {
		tr.Track(task.TypeFreeTranslate)
	}

	got := tr.RareFirst([]task.Type{
		task.TypeClozeChoice,
		task.TypeFreeTranslate,
		task.TypeVocabTryToRemember,
	})
	assert.Equal(t, task.TypeVocabTryToRemember, got[0])
	assert.Equal(t, task.TypeFreeTranslate, got[1])
	assert.Equal(t, task.TypeClozeChoice, got[2])
}

func TestNewVocabTrackerWindowCap(t *testing.T) {
	ctx := context.Background()
	tr := NewNewVocabTracker(nil)

	for i := 0; i < 3; i++ {
		ok, err := tr.CanGenerateNewVocabTask(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		require.NoError(t, tr.Track(ctx, task.TypeVocabTryToRemember))
	}

	ok, err := tr.CanGenerateNewVocabTask(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// Push the new-vocab tasks out of the window with other work.
	for i := 0; i < 30; i++ {
		require.NoError(t, tr.Track(ctx, task.TypeClozeReveal))
	}
	ok, err = tr.CanGenerateNewVocabTask(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewVocabTrackerDailyCapPersists(t *testing.T) {
	ctx := context.Background()
	store := newMemCounterStore()

	tr := NewNewVocabTracker(store)
	for i := 0; i < 20; i++ {
		require.NoError(t, tr.Track(ctx, task.TypeVocabTryToRemember))
		// Keep the window cap out of the way.
		for j := 0; j < 30; j++ {
			require.NoError(t, tr.Track(ctx, task.TypeClozeReveal))
		}
	}

	ok, err := tr.CanGenerateNewVocabTask(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "daily cap reached")

	// A fresh tracker over the same store still sees the cap.
	fresh := NewNewVocabTracker(store)
	ok, err = fresh.CanGenerateNewVocabTask(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "daily cap survives restarts")
}

func TestPronunciationTrackerCap(t *testing.T) {
	tr := NewPronunciationTracker()
	assert.True(t, tr.CanGeneratePronunciationTask())

	tr.Track(task.TypeAddPronunciation)
	assert.True(t, tr.CanGeneratePronunciationTask())

	tr.Track(task.TypeAddPronunciation)
	assert.False(t, tr.CanGeneratePronunciationTask())

	for i := 0; i < 50; i++ {
		tr.Track(task.TypeClozeChoice)
	}
	assert.True(t, tr.CanGeneratePronunciationTask())
}

func TestSetTrackerDedupes(t *testing.T) {
	tr := NewSetTracker()
	tr.RecordUsedSets([][]string{
		{"travel", "food"},
		{"food", ""},
		{"basics"},
	})
	assert.Equal(t, []string{"basics", "food", "travel"}, tr.LastUsedSets())

	tr.Clear()
	assert.Empty(t, tr.LastUsedSets())
}

func TestTrackersAllowedFiltersHardCaps(t *testing.T) {
	ctx := context.Background()
	tr := NewTrackers(rand.New(rand.NewSource(2)), nil)

	for i := 0; i < 3; i++ {
		require.NoError(t, tr.Track(ctx, task.TypeVocabTryToRemember))
	}
	require.NoError(t, tr.Track(ctx, task.TypeAddPronunciation))
	require.NoError(t, tr.Track(ctx, task.TypeAddPronunciation))

	got, err := tr.Allowed(ctx, []task.Type{
		task.TypeVocabTryToRemember,
		task.TypeAddPronunciation,
		task.TypeClozeChoice,
	})
	require.NoError(t, err)
	assert.Equal(t, []task.Type{task.TypeClozeChoice}, got)
	assert.Equal(t, 5, tr.Served())
}
