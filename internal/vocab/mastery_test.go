package vocab

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func masteryUnit(level int, stability float64, lastReview time.Time) *Vocab {
	v := &Vocab{UID: "v", Language: "es", Content: "casa", Length: LengthWord}
	v.Progress.Level = level
	v.Progress.Stability = stability
	v.Progress.LastReview = lastReview
	return v
}

func TestMasteryUnseenIsZero(t *testing.T) {
	v := &Vocab{UID: "v", Progress: NewProgress()}
	assert.Equal(t, 0, Mastery(v, time.Now()))
}

func TestMasteryLevelComponent(t *testing.T) {
	now := time.Now()

	// No stability yet: only the level half can contribute.
	cases := []struct {
		level int
		want  int
	}{
		{0, 0},
		{1, 13}, // 25% of the 50% level weight
		{2, 25},
		{3, 38},
		{4, 50},
		{7, 50}, // clamped at MaxLevel
	}
	for _, tc := range cases {
		v := masteryUnit(tc.level, 0, time.Time{})
		assert.Equal(t, tc.want, Mastery(v, now), "level %d", tc.level)
	}
}

func TestMasteryGrowsWithStability(t *testing.T) {
	now := time.Now()

	fragile := masteryUnit(2, 1, now)
	durable := masteryUnit(2, 400, now)

	assert.Greater(t, Mastery(durable, now), Mastery(fragile, now))
}

func TestMasteryFullScoreNeedsYearScaleStability(t *testing.T) {
	now := time.Now()

	v := masteryUnit(MaxLevel, 10000, now)
	got := Mastery(v, now)
	assert.GreaterOrEqual(t, got, 95)
	assert.LessOrEqual(t, got, 100)
}

func TestMasteryDecaysAsReviewAges(t *testing.T) {
	now := time.Now()

	fresh := masteryUnit(3, 20, now)
	stale := masteryUnit(3, 20, now.Add(-90*24*time.Hour))

	assert.Greater(t, Mastery(fresh, now), Mastery(stale, now))
}
