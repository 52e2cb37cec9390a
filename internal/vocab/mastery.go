package vocab

import (
	"math"
	"time"
)

// Mastery combines the local level with projected FSRS retention into a
// single 0-100 score. Weighting: 50% level progression, and one sixth each
// for retrievability one day, one week, and one year out. The immersion
// lesson strategies band content by the average of this score.
func Mastery(v *Vocab, now time.Time) int {
	day := retrievabilityAt(v, now, 24*time.Hour)
	week := retrievabilityAt(v, now, 7*24*time.Hour)
	year := retrievabilityAt(v, now, 365*24*time.Hour)

	var level float64
	switch {
	case v.Progress.Level <= 0:
		level = 0
	case v.Progress.Level >= MaxLevel:
		level = 1
	default:
		level = float64(v.Progress.Level) / float64(MaxLevel)
	}

	score := level*0.5 + (day+week+year)/6
	return int(math.Round(score * 100))
}

// retrievabilityAt estimates recall probability at now+horizon using the
// FSRS power forgetting curve over the card's stability.
func retrievabilityAt(v *Vocab, now time.Time, horizon time.Duration) float64 {
	p := v.Progress
	if p.Level == UnseenLevel || p.Stability <= 0 || p.LastReview.IsZero() {
		return 0
	}

	elapsed := now.Add(horizon).Sub(p.LastReview).Hours() / 24
	if elapsed < 0 {
		elapsed = 0
	}

	// FSRS-4.5 curve: R(t) = (1 + factor*t/S)^decay with R(S) = 0.9.
	const decay = -0.5
	factor := math.Pow(0.9, 1/decay) - 1
	return math.Pow(1+factor*elapsed/p.Stability, decay)
}
