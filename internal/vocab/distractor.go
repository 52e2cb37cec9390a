package vocab

import (
	"math/rand"
	"strings"

	"github.com/agext/levenshtein"
)

// DistractorConfig tunes what counts as an "ideal" wrong answer.
type DistractorConfig struct {
	// MinDistance is the smallest acceptable edit distance from the correct
	// answer. Anything closer is a near-duplicate the learner could only
	// tell apart by spelling trivia.
	MinDistance int

	// MinLengthRatio / MaxLengthRatio bound candidate length relative to the
	// correct answer, so options look visually comparable.
	MinLengthRatio float64
	MaxLengthRatio float64
}

// DefaultDistractorConfig returns the tuning used in production.
func DefaultDistractorConfig() DistractorConfig {
	return DistractorConfig{
		MinDistance:    2,
		MinLengthRatio: 0.5,
		MaxLengthRatio: 1.5,
	}
}

// DistractorSelector picks plausible wrong answers for choice exercises.
type DistractorSelector struct {
	cfg DistractorConfig
	rng *rand.Rand
}

// NewDistractorSelector creates a selector with the given tuning and random
// source. Tests pass a seeded rng for determinism.
func NewDistractorSelector(cfg DistractorConfig, rng *rand.Rand) *DistractorSelector {
	return &DistractorSelector{cfg: cfg, rng: rng}
}

// Select returns up to count distinct distractors from the candidate pool.
// Ideal candidates (length in band, edit distance at least MinDistance) are
// preferred; if they run out, any candidate that is not the correct answer is
// used so callers always make progress. The result may be shorter than count
// when the pool is small — callers must tolerate that, never fail on it.
func (s *DistractorSelector) Select(correct string, pool []string, count int) []string {
	if count <= 0 || len(pool) == 0 {
		return nil
	}

	used := map[string]bool{correct: true}
	distractors := make([]string, 0, count)

	take := func(candidates []string) {
		shuffled := make([]string, len(candidates))
		copy(shuffled, candidates)
		s.rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		for _, c := range shuffled {
			if len(distractors) >= count {
				return
			}
			if c == "" || used[c] {
				continue
			}
			used[c] = true
			distractors = append(distractors, c)
		}
	}

	var ideal []string
	for _, c := range pool {
		if s.isIdeal(correct, c) {
			ideal = append(ideal, c)
		}
	}
	take(ideal)

	if len(distractors) < count {
		take(pool)
	}

	return distractors
}

func (s *DistractorSelector) isIdeal(correct, candidate string) bool {
	if candidate == "" || strings.EqualFold(candidate, correct) {
		return false
	}
	ratio := float64(len([]rune(candidate))) / float64(len([]rune(correct)))
	if ratio < s.cfg.MinLengthRatio || ratio > s.cfg.MaxLengthRatio {
		return false
	}
	dist := levenshtein.Distance(strings.ToLower(candidate), strings.ToLower(correct), nil)
	return dist >= s.cfg.MinDistance
}
