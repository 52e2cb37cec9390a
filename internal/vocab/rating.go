package vocab

import fsrs "github.com/open-spaced-repetition/go-fsrs/v3"

// Rating is the learner's self-assessment after practising a unit.
type Rating string

const (
	RatingAgain  Rating = "again"
	RatingHard   Rating = "hard"
	RatingDoable Rating = "doable"
	RatingEasy   Rating = "easy"
)

// IsNegative reports whether the rating counts against the streak.
func (r Rating) IsNegative() bool {
	return r == RatingAgain || r == RatingHard
}

// fsrsRating maps a learner rating onto the scheduler's grade scale.
func (r Rating) fsrsRating() fsrs.Rating {
	switch r {
	case RatingAgain:
		return fsrs.Again
	case RatingHard:
		return fsrs.Hard
	case RatingEasy:
		return fsrs.Easy
	default:
		return fsrs.Good
	}
}
