package vocab

import (
	"time"

	fsrs "github.com/open-spaced-repetition/go-fsrs/v3"
)

// Length classifies how long a unit of meaning is. It gates which task
// generators apply (clozes only make sense for multi-word content).
type Length string

const (
	LengthWord        Length = "word"
	LengthExpression  Length = "multi-word-expression"
	LengthSentence    Length = "single-sentence"
	LengthUnspecified Length = "unspecified"
)

// IsSentenceLike reports whether the unit spans multiple words.
func (l Length) IsSentenceLike() bool {
	return l == LengthExpression || l == LengthSentence
}

// MaxLevel is the highest mastery tier a unit can reach.
const MaxLevel = 4

// UnseenLevel marks a unit that has never been rated.
const UnseenLevel = -1

// Progress is the spaced-repetition state of a unit. The embedded FSRS card
// is owned by the scheduler library and only ever replaced wholesale with a
// projection it computed; Level and Streak are owned by this package.
type Progress struct {
	fsrs.Card

	// Level is the local mastery tier: -1 never seen, 0 seen but not
	// graduated, 1..MaxLevel graduated tiers.
	Level int `json:"level"`

	// Streak counts consecutive same-direction ratings. Positive streaks
	// convert into level-ups, negative streaks are unbounded below.
	Streak int `json:"streak"`
}

// NewProgress returns the progress state of a freshly created unit.
func NewProgress() Progress {
	return Progress{Level: UnseenLevel}
}

// Vocab is a single practisable unit of meaning: a word, a multi-word
// expression, or a sentence in a target language.
type Vocab struct {
	UID           string   `json:"uid"`
	Language      string   `json:"language"`
	Content       string   `json:"content"`
	Length        Length   `json:"length"`
	Priority      int      `json:"priority"`
	DoNotPractice bool     `json:"doNotPractice"`
	Translations  []string `json:"translations"` // translation ids
	Notes         []string `json:"notes"`        // note ids
	Origins       []string `json:"origins"`      // provenance tags (import sets etc.)
	Progress      Progress `json:"progress"`
}

// IsUnseen reports whether the unit has never been rated.
func IsUnseen(v *Vocab) bool {
	return v.Progress.Level == UnseenLevel
}

// IsSeen reports whether the unit has been rated at least once.
func IsSeen(v *Vocab) bool {
	return v.Progress.Level >= 0
}

// IsDue reports whether a seen unit's scheduled review date has passed.
func IsDue(v *Vocab, now time.Time) bool {
	return IsSeen(v) && !v.Progress.Due.After(now)
}

// IsReady reports whether the unit is a candidate for practice right now:
// either brand new or due for review.
func IsReady(v *Vocab, now time.Time) bool {
	return IsUnseen(v) || IsDue(v, now)
}
