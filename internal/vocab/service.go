package vocab

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	fsrs "github.com/open-spaced-repetition/go-fsrs/v3"
)

// Service applies practice outcomes to unit progress. It owns the level and
// streak rules; interval arithmetic is delegated entirely to the FSRS library.
type Service struct {
	repo      Repo
	scheduler *fsrs.FSRS
	now       func() time.Time
}

// NewService creates a progress service over the given repo.
func NewService(repo Repo) *Service {
	return &Service{
		repo:      repo,
		scheduler: fsrs.NewFSRS(fsrs.DefaultParam()),
		now:       time.Now,
	}
}

// ScoreOptions tweaks how a rating is applied.
type ScoreOptions struct {
	// ImmediateRequeue forces the unit due again right now after a negative
	// rating, overriding the scheduler's projection.
	ImmediateRequeue bool
}

// Score applies a rating to a unit and persists the updated progress.
// A missing unit is a no-op: the record may have been deleted between the
// task being served and the learner answering.
func (s *Service) Score(ctx context.Context, uid string, rating Rating, opts ScoreOptions) error {
	v, err := s.repo.GetByUID(ctx, uid)
	if err != nil {
		return fmt.Errorf("score %s: %w", uid, err)
	}
	if v == nil {
		slog.Warn("score: vocab not found, skipping", "uid", uid)
		return nil
	}

	now := s.now()
	v.Progress = s.nextProgress(v.Progress, rating, now)

	if opts.ImmediateRequeue && rating.IsNegative() {
		v.Progress.Due = now
	}

	if err := s.repo.Save(ctx, v); err != nil {
		return fmt.Errorf("score %s: save: %w", uid, err)
	}
	return nil
}

// nextProgress computes the progress state after one rating.
func (s *Service) nextProgress(p Progress, rating Rating, now time.Time) Progress {
	// First rating: replace the placeholder with a real scheduler card.
	// The jump from -1 to 0 is this rating's level-up, so the streak rule
	// below must not award a second one.
	initializing := p.Level == UnseenLevel
	if initializing {
		p = Progress{Card: fsrs.NewCard(), Level: 0, Streak: 0}
	}

	projected := s.scheduler.Repeat(p.Card, now)[rating.fsrsRating()].Card

	if rating.IsNegative() {
		if p.Streak > 0 {
			p.Streak = 0
		} else {
			p.Streak--
		}
	} else {
		if p.Streak < 0 {
			p.Streak = 0
		} else {
			p.Streak++
			if p.Streak == 1 && p.Level < MaxLevel {
				if !initializing {
					p.Level++
				}
				p.Streak = 0
			}
		}
	}

	p.Card = projected
	return p
}

// TouchLastReview stamps a unit as just reviewed without rating it. Used by
// tasks that expose a unit to the learner outside of graded practice.
func (s *Service) TouchLastReview(ctx context.Context, uid string) error {
	v, err := s.repo.GetByUID(ctx, uid)
	if err != nil {
		return fmt.Errorf("touch last review %s: %w", uid, err)
	}
	if v == nil {
		slog.Warn("touch last review: vocab not found, skipping", "uid", uid)
		return nil
	}

	if v.Progress.Level == UnseenLevel {
		v.Progress = Progress{Card: fsrs.NewCard(), Level: 0, Streak: 0}
	}
	v.Progress.LastReview = s.now()

	if err := s.repo.Save(ctx, v); err != nil {
		return fmt.Errorf("touch last review %s: save: %w", uid, err)
	}
	return nil
}
