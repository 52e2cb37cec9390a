package vocab

import (
	"context"
	"time"
)

// Repo is the narrow contract the engine consumes for vocabulary access.
// Implementations live in internal/store; not-found lookups return (nil, nil).
type Repo interface {
	// GetByUID returns a single unit, or nil if the id has no backing record.
	GetByUID(ctx context.Context, uid string) (*Vocab, error)

	// GetByUIDs returns the units that exist among the given ids, in any order.
	GetByUIDs(ctx context.Context, uids []string) ([]*Vocab, error)

	// GetByContent returns the unit with the given language and content,
	// or nil when none exists.
	GetByContent(ctx context.Context, language, content string) (*Vocab, error)

	// DueInLanguages returns seen units whose review date has passed,
	// excluding doNotPractice units and any uid in the block list.
	DueInLanguages(ctx context.Context, languages []string, block []string) ([]*Vocab, error)

	// RandomUnseenInLanguages returns up to n never-seen units, excluding
	// doNotPractice units and any uid in the block list.
	RandomUnseenInLanguages(ctx context.Context, languages []string, n int, block []string) ([]*Vocab, error)

	// UnseenByUIDs filters the given ids down to never-seen units.
	UnseenByUIDs(ctx context.Context, uids []string) ([]*Vocab, error)

	// DueByUIDs filters the given ids down to seen-and-due units.
	DueByUIDs(ctx context.Context, uids []string) ([]*Vocab, error)

	// List returns a page of units in a language, ordered by content.
	List(ctx context.Context, language string, limit, offset int) ([]*Vocab, error)

	// LowestDueDate returns the earliest due date among seen units in the
	// given languages, or the zero time when there are none.
	LowestDueDate(ctx context.Context, languages []string) (time.Time, error)

	// Save creates or replaces a unit record.
	Save(ctx context.Context, v *Vocab) error

	// Delete removes a unit and its progress.
	Delete(ctx context.Context, uid string) error
}
