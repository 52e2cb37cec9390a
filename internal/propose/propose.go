// Package propose holds the proposer registry feeding the preload pipeline:
// one proposer per task family, a task picker choosing uniformly among the
// non-nil proposals, and a vocab picker batching units for focused practice.
package propose

import (
	"context"

	"github.com/abhisek/lexio/internal/task"
	"github.com/abhisek/lexio/internal/vocab"
)

// TaskProposer suggests one task of its family, or nil when the family has
// nothing to offer right now.
type TaskProposer interface {
	Name() string
	ProposeTask(ctx context.Context, languages []string) (*task.Task, error)
}

// VocabProposer suggests up to n units worth practising from its pool.
type VocabProposer interface {
	Name() string
	ProposeVocab(ctx context.Context, languages []string, n int) ([]*vocab.Vocab, error)
}
