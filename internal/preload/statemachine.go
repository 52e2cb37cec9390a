package preload

import (
	"context"
	"log/slog"

	"github.com/abhisek/lexio/internal/task"
	"github.com/abhisek/lexio/internal/vocab"
)

// Status is the consumer-facing pipeline state.
type Status string

const (
	StatusInitializing Status = "initializing"
	StatusLoading      Status = "loading"
	StatusTask         Status = "task"
	StatusEmpty        Status = "empty"
	StatusError        Status = "error"
)

// Scorer records the outcome of a completed task against a unit's progress.
// Satisfied by vocab.Service.
type Scorer interface {
	Score(ctx context.Context, uid string, rating vocab.Rating, opts vocab.ScoreOptions) error
}

// StateMachine drives a practice queue for one consumer. Exactly one of
// Current and Message is meaningful per state: task carries a descriptor,
// empty and error carry a message. It is not safe for concurrent use; one
// session owns one machine.
type StateMachine struct {
	preloader *Preloader
	scorer    Scorer

	status  Status
	current *task.Task
	message string
}

// NewStateMachine creates a machine in the initializing state.
func NewStateMachine(preloader *Preloader, scorer Scorer) *StateMachine {
	return &StateMachine{
		preloader: preloader,
		scorer:    scorer,
		status:    StatusInitializing,
	}
}

// Status returns the current state.
func (m *StateMachine) Status() Status { return m.status }

// Current returns the task being shown, nil outside the task state.
func (m *StateMachine) Current() *task.Task {
	if m.status != StatusTask {
		return nil
	}
	return m.current
}

// Message returns the user-facing text for the empty and error states.
func (m *StateMachine) Message() string { return m.message }

// Initialize loads the pipeline and lands in task, empty, or error.
func (m *StateMachine) Initialize(ctx context.Context) {
	m.status = StatusLoading
	m.message = "Loading your practice queue"

	if err := m.preloader.Initialize(ctx); err != nil {
		slog.Error("queue initialization failed", "err", err)
		m.status = StatusError
		m.current = nil
		m.message = "Failed to load the practice queue. Try again."
		return
	}

	if !m.tryTransitionToTask(ctx) {
		m.status = StatusEmpty
		m.current = nil
		m.message = "Nothing to practice right now."
	}
}

// tryTransitionToTask consumes the next task, force-loading when the
// buffers are dry. Reports whether a task was found.
func (m *StateMachine) tryTransitionToTask(ctx context.Context) bool {
	if t := m.preloader.ConsumeNextTask(ctx); t != nil {
		m.status = StatusTask
		m.current = t
		m.message = ""
		return true
	}

	m.status = StatusLoading
	m.message = "Preparing the next task"

	t, err := m.preloader.ForceLoadNextTask(ctx)
	if err != nil {
		slog.Warn("force loading task failed", "err", err)
		return false
	}
	if t == nil {
		return false
	}
	m.status = StatusTask
	m.current = t
	m.message = ""
	return true
}

// CompleteCurrentTask scores the current task's units as doable and moves
// on to the next task, or to empty when the queue is exhausted.
func (m *StateMachine) CompleteCurrentTask(ctx context.Context) {
	if m.status != StatusTask {
		slog.Warn("complete called outside task state", "status", m.status)
		return
	}

	done := m.current
	for _, uid := range done.AssociatedVocab {
		if err := m.scorer.Score(ctx, uid, vocab.RatingDoable, vocab.ScoreOptions{}); err != nil {
			slog.Warn("scoring completed task failed", "vocab", uid, "err", err)
		}
	}

	if !m.tryTransitionToTask(ctx) {
		m.status = StatusEmpty
		m.current = nil
		m.message = "Well done! Nothing more to practice right now."
	}
}

// Retry re-runs initialization after an error.
func (m *StateMachine) Retry(ctx context.Context) {
	m.Initialize(ctx)
}
