// Package preload keeps the UI continuously supplied with ready-to-show
// work: a preloader buffers task and vocab batches and refills them in the
// background, and a small state machine gives consumers a single current
// state to render.
package preload

import (
	"context"
	"log/slog"
	"sync"

	"github.com/abhisek/lexio/internal/lesson"
	"github.com/abhisek/lexio/internal/task"
	"github.com/abhisek/lexio/internal/vocab"
)

// Config tunes the buffer depths.
type Config struct {
	// MinTaskBatchBuffer is how many task batches Initialize loads and the
	// background refill restores toward.
	MinTaskBatchBuffer int

	// MinVocabBatchBuffer is the same for vocab batches.
	MinVocabBatchBuffer int

	// AggressiveThreshold is the low-water mark: consuming an item at or
	// below it triggers a background refill.
	AggressiveThreshold int
}

// DefaultConfig returns the buffer depths used in production.
func DefaultConfig() Config {
	return Config{
		MinTaskBatchBuffer:  2,
		MinVocabBatchBuffer: 2,
		AggressiveThreshold: 1,
	}
}

// TaskBatchSource produces one batch of tasks. Satisfied by
// lesson.Generator.
type TaskBatchSource interface {
	GenerateLessonForLanguages(ctx context.Context, languages []string) (*lesson.Lesson, error)
}

// VocabBatchSource produces one batch of units. Satisfied by
// propose.VocabPicker.
type VocabBatchSource interface {
	PickVocabBatch(ctx context.Context, languages []string) ([]*vocab.Vocab, error)
}

// Preloader buffers task and vocab batches. Consumption is an instant pop;
// only refills touch collaborator I/O, and each buffer refills in its own
// fire-and-forget goroutine with a refill-in-progress guard.
type Preloader struct {
	cfg         Config
	lessons     TaskBatchSource
	vocabPicker VocabBatchSource
	languages   []string

	mu           sync.Mutex
	taskBatches  [][]*task.Task
	vocabBatches [][]*vocab.Vocab
	loadingTasks bool
	loadingVocab bool
}

// New creates a preloader drawing task batches from the lesson generator
// and vocab batches from the vocab picker, for a fixed language set.
func New(cfg Config, lessons TaskBatchSource, vocabPicker VocabBatchSource, languages []string) *Preloader {
	return &Preloader{
		cfg:         cfg,
		lessons:     lessons,
		vocabPicker: vocabPicker,
		languages:   languages,
	}
}

// Initialize fills both buffers to their minimum, loading them in parallel.
// It returns the first error encountered; a content-less repository is not
// an error, it just leaves the buffers empty.
func (p *Preloader) Initialize(ctx context.Context) error {
	var wg sync.WaitGroup
	var taskErr, vocabErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		taskErr = p.fillTaskBuffer(ctx)
	}()
	go func() {
		defer wg.Done()
		vocabErr = p.fillVocabBuffer(ctx)
	}()
	wg.Wait()

	if taskErr != nil {
		return taskErr
	}
	return vocabErr
}

func (p *Preloader) fillTaskBuffer(ctx context.Context) error {
	for {
		p.mu.Lock()
		enough := len(p.taskBatches) >= p.cfg.MinTaskBatchBuffer
		p.mu.Unlock()
		if enough {
			return nil
		}

		batch, err := p.loadTaskBatch(ctx)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			// Nothing to practice; stop instead of spinning.
			return nil
		}
		p.mu.Lock()
		p.taskBatches = append(p.taskBatches, batch)
		p.mu.Unlock()
	}
}

func (p *Preloader) fillVocabBuffer(ctx context.Context) error {
	for {
		p.mu.Lock()
		enough := len(p.vocabBatches) >= p.cfg.MinVocabBatchBuffer
		p.mu.Unlock()
		if enough {
			return nil
		}

		batch, err := p.vocabPicker.PickVocabBatch(ctx, p.languages)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}
		p.mu.Lock()
		p.vocabBatches = append(p.vocabBatches, batch)
		p.mu.Unlock()
	}
}

// loadTaskBatch generates one lesson's worth of tasks.
func (p *Preloader) loadTaskBatch(ctx context.Context) ([]*task.Task, error) {
	l, err := p.lessons.GenerateLessonForLanguages(ctx, p.languages)
	if err != nil {
		return nil, err
	}
	return l.Tasks(), nil
}

// refillTasksAsync starts a background task-buffer refill unless one is
// already running. A refill no longer needed is simply abandoned.
func (p *Preloader) refillTasksAsync(ctx context.Context) {
	p.mu.Lock()
	if p.loadingTasks {
		p.mu.Unlock()
		return
	}
	p.loadingTasks = true
	p.mu.Unlock()

	go func() {
		defer func() {
			p.mu.Lock()
			p.loadingTasks = false
			p.mu.Unlock()
		}()
		if err := p.fillTaskBuffer(ctx); err != nil {
			slog.Warn("task buffer refill failed", "err", err)
		}
	}()
}

func (p *Preloader) refillVocabAsync(ctx context.Context) {
	p.mu.Lock()
	if p.loadingVocab {
		p.mu.Unlock()
		return
	}
	p.loadingVocab = true
	p.mu.Unlock()

	go func() {
		defer func() {
			p.mu.Lock()
			p.loadingVocab = false
			p.mu.Unlock()
		}()
		if err := p.fillVocabBuffer(ctx); err != nil {
			slog.Warn("vocab buffer refill failed", "err", err)
		}
	}()
}

// ConsumeNextTask pops the next task from the first non-empty batch.
// Returns nil when the buffers are dry.
func (p *Preloader) ConsumeNextTask(ctx context.Context) *task.Task {
	p.mu.Lock()
	var picked *task.Task
	for len(p.taskBatches) > 0 {
		batch := p.taskBatches[0]
		if len(batch) == 0 {
			p.taskBatches = p.taskBatches[1:]
			continue
		}
		picked = batch[0]
		p.taskBatches[0] = batch[1:]
		if len(p.taskBatches[0]) == 0 {
			p.taskBatches = p.taskBatches[1:]
		}
		break
	}
	low := len(p.taskBatches) <= p.cfg.AggressiveThreshold
	p.mu.Unlock()

	if low {
		p.refillTasksAsync(ctx)
	}
	return picked
}

// ConsumeNextTaskBatch pops a whole batch, or nil.
func (p *Preloader) ConsumeNextTaskBatch(ctx context.Context) []*task.Task {
	p.mu.Lock()
	var batch []*task.Task
	if len(p.taskBatches) > 0 {
		batch = p.taskBatches[0]
		p.taskBatches = p.taskBatches[1:]
	}
	low := len(p.taskBatches) <= p.cfg.AggressiveThreshold
	p.mu.Unlock()

	if low {
		p.refillTasksAsync(ctx)
	}
	return batch
}

// ConsumeNextVocabBatch pops a vocab batch, or nil.
func (p *Preloader) ConsumeNextVocabBatch(ctx context.Context) []*vocab.Vocab {
	p.mu.Lock()
	var batch []*vocab.Vocab
	if len(p.vocabBatches) > 0 {
		batch = p.vocabBatches[0]
		p.vocabBatches = p.vocabBatches[1:]
	}
	low := len(p.vocabBatches) <= p.cfg.AggressiveThreshold
	p.mu.Unlock()

	if low {
		p.refillVocabAsync(ctx)
	}
	return batch
}

// ForceLoadTaskBatch bypasses the buffers and generates a batch right now.
func (p *Preloader) ForceLoadTaskBatch(ctx context.Context) ([]*task.Task, error) {
	return p.loadTaskBatch(ctx)
}

// ForceLoadNextTask bypasses the buffers and generates a single task.
func (p *Preloader) ForceLoadNextTask(ctx context.Context) (*task.Task, error) {
	batch, err := p.loadTaskBatch(ctx)
	if err != nil {
		return nil, err
	}
	if len(batch) == 0 {
		return nil, nil
	}
	return batch[0], nil
}

// HasTaskReady reports whether a task can be consumed instantly.
func (p *Preloader) HasTaskReady() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, batch := range p.taskBatches {
		if len(batch) > 0 {
			return true
		}
	}
	return false
}

// TaskBatchesReady returns the current task-buffer depth.
func (p *Preloader) TaskBatchesReady() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.taskBatches)
}
