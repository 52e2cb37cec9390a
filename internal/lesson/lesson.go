// Package lesson assembles bounded batches of tasks for one practice
// session. Several interchangeable strategies each build a themed core, a
// shared driver fills the remainder with due vocabulary, and the top-level
// generator tries shuffled strategies until one produces work.
package lesson

import "github.com/abhisek/lexio/internal/task"

// Lesson is an ordered, finite batch of tasks with a cursor. The task list
// is fixed at creation; only the cursor and completion flag change.
type Lesson struct {
	tasks  []*task.Task
	cursor int
	done   bool
}

// New creates a lesson over the given tasks. An empty task list yields a
// valid, already-complete lesson: the "nothing to practice" state.
func New(tasks []*task.Task) *Lesson {
	return &Lesson{tasks: tasks, done: len(tasks) == 0}
}

// Len returns the total task count.
func (l *Lesson) Len() int {
	return len(l.tasks)
}

// IsEmpty reports whether the lesson holds no tasks at all.
func (l *Lesson) IsEmpty() bool {
	return len(l.tasks) == 0
}

// IsDone reports whether every task has been consumed.
func (l *Lesson) IsDone() bool {
	return l.done
}

// Current returns the task under the cursor, or nil when the lesson is done.
func (l *Lesson) Current() *task.Task {
	if l.done || l.cursor >= len(l.tasks) {
		return nil
	}
	return l.tasks[l.cursor]
}

// Advance moves the cursor past the current task, marking the lesson done
// when the last task is consumed.
func (l *Lesson) Advance() {
	if l.done {
		return
	}
	l.cursor++
	if l.cursor >= len(l.tasks) {
		l.done = true
	}
}

// Remaining returns how many tasks are left, including the current one.
func (l *Lesson) Remaining() int {
	if l.done {
		return 0
	}
	return len(l.tasks) - l.cursor
}

// Tasks returns the underlying task list in order.
func (l *Lesson) Tasks() []*task.Task {
	out := make([]*task.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// UsedVocabIDs collects the distinct vocab ids the lesson's tasks touch.
func (l *Lesson) UsedVocabIDs() []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range l.tasks {
		for _, id := range t.AssociatedVocab {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}
