// Package tracker holds the sliding-window balance trackers that bias task
// selection toward an even practice mix. Trackers are plain structs passed
// explicitly to the composition code — one set per session, never globals —
// so parallel sessions and tests stay independent. Everything here is
// advisory except the two new-vocab hard caps.
package tracker

// window is a bounded FIFO of recently served values.
type window[T any] struct {
	items []T
	cap   int
}

func newWindow[T any](capacity int) window[T] {
	return window[T]{cap: capacity}
}

func (w *window[T]) push(item T) {
	w.items = append(w.items, item)
	if len(w.items) > w.cap {
		w.items = w.items[len(w.items)-w.cap:]
	}
}

func (w *window[T]) len() int {
	return len(w.items)
}

func (w *window[T]) count(match func(T) bool) int {
	n := 0
	for _, item := range w.items {
		if match(item) {
			n++
		}
	}
	return n
}
