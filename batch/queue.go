// Package batch — discovery queue with path deduplication.
package batch

import "path/filepath"

// Queue collects file paths in insertion order, dropping duplicates.
type Queue struct {
	items   []string
	visited map[string]bool
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		visited: make(map[string]bool),
	}
}

// Add enqueues a path if it hasn't been seen before. Paths are
// compared in cleaned form.
func (q *Queue) Add(path string) {
	key := filepath.Clean(path)
	if q.visited[key] {
		return
	}
	q.visited[key] = true
	q.items = append(q.items, path)
}

// All returns the queued paths in insertion order.
func (q *Queue) All() []string {
	return q.items
}
