// Package batch — source queue with deduplication.
// Keeps the first occurrence of each source so results stay in input order.
package batch

// Queue is an ordered list of sources with duplicate suppression.
type Queue struct {
	items []string
	seen  map[string]bool
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		seen: make(map[string]bool),
	}
}

// Add enqueues a source unless an equivalent one was already added.
// URLs are compared after NormalizeURL. It reports whether the source was new.
func (q *Queue) Add(source string) bool {
	key := source
	if IsURL(source) {
		key = NormalizeURL(source)
	}
	if q.seen[key] {
		return false
	}
	q.seen[key] = true
	q.items = append(q.items, source)
	return true
}

// Len returns the number of unique sources.
func (q *Queue) Len() int {
	return len(q.items)
}

// All returns the unique sources in insertion order.
func (q *Queue) All() []string {
	return q.items
}
