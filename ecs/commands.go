package ecs

import "sync"

// CommandQueue buffers work posted from any goroutine until the logic thread
// drains it between simulation steps.
type CommandQueue[C any] struct {
	mu      sync.Mutex
	pending []func(C)
}

// Post queues fn. It never blocks on the simulation.
func (q *CommandQueue[C]) Post(fn func(C)) {
	if q == nil || fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Len reports how many commands are waiting.
func (q *CommandQueue[C]) Len() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain runs every queued command against target in post order. Commands
// posted while draining run on the next drain.
func (q *CommandQueue[C]) Drain(target C) int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range batch {
		fn(target)
	}
	return len(batch)
}
