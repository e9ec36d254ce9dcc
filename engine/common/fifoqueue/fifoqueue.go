package fifoqueue

import (
	"fmt"
	"sync"

	"github.com/ef-ds/deque"
)

// FifoQueue is an unbounded, concurrency safe FIFO queue with a length observer.
// Each time the queue's length changes, the QueueLengthObserver is called with the
// new length. By default, the QueueLengthObserver is a NoOp.
//
// Caution: the QueueLengthObserver must be non-blocking.
type FifoQueue[T any] struct {
	mu             sync.Mutex
	queue          deque.Deque
	lengthObserver QueueLengthObserver
}

// ConstructorOption is an optional argument of `NewFifoQueue`.
type ConstructorOption func(*settings) error

// QueueLengthObserver is a callback that can optionally be provided
// to the `NewFifoQueue` constructor (via `WithLengthObserver` option).
type QueueLengthObserver func(int)

type settings struct {
	lengthObserver QueueLengthObserver
}

// WithLengthObserver registers a callback called with the new length each time the
// queue's length changes.
func WithLengthObserver(callback QueueLengthObserver) ConstructorOption {
	return func(s *settings) error {
		if callback == nil {
			return fmt.Errorf("nil is not a valid QueueLengthObserver")
		}
		s.lengthObserver = callback
		return nil
	}
}

// NewFifoQueue constructs an empty queue.
func NewFifoQueue[T any](options ...ConstructorOption) (*FifoQueue[T], error) {
	s := settings{
		lengthObserver: func(int) { /* noop */ },
	}
	for _, opt := range options {
		err := opt(&s)
		if err != nil {
			return nil, fmt.Errorf("failed to apply constructor option to fifoqueue queue: %w", err)
		}
	}
	return &FifoQueue[T]{
		lengthObserver: s.lengthObserver,
	}, nil
}

// Push appends the given value to the tail of the queue.
func (q *FifoQueue[T]) Push(element T) {
	q.mu.Lock()
	q.queue.PushBack(element)
	length := q.queue.Len()
	q.mu.Unlock()

	q.lengthObserver(length)
}

// Pop removes and returns the queue's head element.
// If the queue is empty, (zero, false) is returned.
func (q *FifoQueue[T]) Pop() (T, bool) {
	element, length, ok := q.pop()
	if !ok {
		var zero T
		return zero, false
	}
	q.lengthObserver(length)
	return element.(T), true
}

func (q *FifoQueue[T]) pop() (interface{}, int, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	element, ok := q.queue.PopFront()
	return element, q.queue.Len(), ok
}
