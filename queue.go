package stoplight

import (
	"context"
	"sync"
	"time"
)

// Queue is a thread-safe blocking FIFO channel between one producer and any
// number of competing consumers. Each element is delivered to exactly one
// consumer; concurrent consumers race for queued elements.
type Queue[T any] struct {
	mutex     sync.Mutex
	available *sync.Cond
	items     []T
	pushDelay time.Duration
}

// NewQueue creates an empty queue
func NewQueue[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.available = sync.NewCond(&q.mutex)
	return q
}

// NewThrottledQueue creates a queue whose Push sleeps for delay after
// publishing, bounding the producer rate. A zero delay disables throttling.
func NewThrottledQueue[T any](delay time.Duration) *Queue[T] {
	q := NewQueue[T]()
	q.pushDelay = delay
	return q
}

// Push appends item to the back of the queue and wakes one blocked consumer.
// Push always succeeds.
func (q *Queue[T]) Push(item T) {
	q.mutex.Lock()
	q.items = append(q.items, item)
	q.available.Signal()
	q.mutex.Unlock()

	if q.pushDelay > 0 {
		time.Sleep(q.pushDelay)
	}
}

// Pop blocks the calling goroutine until the queue is non-empty, then removes
// and returns the oldest element. The lock is released while waiting and
// reacquired atomically on wake-up; the condition is rechecked in a loop, so
// two consumers can never consume the same element.
func (q *Queue[T]) Pop() T {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	for len(q.items) == 0 {
		q.available.Wait()
	}
	return q.take()
}

// PopContext behaves like Pop but gives up when ctx ends while the queue is
// empty, returning the zero value and a Cancelled error. An element that is
// already available is delivered even when ctx has expired, so a pending
// wake-up is never lost to cancellation.
func (q *Queue[T]) PopContext(ctx context.Context) (T, error) {
	stop := context.AfterFunc(ctx, func() {
		q.mutex.Lock()
		q.available.Broadcast()
		q.mutex.Unlock()
	})
	defer stop()

	q.mutex.Lock()
	defer q.mutex.Unlock()

	for len(q.items) == 0 {
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, NewCancelledError("Pop", err)
		}
		q.available.Wait()
	}
	return q.take(), nil
}

// TryPop removes and returns the oldest element without blocking. The second
// return value reports whether an element was available.
func (q *Queue[T]) TryPop() (T, bool) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.take(), true
}

// Len returns the number of buffered elements
func (q *Queue[T]) Len() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return len(q.items)
}

// take removes and returns the head element. The caller must hold the lock
// and the queue must be non-empty.
func (q *Queue[T]) take() T {
	item := q.items[0]
	var zero T
	q.items[0] = zero // the element is moved out, the slot keeps no reference
	q.items = q.items[1:]
	return item
}
