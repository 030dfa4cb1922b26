package stoplight

import "context"

// Subscription is a private queue onto which every phase flip of its signal
// is fanned out. Unlike WaitForGreen's shared queue, subscribers do not
// compete: each subscription independently observes every transition in
// publish order.
type Subscription struct {
	id     uint64
	signal *TrafficSignal
	queue  *Queue[Transition]
}

// Subscribe registers a new subscription on the signal. Flips committed
// after this call are delivered to it; Close unregisters it.
func (s *TrafficSignal) Subscribe() *Subscription {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.nextSubID++
	sub := &Subscription{
		id:     s.nextSubID,
		signal: s,
		queue:  NewQueue[Transition](),
	}
	s.subscribers[sub.id] = sub
	return sub
}

// snapshotSubscribers copies the registry so delivery runs without the
// signal lock held
func (s *TrafficSignal) snapshotSubscribers() []*Subscription {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	subs := make([]*Subscription, 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		subs = append(subs, sub)
	}
	return subs
}

// deliver enqueues a flip for this subscriber
func (sub *Subscription) deliver(t Transition) {
	sub.queue.Push(t)
}

// Next blocks until the next phase flip is delivered to this subscription,
// or returns a Cancelled error when ctx ends first
func (sub *Subscription) Next(ctx context.Context) (Transition, error) {
	t, err := sub.queue.PopContext(ctx)
	if err != nil {
		return Transition{}, NewCancelledError("Next", ctx.Err())
	}
	return t, nil
}

// WaitForGreen blocks until this subscription observes a flip to Green.
// Because subscriptions are broadcast, other waiters cannot steal the flip.
func (sub *Subscription) WaitForGreen(ctx context.Context) error {
	for {
		t, err := sub.Next(ctx)
		if err != nil {
			return err
		}
		if t.To == Green {
			return nil
		}
	}
}

// Close unregisters the subscription. Elements already delivered remain
// available to Next; no further flips are enqueued.
func (sub *Subscription) Close() {
	s := sub.signal
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.subscribers, sub.id)
}
