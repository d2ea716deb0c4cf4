package events

import "sync"

// Feed fans values out to subscriber channels.
// T is the value type delivered to subscribers.
type Feed[T any] struct {
	mu         sync.RWMutex
	subs       []feedSub[T]
	nextID     uint64
	replayLast bool
	last       T
	hasLast    bool
}

type feedSub[T any] struct {
	id uint64
	ch chan<- T
}

// NewFeed creates a Feed. When replayLast is true a new subscriber
// immediately receives the most recently published value, if any.
func NewFeed[T any](replayLast bool) *Feed[T] {
	return &Feed[T]{replayLast: replayLast}
}

// Subscribe registers ch to receive published values and returns a cancel
// function that removes the registration. Delivery is non-blocking: a full
// channel misses that value. Subscribers receive values in registration
// order.
func (f *Feed[T]) Subscribe(ch chan<- T) func() {
	if ch == nil {
		panic("events: subscriber channel cannot be nil")
	}

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subs = append(f.subs, feedSub[T]{id: id, ch: ch})
	replay := f.replayLast && f.hasLast
	last := f.last
	f.mu.Unlock()

	if replay {
		select {
		case ch <- last:
		default:
		}
	}

	return func() {
		f.mu.Lock()
		for i, s := range f.subs {
			if s.id == id {
				f.subs = append(f.subs[:i], f.subs[i+1:]...)
				break
			}
		}
		f.mu.Unlock()
	}
}

// Publish delivers v to every current subscriber. Sends happen outside the
// lock and never block; a subscriber whose channel is full is skipped.
func (f *Feed[T]) Publish(v T) {
	f.mu.Lock()
	if f.replayLast {
		f.last = v
		f.hasLast = true
	}
	targets := make([]chan<- T, len(f.subs))
	for i, s := range f.subs {
		targets[i] = s.ch
	}
	f.mu.Unlock()

	for _, ch := range targets {
		select {
		case ch <- v:
		default:
		}
	}
}

// SubscriberCount reports the number of live subscriptions.
func (f *Feed[T]) SubscriberCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs)
}
