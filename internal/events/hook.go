package events

import "sync"

// Hook fans values out to registered callback functions. It is the
// callback-flavored counterpart of Feed for consumers that do not want to
// run a receive loop.
type Hook[T any] struct {
	mu         sync.RWMutex
	cbs        []hookSub[T]
	nextID     uint64
	replayLast bool
	last       T
	hasLast    bool
}

type hookSub[T any] struct {
	id uint64
	fn func(T)
}

// NewHook creates a Hook. When replayLast is true a newly attached callback
// is invoked immediately with the most recently published value, if any.
func NewHook[T any](replayLast bool) *Hook[T] {
	return &Hook[T]{replayLast: replayLast}
}

// Attach registers fn and returns a detach function. Callbacks run on the
// publisher's goroutine, outside the Hook's lock, in attach order.
func (h *Hook[T]) Attach(fn func(T)) func() {
	if fn == nil {
		panic("events: callback cannot be nil")
	}

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.cbs = append(h.cbs, hookSub[T]{id: id, fn: fn})
	replay := h.replayLast && h.hasLast
	last := h.last
	h.mu.Unlock()

	if replay {
		fn(last)
	}

	return func() {
		h.mu.Lock()
		for i, c := range h.cbs {
			if c.id == id {
				h.cbs = append(h.cbs[:i], h.cbs[i+1:]...)
				break
			}
		}
		h.mu.Unlock()
	}
}

// Publish invokes every attached callback with v.
func (h *Hook[T]) Publish(v T) {
	h.mu.Lock()
	if h.replayLast {
		h.last = v
		h.hasLast = true
	}
	targets := make([]func(T), len(h.cbs))
	for i, c := range h.cbs {
		targets[i] = c.fn
	}
	h.mu.Unlock()

	for _, fn := range targets {
		fn(v)
	}
}

// CallbackCount reports the number of attached callbacks.
func (h *Hook[T]) CallbackCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.cbs)
}
