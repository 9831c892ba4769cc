package control

import "github.com/go-drift/controlkit/pkg/errors"

// Handle identifies a subscription returned by Event.Add.
// The zero Handle never identifies a subscription.
type Handle uint64

type subscription struct {
	handle Handle
	fn     func()
	done   bool
}

// Event is a synchronous, one-shot-per-subscriber callback queue.
//
// Trigger invokes every current subscriber once and then forgets it. A
// subscriber must be added again to hear the next Trigger. The zero value is
// ready to use.
type Event struct {
	subs []*subscription
	// firing holds subscribers taken by every Trigger still on the stack.
	firing map[Handle]*subscription
	next   Handle
}

// Add subscribes fn and returns a handle that cancels it.
// A nil fn is ignored and yields the zero Handle.
func (e *Event) Add(fn func()) Handle {
	if fn == nil {
		return 0
	}
	e.next++
	e.subs = append(e.subs, &subscription{handle: e.next, fn: fn})
	return e.next
}

// Discard cancels the subscription identified by h. Discarding a handle
// that already fired, was already discarded, or belongs to another event
// is a no-op. A subscriber discarded during Trigger before its turn does
// not fire, even when the discard happens inside a nested Trigger.
func (e *Event) Discard(h Handle) {
	if h == 0 {
		return
	}
	for i, s := range e.subs {
		if s.handle == h {
			s.done = true
			e.subs = append(e.subs[:i], e.subs[i+1:]...)
			return
		}
	}
	if s, ok := e.firing[h]; ok {
		s.done = true
	}
}

// Trigger invokes all current subscribers in subscription order. Subscribers
// added while Trigger runs are kept for the next Trigger. A panicking
// subscriber is reported and does not stop the others.
func (e *Event) Trigger() {
	pending := e.subs
	e.subs = nil
	if len(pending) == 0 {
		return
	}
	if e.firing == nil {
		e.firing = make(map[Handle]*subscription)
	}
	for _, s := range pending {
		e.firing[s.handle] = s
	}
	defer func() {
		for _, s := range pending {
			delete(e.firing, s.handle)
		}
	}()

	for _, s := range pending {
		if s.done {
			continue
		}
		s.done = true
		invoke(s.fn)
	}
}

// Len returns the number of subscribers waiting for the next Trigger.
func (e *Event) Len() int {
	return len(e.subs)
}

func invoke(fn func()) {
	defer errors.Recover("control.Event.Trigger")
	fn()
}
