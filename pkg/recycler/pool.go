// Package recycler provides a pool that reuses detached control instances
// instead of constructing and destroying them on every render pass.
//
// Every control the pool produces is either active (attached, in view) or
// free (detached, intact, waiting for reuse). Discarding moves an active
// control to the free list without destroying it. Only Pool.Remove destroys.
//
// A reused control keeps whatever state it had when it was discarded. Callers
// must overwrite the properties they care about (content, id, listeners)
// after GetRecycled returns:
//
//	row, ok := pool.GetRecycled(recycler.Back)
//	if !ok {
//	    return
//	}
//	row.SetID(item.Key)
//	row.Text = item.Title
//	row.SetContainer(viewport)
//
// A Pool is not safe for concurrent use.
package recycler

import (
	"slices"

	"github.com/go-drift/controlkit/pkg/control"
	"github.com/go-drift/controlkit/pkg/errors"
)

// Factory constructs a control from settings.
type Factory[C control.Control] func(settings control.Settings) C

// Recyclable is the constraint on pooled control types. The pool keys its
// membership table by control, so the type must be comparable.
type Recyclable interface {
	comparable
	control.Control
}

// Position selects the end of the active list a control is placed at.
type Position int

const (
	// Back appends to the active list.
	Back Position = iota
	// Front prepends to the active list.
	Front
)

type list uint8

const (
	activeList list = iota + 1
	freeList
)

// Stats summarizes pool activity.
type Stats struct {
	Constructed int
	Reused      int
	Active      int
	Free        int
}

// Pool recycles controls of type C. The zero value is usable once Configure
// has been called.
type Pool[C Recyclable] struct {
	factory  Factory[C]
	defaults control.Settings

	active []C
	free   []C
	owner  map[C]list

	constructed int
	reused      int
}

// New returns a pool configured with factory and a default settings template.
func New[C Recyclable](factory Factory[C], defaults control.Settings) *Pool[C] {
	p := &Pool[C]{}
	p.Configure(factory, defaults)
	return p
}

// Configure sets the factory and the default settings template. The
// template is deep-cloned before every construction, so later edits to the
// caller's map still affect future constructions but never live instances.
func (p *Pool[C]) Configure(factory Factory[C], defaults control.Settings) {
	p.factory = factory
	p.defaults = defaults
}

// GetRecycled returns a control placed in the active list at pos. A free
// control is reused as is when available; otherwise a new one is built from
// a fresh clone of the default settings. It returns false, and does
// nothing, when no factory is configured or the factory returns nil.
func (p *Pool[C]) GetRecycled(pos Position) (C, bool) {
	var c C
	if n := len(p.free); n > 0 {
		c = p.free[n-1]
		p.free = p.free[:n-1]
		p.reused++
	} else {
		if p.factory == nil {
			control.ReportMisuse("recycler.GetRecycled", "", errors.ErrNoFactory)
			return c, false
		}
		c = p.factory(p.defaults.Clone())
		if control.IsNil(c) {
			control.ReportMisuse("recycler.GetRecycled", "", errors.ErrNilControl)
			var zero C
			return zero, false
		}
		p.constructed++
	}

	if p.owner == nil {
		p.owner = make(map[C]list)
	}
	p.owner[c] = activeList
	if pos == Front {
		p.active = slices.Insert(p.active, 0, c)
	} else {
		p.active = append(p.active, c)
	}
	return c, true
}

// Control returns the active control whose id equals id.
func (p *Pool[C]) Control(id string) (C, bool) {
	if i := p.indexOf(id); i >= 0 {
		return p.active[i], true
	}
	var zero C
	return zero, false
}

// ControlAt returns the active control at offset i.
func (p *Pool[C]) ControlAt(i int) (C, bool) {
	if i < 0 || i >= len(p.active) {
		var zero C
		return zero, false
	}
	return p.active[i], true
}

// Each calls fn for every active control in order and stops at the first
// call that returns true.
func (p *Pool[C]) Each(fn func(c C, i int) bool) {
	for i, c := range slices.Clone(p.active) {
		if fn(c, i) {
			return
		}
	}
}

// Map returns fn applied to every active control, in order.
func Map[C Recyclable, T any](p *Pool[C], fn func(c C, i int) T) []T {
	out := make([]T, 0, len(p.active))
	for i, c := range slices.Clone(p.active) {
		out = append(out, fn(c, i))
	}
	return out
}

// TotalVisible returns the number of active controls.
func (p *Pool[C]) TotalVisible() int {
	return len(p.active)
}

// TotalFree returns the number of controls waiting for reuse.
func (p *Pool[C]) TotalFree() int {
	return len(p.free)
}

// Stats returns construction and reuse counters along with list sizes.
func (p *Pool[C]) Stats() Stats {
	return Stats{
		Constructed: p.constructed,
		Reused:      p.reused,
		Active:      len(p.active),
		Free:        len(p.free),
	}
}

// Discard detaches the active control with the given id and moves it to
// the free list. The control is not destroyed. Unknown ids are ignored.
func (p *Pool[C]) Discard(id string) {
	i := p.indexOf(id)
	if i < 0 {
		control.ReportMisuse("recycler.Discard", id, errors.ErrNotTracked)
		return
	}
	p.release(i)
}

// DiscardControl is Discard by reference. Controls that are not active are
// ignored.
func (p *Pool[C]) DiscardControl(c C) {
	if p.owner[c] != activeList {
		control.ReportMisuse("recycler.DiscardControl", "", errors.ErrNotTracked)
		return
	}
	p.release(slices.Index(p.active, c))
}

// DiscardAll moves every active control to the free list, front first.
func (p *Pool[C]) DiscardAll() {
	for len(p.active) > 0 {
		p.release(0)
	}
}

// Remove destroys every control the pool holds, active and free, and
// empties both lists. The pool may be configured and used again afterwards.
func (p *Pool[C]) Remove() {
	doomed := slices.Concat(p.active, p.free)
	p.active = nil
	p.free = nil
	p.owner = nil
	for _, c := range doomed {
		c.Remove()
	}
}

func (p *Pool[C]) indexOf(id string) int {
	return slices.IndexFunc(p.active, func(c C) bool { return c.ID() == id })
}

// release moves the active control at i to the tail of the free list.
func (p *Pool[C]) release(i int) {
	c := p.active[i]
	p.active = slices.Delete(p.active, i, i+1)
	c.SetContainer(nil)
	p.free = append(p.free, c)
	p.owner[c] = freeList
}
