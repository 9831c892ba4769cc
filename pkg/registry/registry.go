// Package registry tracks an ordered collection of live controls with O(1)
// lookup by id.
//
// A control leaves the registry the moment it requests its own removal,
// whether or not the owner calls Discard. The registry never destroys a
// control on its own; it only tracks membership.
//
// A Registry is not safe for concurrent use.
package registry

import (
	"slices"

	"github.com/go-drift/controlkit/pkg/control"
	"github.com/go-drift/controlkit/pkg/errors"
)

type entry struct {
	control control.Control
	handle  control.Handle
	key     string // id this entry was last indexed under, "" if none
	gone    bool
}

// Registry is an id-indexed, order-preserving collection of controls.
type Registry struct {
	entries   []*entry
	byControl map[control.Control]*entry
	index     map[string]*entry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		byControl: make(map[control.Control]*entry),
		index:     make(map[string]*entry),
	}
}

// Add appends controls in order, subscribes to each one's pre-removal event,
// and indexes those with a non-empty id. A control that is already tracked is
// skipped, so one removal never deregisters twice. Nil controls, including
// nil pointers of a concrete control type, are ignored.
func (r *Registry) Add(controls ...control.Control) *Registry {
	for _, c := range controls {
		if control.IsNil(c) {
			control.ReportMisuse("registry.Add", "", errors.ErrNilControl)
			continue
		}
		if _, ok := r.byControl[c]; ok {
			continue
		}
		e := &entry{control: c}
		e.handle = c.OnPreRemove().Add(func() { r.drop(e) })
		r.entries = append(r.entries, e)
		r.byControl[c] = e
		r.reindex(e)
	}
	return r
}

// DiscardID stops tracking the control indexed under id.
// Unknown ids are ignored.
func (r *Registry) DiscardID(id string) {
	e, ok := r.index[id]
	if !ok {
		control.ReportMisuse("registry.DiscardID", id, errors.ErrNotTracked)
		return
	}
	r.discard(e)
}

// Discard stops tracking c without removing it. Untracked controls are
// ignored, so Discard may be called any number of times.
func (r *Registry) Discard(c control.Control) {
	e, ok := r.lookup(c)
	if !ok {
		control.ReportMisuse("registry.Discard", idOf(c), errors.ErrNotTracked)
		return
	}
	r.discard(e)
}

// Update re-indexes c under its current id. Owners must call it after
// changing the id of a tracked control; the registry does not notice id
// changes on its own.
func (r *Registry) Update(c control.Control) {
	e, ok := r.lookup(c)
	if !ok {
		control.ReportMisuse("registry.Update", idOf(c), errors.ErrNotTracked)
		return
	}
	r.reindex(e)
}

// Get returns the control indexed under id. On an index miss it asks each
// tracked control implementing control.Finder, in insertion order, and
// returns the first match.
func (r *Registry) Get(id string) (control.Control, bool) {
	if e, ok := r.index[id]; ok {
		return e.control, true
	}
	if id == "" {
		return nil, false
	}
	for _, e := range slices.Clone(r.entries) {
		if e.gone {
			continue
		}
		f, ok := e.control.(control.Finder)
		if !ok {
			continue
		}
		if c, ok := f.Get(id); ok && c != nil {
			return c, true
		}
	}
	return nil, false
}

// Each calls fn for every tracked control in insertion order and stops at
// the first call that returns true. Controls removed by fn are skipped.
func (r *Registry) Each(fn func(c control.Control, i int) bool) {
	i := 0
	for _, e := range slices.Clone(r.entries) {
		if e.gone {
			continue
		}
		if fn(e.control, i) {
			return
		}
		i++
	}
}

// Map returns fn applied to every tracked control, in insertion order.
func Map[T any](r *Registry, fn func(c control.Control, i int) T) []T {
	out := make([]T, 0, len(r.entries))
	for _, e := range slices.Clone(r.entries) {
		if e.gone {
			continue
		}
		out = append(out, fn(e.control, len(out)))
	}
	return out
}

// Controls returns the tracked controls in insertion order.
func (r *Registry) Controls() []control.Control {
	return Map(r, func(c control.Control, _ int) control.Control { return c })
}

// Total returns the number of tracked controls.
func (r *Registry) Total() int {
	return len(r.entries)
}

// RemoveID removes the control indexed under id. Unknown ids are ignored.
func (r *Registry) RemoveID(id string) {
	e, ok := r.index[id]
	if !ok {
		control.ReportMisuse("registry.RemoveID", id, errors.ErrNotTracked)
		return
	}
	e.control.Remove()
}

// Remove calls Remove on c if it is tracked. The pre-removal subscription
// takes it out of the registry.
func (r *Registry) Remove(c control.Control) {
	e, ok := r.lookup(c)
	if !ok {
		control.ReportMisuse("registry.Remove", idOf(c), errors.ErrNotTracked)
		return
	}
	e.control.Remove()
}

// RemoveAll removes controls from the front until the registry is empty.
//
// Each Remove is expected to shrink the registry synchronously through the
// pre-removal event, even if final teardown is deferred. A control that
// breaks this is reported and discarded so the loop terminates.
func (r *Registry) RemoveAll() {
	for len(r.entries) > 0 {
		e := r.entries[0]
		e.control.Remove()
		if len(r.entries) > 0 && r.entries[0] == e {
			errors.Report(&errors.Error{
				Op:         "registry.RemoveAll",
				Kind:       errors.KindContract,
				ID:         e.control.ID(),
				Err:        errors.ErrRemovalNotSignaled,
				StackTrace: errors.CaptureStack(),
			})
			r.discard(e)
		}
	}
}

func (r *Registry) lookup(c control.Control) (*entry, bool) {
	if control.IsNil(c) {
		return nil, false
	}
	e, ok := r.byControl[c]
	return e, ok
}

// discard cancels the pre-removal subscription and drops the entry.
func (r *Registry) discard(e *entry) {
	e.control.OnPreRemove().Discard(e.handle)
	r.drop(e)
}

// drop removes e from the ordered list and the index. It runs from the
// pre-removal event, so it must tolerate entries that are already gone.
func (r *Registry) drop(e *entry) {
	if e.gone {
		return
	}
	e.gone = true
	if i := slices.Index(r.entries, e); i >= 0 {
		r.entries = slices.Delete(r.entries, i, i+1)
	}
	delete(r.byControl, e.control)
	r.unindex(e)
}

func (r *Registry) reindex(e *entry) {
	r.unindex(e)
	if id := e.control.ID(); id != "" {
		r.index[id] = e
		e.key = id
	}
}

// unindex removes the mapping pointing at e. A key another entry has since
// claimed is left alone.
func (r *Registry) unindex(e *entry) {
	if e.key == "" {
		return
	}
	if r.index[e.key] == e {
		delete(r.index, e.key)
	}
	e.key = ""
}

func idOf(c control.Control) string {
	if control.IsNil(c) {
		return ""
	}
	return c.ID()
}
