package control

import "reflect"

// Control is the capability managed by the registry and the recycling pool.
//
// Implementations used as map keys by the registry and pool must be
// comparable; pointer types satisfy this.
type Control interface {
	// ID returns the identifier. An empty string means unindexed.
	ID() string
	// SetID changes the identifier. Owners of a registry holding the
	// control must call Registry.Update afterwards.
	SetID(id string)
	// OnPreRemove returns the event fired when removal is requested.
	OnPreRemove() *Event
	// Remove begins destruction. It must trigger OnPreRemove synchronously.
	Remove()
	// SetContainer attaches the control to parent, or detaches it when
	// parent is nil. Detaching does not destroy the control.
	SetContainer(parent Container)
	// Container returns the current visual parent, or nil.
	Container() Container
}

// Container is a visual parent a control can be attached to.
type Container interface {
	// Attach adds child to the render tree under this container.
	Attach(child Control)
	// Detach removes child from the render tree under this container.
	Detach(child Control)
}

// Finder is implemented by controls that can look up nested children by id.
type Finder interface {
	Get(id string) (Control, bool)
}

// IsNil reports whether c is nil or an interface holding a nil pointer.
// Methods on such a value typically panic, so the registry and pool treat
// it as no control at all.
func IsNil(c Control) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
