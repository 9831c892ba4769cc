package control

type removalState uint8

const (
	live removalState = iota
	removing
	removed
)

// Base implements Control. Embed it in a control struct and call Init from
// the constructor so Base knows the outer value it attaches to containers.
//
// Example:
//
//	type Badge struct {
//	    control.Base
//	}
//
//	func NewBadge(s control.Settings) *Badge {
//	    b := &Badge{}
//	    b.Init(b, s)
//	    return b
//	}
type Base struct {
	self      Control
	id        string
	container Container
	teardown  func(done func())
	preRemove Event
	removed   Event
	state     removalState
}

// Init binds the outer control and reads the "id" setting. When settings
// carry no id a fresh one is generated with NewID.
func (b *Base) Init(self Control, settings Settings) {
	b.self = self
	if id := settings.String("id"); id != "" {
		b.id = id
	} else {
		b.id = NewID()
	}
}

// ID returns the identifier.
func (b *Base) ID() string { return b.id }

// SetID changes the identifier.
func (b *Base) SetID(id string) { b.id = id }

// OnPreRemove returns the event fired when removal is requested.
func (b *Base) OnPreRemove() *Event { return &b.preRemove }

// OnRemoved returns the event fired when teardown has completed.
func (b *Base) OnRemoved() *Event { return &b.removed }

// Container returns the current visual parent, or nil.
func (b *Base) Container() Container { return b.container }

// SetContainer moves the control to parent. The old parent, if any, is told
// to detach first. Passing nil detaches without destroying.
func (b *Base) SetContainer(parent Container) {
	if parent == b.container {
		return
	}
	if b.container != nil {
		b.container.Detach(b.outer())
	}
	b.container = parent
	if parent != nil {
		parent.Attach(b.outer())
	}
}

// SetTeardown installs a deferred teardown hook, such as an exit animation.
// Remove calls fn after firing OnPreRemove; the control finishes removing
// when fn calls done. A nil fn restores immediate teardown.
func (b *Base) SetTeardown(fn func(done func())) {
	b.teardown = fn
}

// Remove requests destruction. OnPreRemove fires before Remove returns, even
// when a teardown hook delays completion. Calling Remove again while removal
// is pending or finished is a no-op.
func (b *Base) Remove() {
	if b.state != live {
		return
	}
	b.state = removing
	b.preRemove.Trigger()

	if b.teardown == nil {
		b.finish()
		return
	}
	finished := false
	b.teardown(func() {
		if finished {
			return
		}
		finished = true
		b.finish()
	})
}

func (b *Base) finish() {
	b.SetContainer(nil)
	b.state = removed
	b.removed.Trigger()
}

// IsRemoving reports whether removal has been requested but teardown has not
// completed.
func (b *Base) IsRemoving() bool { return b.state == removing }

// IsRemoved reports whether teardown has completed.
func (b *Base) IsRemoved() bool { return b.state == removed }

func (b *Base) outer() Control {
	if b.self != nil {
		return b.self
	}
	return b
}
