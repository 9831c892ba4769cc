package testing

import (
	"time"

	"github.com/go-drift/controlkit/pkg/control"
)

// FakeControl is a control.Control for tests.
type FakeControl struct {
	control.Base

	// Settings holds the settings the control was constructed with.
	Settings control.Settings
	// Text is free-form content tests can set on reused instances.
	Text string
	// Nested, when set, serves Get lookups for nested children.
	Nested control.Finder
	// BreakRemoval makes Remove skip the pre-removal event, violating the
	// Control contract.
	BreakRemoval bool

	// RemoveCalls counts calls to Remove.
	RemoveCalls int
}

// NewFakeControl constructs a FakeControl. The "id" setting, if present,
// becomes its identifier.
func NewFakeControl(s control.Settings) *FakeControl {
	c := &FakeControl{Settings: s}
	c.Init(c, s)
	return c
}

// Remove counts the call and delegates to control.Base unless BreakRemoval
// is set.
func (c *FakeControl) Remove() {
	c.RemoveCalls++
	if c.BreakRemoval {
		return
	}
	c.Base.Remove()
}

// Get delegates to Nested.
func (c *FakeControl) Get(id string) (control.Control, bool) {
	if c.Nested == nil {
		return nil, false
	}
	return c.Nested.Get(id)
}

// ExitAfter defers teardown until clk has advanced by d, like an exit
// animation.
func (c *FakeControl) ExitAfter(clk *FakeClock, d time.Duration) {
	c.SetTeardown(func(done func()) {
		clk.AfterFunc(d, done)
	})
}

// Factory builds FakeControls and records every construction.
type Factory struct {
	// Built lists constructed controls in order.
	Built []*FakeControl
	// Setup, when set, runs on every new control.
	Setup func(c *FakeControl)
}

// New constructs a FakeControl from s. Its signature matches
// recycler.Factory[*FakeControl].
func (f *Factory) New(s control.Settings) *FakeControl {
	c := NewFakeControl(s)
	if f.Setup != nil {
		f.Setup(c)
	}
	f.Built = append(f.Built, c)
	return c
}

// FakeContainer records the controls attached to it.
type FakeContainer struct {
	children []control.Control
}

// Attach appends child.
func (p *FakeContainer) Attach(child control.Control) {
	p.children = append(p.children, child)
}

// Detach removes child if present.
func (p *FakeContainer) Detach(child control.Control) {
	for i, c := range p.children {
		if c == child {
			p.children = append(p.children[:i], p.children[i+1:]...)
			return
		}
	}
}

// Children returns the attached controls in attach order.
func (p *FakeContainer) Children() []control.Control {
	return append([]control.Control(nil), p.children...)
}

// Has reports whether c is attached.
func (p *FakeContainer) Has(c control.Control) bool {
	for _, child := range p.children {
		if child == c {
			return true
		}
	}
	return false
}

// IDs returns the identifiers of cs in order.
func IDs[C control.Control](cs []C) []string {
	ids := make([]string, len(cs))
	for i, c := range cs {
		ids[i] = c.ID()
	}
	return ids
}
