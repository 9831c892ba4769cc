// Package testing provides test doubles for code built on controlkit.
//
// FakeControl implements control.Control on top of control.Base and counts
// constructions and removals. FakeContainer records attached children.
// FakeClock drives deferred teardown deterministically:
//
//	clk := ctltest.NewFakeClock()
//	c := ctltest.NewFakeControl(nil)
//	c.ExitAfter(clk, 300*time.Millisecond)
//
//	c.Remove()                          // pre-removal fires now
//	clk.Advance(300 * time.Millisecond) // teardown completes here
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import ctltest "github.com/go-drift/controlkit/pkg/testing"
package testing
