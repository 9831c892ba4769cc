// Package control defines the capability every managed control exposes and
// the building blocks for implementing it.
//
// A Control is an identifiable, destroyable unit. The registry and recycling
// pool depend only on this capability:
//
//   - ID and SetID read and write the identifier. An empty id is unindexed.
//   - OnPreRemove returns the pre-removal [Event].
//   - Remove begins destruction and fires OnPreRemove synchronously, before
//     any deferred teardown such as an exit animation.
//   - SetContainer attaches the control to a visual parent, or detaches it
//     without destroying it when passed nil.
//
// Controls that hold nested children may also implement [Finder] so lookups
// recurse into them.
//
// # Implementing a Control
//
// Embed [Base] and call Init from the constructor:
//
//	type Row struct {
//	    control.Base
//	    Text string
//	}
//
//	func NewRow(s control.Settings) *Row {
//	    r := &Row{}
//	    r.Init(r, s)
//	    r.Text, _ = s["text"].(string)
//	    return r
//	}
//
// # Removal Requested vs. Removal Completed
//
// Removal is split in two signals. OnPreRemove fires the moment Remove is
// called. OnRemoved fires once teardown has finished, which may be later
// when a teardown hook is installed with SetTeardown. Collections subscribe
// to OnPreRemove so they shrink immediately.
//
// None of the types in this package are safe for concurrent use.
package control
