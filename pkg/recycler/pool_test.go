package recycler_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/controlkit/pkg/control"
	"github.com/go-drift/controlkit/pkg/errors"
	"github.com/go-drift/controlkit/pkg/recycler"
	ctltest "github.com/go-drift/controlkit/pkg/testing"
)

type fakePool = recycler.Pool[*ctltest.FakeControl]

func newPool(defaults control.Settings) (*fakePool, *ctltest.Factory) {
	f := &ctltest.Factory{}
	return recycler.New[*ctltest.FakeControl](f.New, defaults), f
}

func active(p *fakePool) []*ctltest.FakeControl {
	return recycler.Map(p, func(c *ctltest.FakeControl, _ int) *ctltest.FakeControl { return c })
}

func TestGetRecycled_ConstructsDistinct(t *testing.T) {
	p, f := newPool(nil)

	a, okA := p.GetRecycled(recycler.Back)
	b, okB := p.GetRecycled(recycler.Back)

	if !okA || !okB {
		t.Fatal("configured pool should produce controls")
	}
	if a == b {
		t.Error("empty free list should yield distinct instances")
	}
	if p.TotalVisible() != 2 {
		t.Errorf("TotalVisible() = %d, want 2", p.TotalVisible())
	}
	if len(f.Built) != 2 {
		t.Errorf("constructed %d, want 2", len(f.Built))
	}
}

func TestGetRecycled_ReusesIdentity(t *testing.T) {
	p, f := newPool(control.Settings{"x": 1})

	c1, _ := p.GetRecycled(recycler.Back)
	if x, _ := c1.Settings.Int("x"); x != 1 {
		t.Fatalf("c1.x = %d, want 1", x)
	}
	c1.Text = "stale"

	p.Discard(c1.ID())
	c2, _ := p.GetRecycled(recycler.Back)

	if c2 != c1 {
		t.Fatal("expected the discarded instance to be reused")
	}
	if c2.Text != "stale" {
		t.Error("reused instance should keep its prior state")
	}
	if p.TotalVisible() != 1 || p.TotalFree() != 0 {
		t.Errorf("active=%d free=%d, want 1 and 0", p.TotalVisible(), p.TotalFree())
	}
	if len(f.Built) != 1 {
		t.Errorf("constructed %d, want 1", len(f.Built))
	}
	if got, want := p.Stats(), (recycler.Stats{Constructed: 1, Reused: 1, Active: 1}); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestGetRecycled_ClonesDefaults(t *testing.T) {
	defaults := control.Settings{
		"style":   map[string]any{"color": "red"},
		"columns": []map[string]any{{"width": 10}},
		"labels":  map[string]string{"title": "a"},
	}
	p, _ := newPool(defaults)

	a, _ := p.GetRecycled(recycler.Back)
	b, _ := p.GetRecycled(recycler.Back)

	a.Settings["style"].(map[string]any)["color"] = "blue"
	a.Settings["columns"].([]map[string]any)[0]["width"] = 99
	a.Settings["labels"].(map[string]string)["title"] = "mutated"

	if b.Settings["style"].(map[string]any)["color"] != "red" {
		t.Error("instances must not share nested settings")
	}
	if defaults["style"].(map[string]any)["color"] != "red" {
		t.Error("the template must not be mutated through an instance")
	}
	if w := b.Settings["columns"].([]map[string]any)[0]["width"]; w != 10 {
		t.Errorf("b.columns[0].width = %v, want 10", w)
	}
	if w := defaults["columns"].([]map[string]any)[0]["width"]; w != 10 {
		t.Errorf("template columns[0].width = %v, want 10", w)
	}
	if title := b.Settings["labels"].(map[string]string)["title"]; title != "a" {
		t.Errorf("b.labels.title = %q, want %q", title, "a")
	}
}

func TestGetRecycled_Front(t *testing.T) {
	p, _ := newPool(nil)
	a, _ := p.GetRecycled(recycler.Back)
	b, _ := p.GetRecycled(recycler.Front)

	if diff := cmp.Diff([]string{b.ID(), a.ID()}, ctltest.IDs(active(p))); diff != "" {
		t.Errorf("active order mismatch (-want +got):\n%s", diff)
	}
}

func TestGetRecycled_Unconfigured(t *testing.T) {
	var p fakePool
	c, ok := p.GetRecycled(recycler.Back)

	if ok || c != nil {
		t.Errorf("GetRecycled() = %v, %v, want nil, false", c, ok)
	}
	if p.TotalVisible() != 0 {
		t.Error("unconfigured pool must not track anything")
	}

	f := &ctltest.Factory{}
	p.Configure(f.New, nil)
	if _, ok := p.GetRecycled(recycler.Back); !ok {
		t.Error("pool should work once configured")
	}
}

func TestGetRecycled_NilFromFactory(t *testing.T) {
	p := recycler.New[*ctltest.FakeControl](func(control.Settings) *ctltest.FakeControl { return nil }, nil)

	c, ok := p.GetRecycled(recycler.Back)
	if ok || c != nil {
		t.Errorf("GetRecycled() = %v, %v, want nil, false", c, ok)
	}
	if s := p.Stats(); s != (recycler.Stats{}) {
		t.Errorf("Stats() = %+v, want zero", s)
	}
	p.DiscardControl(nil)
	p.Remove()
}

func TestControlLookup(t *testing.T) {
	p, _ := newPool(nil)
	a, _ := p.GetRecycled(recycler.Back)
	b, _ := p.GetRecycled(recycler.Back)

	if got, ok := p.Control(b.ID()); !ok || got != b {
		t.Error("Control(b) should find b")
	}
	if _, ok := p.Control("missing"); ok {
		t.Error("Control(missing) should not be found")
	}
	if got, ok := p.ControlAt(0); !ok || got != a {
		t.Error("ControlAt(0) should be a")
	}
	for _, i := range []int{-1, 2} {
		if _, ok := p.ControlAt(i); ok {
			t.Errorf("ControlAt(%d) should be out of range", i)
		}
	}

	p.Discard(a.ID())
	if _, ok := p.Control(a.ID()); ok {
		t.Error("free controls are not visible to Control")
	}
}

func TestControlAtStableAcrossCycles(t *testing.T) {
	p, _ := newPool(nil)
	for range 4 {
		p.GetRecycled(recycler.Back)
	}

	for cycle := range 3 {
		p.DiscardAll()
		for i := range 4 {
			c, _ := p.GetRecycled(recycler.Back)
			c.SetID(string(rune('a' + i)))
		}
		for i := range 4 {
			c, ok := p.ControlAt(i)
			if !ok || c.ID() != string(rune('a'+i)) {
				t.Fatalf("cycle %d: ControlAt(%d) = %v, want %c", cycle, i, c, 'a'+i)
			}
		}
	}
	if s := p.Stats(); s.Constructed != 4 {
		t.Errorf("constructed %d, want 4", s.Constructed)
	}
}

func TestDiscardDetachesWithoutDestroying(t *testing.T) {
	p, _ := newPool(nil)
	parent := &ctltest.FakeContainer{}
	c, _ := p.GetRecycled(recycler.Back)
	c.SetContainer(parent)

	p.Discard(c.ID())

	if parent.Has(c) || c.Container() != nil {
		t.Error("discarded control should be detached")
	}
	if c.RemoveCalls != 0 || c.IsRemoved() {
		t.Error("discard must not destroy the control")
	}
	if p.TotalFree() != 1 {
		t.Errorf("TotalFree() = %d, want 1", p.TotalFree())
	}

	p.Discard(c.ID())
	p.Discard("never")
	if p.TotalFree() != 1 || p.TotalVisible() != 0 {
		t.Error("repeated or unknown discards should be no-ops")
	}
}

func TestDiscardControl(t *testing.T) {
	p, _ := newPool(nil)
	a, _ := p.GetRecycled(recycler.Back)
	b, _ := p.GetRecycled(recycler.Back)

	p.DiscardControl(a)
	p.DiscardControl(a)
	p.DiscardControl(ctltest.NewFakeControl(nil))

	if diff := cmp.Diff([]string{b.ID()}, ctltest.IDs(active(p))); diff != "" {
		t.Errorf("active mismatch (-want +got):\n%s", diff)
	}
	if p.TotalFree() != 1 {
		t.Errorf("TotalFree() = %d, want 1", p.TotalFree())
	}
}

func TestDiscardAllThenRemove(t *testing.T) {
	p, f := newPool(nil)
	for range 3 {
		p.GetRecycled(recycler.Back)
	}

	p.DiscardAll()

	if p.TotalVisible() != 0 || p.TotalFree() != 3 {
		t.Fatalf("active=%d free=%d, want 0 and 3", p.TotalVisible(), p.TotalFree())
	}
	for _, c := range f.Built {
		if c.RemoveCalls != 0 {
			t.Fatal("DiscardAll must not destroy")
		}
	}

	p.Remove()

	for _, c := range f.Built {
		if c.RemoveCalls != 1 || !c.IsRemoved() {
			t.Errorf("%s: RemoveCalls=%d removed=%v, want destroyed once", c.ID(), c.RemoveCalls, c.IsRemoved())
		}
	}
	if p.TotalVisible() != 0 || p.TotalFree() != 0 {
		t.Error("pool should hold nothing after Remove")
	}
}

func TestRemoveBothLists(t *testing.T) {
	p, f := newPool(nil)
	a, _ := p.GetRecycled(recycler.Back)
	p.GetRecycled(recycler.Back)
	p.Discard(a.ID())

	p.Remove()
	p.Remove()

	for _, c := range f.Built {
		if c.RemoveCalls != 1 {
			t.Errorf("%s: RemoveCalls = %d, want 1", c.ID(), c.RemoveCalls)
		}
	}

	c, ok := p.GetRecycled(recycler.Back)
	if !ok || c == a {
		t.Error("pool should construct fresh instances after Remove")
	}
}

func TestEach(t *testing.T) {
	p, _ := newPool(nil)
	for range 3 {
		p.GetRecycled(recycler.Back)
	}

	var seen []int
	p.Each(func(_ *ctltest.FakeControl, i int) bool {
		seen = append(seen, i)
		return i == 1
	})

	if diff := cmp.Diff([]int{0, 1}, seen); diff != "" {
		t.Errorf("Each should stop at first true (-want +got):\n%s", diff)
	}
}

func TestMembershipExclusive(t *testing.T) {
	p, f := newPool(nil)
	for range 5 {
		p.GetRecycled(recycler.Back)
	}
	p.Discard(f.Built[1].ID())
	p.Discard(f.Built[3].ID())
	p.GetRecycled(recycler.Front)

	seen := map[*ctltest.FakeControl]int{}
	for _, c := range active(p) {
		seen[c]++
	}
	if p.TotalVisible()+p.TotalFree() != len(f.Built) {
		t.Errorf("active+free = %d, want %d", p.TotalVisible()+p.TotalFree(), len(f.Built))
	}
	for c, n := range seen {
		if n != 1 {
			t.Errorf("%s appears %d times in the active list", c.ID(), n)
		}
	}
}

func TestMisuseReportingInDebugMode(t *testing.T) {
	var reports []*errors.Error
	prev := errors.SetHandler(&recordingHandler{onError: func(err *errors.Error) { reports = append(reports, err) }})
	defer errors.SetHandler(prev)

	control.SetDebugMode(true)
	defer control.SetDebugMode(false)

	var p fakePool
	p.GetRecycled(recycler.Back)
	p.Discard("ghost")

	if len(reports) != 2 {
		t.Fatalf("reports = %d, want 2", len(reports))
	}
	if !errors.Is(reports[0], errors.ErrNoFactory) {
		t.Errorf("first report = %v, want ErrNoFactory", reports[0])
	}
}

type recordingHandler struct {
	onError func(*errors.Error)
}

func (h *recordingHandler) HandleError(err *errors.Error) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *recordingHandler) HandlePanic(*errors.PanicError) {}
