package testing

import (
	"slices"
	"time"
)

// FakeClock provides controllable time for deferred teardown in tests.
// Callbacks scheduled with AfterFunc run synchronously inside Advance or Set.
type FakeClock struct {
	now    time.Time
	timers []*fakeTimer
	seq    int
}

type fakeTimer struct {
	at  time.Time
	seq int
	fn  func()
}

// NewFakeClock returns a FakeClock starting at a fixed epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	return c.now
}

// AfterFunc schedules fn to run once the clock has advanced by d.
func (c *FakeClock) AfterFunc(d time.Duration, fn func()) {
	c.seq++
	c.timers = append(c.timers, &fakeTimer{at: c.now.Add(d), seq: c.seq, fn: fn})
}

// Pending returns the number of scheduled callbacks that have not run.
func (c *FakeClock) Pending() int {
	return len(c.timers)
}

// Advance moves the clock forward by d and runs every callback that became
// due, earliest first.
func (c *FakeClock) Advance(d time.Duration) {
	c.Set(c.now.Add(d))
}

// Set sets the clock to an exact time and runs every callback that became due.
func (c *FakeClock) Set(t time.Time) {
	c.now = t
	for {
		due := c.nextDue()
		if due == nil {
			return
		}
		due.fn()
	}
}

func (c *FakeClock) nextDue() *fakeTimer {
	i := -1
	for j, tm := range c.timers {
		if tm.at.After(c.now) {
			continue
		}
		if i < 0 || tm.at.Before(c.timers[i].at) || (tm.at.Equal(c.timers[i].at) && tm.seq < c.timers[i].seq) {
			i = j
		}
	}
	if i < 0 {
		return nil
	}
	tm := c.timers[i]
	c.timers = slices.Delete(c.timers, i, i+1)
	return tm
}
